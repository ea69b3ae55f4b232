package payment_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sprintertech/sprinter-gateway/payment"
	"github.com/stretchr/testify/suite"
)

type FacilitatorTestSuite struct {
	suite.Suite

	verifier   *payment.FacilitatorVerifier
	testServer *httptest.Server
	proof      *payment.Proof
	paths      []string
}

func TestRunFacilitatorTestSuite(t *testing.T) {
	suite.Run(t, new(FacilitatorTestSuite))
}

func (s *FacilitatorTestSuite) SetupTest() {
	s.paths = nil
	s.testServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	s.verifier = payment.NewFacilitatorVerifier(s.testServer.URL)
	s.proof = &payment.Proof{
		Scheme:  payment.SCHEME_EXACT,
		Network: "base",
		Nonce:   "nonce",
		Payload: json.RawMessage(`{"signature":"0x01"}`),
	}
}

func (s *FacilitatorTestSuite) TearDownTest() {
	s.testServer.Close()
}

func (s *FacilitatorTestSuite) handle(verify string, settle string) {
	s.testServer.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.paths = append(s.paths, r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		req := make(map[string]interface{})
		s.Nil(json.Unmarshal(body, &req))
		s.Contains(req, "paymentPayload")
		s.Contains(req, "paymentRequirements")

		switch r.URL.Path {
		case "/verify":
			_, _ = io.WriteString(w, verify)
		case "/settle":
			_, _ = io.WriteString(w, settle)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (s *FacilitatorTestSuite) Test_VerifyAndSettle_Success() {
	s.handle(
		`{"isValid":true,"payer":"0xpayer"}`,
		`{"success":true,"transaction":"0xtx","network":"base"}`,
	)

	settlement, err := s.verifier.VerifyAndSettle(context.Background(), s.proof, payment.Requirement{PriceUsd: "0.05"})

	s.Nil(err)
	s.Equal([]string{"/verify", "/settle"}, s.paths)
	s.Equal("0.05", settlement.PaymentUsed)
	s.Equal("0xtx", settlement.Transaction)
	s.Equal("0xpayer", settlement.Payer)
	s.Equal("base", settlement.Network)
}

func (s *FacilitatorTestSuite) Test_VerifyAndSettle_InvalidPayment() {
	s.handle(`{"isValid":false,"invalidReason":"invalid_signature"}`, ``)

	_, err := s.verifier.VerifyAndSettle(context.Background(), s.proof, payment.Requirement{})

	verr := &payment.VerificationError{}
	s.True(errors.As(err, &verr))
	s.Equal("invalid_signature", verr.Reason)
	s.Equal([]string{"/verify"}, s.paths)
}

func (s *FacilitatorTestSuite) Test_VerifyAndSettle_SettlementFailed() {
	s.handle(`{"isValid":true}`, `{"success":false}`)

	_, err := s.verifier.VerifyAndSettle(context.Background(), s.proof, payment.Requirement{})

	verr := &payment.VerificationError{}
	s.True(errors.As(err, &verr))
	s.Equal("settlement failed", verr.Reason)
}

func (s *FacilitatorTestSuite) Test_VerifyAndSettle_FacilitatorDown() {
	s.testServer.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.verifier.VerifyAndSettle(context.Background(), s.proof, payment.Requirement{})

	s.ErrorIs(err, payment.ErrVerificationUnavailable)
}

func (s *FacilitatorTestSuite) Test_VerifyAndSettle_InvalidResponse() {
	s.handle(`{invalid`, ``)

	_, err := s.verifier.VerifyAndSettle(context.Background(), s.proof, payment.Requirement{})

	s.ErrorIs(err, payment.ErrVerificationUnavailable)
}
