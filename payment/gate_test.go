package payment_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sprintertech/sprinter-gateway/cache"
	"github.com/sprintertech/sprinter-gateway/payment"
	mock_payment "github.com/sprintertech/sprinter-gateway/payment/mock"
	"github.com/sprintertech/sprinter-gateway/tokens"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var treasury = common.HexToAddress("0x000000000000000000000000000000000000dEaD")

type GateTestSuite struct {
	suite.Suite

	gate         *payment.Gate
	requirements *cache.RequirementCache
	mockVerifier *mock_payment.MockSchemeVerifier
	mockMetrics  *mock_payment.MockPaymentMetrics
	pricing      payment.Pricing
	cancel       context.CancelFunc
	calls        int
}

func TestRunGateTestSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (s *GateTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	registry, err := tokens.NewRegistry(tokens.DefaultTokens, nil)
	s.Nil(err)
	asset, err := registry.Lookup("USDC")
	s.Nil(err)

	s.requirements = cache.NewRequirementCache(ctx, time.Minute, cache.MAX_PENDING_REQUIREMENTS)
	s.mockVerifier = mock_payment.NewMockSchemeVerifier(ctrl)
	s.mockMetrics = mock_payment.NewMockPaymentMetrics(ctrl)
	s.mockMetrics.EXPECT().TrackPayment(gomock.Any(), gomock.Any()).AnyTimes()

	s.gate = payment.NewGate(
		payment.GateConfig{
			PayTo:             treasury,
			Network:           "base",
			Asset:             asset,
			VerifyTimeout:     time.Millisecond * 100,
			MaxTimeoutSeconds: 60,
		},
		map[string]payment.SchemeVerifier{payment.SCHEME_EXACT: s.mockVerifier},
		s.requirements,
		s.mockMetrics,
	)
	s.pricing = payment.Pricing{PriceUsd: "0.01", Description: "Premium strategies"}
	s.calls = 0
}

func (s *GateTestSuite) TearDownTest() {
	s.cancel()
}

func (s *GateTestSuite) serve(path string, header string) *httptest.ResponseRecorder {
	handler := s.gate.Middleware(s.pricing)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls++
		settlement, ok := payment.SettlementFromContext(r.Context())
		s.True(ok)
		s.NotNil(settlement)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, path, nil)
	if header != "" {
		req.Header.Set(payment.PAYMENT_HEADER, header)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func (s *GateTestSuite) quote(path string) payment.Requirement {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	requirement, err := s.gate.Quote(req, s.pricing)
	s.Nil(err)
	return requirement
}

func (s *GateTestSuite) proof(nonce string) string {
	p := &payment.Proof{
		X402Version: payment.X402_VERSION,
		Scheme:      payment.SCHEME_EXACT,
		Network:     "base",
		Nonce:       nonce,
		Payload:     json.RawMessage(`{"signature":"0x01"}`),
	}
	encoded, err := p.Encode()
	s.Nil(err)
	return encoded
}

func (s *GateTestSuite) challenge(recorder *httptest.ResponseRecorder) payment.Challenge {
	s.Equal(http.StatusPaymentRequired, recorder.Code)

	c := payment.Challenge{}
	s.Nil(json.Unmarshal(recorder.Body.Bytes(), &c))
	return c
}

func (s *GateTestSuite) Test_CheckPayment_NoProofIssuesChallenge() {
	first := s.challenge(s.serve("/strategies/arb", ""))
	second := s.challenge(s.serve("/strategies/arb", ""))

	s.Equal(0, s.calls)
	s.Equal("payment required", first.Error)
	s.Equal(payment.X402_VERSION, first.X402Version)
	s.Equal(treasury.Hex(), first.PayTo)
	s.Equal("base", first.Network)
	s.Equal("0.01", first.PriceUsd)
	s.Equal("10000", first.MaxAmountRequired)
	s.Equal("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", first.Asset)
	s.Equal("/strategies/arb", first.Resource)
	s.Equal("application/json", first.MimeType)
	s.NotEmpty(first.Nonce)

	s.NotEqual(first.Nonce, second.Nonce)
	second.Nonce = first.Nonce
	s.Equal(first, second)
}

func (s *GateTestSuite) Test_CheckPayment_MalformedProof() {
	c := s.challenge(s.serve("/strategies/arb", "not base64 at all!"))

	s.Equal("malformed proof", c.Error)
	s.Equal(0, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_ProofMissingPayload() {
	header := base64.StdEncoding.EncodeToString([]byte(`{"scheme":"exact","nonce":"abc"}`))

	c := s.challenge(s.serve("/strategies/arb", header))

	s.Equal("malformed proof", c.Error)
}

func (s *GateTestSuite) Test_CheckPayment_UnsupportedScheme() {
	p := &payment.Proof{Scheme: "upto", Nonce: "abc", Payload: json.RawMessage(`{}`)}
	header, _ := p.Encode()

	c := s.challenge(s.serve("/strategies/arb", header))

	s.Equal("unsupported payment scheme", c.Error)
}

func (s *GateTestSuite) Test_CheckPayment_UnknownNonce() {
	c := s.challenge(s.serve("/strategies/arb", s.proof("forged")))

	s.Equal("unknown or expired payment requirement", c.Error)
	s.Equal(0, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_ValidProof() {
	requirement := s.quote("/strategies/arb")
	s.mockVerifier.EXPECT().VerifyAndSettle(gomock.Any(), gomock.Any(), requirement).Return(&payment.Settlement{
		Transaction: "0xabc",
		Payer:       "0x123",
	}, nil)

	recorder := s.serve("/strategies/arb", s.proof(requirement.Nonce))

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal(1, s.calls)

	data, err := base64.StdEncoding.DecodeString(recorder.Header().Get(payment.PAYMENT_RESPONSE_HEADER))
	s.Nil(err)
	settlement := payment.Settlement{}
	s.Nil(json.Unmarshal(data, &settlement))
	s.Equal("0.01", settlement.PaymentUsed)
	s.Equal("base", settlement.Network)
	s.Equal("0xabc", settlement.Transaction)
	s.False(settlement.Timestamp.IsZero())
}

func (s *GateTestSuite) Test_CheckPayment_ReplayedProof() {
	requirement := s.quote("/strategies/arb")
	s.mockVerifier.EXPECT().VerifyAndSettle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&payment.Settlement{}, nil).Times(1)

	s.Equal(http.StatusOK, s.serve("/strategies/arb", s.proof(requirement.Nonce)).Code)
	c := s.challenge(s.serve("/strategies/arb", s.proof(requirement.Nonce)))

	s.Equal("payment requirement already used", c.Error)
	s.Equal(1, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_VerifierRejects() {
	requirement := s.quote("/strategies/arb")
	s.mockVerifier.EXPECT().VerifyAndSettle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &payment.VerificationError{Reason: "insufficient funds"})

	c := s.challenge(s.serve("/strategies/arb", s.proof(requirement.Nonce)))

	s.Equal("insufficient funds", c.Error)
	s.NotEqual(requirement.Nonce, c.Nonce)
	s.Equal(0, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_VerifierUnavailable() {
	requirement := s.quote("/strategies/arb")
	s.mockVerifier.EXPECT().VerifyAndSettle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	c := s.challenge(s.serve("/strategies/arb", s.proof(requirement.Nonce)))

	s.Equal("verification unavailable", c.Error)
	s.Equal(0, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_VerifierTimeout() {
	requirement := s.quote("/strategies/arb")
	s.mockVerifier.EXPECT().VerifyAndSettle(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, proof *payment.Proof, requirement payment.Requirement) (*payment.Settlement, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	c := s.challenge(s.serve("/strategies/arb", s.proof(requirement.Nonce)))

	s.Equal("verification unavailable", c.Error)
	s.Equal(0, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_RequirementForOtherResource() {
	requirement := s.quote("/strategies/cheap")

	c := s.challenge(s.serve("/strategies/arb", s.proof(requirement.Nonce)))

	s.Equal("payment requirement was issued for a different resource", c.Error)
	s.Equal(0, s.calls)
}

func (s *GateTestSuite) Test_CheckPayment_NetworkMismatch() {
	requirement := s.quote("/strategies/arb")
	p := &payment.Proof{
		Scheme:  payment.SCHEME_EXACT,
		Network: "base-sepolia",
		Nonce:   requirement.Nonce,
		Payload: json.RawMessage(`{"signature":"0x01"}`),
	}
	header, _ := p.Encode()

	c := s.challenge(s.serve("/strategies/arb", header))

	s.Equal("payment network does not match requirement", c.Error)
}
