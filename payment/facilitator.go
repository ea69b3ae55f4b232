package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	FACILITATOR_RETRIES    = 2
	FACILITATOR_RETRY_WAIT = 200 * time.Millisecond
)

type facilitatorRequest struct {
	X402Version         int         `json:"x402Version"`
	PaymentPayload      *Proof      `json:"paymentPayload"`
	PaymentRequirements Requirement `json:"paymentRequirements"`
}

type VerifyResponse struct {
	IsValid       bool   `json:"isValid"`
	InvalidReason string `json:"invalidReason,omitempty"`
	Payer         string `json:"payer,omitempty"`
}

type SettleResponse struct {
	Success     bool   `json:"success"`
	ErrorReason string `json:"errorReason,omitempty"`
	Payer       string `json:"payer,omitempty"`
	Transaction string `json:"transaction"`
	Network     string `json:"network"`
}

// FacilitatorVerifier delegates verification and settlement of the exact
// scheme to an x402 facilitator service.
type FacilitatorVerifier struct {
	url        string
	HTTPClient *http.Client
}

func NewFacilitatorVerifier(url string) *FacilitatorVerifier {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = FACILITATOR_RETRIES
	retryClient.RetryWaitMin = FACILITATOR_RETRY_WAIT
	retryClient.RetryWaitMax = FACILITATOR_RETRY_WAIT
	retryClient.Logger = nil

	return &FacilitatorVerifier{
		url:        url,
		HTTPClient: retryClient.StandardClient(),
	}
}

func (f *FacilitatorVerifier) VerifyAndSettle(ctx context.Context, proof *Proof, requirement Requirement) (*Settlement, error) {
	body := facilitatorRequest{
		X402Version:         X402_VERSION,
		PaymentPayload:      proof,
		PaymentRequirements: requirement,
	}

	verification := new(VerifyResponse)
	if err := f.post(ctx, "/verify", body, verification); err != nil {
		return nil, err
	}
	if !verification.IsValid {
		return nil, &VerificationError{Reason: reasonOrDefault(verification.InvalidReason, "invalid payment")}
	}

	settlement := new(SettleResponse)
	if err := f.post(ctx, "/settle", body, settlement); err != nil {
		return nil, err
	}
	if !settlement.Success {
		return nil, &VerificationError{Reason: reasonOrDefault(settlement.ErrorReason, "settlement failed")}
	}

	payer := settlement.Payer
	if payer == "" {
		payer = verification.Payer
	}
	return &Settlement{
		PaymentUsed: requirement.PriceUsd,
		Network:     settlement.Network,
		Timestamp:   time.Now().UTC(),
		Transaction: settlement.Transaction,
		Payer:       payer,
	}, nil
}

func (f *FacilitatorVerifier) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: facilitator %s returned status %d", ErrVerificationUnavailable, path, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrVerificationUnavailable, err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: invalid facilitator response: %s", ErrVerificationUnavailable, err)
	}
	return nil
}

func reasonOrDefault(reason string, fallback string) string {
	if reason == "" {
		return fallback
	}
	return reason
}
