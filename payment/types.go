package payment

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	PAYMENT_HEADER          = "X-PAYMENT"
	PAYMENT_RESPONSE_HEADER = "X-PAYMENT-RESPONSE"
	X402_VERSION            = 1
	SCHEME_EXACT            = "exact"
)

var ErrVerificationUnavailable = errors.New("verification unavailable")

// VerificationError is returned by a scheme verifier that reached a verdict
// and rejected the payment.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("payment rejected: %s", e.Reason)
}

// Requirement describes the payment a caller must make to access a resource.
type Requirement struct {
	Scheme            string            `json:"scheme"`
	Network           string            `json:"network"`
	MaxAmountRequired string            `json:"maxAmountRequired"`
	Resource          string            `json:"resource"`
	Description       string            `json:"description"`
	MimeType          string            `json:"mimeType"`
	PayTo             string            `json:"payTo"`
	MaxTimeoutSeconds int               `json:"maxTimeoutSeconds"`
	Asset             string            `json:"asset"`
	PriceUsd          string            `json:"priceUsd"`
	Nonce             string            `json:"nonce"`
	Extra             map[string]string `json:"extra,omitempty"`
}

// Challenge is the body of a 402 response.
type Challenge struct {
	Requirement
	X402Version int    `json:"x402Version"`
	Error       string `json:"error,omitempty"`
}

// Proof is the envelope sent in the X-PAYMENT header. Payload is scheme
// specific and only interpreted by the matching verifier.
type Proof struct {
	X402Version int             `json:"x402Version"`
	Scheme      string          `json:"scheme"`
	Network     string          `json:"network"`
	Nonce       string          `json:"nonce"`
	Payload     json.RawMessage `json:"payload"`
}

// DecodeProof parses a base64 encoded JSON proof envelope.
func DecodeProof(header string) (*Proof, error) {
	header = strings.TrimSpace(header)
	data, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(header)
		if err != nil {
			return nil, fmt.Errorf("proof is not base64: %w", err)
		}
	}

	p := new(Proof)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("proof is not valid JSON: %w", err)
	}

	switch {
	case p.Scheme == "":
		return nil, fmt.Errorf("missing field 'scheme'")
	case p.Nonce == "":
		return nil, fmt.Errorf("missing field 'nonce'")
	case len(p.Payload) == 0 || string(p.Payload) == "null":
		return nil, fmt.Errorf("missing field 'payload'")
	}
	return p, nil
}

func (p *Proof) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Settlement is the receipt of a verified and settled payment.
type Settlement struct {
	PaymentUsed string    `json:"paymentUsed"`
	Network     string    `json:"network"`
	Timestamp   time.Time `json:"timestamp"`
	Transaction string    `json:"transaction,omitempty"`
	Payer       string    `json:"payer,omitempty"`
}

func (s *Settlement) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
