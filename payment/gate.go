package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/tokens"
)

const (
	REASON_PAYMENT_REQUIRED   = "payment required"
	REASON_MALFORMED_PROOF    = "malformed proof"
	REASON_UNSUPPORTED_SCHEME = "unsupported payment scheme"
	REASON_NETWORK_MISMATCH   = "payment network does not match requirement"
	REASON_RESOURCE_MISMATCH  = "payment requirement was issued for a different resource"
)

type SchemeVerifier interface {
	VerifyAndSettle(ctx context.Context, proof *Proof, requirement Requirement) (*Settlement, error)
}

// RequirementStore tracks issued requirements so each one can be paid at most once.
type RequirementStore interface {
	Issue(requirement Requirement)
	Claim(nonce string) (Requirement, error)
}

type PaymentMetrics interface {
	TrackPayment(ctx context.Context, outcome string)
}

// Pricing is the price of a single gated resource.
type Pricing struct {
	PriceUsd    string
	Description string
	MimeType    string
	Resource    string
}

type GateConfig struct {
	PayTo             common.Address
	Network           string
	Asset             tokens.Token
	VerifyTimeout     time.Duration
	MaxTimeoutSeconds int
}

// Result is the outcome of CheckPayment. When OK is false Challenge holds a
// fresh requirement and the reason the request was not admitted.
type Result struct {
	OK         bool
	Challenge  *Challenge
	Settlement *Settlement
}

type Gate struct {
	config       GateConfig
	verifiers    map[string]SchemeVerifier
	requirements RequirementStore
	metrics      PaymentMetrics
}

func NewGate(
	config GateConfig,
	verifiers map[string]SchemeVerifier,
	requirements RequirementStore,
	metrics PaymentMetrics,
) *Gate {
	return &Gate{
		config:       config,
		verifiers:    verifiers,
		requirements: requirements,
		metrics:      metrics,
	}
}

// Quote issues a new payment requirement for the resource.
func (g *Gate) Quote(r *http.Request, pricing Pricing) (Requirement, error) {
	amount, err := tokens.ToBaseUnits(pricing.PriceUsd, g.config.Asset.Decimals)
	if err != nil {
		return Requirement{}, err
	}

	resource := pricing.Resource
	if resource == "" {
		resource = r.URL.Path
	}
	mimeType := pricing.MimeType
	if mimeType == "" {
		mimeType = "application/json"
	}

	requirement := Requirement{
		Scheme:            SCHEME_EXACT,
		Network:           g.config.Network,
		MaxAmountRequired: amount.String(),
		Resource:          resource,
		Description:       pricing.Description,
		MimeType:          mimeType,
		PayTo:             g.config.PayTo.Hex(),
		MaxTimeoutSeconds: g.config.MaxTimeoutSeconds,
		Asset:             g.config.Asset.Address.Hex(),
		PriceUsd:          pricing.PriceUsd,
		Nonce:             uuid.NewString(),
	}
	g.requirements.Issue(requirement)
	return requirement, nil
}

// CheckPayment runs the payment state machine for a single request. It fails
// closed: anything short of a confirmed settlement yields a challenge.
func (g *Gate) CheckPayment(r *http.Request, pricing Pricing) Result {
	header := r.Header.Get(PAYMENT_HEADER)
	if header == "" {
		return g.reject(r, pricing, "challenge_issued", REASON_PAYMENT_REQUIRED)
	}

	l := log.With().Str("resource", r.URL.Path).Logger()

	proof, err := DecodeProof(header)
	if err != nil {
		l.Debug().Err(err).Msg("Rejected malformed payment proof")
		return g.reject(r, pricing, "rejected", REASON_MALFORMED_PROOF)
	}

	verifier, ok := g.verifiers[proof.Scheme]
	if !ok {
		return g.reject(r, pricing, "rejected", REASON_UNSUPPORTED_SCHEME)
	}

	requirement, err := g.requirements.Claim(proof.Nonce)
	if err != nil {
		l.Debug().Str("nonce", proof.Nonce).Err(err).Msg("Rejected payment for unclaimable requirement")
		return g.reject(r, pricing, "rejected", err.Error())
	}

	if proof.Network != "" && proof.Network != requirement.Network {
		return g.reject(r, pricing, "rejected", REASON_NETWORK_MISMATCH)
	}
	if !g.matches(r, pricing, requirement) {
		return g.reject(r, pricing, "rejected", REASON_RESOURCE_MISMATCH)
	}

	ctx, cancel := context.WithTimeout(r.Context(), g.config.VerifyTimeout)
	defer cancel()

	settlement, err := verifier.VerifyAndSettle(ctx, proof, requirement)
	if err != nil {
		verr := &VerificationError{}
		if errors.As(err, &verr) {
			l.Info().Str("nonce", proof.Nonce).Msgf("Payment rejected: %s", verr.Reason)
			return g.reject(r, pricing, "rejected", verr.Reason)
		}

		l.Warn().Err(err).Str("nonce", proof.Nonce).Msg("Payment verification unavailable")
		return g.reject(r, pricing, "unavailable", ErrVerificationUnavailable.Error())
	}
	if settlement == nil {
		return g.reject(r, pricing, "unavailable", ErrVerificationUnavailable.Error())
	}

	if settlement.PaymentUsed == "" {
		settlement.PaymentUsed = requirement.PriceUsd
	}
	if settlement.Network == "" {
		settlement.Network = requirement.Network
	}
	if settlement.Timestamp.IsZero() {
		settlement.Timestamp = time.Now().UTC()
	}

	l.Info().Str("nonce", proof.Nonce).Str("payer", settlement.Payer).Msgf("Payment of $%s settled", settlement.PaymentUsed)
	g.track(r.Context(), "settled")
	return Result{
		OK:         true,
		Settlement: settlement,
	}
}

func (g *Gate) matches(r *http.Request, pricing Pricing, requirement Requirement) bool {
	resource := pricing.Resource
	if resource == "" {
		resource = r.URL.Path
	}
	return requirement.Resource == resource && requirement.PriceUsd == pricing.PriceUsd
}

func (g *Gate) reject(r *http.Request, pricing Pricing, outcome string, reason string) Result {
	g.track(r.Context(), outcome)

	requirement, err := g.Quote(r, pricing)
	if err != nil {
		log.Error().Err(err).Str("resource", r.URL.Path).Msg("Failed issuing payment requirement")
	}

	return Result{
		OK: false,
		Challenge: &Challenge{
			Requirement: requirement,
			X402Version: X402_VERSION,
			Error:       reason,
		},
	}
}

func (g *Gate) track(ctx context.Context, outcome string) {
	if g.metrics != nil {
		g.metrics.TrackPayment(ctx, outcome)
	}
}

// Middleware only lets requests with a settled payment through to next. The
// settlement is attached as a response header and to the request context.
func (g *Gate) Middleware(pricing Pricing) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := g.CheckPayment(r, pricing)
			if !result.OK {
				WriteChallenge(w, result.Challenge)
				return
			}

			encoded, err := result.Settlement.Encode()
			if err == nil {
				w.Header().Set(PAYMENT_RESPONSE_HEADER, encoded)
			}
			next.ServeHTTP(w, r.WithContext(WithSettlement(r.Context(), result.Settlement)))
		})
	}
}

func WriteChallenge(w http.ResponseWriter, challenge *Challenge) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusPaymentRequired)
	_ = json.NewEncoder(w).Encode(challenge)
}

type settlementKey struct{}

func WithSettlement(ctx context.Context, settlement *Settlement) context.Context {
	return context.WithValue(ctx, settlementKey{}, settlement)
}

func SettlementFromContext(ctx context.Context) (*Settlement, bool) {
	s, ok := ctx.Value(settlementKey{}).(*Settlement)
	return s, ok
}
