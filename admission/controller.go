package admission

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Allowed      Outcome = "allowed"
	Unauthorized Outcome = "unauthorized"
	RateLimited  Outcome = "rate_limited"
)

type Decision struct {
	Outcome           Outcome
	RetryAfterSeconds int
}

type AdmissionMetrics interface {
	TrackAdmission(ctx context.Context, endpoint string, outcome string)
}

// Controller fronts every endpoint: it authenticates the caller when asked
// to and applies the per endpoint rate limit.
type Controller struct {
	auth    *Authenticator
	limiter *RateLimiter
	metrics AdmissionMetrics
}

func NewController(auth *Authenticator, limiter *RateLimiter, metrics AdmissionMetrics) *Controller {
	return &Controller{
		auth:    auth,
		limiter: limiter,
		metrics: metrics,
	}
}

func (c *Controller) Admit(r *http.Request, endpoint string, requireAuth bool) Decision {
	if requireAuth && !c.auth.Authenticate(r) {
		return Decision{Outcome: Unauthorized}
	}

	allowed, retryAfter := c.limiter.Allow(endpoint, ClientKey(r))
	if !allowed {
		return Decision{Outcome: RateLimited, RetryAfterSeconds: retryAfter}
	}
	return Decision{Outcome: Allowed}
}

type errorResponse struct {
	Code       int    `json:"code"`
	Reason     string `json:"reason"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

func (c *Controller) Middleware(endpoint string, requireAuth bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := c.Admit(r, endpoint, requireAuth)
			if c.metrics != nil {
				c.metrics.TrackAdmission(r.Context(), endpoint, string(decision.Outcome))
			}

			switch decision.Outcome {
			case Unauthorized:
				log.Debug().Str("endpoint", endpoint).Str("client", ClientKey(r)).Msg("Rejected unauthorized request")
				writeError(w, errorResponse{
					Code:   http.StatusUnauthorized,
					Reason: "missing or invalid API key",
				})
			case RateLimited:
				log.Debug().Str("endpoint", endpoint).Str("client", ClientKey(r)).Msg("Rate limited request")
				w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfterSeconds))
				writeError(w, errorResponse{
					Code:       http.StatusTooManyRequests,
					Reason:     "rate limit exceeded",
					RetryAfter: decision.RetryAfterSeconds,
				})
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func writeError(w http.ResponseWriter, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(resp.Code)
	_ = json.NewEncoder(w).Encode(resp)
}
