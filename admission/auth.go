package admission

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const (
	DEFAULT_API_KEY_HEADER = "X-API-Key"
)

// Authenticator checks a shared API key presented either in a dedicated
// header or as a bearer token. An empty key disables the check.
type Authenticator struct {
	key    []byte
	header string
}

func NewAuthenticator(key string, header string) *Authenticator {
	if header == "" {
		header = DEFAULT_API_KEY_HEADER
	}

	return &Authenticator{
		key:    []byte(key),
		header: header,
	}
}

func (a *Authenticator) Enabled() bool {
	return len(a.key) > 0
}

func (a *Authenticator) Authenticate(r *http.Request) bool {
	if !a.Enabled() {
		return true
	}

	presented := r.Header.Get(a.header)
	if presented == "" {
		auth := r.Header.Get("Authorization")
		if len(auth) > len("Bearer ") && strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
			presented = strings.TrimSpace(auth[len("Bearer "):])
		}
	}
	if presented == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(presented), a.key) == 1
}
