package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// EMA_ALPHA is the weight of the newest sample in the moving averages.
	EMA_ALPHA = 0.1
)

var ErrListingNotFound = errors.New("listing not found")

type Listing struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	AgentID         string    `json:"agentId"`
	AgentController string    `json:"agentController"`
	PriceUsd        float64   `json:"priceUsd"`
	Endpoint        string    `json:"endpoint"`
	SuccessRate     float64   `json:"successRate"`
	TotalCalls      uint64    `json:"totalCalls"`
	AverageSavings  *float64  `json:"averageSavings,omitempty"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (l Listing) Score() float64 {
	return Score(l.SuccessRate, l.TotalCalls)
}

// Score ranks listings by reliability and volume, with volume dampened
// logarithmically.
func Score(successRate float64, totalCalls uint64) float64 {
	return successRate * math.Log10(float64(totalCalls)+1)
}

func ema(current float64, sample float64) float64 {
	return (1-EMA_ALPHA)*current + EMA_ALPHA*sample
}

type Registration struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	AgentID         string  `json:"agentId"`
	AgentController string  `json:"agentController"`
	PriceUsd        float64 `json:"priceUsd"`
	Endpoint        string  `json:"endpoint"`
}

func (r Registration) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("missing field 'name'")
	}
	if r.Category == "" {
		return fmt.Errorf("missing field 'category'")
	}
	if r.AgentID == "" {
		return fmt.Errorf("missing field 'agentId'")
	}
	if !common.IsHexAddress(r.AgentController) {
		return fmt.Errorf("field 'agentController' is not a valid address")
	}
	if r.PriceUsd < 0 || math.IsNaN(r.PriceUsd) || math.IsInf(r.PriceUsd, 0) {
		return fmt.Errorf("field 'priceUsd' must be a non-negative number")
	}

	u, err := url.Parse(r.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("field 'endpoint' must be an http(s) URL")
	}
	return nil
}

// Filter narrows discovery results. Zero values disable the respective criterion.
type Filter struct {
	Category       string
	VerifiedOnly   bool
	MinSuccessRate float64
	MaxPriceUsd    float64
	Query          string
	Limit          int
}

func (l Listing) MarshalJSON() ([]byte, error) {
	type listing Listing
	return json.Marshal(struct {
		listing
		Score float64 `json:"score"`
	}{
		listing: listing(l),
		Score:   l.Score(),
	})
}
