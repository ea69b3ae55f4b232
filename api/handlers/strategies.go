package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sprintertech/sprinter-gateway/payment"
	"github.com/sprintertech/sprinter-gateway/strategy"
)

const (
	DEFAULT_STRATEGY_LIMIT = 10
	MAX_STRATEGY_LIMIT     = 100
)

type PaymentGate interface {
	Quote(r *http.Request, pricing payment.Pricing) (payment.Requirement, error)
	Middleware(pricing payment.Pricing) func(http.Handler) http.Handler
}

type StrategyRegistry interface {
	Register(ctx context.Context, reg strategy.Registration) (string, error)
	Get(ctx context.Context, id string) (strategy.Listing, error)
	Discover(ctx context.Context, f strategy.Filter) ([]strategy.Listing, error)
	Leaderboard(ctx context.Context, limit int) ([]strategy.Listing, error)
	RecordExecution(ctx context.Context, id string, success bool, savingsPercent *float64) (strategy.Listing, error)
	Verify(ctx context.Context, id string, verified bool) (bool, error)
}

// Product is a paid strategy feed. An empty category spans all listings.
type Product struct {
	Pricing  payment.Pricing
	Category string
}

type StrategiesMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	PaymentUsed string    `json:"paymentUsed"`
	Network     string    `json:"network"`
	Product     string    `json:"product"`
	Count       int       `json:"count"`
}

type StrategiesResponse struct {
	Success    bool               `json:"success"`
	Strategies []strategy.Listing `json:"strategies"`
	Metadata   StrategiesMetadata `json:"metadata"`
}

type StrategiesHandler struct {
	gate     PaymentGate
	registry StrategyRegistry
	products map[string]Product
}

func NewStrategiesHandler(gate PaymentGate, registry StrategyRegistry, products map[string]Product) *StrategiesHandler {
	return &StrategiesHandler{
		gate:     gate,
		registry: registry,
		products: products,
	}
}

func (h *StrategiesHandler) product(w http.ResponseWriter, r *http.Request) (string, Product, bool) {
	name := mux.Vars(r)["name"]
	p, ok := h.products[name]
	if !ok {
		JSONError(w, fmt.Errorf("unknown product '%s'", name), http.StatusNotFound)
		return "", Product{}, false
	}
	return name, p, true
}

// HandlePricing returns a payment requirement for the product without charging
func (h *StrategiesHandler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	_, p, ok := h.product(w, r)
	if !ok {
		return
	}

	requirement, err := h.gate.Quote(r, p.Pricing)
	if err != nil {
		JSONError(w, fmt.Errorf("failed pricing product: %s", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payment.Challenge{
		Requirement: requirement,
		X402Version: payment.X402_VERSION,
	})
}

// HandleStrategies returns ranked strategies of the product once the caller paid for them
func (h *StrategiesHandler) HandleStrategies(w http.ResponseWriter, r *http.Request) {
	name, p, ok := h.product(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", DEFAULT_STRATEGY_LIMIT)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if limit == 0 || limit > MAX_STRATEGY_LIMIT {
		limit = MAX_STRATEGY_LIMIT
	}

	h.gate.Middleware(p.Pricing)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.serveStrategies(w, r, name, p, limit)
	})).ServeHTTP(w, r)
}

func (h *StrategiesHandler) serveStrategies(w http.ResponseWriter, r *http.Request, name string, p Product, limit int) {
	settlement, ok := payment.SettlementFromContext(r.Context())
	if !ok {
		JSONError(w, fmt.Errorf("missing payment settlement"), http.StatusInternalServerError)
		return
	}

	listings, err := h.registry.Discover(r.Context(), strategy.Filter{
		Category: p.Category,
		Limit:    limit,
	})
	if err != nil {
		JSONError(w, fmt.Errorf("failed loading strategies: %s", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, StrategiesResponse{
		Success:    true,
		Strategies: listings,
		Metadata: StrategiesMetadata{
			Timestamp:   settlement.Timestamp,
			PaymentUsed: settlement.PaymentUsed,
			Network:     settlement.Network,
			Product:     name,
			Count:       len(listings),
		},
	})
}
