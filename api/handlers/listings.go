package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sprintertech/sprinter-gateway/strategy"
)

type ExecutionBody struct {
	Success        *bool    `json:"success"`
	SavingsPercent *float64 `json:"savingsPercent"`
}

type VerificationBody struct {
	Verified *bool `json:"verified"`
}

type ListingsHandler struct {
	registry StrategyRegistry
}

func NewListingsHandler(registry StrategyRegistry) *ListingsHandler {
	return &ListingsHandler{
		registry: registry,
	}
}

// HandleDiscover lists strategies matching the query parameters ordered by score
func (h *ListingsHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	listings, err := h.registry.Discover(r.Context(), f)
	if err != nil {
		JSONError(w, fmt.Errorf("failed loading strategies: %s", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingsHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	listings, err := h.registry.Leaderboard(r.Context(), limit)
	if err != nil {
		JSONError(w, fmt.Errorf("failed loading leaderboard: %s", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	listing, err := h.registry.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, strategy.ErrListingNotFound) {
		JSONError(w, err, http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, fmt.Errorf("failed loading listing: %s", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	reg := strategy.Registration{}
	if err := decodeBody(w, r, &reg); err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if err := reg.Validate(); err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	id, err := h.registry.Register(r.Context(), reg)
	if err != nil {
		JSONError(w, fmt.Errorf("failed registering listing: %s", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *ListingsHandler) HandleExecution(w http.ResponseWriter, r *http.Request) {
	b := &ExecutionBody{}
	if err := decodeBody(w, r, b); err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if b.Success == nil {
		JSONError(w, fmt.Errorf("missing field 'success'"), http.StatusBadRequest)
		return
	}

	listing, err := h.registry.RecordExecution(r.Context(), mux.Vars(r)["id"], *b.Success, b.SavingsPercent)
	if errors.Is(err, strategy.ErrListingNotFound) {
		JSONError(w, err, http.StatusNotFound)
		return
	}
	if err != nil {
		JSONError(w, fmt.Errorf("failed recording execution: %s", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingsHandler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	b := &VerificationBody{}
	if err := decodeBody(w, r, b); err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if b.Verified == nil {
		JSONError(w, fmt.Errorf("missing field 'verified'"), http.StatusBadRequest)
		return
	}

	ok, err := h.registry.Verify(r.Context(), mux.Vars(r)["id"], *b.Verified)
	if err != nil {
		JSONError(w, fmt.Errorf("failed updating listing: %s", err), http.StatusInternalServerError)
		return
	}
	if !ok {
		JSONError(w, strategy.ErrListingNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": *b.Verified})
}

func parseFilter(r *http.Request) (strategy.Filter, error) {
	q := r.URL.Query()
	f := strategy.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}

	if v := q.Get("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("invalid 'verified' parameter")
		}
		f.VerifiedOnly = verified
	}

	var err error
	if f.MinSuccessRate, err = queryFloat(r, "minSuccessRate"); err != nil {
		return f, err
	}
	if f.MaxPriceUsd, err = queryFloat(r, "maxPrice"); err != nil {
		return f, err
	}
	if f.Limit, err = queryInt(r, "limit", 0); err != nil {
		return f, err
	}
	return f, nil
}
