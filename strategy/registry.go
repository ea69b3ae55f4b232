package strategy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	INITIAL_SUCCESS_RATE = 1.0
	DEFAULT_LEADERBOARD  = 10
	ID_SUFFIX_LENGTH     = 8
)

type Registry struct {
	store Store
	now   func() time.Time
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		store: store,
		now:   time.Now,
	}
}

// WithClock replaces the registry time source.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func newListingID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:ID_SUFFIX_LENGTH]
	return fmt.Sprintf("strat_%d_%s", now.UnixMilli(), suffix)
}

// Register stores a new listing and returns its id. Registrations are not
// deduplicated.
func (r *Registry) Register(ctx context.Context, reg Registration) (string, error) {
	if err := reg.Validate(); err != nil {
		return "", err
	}

	now := r.now().UTC()
	l := Listing{
		ID:              newListingID(now),
		Name:            reg.Name,
		Category:        reg.Category,
		AgentID:         reg.AgentID,
		AgentController: reg.AgentController,
		PriceUsd:        reg.PriceUsd,
		Endpoint:        reg.Endpoint,
		SuccessRate:     INITIAL_SUCCESS_RATE,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.store.Insert(ctx, l); err != nil {
		return "", fmt.Errorf("failed storing listing: %w", err)
	}

	log.Info().Str("id", l.ID).Str("name", l.Name).Str("category", l.Category).Msg("Registered strategy listing")
	return l.ID, nil
}

func (r *Registry) Get(ctx context.Context, id string) (Listing, error) {
	return r.store.Get(ctx, id)
}

// Discover returns listings matching the filter ordered by score, highest
// first. Ties keep the older listing first.
func (r *Registry) Discover(ctx context.Context, f Filter) ([]Listing, error) {
	all, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	listings := make([]Listing, 0, len(all))
	for _, l := range all {
		if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
			continue
		}
		if f.VerifiedOnly && !l.Verified {
			continue
		}
		if l.SuccessRate < f.MinSuccessRate {
			continue
		}
		if f.MaxPriceUsd > 0 && l.PriceUsd > f.MaxPriceUsd {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(l.Name), query) {
			continue
		}
		listings = append(listings, l)
	}

	sortListings(listings)
	if f.Limit > 0 && len(listings) > f.Limit {
		listings = listings[:f.Limit]
	}
	return listings, nil
}

func (r *Registry) Leaderboard(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = DEFAULT_LEADERBOARD
	}
	return r.Discover(ctx, Filter{Limit: limit})
}

// RecordExecution folds the outcome of a single call into the listing
// statistics. Savings are only averaged in for successful calls.
func (r *Registry) RecordExecution(ctx context.Context, id string, success bool, savingsPercent *float64) (Listing, error) {
	l, err := r.store.Update(ctx, id, func(l *Listing) error {
		sample := 0.0
		if success {
			sample = 1.0
		}
		l.SuccessRate = ema(l.SuccessRate, sample)
		l.TotalCalls++

		if success && savingsPercent != nil {
			if l.AverageSavings == nil {
				s := *savingsPercent
				l.AverageSavings = &s
			} else {
				s := ema(*l.AverageSavings, *savingsPercent)
				l.AverageSavings = &s
			}
		}
		l.UpdatedAt = r.now().UTC()
		return nil
	})
	if err != nil {
		return Listing{}, err
	}

	log.Debug().Str("id", id).Bool("success", success).Float64("successRate", l.SuccessRate).Msg("Recorded strategy execution")
	return l, nil
}

// Verify sets the verified flag and reports whether the listing exists.
func (r *Registry) Verify(ctx context.Context, id string, verified bool) (bool, error) {
	_, err := r.store.Update(ctx, id, func(l *Listing) error {
		l.Verified = verified
		l.UpdatedAt = r.now().UTC()
		return nil
	})
	if errors.Is(err, ErrListingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func sortListings(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		si, sj := listings[i].Score(), listings[j].Score()
		if si != sj {
			return si > sj
		}
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.Before(listings[j].CreatedAt)
		}
		return listings[i].ID < listings[j].ID
	})
}
