package strategy_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/sprintertech/sprinter-gateway/strategy"
	mock_strategy "github.com/sprintertech/sprinter-gateway/strategy/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const controller = "0x000000000000000000000000000000000000dEaD"

var listingID = regexp.MustCompile(`^strat_[0-9]+_[0-9a-f]{8}$`)

func registration(name string, category string, price float64) strategy.Registration {
	return strategy.Registration{
		Name:            name,
		Category:        category,
		AgentID:         "agent-1",
		AgentController: controller,
		PriceUsd:        price,
		Endpoint:        "https://agent.example.com/run",
	}
}

func savings(v float64) *float64 {
	return &v
}

type RegistryTestSuite struct {
	suite.Suite

	registry *strategy.Registry
	now      time.Time
}

func TestRunRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.registry = strategy.NewRegistry(strategy.NewMemoryStore()).WithClock(func() time.Time {
		return s.now
	})
}

func (s *RegistryTestSuite) tick() {
	s.now = s.now.Add(time.Second)
}

func (s *RegistryTestSuite) Test_Register_InitialState() {
	id, err := s.registry.Register(context.Background(), registration("arb", "arbitrage", 0.5))
	s.Nil(err)
	s.Regexp(listingID, id)
	s.Contains(id, fmt.Sprintf("strat_%d_", s.now.UnixMilli()))

	l, err := s.registry.Get(context.Background(), id)
	s.Nil(err)
	s.Equal(1.0, l.SuccessRate)
	s.Equal(uint64(0), l.TotalCalls)
	s.Nil(l.AverageSavings)
	s.False(l.Verified)
	s.Equal(0.0, l.Score())
}

func (s *RegistryTestSuite) Test_Register_InvalidRegistration() {
	invalid := []strategy.Registration{
		{},
		{Name: "x"},
		func() strategy.Registration { r := registration("x", "y", 1); r.AgentController = "0x12"; return r }(),
		func() strategy.Registration { r := registration("x", "y", 1); r.Endpoint = "ftp://agent"; return r }(),
		registration("x", "y", -1),
	}

	for _, r := range invalid {
		_, err := s.registry.Register(context.Background(), r)
		s.NotNil(err)
	}
}

func (s *RegistryTestSuite) Test_Register_DuplicatesGetDistinctIDs() {
	ids := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id, err := s.registry.Register(context.Background(), registration("same", "arbitrage", 1))
		s.Nil(err)
		ids[id] = struct{}{}
	}

	s.Len(ids, 50)
	all, err := s.registry.Discover(context.Background(), strategy.Filter{})
	s.Nil(err)
	s.Len(all, 50)
}

func (s *RegistryTestSuite) Test_RecordExecution_EMA() {
	id, _ := s.registry.Register(context.Background(), registration("arb", "arbitrage", 1))

	l, err := s.registry.RecordExecution(context.Background(), id, false, nil)
	s.Nil(err)
	s.InDelta(0.9, l.SuccessRate, 1e-9)
	s.Equal(uint64(1), l.TotalCalls)

	l, err = s.registry.RecordExecution(context.Background(), id, true, savings(10))
	s.Nil(err)
	s.InDelta(0.91, l.SuccessRate, 1e-9)
	s.Equal(uint64(2), l.TotalCalls)
	s.InDelta(10, *l.AverageSavings, 1e-9)

	l, err = s.registry.RecordExecution(context.Background(), id, true, savings(20))
	s.Nil(err)
	s.InDelta(11, *l.AverageSavings, 1e-9)

	l, err = s.registry.RecordExecution(context.Background(), id, false, savings(90))
	s.Nil(err)
	s.InDelta(11, *l.AverageSavings, 1e-9)
}

func (s *RegistryTestSuite) Test_RecordExecution_FailureDecreaseIsBounded() {
	id, _ := s.registry.Register(context.Background(), registration("arb", "arbitrage", 1))

	previous := 1.0
	for i := 0; i < 30; i++ {
		l, err := s.registry.RecordExecution(context.Background(), id, false, nil)
		s.Nil(err)
		s.Less(l.SuccessRate, previous)
		s.LessOrEqual(previous-l.SuccessRate, 0.1+1e-12)
		s.GreaterOrEqual(l.SuccessRate, 0.0)
		previous = l.SuccessRate
	}
}

func (s *RegistryTestSuite) Test_RecordExecution_NotFound() {
	_, err := s.registry.RecordExecution(context.Background(), "strat_1_deadbeef", true, nil)

	s.ErrorIs(err, strategy.ErrListingNotFound)
}

func (s *RegistryTestSuite) Test_RecordExecution_Concurrent() {
	id, _ := s.registry.Register(context.Background(), registration("arb", "arbitrage", 1))

	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.registry.RecordExecution(context.Background(), id, true, nil)
		}()
	}
	wg.Wait()

	l, _ := s.registry.Get(context.Background(), id)
	s.Equal(uint64(100), l.TotalCalls)
	s.InDelta(1.0, l.SuccessRate, 1e-9)
}

func (s *RegistryTestSuite) Test_Verify() {
	id, _ := s.registry.Register(context.Background(), registration("arb", "arbitrage", 1))

	ok, err := s.registry.Verify(context.Background(), id, true)
	s.Nil(err)
	s.True(ok)
	l, _ := s.registry.Get(context.Background(), id)
	s.True(l.Verified)

	ok, err = s.registry.Verify(context.Background(), id, false)
	s.Nil(err)
	s.True(ok)
	l, _ = s.registry.Get(context.Background(), id)
	s.False(l.Verified)

	ok, err = s.registry.Verify(context.Background(), "missing", true)
	s.Nil(err)
	s.False(ok)
}

func (s *RegistryTestSuite) Test_Discover_OrderedByScore() {
	low, _ := s.registry.Register(context.Background(), registration("low", "arbitrage", 1))
	s.tick()
	high, _ := s.registry.Register(context.Background(), registration("high", "arbitrage", 1))
	s.tick()
	fresh, _ := s.registry.Register(context.Background(), registration("fresh", "arbitrage", 1))

	for i := 0; i < 10; i++ {
		_, _ = s.registry.RecordExecution(context.Background(), high, true, nil)
	}
	_, _ = s.registry.RecordExecution(context.Background(), low, false, nil)

	listings, err := s.registry.Discover(context.Background(), strategy.Filter{})
	s.Nil(err)
	s.Len(listings, 3)
	s.Equal(high, listings[0].ID)
	s.Equal(low, listings[1].ID)
	s.Equal(fresh, listings[2].ID)
}

func (s *RegistryTestSuite) Test_Discover_TiesKeepOlderFirst() {
	first, _ := s.registry.Register(context.Background(), registration("a", "arbitrage", 1))
	s.tick()
	second, _ := s.registry.Register(context.Background(), registration("b", "arbitrage", 1))

	listings, err := s.registry.Discover(context.Background(), strategy.Filter{})
	s.Nil(err)
	s.Equal(first, listings[0].ID)
	s.Equal(second, listings[1].ID)
}

func (s *RegistryTestSuite) Test_Discover_Filters() {
	cheap, _ := s.registry.Register(context.Background(), registration("Cheap Arb", "arbitrage", 0.1))
	s.tick()
	pricey, _ := s.registry.Register(context.Background(), registration("Pricey Arb", "arbitrage", 5))
	s.tick()
	yield, _ := s.registry.Register(context.Background(), registration("Yield Farmer", "yield", 1))
	_, _ = s.registry.Verify(context.Background(), pricey, true)
	_, _ = s.registry.RecordExecution(context.Background(), yield, false, nil)

	ids := func(f strategy.Filter) []string {
		listings, err := s.registry.Discover(context.Background(), f)
		s.Nil(err)
		out := []string{}
		for _, l := range listings {
			out = append(out, l.ID)
		}
		return out
	}

	s.ElementsMatch([]string{cheap, pricey}, ids(strategy.Filter{Category: "ARBITRAGE"}))
	s.Equal([]string{pricey}, ids(strategy.Filter{VerifiedOnly: true}))
	s.ElementsMatch([]string{cheap, yield}, ids(strategy.Filter{MaxPriceUsd: 1}))
	s.ElementsMatch([]string{cheap, pricey}, ids(strategy.Filter{MinSuccessRate: 0.95}))
	s.Equal([]string{yield}, ids(strategy.Filter{Query: "farm"}))
	s.Len(ids(strategy.Filter{Limit: 2}), 2)
}

func (s *RegistryTestSuite) Test_Leaderboard() {
	for i := 0; i < 15; i++ {
		_, _ = s.registry.Register(context.Background(), registration(fmt.Sprintf("s%d", i), "arbitrage", 1))
		s.tick()
	}

	listings, err := s.registry.Leaderboard(context.Background(), 0)
	s.Nil(err)
	s.Len(listings, strategy.DEFAULT_LEADERBOARD)

	listings, err = s.registry.Leaderboard(context.Background(), 3)
	s.Nil(err)
	s.Len(listings, 3)
}

func (s *RegistryTestSuite) Test_Discover_StoreError() {
	ctrl := gomock.NewController(s.T())
	store := mock_strategy.NewMockStore(ctrl)
	store.EXPECT().List(gomock.Any()).Return(nil, errors.New("store down"))

	_, err := strategy.NewRegistry(store).Discover(context.Background(), strategy.Filter{})

	s.NotNil(err)
}

func (s *RegistryTestSuite) Test_Register_StoreError() {
	ctrl := gomock.NewController(s.T())
	store := mock_strategy.NewMockStore(ctrl)
	store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("store down"))

	_, err := strategy.NewRegistry(store).Register(context.Background(), registration("arb", "arbitrage", 1))

	s.NotNil(err)
}

func Test_Score(t *testing.T) {
	if strategy.Score(1, 0) != 0 {
		t.Errorf("expected zero score without calls")
	}

	previous := 0.0
	for calls := uint64(1); calls < 10000; calls *= 3 {
		score := strategy.Score(0.8, calls)
		if score <= previous {
			t.Errorf("score not increasing at %d calls: %f <= %f", calls, score, previous)
		}
		previous = score
	}

	if strategy.Score(0.5, 99) >= strategy.Score(0.9, 99) {
		t.Errorf("higher success rate must score higher at equal volume")
	}
}
