package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/sprintertech/sprinter-gateway/cache"
	"github.com/sprintertech/sprinter-gateway/payment"
	"github.com/stretchr/testify/suite"
)

type RequirementCacheTestSuite struct {
	suite.Suite

	rc     *cache.RequirementCache
	cancel context.CancelFunc
}

func TestRunRequirementCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RequirementCacheTestSuite))
}

func (s *RequirementCacheTestSuite) SetupTest() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.rc = cache.NewRequirementCache(ctx, time.Millisecond*100, cache.MAX_PENDING_REQUIREMENTS)
}

func (s *RequirementCacheTestSuite) TearDownTest() {
	s.cancel()
}

func (s *RequirementCacheTestSuite) Test_Claim_MissingRequirement() {
	_, err := s.rc.Claim("invalid")

	s.ErrorIs(err, cache.ErrRequirementNotFound)
}

func (s *RequirementCacheTestSuite) Test_Claim_ValidRequirement() {
	expected := payment.Requirement{Nonce: "nonce", PriceUsd: "0.01"}
	s.rc.Issue(expected)

	requirement, err := s.rc.Claim("nonce")

	s.Nil(err)
	s.Equal(expected, requirement)
}

func (s *RequirementCacheTestSuite) Test_Claim_SecondClaimRejected() {
	s.rc.Issue(payment.Requirement{Nonce: "nonce"})

	_, err := s.rc.Claim("nonce")
	s.Nil(err)

	_, err = s.rc.Claim("nonce")
	s.ErrorIs(err, cache.ErrRequirementUsed)
}

func (s *RequirementCacheTestSuite) Test_Claim_ExpiredRequirement() {
	s.rc.Issue(payment.Requirement{Nonce: "nonce"})
	time.Sleep(time.Millisecond * 200)

	_, err := s.rc.Claim("nonce")

	s.ErrorIs(err, cache.ErrRequirementNotFound)
}

func (s *RequirementCacheTestSuite) Test_Issue_EvictsOldestOverCapacity() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rc := cache.NewRequirementCache(ctx, time.Minute, 2)

	rc.Issue(payment.Requirement{Nonce: "first"})
	rc.Issue(payment.Requirement{Nonce: "second"})
	rc.Issue(payment.Requirement{Nonce: "third"})

	s.Equal(2, rc.Len())
	_, err := rc.Claim("first")
	s.ErrorIs(err, cache.ErrRequirementNotFound)
	_, err = rc.Claim("third")
	s.Nil(err)
}
