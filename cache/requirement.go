package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/payment"
)

const (
	REQUIREMENT_TTL          = time.Minute * 5
	MAX_PENDING_REQUIREMENTS = 100000
)

var (
	ErrRequirementNotFound = errors.New("unknown or expired payment requirement")
	ErrRequirementUsed     = errors.New("payment requirement already used")
)

type claim struct {
	requirement payment.Requirement
	used        bool
}

// RequirementCache keeps issued payment requirements until they expire. A
// requirement can be claimed once, later claims fail until the entry expires.
type RequirementCache struct {
	reqCache *ttlcache.Cache[string, *claim]
	lock     sync.Mutex
}

// NewRequirementCache holds at most capacity pending requirements, the oldest
// are evicted first once it is full.
func NewRequirementCache(ctx context.Context, ttl time.Duration, capacity uint64) *RequirementCache {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *claim](ttl),
		ttlcache.WithCapacity[string, *claim](capacity),
		ttlcache.WithDisableTouchOnHit[string, *claim](),
	)

	rc := &RequirementCache{
		reqCache: cache,
	}

	go cache.Start()
	go rc.watch(ctx)
	return rc
}

func (c *RequirementCache) Issue(requirement payment.Requirement) {
	c.reqCache.Set(requirement.Nonce, &claim{requirement: requirement}, ttlcache.DefaultTTL)
}

func (c *RequirementCache) Claim(nonce string) (payment.Requirement, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	item := c.reqCache.Get(nonce)
	if item == nil {
		return payment.Requirement{}, ErrRequirementNotFound
	}

	cl := item.Value()
	if cl.used {
		log.Warn().Str("nonce", nonce).Msg("Replayed payment requirement")
		return payment.Requirement{}, ErrRequirementUsed
	}

	cl.used = true
	return cl.requirement, nil
}

func (c *RequirementCache) Len() int {
	return c.reqCache.Len()
}

func (c *RequirementCache) watch(ctx context.Context) {
	<-ctx.Done()
	c.reqCache.Stop()
}
