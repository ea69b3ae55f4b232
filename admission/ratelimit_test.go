package admission_test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/sprintertech/sprinter-gateway/admission"
	"github.com/stretchr/testify/suite"
)

type RateLimiterTestSuite struct {
	suite.Suite

	now     time.Time
	limiter *admission.RateLimiter
}

func TestRunRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (s *RateLimiterTestSuite) SetupTest() {
	s.now = time.Unix(1700000000, 0)
	s.limiter = admission.NewRateLimiter(time.Second*60, 20, 100).WithClock(func() time.Time {
		return s.now
	})
}

func (s *RateLimiterTestSuite) Test_Allow_DeniesRequestOverLimit() {
	for i := 0; i < 20; i++ {
		allowed, _ := s.limiter.Allow("agent", "1.1.1.1")
		s.True(allowed)
	}

	s.now = s.now.Add(time.Second * 10)
	allowed, retryAfter := s.limiter.Allow("agent", "1.1.1.1")

	s.False(allowed)
	s.Equal(50, retryAfter)
}

func (s *RateLimiterTestSuite) Test_Allow_RetryAfterRoundsUp() {
	for i := 0; i < 20; i++ {
		s.limiter.Allow("agent", "1.1.1.1")
	}

	s.now = s.now.Add(time.Second*59 + time.Millisecond*900)
	allowed, retryAfter := s.limiter.Allow("agent", "1.1.1.1")

	s.False(allowed)
	s.Equal(1, retryAfter)
}

func (s *RateLimiterTestSuite) Test_Allow_WindowResetStartsNewCount() {
	for i := 0; i < 21; i++ {
		s.limiter.Allow("agent", "1.1.1.1")
	}

	s.now = s.now.Add(time.Second * 60)
	allowed, _ := s.limiter.Allow("agent", "1.1.1.1")
	s.True(allowed)

	// the new window counts from one, so 19 more requests fit
	for i := 0; i < 19; i++ {
		allowed, _ = s.limiter.Allow("agent", "1.1.1.1")
		s.True(allowed)
	}
	allowed, retryAfter := s.limiter.Allow("agent", "1.1.1.1")
	s.False(allowed)
	s.Equal(60, retryAfter)
}

func (s *RateLimiterTestSuite) Test_Allow_KeysAreIndependent() {
	for i := 0; i < 20; i++ {
		s.limiter.Allow("agent", "1.1.1.1")
	}

	allowed, _ := s.limiter.Allow("agent", "2.2.2.2")
	s.True(allowed)
	allowed, _ = s.limiter.Allow("strategies", "1.1.1.1")
	s.True(allowed)
}

func (s *RateLimiterTestSuite) Test_Allow_SweepsExpiredBucketsOverThreshold() {
	limiter := admission.NewRateLimiter(time.Second, 5, 3).WithClock(func() time.Time {
		return s.now
	})
	for i := 0; i < 4; i++ {
		limiter.Allow("agent", fmt.Sprintf("10.0.0.%d", i))
	}
	s.Equal(4, limiter.Size())

	s.now = s.now.Add(time.Second * 2)
	limiter.Allow("agent", "10.0.0.100")

	s.Equal(1, limiter.Size())
}

func (s *RateLimiterTestSuite) Test_Allow_NoSweepUnderThreshold() {
	limiter := admission.NewRateLimiter(time.Second, 5, 10).WithClock(func() time.Time {
		return s.now
	})
	for i := 0; i < 4; i++ {
		limiter.Allow("agent", fmt.Sprintf("10.0.0.%d", i))
	}

	s.now = s.now.Add(time.Second * 2)
	limiter.Allow("agent", "10.0.0.100")

	s.Equal(5, limiter.Size())
}

func (s *RateLimiterTestSuite) Test_Allow_SweepsAtMostOncePerWindow() {
	limiter := admission.NewRateLimiter(time.Minute, 5, 10).WithClock(func() time.Time {
		return s.now
	})
	for i := 0; i < 500; i++ {
		limiter.Allow("agent", fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}

	s.Equal(1, limiter.Sweeps())
	s.Equal(500, limiter.Size())

	s.now = s.now.Add(time.Second * 59)
	limiter.Allow("agent", "10.9.9.9")
	s.Equal(1, limiter.Sweeps())

	s.now = s.now.Add(time.Second * 2)
	limiter.Allow("agent", "10.9.9.10")
	s.Equal(2, limiter.Sweeps())
	s.Equal(2, limiter.Size())
}

func (s *RateLimiterTestSuite) Test_Allow_Concurrent() {
	limiter := admission.NewRateLimiter(time.Minute, 50, 1000)
	allowed := make(chan bool, 200)

	p := pool.New().WithMaxGoroutines(20)
	for i := 0; i < 200; i++ {
		p.Go(func() {
			ok, _ := limiter.Allow("agent", "1.1.1.1")
			allowed <- ok
		})
	}
	p.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	s.Equal(50, count)
}

func (s *RateLimiterTestSuite) Test_ClientKey() {
	req := httptest.NewRequest("GET", "/agent", nil)
	req.RemoteAddr = "192.168.1.1:5555"
	s.Equal("192.168.1.1", admission.ClientKey(req))

	req.Header.Set("X-Real-IP", "172.16.0.1")
	s.Equal("172.16.0.1", admission.ClientKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	s.Equal("203.0.113.7", admission.ClientKey(req))
}
