package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sprintertech/sprinter-gateway/health"
	"github.com/stretchr/testify/suite"
)

type HealthTestSuite struct {
	suite.Suite
}

func TestRunHealthTestSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}

func (s *HealthTestSuite) Test_Handler_NoChecks() {
	recorder := httptest.NewRecorder()

	health.Handler(nil)(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("ok", recorder.Body.String())
}

func (s *HealthTestSuite) Test_Handler_FailingCheck() {
	checks := map[string]health.Check{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
		"cache": func(ctx context.Context) error { return nil },
	}
	recorder := httptest.NewRecorder()

	health.Handler(checks)(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusServiceUnavailable, recorder.Code)
	s.JSONEq(`{"redis":"connection refused"}`, recorder.Body.String())
}
