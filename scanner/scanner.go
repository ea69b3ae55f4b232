package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	SCAN_RETRIES    = 2
	SCAN_RETRY_WAIT = 250 * time.Millisecond
)

type Opportunity struct {
	ID                string    `json:"id"`
	Strategy          string    `json:"strategy"`
	Chain             string    `json:"chain"`
	TokenIn           string    `json:"tokenIn"`
	TokenOut          string    `json:"tokenOut"`
	ExpectedProfitUsd float64   `json:"expectedProfitUsd"`
	Confidence        float64   `json:"confidence"`
	DetectedAt        time.Time `json:"detectedAt"`
}

type scanResponse struct {
	Opportunities []Opportunity `json:"opportunities"`
}

// HTTPScanner fetches market opportunities from an external scanning service.
type HTTPScanner struct {
	url        string
	HTTPClient *http.Client
}

func NewHTTPScanner(url string) *HTTPScanner {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = SCAN_RETRIES
	retryClient.RetryWaitMin = SCAN_RETRY_WAIT
	retryClient.RetryWaitMax = SCAN_RETRY_WAIT
	retryClient.Logger = nil

	return &HTTPScanner{
		url:        url,
		HTTPClient: retryClient.StandardClient(),
	}
}

func (s *HTTPScanner) Scan(ctx context.Context) ([]Opportunity, error) {
	url := fmt.Sprintf("%s/v1/opportunities", s.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	r := new(scanResponse)
	if err := json.Unmarshal(body, r); err != nil {
		return nil, err
	}
	return r.Opportunities, nil
}
