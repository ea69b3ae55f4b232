package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	PRICE_TTL = time.Minute
)

// quoteSymbols maps wrapped or bridged assets onto the asset they track.
var quoteSymbols = map[string]string{
	"WETH":  "ETH",
	"CBBTC": "BTC",
	"USDBC": "USDC",
}

type CoinmarketcapResponse struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data map[string]Quote `json:"data"`
}

type Quote struct {
	Quote struct {
		USD struct {
			Price float64 `json:"price"`
		} `json:"USD"`
	} `json:"quote"`
}

type CoinmarketcapAPI struct {
	url        string
	apiKey     string
	cache      *ttlcache.Cache[string, float64]
	HTTPClient *http.Client
}

func NewCoinmarketcapAPI(url string, apiKey string) *CoinmarketcapAPI {
	return &CoinmarketcapAPI{
		url:    strings.TrimSuffix(url, "/"),
		apiKey: apiKey,
		cache: ttlcache.New(
			ttlcache.WithTTL[string, float64](PRICE_TTL),
			ttlcache.WithDisableTouchOnHit[string, float64](),
		),
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// TokenPrice returns the USD price of the token symbol. Prices are cached
// for PRICE_TTL.
func (c *CoinmarketcapAPI) TokenPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(symbol)
	if mapped, ok := quoteSymbols[symbol]; ok {
		symbol = mapped
	}
	if item := c.cache.Get(symbol); item != nil && !item.IsExpired() {
		return item.Value(), nil
	}

	url := fmt.Sprintf("%s/v1/cryptocurrency/quotes/latest?symbol=%s", c.url, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP request failed with status code %d", resp.StatusCode)
	}

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	var cmcResponse CoinmarketcapResponse
	err = json.Unmarshal(response, &cmcResponse)
	if err != nil {
		return 0, err
	}

	if cmcResponse.Status.ErrorCode != 0 {
		return 0, fmt.Errorf("API Error: %d - %s", cmcResponse.Status.ErrorCode, cmcResponse.Status.ErrorMessage)
	}

	quote, ok := cmcResponse.Data[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}

	price := quote.Quote.USD.Price
	c.cache.Set(symbol, price, ttlcache.DefaultTTL)
	return price, nil
}
