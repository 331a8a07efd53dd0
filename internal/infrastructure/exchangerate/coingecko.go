package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"lldgw/internal/application/gateway/rate"
	"lldgw/internal/shared/logger"
)

const (
	// CoinGecko API endpoint for the LLD price
	coingeckoAPIURL = "https://api.coingecko.com/api/v3/simple/price?ids=liberland-lld&vs_currencies=usd"
	// HTTP request timeout. A single failed call is not retried; the rate
	// resolver falls through to the configured fallback.
	requestTimeout = 10 * time.Second
	// Maximum response body size for the price API (64KB)
	maxResponseSize = 64 << 10
)

// coingeckoResponse represents the CoinGecko API response
type coingeckoResponse struct {
	LiberlandLLD struct {
		USD float64 `json:"usd"`
	} `json:"liberland-lld"`
}

// CoinGeckoOracle implements rate.Oracle using the CoinGecko simple-price
// API.
type CoinGeckoOracle struct {
	httpClient *http.Client
	apiURL     string
	logger     logger.Interface
}

func NewCoinGeckoOracle(log logger.Interface) *CoinGeckoOracle {
	return &CoinGeckoOracle{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiURL:     coingeckoAPIURL,
		logger:     log,
	}
}

// NewCoinGeckoOracleWithURL overrides the API endpoint. Intended for tests.
func NewCoinGeckoOracleWithURL(apiURL string, log logger.Interface) *CoinGeckoOracle {
	o := NewCoinGeckoOracle(log)
	o.apiURL = apiURL
	return o
}

// Ensure CoinGeckoOracle implements rate.Oracle
var _ rate.Oracle = (*CoinGeckoOracle)(nil)

// USDPerLLD fetches the current LLD/USD quote. No caching and no retry:
// the checkout path calls this once and the resolver owns the fallback
// policy.
func (o *CoinGeckoOracle) USDPerLLD(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.apiURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch LLD price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data coingeckoResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode response: %w", err)
	}

	if data.LiberlandLLD.USD <= 0 {
		return decimal.Zero, fmt.Errorf("invalid rate from API: %f", data.LiberlandLLD.USD)
	}

	quote := decimal.NewFromFloat(data.LiberlandLLD.USD)

	o.logger.Infow("fetched LLD exchange rate", "usd_per_lld", quote.String())

	return quote, nil
}
