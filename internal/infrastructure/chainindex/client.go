package chainindex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lldgw/internal/application/gateway/verification"
	vo "lldgw/internal/domain/order/valueobjects"
	"lldgw/internal/shared/logger"
)

const (
	// A slow chain index must not hang a checkout poll indefinitely.
	requestTimeout  = 12 * time.Second
	maxResponseSize = 64 << 10
)

// verifyPurchaseResponse tolerates both field spellings the index has
// shipped over time.
type verifyPurchaseResponse struct {
	Paid          bool   `json:"paid"`
	Verified      bool   `json:"verified"`
	TxHash        string `json:"txHash"`
	ExtrinsicHash string `json:"extrinsicHash"`
}

// Client queries the Liberland chain index for a paid transfer matching a
// remark, amount, and recipient.
type Client struct {
	httpClient *http.Client
	apiBaseURL string
	logger     logger.Interface
}

func NewClient(apiBaseURL string, log logger.Interface) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiBaseURL: apiBaseURL,
		logger:     log,
	}
}

var _ verification.ChainIndex = (*Client)(nil)

// VerifyPurchase asks the index whether a transaction paying exactly
// pricePlancks to toAddress with the given remark exists on chain.
func (c *Client) VerifyPurchase(ctx context.Context, remark, pricePlancks, toAddress string) (*verification.Match, error) {
	q := url.Values{}
	q.Set("orderId", remark)
	q.Set("price", pricePlancks)
	q.Set("toId", toAddress)
	endpoint := c.apiBaseURL + "/v1/verify-purchase?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query chain index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data verifyPurchaseResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tx := vo.NewTxRef(data.TxHash, data.ExtrinsicHash)

	return &verification.Match{
		Paid:   data.Paid || data.Verified,
		TxHash: tx.Hash(),
	}, nil
}
