package safe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// DefaultGatewayURL is the Safe client gateway, which exposes the queue tags
const DefaultGatewayURL = "https://safe-client.safe.global"

// ErrNoTransactionService is returned for networks without a service URL
var ErrNoTransactionService = errors.New("no Safe Transaction Service configured")

// Client talks to the Safe Transaction Service and client gateway
type Client struct {
	httpClient *http.Client
	gatewayURL string
	attempts   uint
	delay      time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithGatewayURL replaces the client gateway base URL
func WithGatewayURL(url string) Option {
	return func(cl *Client) { cl.gatewayURL = strings.TrimSuffix(url, "/") }
}

// WithRetry sets the number of attempts and the initial backoff delay
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(cl *Client) {
		cl.attempts = max(attempts, 1)
		cl.delay = delay
	}
}

// NewClient creates a Safe API client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		gatewayURL: DefaultGatewayURL,
		attempts:   3,
		delay:      500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a client honouring the configured timeout
func NewClientFromConfig(cfg *config.RuntimeConfig) *Client {
	var opts []Option
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	return NewClient(opts...)
}

// safeResponse is the Transaction Service view of a Safe
type safeResponse struct {
	Address         string      `json:"address"`
	Nonce           json.Number `json:"nonce"`
	Threshold       int         `json:"threshold"`
	Owners          []string    `json:"owners"`
	MasterCopy      string      `json:"masterCopy"`
	FallbackHandler string      `json:"fallbackHandler"`
	Version         string      `json:"version"`
}

// multisigTransaction is a Transaction Service multisig transaction
type multisigTransaction struct {
	SafeTxHash            string         `json:"safeTxHash"`
	To                    string         `json:"to"`
	Value                 string         `json:"value"`
	Data                  *string        `json:"data"`
	Operation             int            `json:"operation"`
	Nonce                 json.Number    `json:"nonce"`
	ConfirmationsRequired int            `json:"confirmationsRequired"`
	Confirmations         []confirmation `json:"confirmations"`
	SubmissionDate        time.Time      `json:"submissionDate"`
	Modified              time.Time      `json:"modified"`
}

type confirmation struct {
	Owner string `json:"owner"`
}

type transactionPage struct {
	Count    int                    `json:"count"`
	Next     *string                `json:"next"`
	Previous *string                `json:"previous"`
	Results  []*multisigTransaction `json:"results"`
}

// gatewaySafe is the client gateway view of a Safe
type gatewaySafe struct {
	TxQueuedTag  *string `json:"txQueuedTag"`
	TxHistoryTag *string `json:"txHistoryTag"`
}

// GetSafeInfo reads the state of a Safe, including its protocol version
func (c *Client) GetSafeInfo(ctx context.Context, network domain.Network, safe common.Address) (*domain.SafeInfo, error) {
	base, err := serviceURL(network)
	if err != nil {
		return nil, err
	}

	var resp safeResponse
	if err := c.get(ctx, fmt.Sprintf("%s/api/v1/safes/%s/", base, safe.Hex()), &resp); err != nil {
		return nil, err
	}

	nonce, err := parseNonce(resp.Nonce)
	if err != nil {
		return nil, err
	}

	return &domain.SafeInfo{
		Address:         safe,
		ChainID:         network.ChainID,
		Nonce:           nonce,
		Threshold:       resp.Threshold,
		Owners:          lo.Map(resp.Owners, func(o string, _ int) common.Address { return common.HexToAddress(o) }),
		MasterCopy:      common.HexToAddress(resp.MasterCopy),
		FallbackHandler: common.HexToAddress(resp.FallbackHandler),
		Version:         resp.Version,
	}, nil
}

// GetTransactionQueue returns pending multisig transactions, highest nonce first
func (c *Client) GetTransactionQueue(ctx context.Context, network domain.Network, safe common.Address) (*domain.TransactionPage, error) {
	base, err := serviceURL(network)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/safes/%s/multisig-transactions/?executed=false&ordering=-nonce", base, safe.Hex())

	var resp transactionPage
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	page := &domain.TransactionPage{
		Count:    resp.Count,
		Next:     lo.FromPtr(resp.Next),
		Previous: lo.FromPtr(resp.Previous),
		Results:  make([]*domain.QueuedTransaction, 0, len(resp.Results)),
	}
	for _, tx := range resp.Results {
		nonce, err := parseNonce(tx.Nonce)
		if err != nil {
			return nil, err
		}
		page.Results = append(page.Results, &domain.QueuedTransaction{
			SafeTxHash:            tx.SafeTxHash,
			To:                    tx.To,
			Value:                 tx.Value,
			Data:                  lo.FromPtr(tx.Data),
			Operation:             tx.Operation,
			Nonce:                 nonce,
			ConfirmationsRequired: tx.ConfirmationsRequired,
			Confirmations:         len(tx.Confirmations),
			SubmissionDate:        tx.SubmissionDate,
			Modified:              tx.Modified,
		})
	}

	return page, nil
}

// GetQueueTags reads the tags the client gateway bumps whenever the queued or
// executed transactions of a Safe change
func (c *Client) GetQueueTags(ctx context.Context, network domain.Network, safe common.Address) (domain.QueueTags, error) {
	url := fmt.Sprintf("%s/v1/chains/%d/safes/%s", c.gatewayURL, network.ChainID, safe.Hex())

	var resp gatewaySafe
	if err := c.get(ctx, url, &resp); err != nil {
		return domain.QueueTags{}, err
	}

	return domain.QueueTags{
		Queued:  lo.FromPtr(resp.TxQueuedTag),
		History: lo.FromPtr(resp.TxHistoryTag),
	}, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.fetch(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body)))
	}
}

func serviceURL(network domain.Network) (string, error) {
	if network.TxServiceURL == "" {
		return "", fmt.Errorf("%w for %s (chain %d)", ErrNoTransactionService, network.String(), network.ChainID)
	}
	return strings.TrimSuffix(network.TxServiceURL, "/"), nil
}

// parseNonce accepts nonces encoded as numbers or numeric strings
func parseNonce(n json.Number) (uint64, error) {
	if n == "" {
		return 0, nil
	}
	nonce, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid nonce %q: %w", n, err)
	}
	return nonce, nil
}

// Ensure the adapter implements the interface
var _ usecase.SafeClient = (*Client)(nil)
