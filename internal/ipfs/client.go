package ipfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"grants-governance/internal/metrics"
	"grants-governance/internal/models"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 8 * time.Second
	maxDocumentSize   = 4 << 20
)

var (
	// ErrUnexpectedStatus is returned when the gateway answers with a non-success status
	ErrUnexpectedStatus = errors.New("unexpected gateway status")
	// ErrInvalidDocument is returned when the response body is not valid JSON
	ErrInvalidDocument = errors.New("invalid content document")
)

// Client retrieves JSON documents from an IPFS HTTP gateway at <baseURL>/<cid>
type Client struct {
	baseURL       string
	httpClient    *http.Client
	retryAttempts int
	retryDelay    time.Duration
	logger        *zap.Logger
}

// NewClient creates a gateway client
func NewClient(baseURL string, timeout time.Duration, retryAttempts int, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryAttempts: retryAttempts,
		retryDelay:    defaultRetryDelay,
		logger:        logger,
	}
}

// Get fetches the document addressed by cid and decodes it into out
func (c *Client) Get(ctx context.Context, cid string, out interface{}) (err error) {
	defer func() {
		metrics.ContentFetches.WithLabelValues(metrics.Result(err)).Inc()
	}()

	if cid == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidCID)
	}
	url := c.baseURL + "/" + cid

	status, body, err := doWithRetry(ctx, c.retryAttempts, c.retryDelay, func() (int, []byte, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", cid, err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: %d fetching %s", ErrUnexpectedStatus, status, cid)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, cid, err)
	}

	c.logger.Debug("Fetched content document", zap.String("cid", cid), zap.Int("bytes", len(body)))
	return nil
}

// GetApplication fetches a beneficiary application document
func (c *Client) GetApplication(ctx context.Context, cid string) (*models.BeneficiaryApplication, error) {
	var app models.BeneficiaryApplication
	if err := c.Get(ctx, cid, &app); err != nil {
		return nil, err
	}
	if app.OrganizationName == "" {
		c.logger.Warn("Application document has no organization name", zap.String("cid", cid))
	}
	return &app, nil
}

func (c *Client) fetch(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Gateway request failed", zap.String("url", url), zap.Error(err))
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
