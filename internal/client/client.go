// Package client talks to the sales summary API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shivarajkushals/Dashboard/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	DefaultTimeout = 15 * time.Second

	PathStoreSummary    = "/store-summary/"
	PathShopTypeSummary = "/shop-type-summary/"
	PathMonthOnMonth    = "/month-on-month/"
	PathStoreList       = "/store-list/"
	PathTranTypeList    = "/tran_type-list/"
	PathShopTypeList    = "/shop_type-list/"

	maxErrorBody = 512
)

var (
	// ErrTransport covers network failures, timeouts and non-2xx answers.
	ErrTransport = errors.New("sales api unavailable")
	// ErrMalformedResponse covers undecodable or mis-shaped payloads.
	ErrMalformedResponse = errors.New("sales api returned malformed data")
)

// StatusError is a non-2xx answer. It matches ErrTransport with errors.Is.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d: %s", ErrTransport, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrTransport }

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) StoreSummary(ctx context.Context, f domain.FilterSet) ([]domain.SummaryRow, error) {
	var rows []domain.SummaryRow
	if err := c.get(ctx, PathStoreSummary, f.Query(), &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (c *Client) ShopTypeSummary(ctx context.Context, f domain.FilterSet) ([]domain.SummaryRow, error) {
	var rows []domain.SummaryRow
	if err := c.get(ctx, PathShopTypeSummary, f.Query(), &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

func (c *Client) MonthOnMonth(ctx context.Context, f domain.FilterSet) (*domain.MonthOnMonthReport, error) {
	var report domain.MonthOnMonthReport
	if err := c.get(ctx, PathMonthOnMonth, f.Query(), &report); err != nil {
		return nil, err
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &report, nil
}

func (c *Client) StoreList(ctx context.Context) ([]domain.StoreOption, error) {
	var out []domain.StoreOption
	if err := c.get(ctx, PathStoreList, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) TranTypeList(ctx context.Context) ([]domain.TranTypeOption, error) {
	var out []domain.TranTypeOption
	if err := c.get(ctx, PathTranTypeList, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) ShopTypeList(ctx context.Context) ([]domain.ShopTypeOption, error) {
	var out []domain.ShopTypeOption
	if err := c.get(ctx, PathShopTypeList, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request %s: %w", ErrTransport, path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrTransport, path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("sales api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: read %s: %w", ErrTransport, path, ctx.Err())
		}
		return fmt.Errorf("%w: decode %s: %w", ErrMalformedResponse, path, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
