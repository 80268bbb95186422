package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Keys shorter than this cannot be real credentials; treat them as absent.
const minKeyLength = 20

var (
	// ErrNotConfigured means no usable connection parameters are present.
	ErrNotConfigured = errors.New("remote backend is not configured")
	// ErrDecode means the remote answered but the body was not usable.
	ErrDecode = errors.New("malformed remote response")
)

// Params are the two connection strings for the hosted backend.
type Params struct {
	URL     string
	AnonKey string
}

// Client talks to a PostgREST-style hosted store: table CRUD under /rest/v1,
// file objects under /storage/v1. It is constructed once and injected; the
// active connection can be swapped atomically with Reconfigure.
type Client struct {
	mu     sync.RWMutex
	params Params
	gen    uint64

	httpc *http.Client
}

func New(params Params) *Client {
	return &Client{
		params: normalize(params),
		httpc:  &http.Client{Timeout: 15 * time.Second},
	}
}

func normalize(p Params) Params {
	p.URL = strings.TrimRight(strings.TrimSpace(p.URL), "/")
	p.AnonKey = strings.TrimSpace(p.AnonKey)
	return p
}

// IsConfigured reports whether a usable connection exists.
func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params.URL != "" && len(c.params.AnonKey) >= minKeyLength
}

// Reconfigure swaps the active connection parameters and bumps the
// subscription generation so watchers know to re-establish themselves.
func (c *Client) Reconfigure(params Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = normalize(params)
	c.gen++
}

// Generation increments on every Reconfigure.
func (c *Client) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Client) snapshot() Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params
}

// Row is one table row with the remote's snake_case field names.
type Row map[string]interface{}

// SelectOptions control ordering and row count for Select.
type SelectOptions struct {
	OrderBy    string
	Descending bool
	Limit      int
}

func (c *Client) Select(ctx context.Context, table string, opts SelectOptions) ([]Row, error) {
	query := url.Values{}
	query.Set("select", "*")
	if opts.OrderBy != "" {
		dir := "asc"
		if opts.Descending {
			dir = "desc"
		}
		query.Set("order", opts.OrderBy+"."+dir)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.do(ctx, http.MethodGet, "/rest/v1/"+table+"?"+query.Encode(), nil, "")
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: table %s: %v", ErrDecode, table, err)
	}
	return rows, nil
}

func (c *Client) Insert(ctx context.Context, table string, row Row) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row for %s: %w", table, err)
	}
	_, err = c.do(ctx, http.MethodPost, "/rest/v1/"+table, payload, "application/json")
	return err
}

func (c *Client) UpdateByID(ctx context.Context, table, id string, patch Row) error {
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode patch for %s: %w", table, err)
	}
	path := "/rest/v1/" + table + "?id=eq." + url.QueryEscape(id)
	_, err = c.do(ctx, http.MethodPatch, path, payload, "application/json")
	return err
}

func (c *Client) DeleteByID(ctx context.Context, table, id string) error {
	path := "/rest/v1/" + table + "?id=eq." + url.QueryEscape(id)
	_, err := c.do(ctx, http.MethodDelete, path, nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string) ([]byte, error) {
	params := c.snapshot()
	if params.URL == "" || len(params.AnonKey) < minKeyLength {
		return nil, ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, params.URL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", params.AnonKey)
	req.Header.Set("Authorization", "Bearer "+params.AnonKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return respBody, nil
}
