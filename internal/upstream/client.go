// Package upstream is the outbound HTTP adapter for the WordPress REST API.
// It owns request building, JSON body handling, response classification and
// the per-operation GET memoization that keeps GraphQL fan-out from
// hammering the CMS with identical calls.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response carries the upstream body together with the response headers.
// Pagination metadata (x-wp-total, x-wp-totalpages) travels in headers.
type Response struct {
	Body   []byte
	Header http.Header
}

// Observer is notified after every performed upstream call. Memoized hits do
// not fire it, which is what call-count metrics want to measure.
type Observer func(method string, status int, duration time.Duration)

// Client performs calls against one upstream base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	observe Observer
}

// NewClient builds a client rooted at baseURL (e.g. https://host/wp-json).
// timeout bounds every upstream call; it must be finite.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// OnRequest registers an observer for performed calls.
func (c *Client) OnRequest(fn Observer) { c.observe = fn }

// Get issues a GET and returns the response body. Identical GETs within one
// operation share a single upstream call (see RequestCache).
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	resp, err := c.GetWithHeader(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GetWithHeader is Get plus access to the response headers.
func (c *Client) GetWithHeader(ctx context.Context, path string, params url.Values) (*Response, error) {
	key := c.cacheKey(path, params)
	rc := requestCacheFrom(ctx)
	if rc == nil {
		return c.do(ctx, http.MethodGet, path, params, nil)
	}

	entry, owner := rc.claim(key)
	if !owner {
		return entry.wait(ctx)
	}
	resp, err := c.do(ctx, http.MethodGet, path, params, nil)
	entry.complete(resp, err)
	return resp, err
}

// Post issues a POST with a JSON-serialized body. Posts bypass the memo and
// invalidate any memoized GET for the same URL.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	if rc := requestCacheFrom(ctx); rc != nil {
		rc.invalidate(c.cacheKey(path, nil))
	}
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// cacheKey identifies a resource by resolved URL with sorted query params.
func (c *Client) cacheKey(path string, params url.Values) string {
	key := c.baseURL + path
	if enc := params.Encode(); enc != "" {
		key += "?" + enc
	}
	return key
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (*Response, error) {
	fullURL := c.baseURL + path
	if enc := params.Encode(); enc != "" {
		fullURL += "?" + enc
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, newTransportError(fullURL, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, newTransportError(fullURL, err)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("upstream call failed", "method", method, "url", fullURL, "error", err)
		if c.observe != nil {
			c.observe(method, 0, time.Since(start))
		}
		return nil, newTransportError(fullURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("upstream body read failed", "method", method, "url", fullURL, "error", err)
		return nil, newTransportError(fullURL, err)
	}

	if c.observe != nil {
		c.observe(method, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := newStatusError(resp.StatusCode, data, fullURL)
		level := slog.LevelError
		if upErr.Kind == KindInvalidInput {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "upstream rejected request",
			"method", method, "url", fullURL, "status", resp.StatusCode, "message", upErr.Message)
		return nil, upErr
	}

	c.logger.Debug("upstream call", "method", method, "url", fullURL,
		"status", resp.StatusCode, "duration", time.Since(start))
	return &Response{Body: data, Header: resp.Header}, nil
}
