// Package fetch implements the driven.Fetcher port over HTTP.
//
// The monitored index sits behind an ordinary government CMS, so requests
// carry browser-like headers. A token bucket keeps the client polite; the
// source is a shared public service, not an API with quotas.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Fetcher = (*Client)(nil)

// Default configuration values.
const (
	DefaultPageTimeout     = 30 * time.Second
	DefaultDownloadTimeout = 60 * time.Second
	DefaultUserAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DefaultRateLimit is conservative: one request per second sustained,
// short bursts allowed.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 1.0, BurstSize: 3}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// Config holds configuration for the HTTP client.
type Config struct {
	// PageTimeout bounds index page fetches (default: 30s).
	PageTimeout time.Duration

	// DownloadTimeout bounds document downloads (default: 60s).
	DownloadTimeout time.Duration

	// UserAgent overrides the browser-like default.
	UserAgent string

	// RateLimit overrides DefaultRateLimit when non-zero.
	RateLimit RateLimitConfig
}

// Client fetches index pages and downloads documents.
type Client struct {
	page      *http.Client
	download  *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// New creates a fetch client with the given configuration.
func New(cfg Config) *Client {
	if cfg.PageTimeout == 0 {
		cfg.PageTimeout = DefaultPageTimeout
	}
	if cfg.DownloadTimeout == 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit = DefaultRateLimit
	}

	return &Client{
		page:      &http.Client{Timeout: cfg.PageTimeout},
		download:  &http.Client{Timeout: cfg.DownloadTimeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize),
		userAgent: cfg.UserAgent,
	}
}

// FetchPage retrieves the markup of an index page.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := c.page.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}

// Download fetches a document's bytes into dest. The write goes through
// a temp file in the destination directory so an interrupted download
// never leaves a truncated artifact behind.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.download.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalise %s: %w", dest, err)
	}
	return nil
}
