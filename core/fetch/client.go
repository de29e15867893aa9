package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Options configures a Client.
type Options struct {
	Timeout       time.Duration
	RatePerSecond int
	UserAgent     string
}

// Client sends rate-limited GET requests to IPTV backends with the headers
// a set-top box would send.
type Client struct {
	http      *http.Client
	limiter   ratelimit.Limiter
	userAgent string
	timeout   time.Duration
	logger    *zap.Logger
}

// ErrDecode wraps response bodies that are not the expected JSON.
var ErrDecode = errors.New("failed to parse JSON")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned HTTP %d", e.Code)
}

// New creates a Client. A non-positive rate disables throttling.
func New(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RatePerSecond > 0 {
		limiter = ratelimit.New(opts.RatePerSecond)
	}

	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				ResponseHeaderTimeout: timeout,
			},
		},
		limiter:   limiter,
		userAgent: opts.UserAgent,
		timeout:   timeout,
		logger:    logger,
	}
}

// Open issues a GET and returns the response body. The caller closes it.
// The timeout covers the whole transfer.
func (c *Client) Open(ctx context.Context, url string, header http.Header) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, header)

	c.limiter.Take()
	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		c.logger.Debug("Backend returned error status",
			zap.String("url", Redact(url)),
			zap.Int("status", resp.StatusCode))
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	return &cancelBody{ReadCloser: resp.Body, cancel: cancel}, nil
}

// Get reads the full response body.
func (c *Client) Get(ctx context.Context, url string, header http.Header) ([]byte, error) {
	body, err := c.Open(ctx, url, header)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// GetJSON decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, header http.Header, out any) error {
	data, err := c.Get(ctx, url, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, header http.Header) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Accept", "*/*")
	for key, values := range header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
