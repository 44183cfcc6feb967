// Package client provides the outbound HTTP client for the upstream resource.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"hello-upstream/internal/config"
	"hello-upstream/internal/metrics"
	"hello-upstream/internal/model"
)

const userAgent = "hello-upstream/1.0"

var (
	// ErrUnexpectedStatus is returned when the upstream answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	// ErrMalformedBody is returned when the upstream body is too large or not valid JSON.
	ErrMalformedBody = errors.New("malformed upstream body")
)

// UpstreamClient fetches and parses the configured upstream URL.
type UpstreamClient struct {
	httpClient   *http.Client
	url          string
	timeout      time.Duration
	maxBodyBytes int64
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// NewUpstreamClient creates an UpstreamClient with connection pooling and timeouts.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewUpstreamClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *UpstreamClient {
	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &UpstreamClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		url:          cfg.Upstream.URL,
		timeout:      timeout,
		maxBodyBytes: cfg.Upstream.MaxBodyBytes,
		logger:       logger.With("component", "upstream_client"),
		metrics:      m,
	}
}

// Fetch issues a GET to the upstream, reads the whole body and decodes it as JSON.
// The request is bound to ctx, so canceling ctx (e.g. client disconnect)
// abandons the upstream call. A zero timeout leaves only ctx in control.
func (c *UpstreamClient) Fetch(ctx context.Context) (*model.FetchResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json, */*;q=0.5")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("upstream request", "url", c.url)

	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
		}
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.metrics != nil {
		c.metrics.UpstreamResponses.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodyBytes))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := c.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return &model.FetchResult{
		URL:         c.url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Bytes:       len(body),
		Duration:    time.Since(start),
		Payload:     payload,
	}, nil
}

// readBody reads at most maxBodyBytes; anything longer is a malformed body.
// A non-positive limit disables the cap.
func (c *UpstreamClient) readBody(r io.Reader) ([]byte, error) {
	if c.maxBodyBytes <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read upstream body: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedBody, c.maxBodyBytes)
	}
	return body, nil
}

// Classify maps a Fetch error to the failure kind reported in logs and metrics.
func Classify(err error) model.FailureKind {
	switch {
	case errors.Is(err, ErrMalformedBody):
		return model.FailureParse
	case errors.Is(err, ErrUnexpectedStatus):
		return model.FailureStatus
	case errors.Is(err, context.DeadlineExceeded):
		return model.FailureTimeout
	case errors.Is(err, context.Canceled):
		return model.FailureCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.FailureTimeout
	}
	return model.FailureNetwork
}
