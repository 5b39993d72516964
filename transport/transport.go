// Package transport performs the physical HTTP calls to the gateway.
//
// Every call goes through the same loop: attach the merchant headers, run one
// attempt under the configured timeout, classify the outcome with retry.Classify,
// and either return, fail, or back off and try again. Whatever ends the loop is
// reported as exactly one domain.Error variant.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/retry"
	"github.com/DanielPopoola/moneybag-go/settings"
)

// Doer is the part of *http.Client the transport needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Response is the outcome of the final physical attempt, returned verbatim.
type Response struct {
	StatusCode int
	Body       json.RawMessage
	Headers    map[string]string
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

type Transport struct {
	settings *settings.Settings
	client   Doer
	sleep    Sleeper
	logger   *slog.Logger
	metrics  *Metrics
}

type Option func(*Transport)

// WithHTTPClient replaces the default http.Client. Per-attempt timeouts are still
// enforced through the request context.
func WithHTTPClient(client Doer) Option {
	return func(t *Transport) {
		t.client = client
	}
}

func WithSleeper(sleep Sleeper) Option {
	return func(t *Transport) {
		t.sleep = sleep
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(t *Transport) {
		t.metrics = metrics
	}
}

func New(s *settings.Settings, opts ...Option) *Transport {
	t := &Transport{
		settings: s,
		client:   &http.Client{},
		sleep:    sleepContext,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send issues method against {BaseURL}{path}. body, when non-nil, is sent as JSON.
//
// Transient failures are retried up to Settings.MaxRetries times with
// retry.Backoff delays between attempts. A 2xx response is returned as is;
// the gateway's own success flag is left to the caller.
func (t *Transport) Send(ctx context.Context, method, path string, body any) (*Response, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("request body could not be encoded: %v", err))
	}

	logger := t.logger.With(
		"call_id", uuid.NewString(),
		"method", method,
		"path", path,
	)
	url := t.settings.BaseURL() + path
	started := time.Now()

	resp, err := t.sendWithRetry(ctx, logger, method, url, payload)

	t.metrics.observeCall(method, err, time.Since(started))
	if err != nil {
		logger.Warn("gateway request failed", "kind", domain.KindOf(err), "error", err)
		return nil, err
	}

	logger.Debug("gateway request completed", "status", resp.StatusCode)
	return resp, nil
}

func (t *Transport) sendWithRetry(ctx context.Context, logger *slog.Logger, method, url string, payload []byte) (*Response, error) {
	attempt := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, cancelledError(err)
		}

		resp, err := t.do(ctx, method, url, payload)
		t.metrics.observeAttempt(method, resp)

		if err != nil && ctx.Err() != nil {
			return nil, cancelledError(ctx.Err())
		}

		hasResponse := err == nil
		statusCode := 0
		if hasResponse {
			statusCode = resp.StatusCode
		}

		if retry.Classify(hasResponse, statusCode) == retry.Permanent {
			if isSuccess(statusCode) {
				return resp, nil
			}
			return nil, statusError(resp)
		}

		if attempt >= t.settings.MaxRetries() {
			if hasResponse {
				return nil, statusError(resp)
			}
			return nil, noResponseError(err)
		}

		attempt++
		delay := retry.Backoff(attempt)
		logger.Warn("transient gateway failure, retrying",
			"retry", attempt,
			"max_retries", t.settings.MaxRetries(),
			"delay", delay,
			"status", statusCode,
			"error", err,
		)
		t.metrics.observeRetry(method)

		if err := t.sleep(ctx, delay); err != nil {
			return nil, cancelledError(err)
		}
	}
}

// do runs a single physical attempt. A nil error means a complete response was read.
func (t *Transport) do(ctx context.Context, method, url string, payload []byte) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.settings.Timeout())
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	for key, value := range t.settings.Headers() {
		httpReq.Header.Set(key, value)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	headers := make(map[string]string, len(httpResp.Header))
	for key := range httpResp.Header {
		headers[key] = httpResp.Header.Get(key)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    headers,
	}, nil
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
