package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Policy bounds one downstream role's latency and retry behavior.
type Policy struct {
	Timeout    time.Duration // Per-attempt HTTP timeout
	MaxRetries int           // Retries after the initial attempt
	Backoff    time.Duration // First retry delay, doubled per retry
}

// Per-role policies. Signature verification fails fast rather than masking
// replay-sensitive latency; business collaborators retry transient faults;
// identity verification is allowed to be slow.
var (
	SignaturePolicy = Policy{Timeout: 1 * time.Second, MaxRetries: 0}
	BusinessPolicy  = Policy{Timeout: 5 * time.Second, MaxRetries: 2, Backoff: 200 * time.Millisecond}
	IdentityPolicy  = Policy{Timeout: 30 * time.Second, MaxRetries: 0}
)

// httpCore is the JSON-over-HTTP transport shared by every client. Retries
// apply to transport failures and 5xx responses only; 4xx rejections return
// immediately.
type httpCore struct {
	service string
	baseURL string
	client  *http.Client
	policy  Policy
	logger  *slog.Logger
}

func newHTTPCore(service, baseURL string, policy Policy, logger *slog.Logger) *httpCore {
	return &httpCore{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: policy.Timeout},
		policy:  policy,
		logger:  logger.With("module", service+"_client"),
	}
}

func (c *httpCore) postJSON(ctx context.Context, operation, path string, request, response any) error {
	return c.do(ctx, http.MethodPost, operation, path, request, response)
}

func (c *httpCore) getJSON(ctx context.Context, operation, path string, response any) error {
	return c.do(ctx, http.MethodGet, operation, path, nil, response)
}

func (c *httpCore) do(ctx context.Context, method, operation, path string, request, response any) error {
	var payload []byte

	if request != nil {
		var err error

		payload, err = json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", operation, err)
		}
	}

	var lastErr error

	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.policy.Backoff << (attempt - 1)

			c.logger.InfoContext(ctx, "Retrying downstream call",
				"operation", operation, "attempt", attempt, "delay", delay)

			select {
			case <-ctx.Done():
				return &DownstreamError{
					Service:   c.service,
					Operation: operation,
					Err:       fmt.Errorf("%w: %w", ErrServiceUnavailable, ctx.Err()),
				}
			case <-time.After(delay):
			}
		}

		var body io.Reader
		if request != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("failed to create %s request: %w", operation, err)
		}

		if request != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = &DownstreamError{
				Service:   c.service,
				Operation: operation,
				Err:       fmt.Errorf("%w: %w", ErrServiceUnavailable, err),
			}

			continue
		}

		finished, err := c.processResponse(ctx, operation, resp, response)
		if finished {
			return err
		}

		lastErr = err
	}

	return lastErr
}

// processResponse reads one attempt's response. It reports finished=false
// only for retryable 5xx responses.
func (c *httpCore) processResponse(ctx context.Context, operation string, resp *http.Response, response any) (bool, error) {
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.ErrorContext(ctx, "failed to close response body", "error", closeErr)
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &DownstreamError{
			Service:    c.service,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %w", ErrServiceUnavailable, err),
		}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return false, &DownstreamError{
			Service:    c.service,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    downstreamMessage(bodyBytes),
			Err:        ErrServiceUnavailable,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return true, &DownstreamError{
			Service:    c.service,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    downstreamMessage(bodyBytes),
			Err:        ErrRequestRejected,
		}
	}

	if response != nil {
		err = json.Unmarshal(bodyBytes, response)
		if err != nil {
			return true, &DownstreamError{
				Service:    c.service,
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("%w: failed to decode response: %w", ErrServiceUnavailable, err),
			}
		}
	}

	return true, nil
}

// downstreamMessage extracts a human-readable message from an error body.
func downstreamMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}

		if parsed.Error != "" {
			return parsed.Error
		}
	}

	const maxRawMessage = 200
	raw := strings.TrimSpace(string(body))

	if len(raw) > maxRawMessage {
		raw = raw[:maxRawMessage]
	}

	return raw
}
