package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const unknownErrorMessage = "An unknown error occurred"

// APIError is a non-2xx answer from the inventory API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// TokenSource yields the bearer token for a request, "" when signed out.
type TokenSource func(ctx context.Context) (string, error)

// Client talks to the inventory REST API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   TokenSource
	Logger  *zap.Logger
}

// NewClient returns a client without any request deadline; callers cancel
// through the context.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Logger:  logger,
	}
}

func (c *Client) call(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != nil {
		token, err := c.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("load auth token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.Logger.Debug("api request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID))

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, context.Canceled
		}
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: ErrorMessage(respBody)}
		c.Logger.Warn("api request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
			zap.Error(apiErr))
		return nil, apiErr
	}
	return respBody, nil
}

// ErrorMessage extracts the server's "error" field, falling back to a
// generic message.
func ErrorMessage(body []byte) string {
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		return unknownErrorMessage
	}
	switch v := payload.Error.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return unknownErrorMessage
		}
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return unknownErrorMessage
		}
		return string(encoded)
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	body, err := c.call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return unmarshalBody(body, target)
}

func unmarshalBody(body []byte, target any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}
	return nil
}
