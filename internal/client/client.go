package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// TokenSource supplies the bearer token for outbound requests; "" means none.
type TokenSource interface {
	Token() string
}

// HostelClient is the only way the console talks to the hostel API.
// It never retries: every failure is reported to the caller once.
type HostelClient struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	Tokens     TokenSource
}

// NewHostelClient builds a client for baseURL (e.g. "http://localhost:5001/api").
// A zero timeout leaves the transport defaults in charge.
func NewHostelClient(baseURL string, tokens TokenSource, timeout time.Duration) (*HostelClient, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q: scheme and host required", baseURL)
	}
	return &HostelClient{
		BaseURL:    parsed,
		HTTPClient: &http.Client{Timeout: timeout},
		Tokens:     tokens,
	}, nil
}

// Endpoint returns the absolute URL for an API path.
func (c *HostelClient) Endpoint(reqPath string) string {
	u := *c.BaseURL
	u.Path = path.Join(c.BaseURL.Path, reqPath)
	return u.String()
}

// doRequest builds, sends and decodes one request. out may be nil, or a
// *json.RawMessage to receive the raw body.
func (c *HostelClient) doRequest(ctx context.Context, method, reqPath string, query url.Values, body any, out any) error {
	endpoint := c.Endpoint(reqPath)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return &PreconditionError{Message: fmt.Sprintf("failed to marshal request body: %v", err), Err: err}
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &PreconditionError{Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := utils.Logger.WithFields(logrus.Fields{
		"method":     method,
		"endpoint":   endpoint,
		"request_id": requestID,
	})
	log.Debug("Calling API")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug("Request abandoned: context done")
			return fmt.Errorf("%s %s: %w", method, endpoint, ctxErr)
		}
		log.WithError(err).Warn("No response received")
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	log = log.WithField("status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		srvErr := c.handleHTTPError(resp, endpoint)
		log.WithField("error", srvErr.Message).Warn("API returned an error status")
		return srvErr
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, endpoint, ctxErr)
		}
		log.WithError(err).Warn("Response body cut short")
		return &ConnectivityError{Endpoint: endpoint, Err: err}
	}
	log.Debug("API response received")

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], bodyBytes...)
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
			Endpoint:   endpoint,
		}
	}
	return nil
}

// handleHTTPError reads a non-2xx body and keeps whatever message the server gave.
func (c *HostelClient) handleHTTPError(resp *http.Response, endpoint string) *ServerError {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var apiErr dtos.ErrorResponse
	msg := ""
	if err := json.Unmarshal(bodyBytes, &apiErr); err == nil {
		msg = apiErr.Text()
	} else {
		msg = strings.TrimSpace(string(bodyBytes))
	}
	return &ServerError{StatusCode: resp.StatusCode, Message: msg, Endpoint: endpoint}
}

// decodeCreated pulls the created entity out of a create response. The API wraps
// it in an envelope E ({"message": ..., "room": {...}}), but a bare entity is
// accepted too. fallback is used when the server sent no entity at all.
func decodeCreated[E any, T any](raw json.RawMessage, entity func(E) *T, fallback func() *T) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fallback(), nil
	}

	var envelope E
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if out := entity(envelope); out != nil {
		return out, nil
	}

	var bare struct {
		ID *int `json:"id"`
	}
	if err := json.Unmarshal(trimmed, &bare); err == nil && bare.ID != nil {
		var out T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("malformed response: %w", err)
		}
		return &out, nil
	}
	return fallback(), nil
}
