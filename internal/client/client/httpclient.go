package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
	"github.com/dmitrijs2005/mediacatalog/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const requestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept for the log.
const maxErrorBody = 512

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the API rooted at baseURL. The base URL
// is used verbatim apart from a trailing slash, which is dropped so paths
// can be appended.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
		logger:  logger.With("module", "api_client"),
	}, nil
}

func (c *HTTPClient) FetchCatalog(ctx context.Context) ([]*models.MediaItem, error) {
	var items []*models.MediaItem

	status, body, err := c.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: catalog: %w", ErrMalformedResponse, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: catalog is not an array", ErrMalformedResponse)
	}
	if err := models.ValidateSnapshot(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return items, nil
}

func (c *HTTPClient) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	var reply struct {
		IsBookmarked *bool `json:"isBookmarked"`
	}

	status, body, err := c.do(ctx, http.MethodPut, "/movies/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	if !isSuccess(status) {
		return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return false, fmt.Errorf("%w: bookmark: %w", ErrMalformedResponse, err)
	}
	if reply.IsBookmarked == nil {
		return false, fmt.Errorf("%w: bookmark reply without isBookmarked", ErrMalformedResponse)
	}

	return *reply.IsBookmarked, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.auth(ctx, "/api/signIn", creds)
}

func (c *HTTPClient) SignUp(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	return c.auth(ctx, "/api/signUp", reg)
}

func (c *HTTPClient) auth(ctx context.Context, path string, payload any) (*models.AuthResponse, error) {
	var reply struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}

	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	decodeErr := json.Unmarshal(body, &reply)
	switch {
	case decodeErr == nil && reply.Success != nil && (isSuccess(status) || isClientError(status)):
		return &models.AuthResponse{Success: *reply.Success && isSuccess(status), Message: reply.Message}, nil
	case !isSuccess(status):
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	case decodeErr != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, path, decodeErr)
	default:
		return nil, fmt.Errorf("%w: %s reply without success", ErrMalformedResponse, path)
	}
}

// do sends one request and returns the status and the full body. Transport
// failures come back wrapped in ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return 0, nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, mapTransportError(err)
	}

	c.logger.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
		"request_id", requestID,
	)
	if !isSuccess(resp.StatusCode) {
		c.logger.Debug(ctx, "error body", "request_id", requestID, "body", truncate(b, maxErrorBody))
	}

	return resp.StatusCode, b, nil
}

// mapTransportError keeps the cause reachable: callers can still tell a
// cancelled context from a refused connection with errors.Is.
func mapTransportError(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func isClientError(status int) bool {
	return status >= 400 && status < 500
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
