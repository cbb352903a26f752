package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

const maxResponseBytes = 1 << 20 // 1MB

// Client talks to the remote store API. All business logic (pricing, coupon
// validation, license issuance, settlement) lives behind it; this side only
// sends requests and interprets status codes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:        "store-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// do performs one round trip. Only transport failures count against the
// breaker; a 4xx/5xx with a body is a valid answer from the API and becomes
// an *APIError instead.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var statusCode int
	body, err := c.breaker.Execute(func() ([]byte, error) {
		resp, errDo := c.httpClient.Do(req)
		if errDo != nil {
			return nil, errDo
		}
		defer resp.Body.Close()
		data, errRead := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if errRead != nil {
			return nil, errRead
		}
		statusCode = resp.StatusCode
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open", ErrUnreachable)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return newAPIError(statusCode, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if errDec := json.Unmarshal(body, out); errDec != nil {
		return fmt.Errorf("decode response: %w", errDec)
	}
	return nil
}

// Authenticate exchanges credentials for a bearer token. There is no refresh
// flow; the token is held until the upstream rejects it.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/authenticate", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, username, password, email string) (string, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email,omitempty"`
	}{username, password, email}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.UserSummary, error) {
	var out domain.UserSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/client/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plugins fetches the public catalog.
func (c *Client) Plugins(ctx context.Context) ([]domain.Plugin, error) {
	var out []domain.Plugin
	if err := c.do(ctx, http.MethodGet, "/api/v1/store/plugins", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
