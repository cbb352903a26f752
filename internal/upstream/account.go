package upstream

import (
	"context"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

func (c *Client) License(ctx context.Context, token string) (*domain.License, error) {
	var out domain.License
	if err := c.do(ctx, http.MethodGet, "/api/v1/client/license", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetLicense clears the server fingerprint bound to the caller's license.
func (c *Client) ResetLicense(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/client/license/reset", token, nil, nil)
}

func (c *Client) UpdateLicenseIP(ctx context.Context, token, ip string) error {
	in := struct {
		IP string `json:"ip"`
	}{ip}
	return c.do(ctx, http.MethodPost, "/api/v1/client/license/ip", token, in, nil)
}

func (c *Client) Sales(ctx context.Context, token string) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := c.do(ctx, http.MethodGet, "/api/v1/client/sales", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TopBuyers(ctx context.Context, token string) ([]domain.TopBuyer, error) {
	var out []domain.TopBuyer
	if err := c.do(ctx, http.MethodGet, "/api/v1/client/top-buyers", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Activities(ctx context.Context, token string) ([]domain.ActivityLog, error) {
	var out []domain.ActivityLog
	if err := c.do(ctx, http.MethodGet, "/api/v1/client/activities", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
