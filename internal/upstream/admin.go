package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Admin namespace. Plain CRUD forwarding; authorization is enforced twice,
// by the gateway's admin gate and again by the upstream per request.

func (c *Client) AdminListPlugins(ctx context.Context, token string) ([]domain.Plugin, error) {
	var out []domain.Plugin
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/plugins", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCreatePlugin(ctx context.Context, token string, req domain.PluginRequest) (*domain.Plugin, error) {
	var out domain.Plugin
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/plugins", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdatePlugin(ctx context.Context, token string, id int64, req domain.PluginRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/admin/plugins/%d", id), token, req, nil)
}

func (c *Client) AdminDeletePlugin(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/plugins/%d", id), token, nil, nil)
}

func (c *Client) AdminListPluginVersions(ctx context.Context, token string, pluginID int64) ([]domain.PluginVersion, error) {
	var out []domain.PluginVersion
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/admin/plugins/%d/versions", pluginID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCreatePluginVersion(ctx context.Context, token string, pluginID int64, req domain.PluginVersionRequest) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/admin/plugins/%d/versions", pluginID), token, req, nil)
}

func (c *Client) AdminDeletePluginVersion(ctx context.Context, token string, pluginID, versionID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/plugins/%d/versions/%d", pluginID, versionID), token, nil, nil)
}

func (c *Client) AdminListPartners(ctx context.Context, token string) ([]domain.Partner, error) {
	var out []domain.Partner
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/partners", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCreatePartner(ctx context.Context, token string, req domain.PartnerRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/admin/partners", token, req, nil)
}

func (c *Client) AdminDeletePartner(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/partners/%d", id), token, nil, nil)
}

func (c *Client) AdminListCoupons(ctx context.Context, token string) ([]domain.Coupon, error) {
	var out []domain.Coupon
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/coupons", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCreateCoupon(ctx context.Context, token string, req domain.CouponRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/admin/coupons", token, req, nil)
}

func (c *Client) AdminDeleteCoupon(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/coupons/%d", id), token, nil, nil)
}

func (c *Client) AdminListLicenses(ctx context.Context, token string) ([]domain.License, error) {
	var out []domain.License
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/licenses", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminCreateLicense(ctx context.Context, token string, req domain.LicenseRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/admin/licenses", token, req, nil)
}

func (c *Client) AdminResetLicense(ctx context.Context, token, licenseKey string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/admin/licenses/%s/reset", licenseKey), token, nil, nil)
}

func (c *Client) AdminListSales(ctx context.Context, token string) ([]domain.AdminSale, error) {
	var out []domain.AdminSale
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/sales", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminDeleteSale(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/sales/%d", id), token, nil, nil)
}

func (c *Client) AdminListUsers(ctx context.Context, token string) ([]domain.AdminUser, error) {
	var out []domain.AdminUser
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminDashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/dashboard/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
