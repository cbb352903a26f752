package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// AdminAPI is the back-office surface of the store API.
type AdminAPI interface {
	AdminListPlugins(ctx context.Context, token string) ([]domain.Plugin, error)
	AdminCreatePlugin(ctx context.Context, token string, req domain.PluginRequest) (*domain.Plugin, error)
	AdminUpdatePlugin(ctx context.Context, token string, id int64, req domain.PluginRequest) error
	AdminDeletePlugin(ctx context.Context, token string, id int64) error
	AdminListPluginVersions(ctx context.Context, token string, pluginID int64) ([]domain.PluginVersion, error)
	AdminCreatePluginVersion(ctx context.Context, token string, pluginID int64, req domain.PluginVersionRequest) error
	AdminDeletePluginVersion(ctx context.Context, token string, pluginID, versionID int64) error
	AdminListPartners(ctx context.Context, token string) ([]domain.Partner, error)
	AdminCreatePartner(ctx context.Context, token string, req domain.PartnerRequest) error
	AdminDeletePartner(ctx context.Context, token string, id int64) error
	AdminListCoupons(ctx context.Context, token string) ([]domain.Coupon, error)
	AdminCreateCoupon(ctx context.Context, token string, req domain.CouponRequest) error
	AdminDeleteCoupon(ctx context.Context, token string, id int64) error
	AdminListLicenses(ctx context.Context, token string) ([]domain.License, error)
	AdminCreateLicense(ctx context.Context, token string, req domain.LicenseRequest) error
	AdminResetLicense(ctx context.Context, token, licenseKey string) error
	AdminListSales(ctx context.Context, token string) ([]domain.AdminSale, error)
	AdminDeleteSale(ctx context.Context, token string, id int64) error
	AdminListUsers(ctx context.Context, token string) ([]domain.AdminUser, error)
	AdminDashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error)
}

// AdminHandler forwards back-office CRUD to the upstream. It adds no
// business logic; the admin gate has already vetted the caller's role.
type AdminHandler struct {
	api AdminAPI
}

func NewAdminHandler(api AdminAPI) *AdminHandler {
	return &AdminHandler{api: api}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	stats, err := h.api.AdminDashboardStats(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListPlugins(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	plugins, err := h.api.AdminListPlugins(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plugins)
}

func (h *AdminHandler) CreatePlugin(w http.ResponseWriter, r *http.Request) {
	var req domain.PluginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	rec := recordFromContext(r.Context())
	plugin, err := h.api.AdminCreatePlugin(r.Context(), rec.Token, req)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, plugin)
}

func (h *AdminHandler) UpdatePlugin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	var req domain.PluginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminUpdatePlugin(r.Context(), rec.Token, id, req); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeletePlugin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminDeletePlugin(r.Context(), rec.Token, id); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListPluginVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	rec := recordFromContext(r.Context())
	versions, err := h.api.AdminListPluginVersions(r.Context(), rec.Token, id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, versions)
}

func (h *AdminHandler) CreatePluginVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	var req domain.PluginVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminCreatePluginVersion(r.Context(), rec.Token, id, req); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *AdminHandler) DeletePluginVersion(w http.ResponseWriter, r *http.Request) {
	id, okID := pathID(r, "id")
	versionID, okVersion := pathID(r, "versionId")
	if !okID || !okVersion {
		respondError(w, http.StatusBadRequest, "invalid_id", "ids must be positive integers")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminDeletePluginVersion(r.Context(), rec.Token, id, versionID); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	partners, err := h.api.AdminListPartners(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, partners)
}

func (h *AdminHandler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var req domain.PartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminCreatePartner(r.Context(), rec.Token, req); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *AdminHandler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminDeletePartner(r.Context(), rec.Token, id); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	coupons, err := h.api.AdminListCoupons(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}

func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req domain.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminCreateCoupon(r.Context(), rec.Token, req); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminDeleteCoupon(r.Context(), rec.Token, id); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListLicenses(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	licenses, err := h.api.AdminListLicenses(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, licenses)
}

func (h *AdminHandler) CreateLicense(w http.ResponseWriter, r *http.Request) {
	var req domain.LicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminCreateLicense(r.Context(), rec.Token, req); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *AdminHandler) ResetLicense(w http.ResponseWriter, r *http.Request) {
	licenseKey := chi.URLParam(r, "key")
	if licenseKey == "" {
		respondError(w, http.StatusBadRequest, "invalid_key", "license key is required")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminResetLicense(r.Context(), rec.Token, licenseKey); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	sales, err := h.api.AdminListSales(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *AdminHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}
	rec := recordFromContext(r.Context())
	if err := h.api.AdminDeleteSale(r.Context(), rec.Token, id); err != nil {
		respondUpstreamError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rec := recordFromContext(r.Context())
	users, err := h.api.AdminListUsers(r.Context(), rec.Token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
