package domain

import "github.com/shopspring/decimal"

// Types for the /admin namespace. They mirror the store API's DTOs one to
// one; the gateway forwards them without business logic of its own.

type PluginRequest struct {
	Name               string          `json:"name"`
	Identifier         string          `json:"identifier"`
	Price              decimal.Decimal `json:"price"`
	CompatibleVersions string          `json:"compatibleVersions,omitempty"`
	Features           string          `json:"features,omitempty"`
	Commands           string          `json:"commands,omitempty"`
	Permissions        string          `json:"permissions,omitempty"`
	VideoPreview       string          `json:"videoPreview,omitempty"`
	ImageURLs          []string        `json:"imageUrls,omitempty"`
}

type PluginVersion struct {
	ID         int64  `json:"id"`
	Version    string `json:"version"`
	FileName   string `json:"fileName"`
	Changelog  string `json:"changelog"`
	UploadDate string `json:"uploadDate"`
}

type PluginVersionRequest struct {
	Version   string `json:"version"`
	FileName  string `json:"fileName"`
	Changelog string `json:"changelog,omitempty"`
}

type Partner struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Slug              string          `json:"slug"`
	PixKey            string          `json:"pixKey"`
	Balance           decimal.Decimal `json:"balance"`
	CommissionPercent float64         `json:"commissionPercent"`
	Active            bool            `json:"active"`
}

type PartnerRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Slug              string  `json:"slug"`
	PixKey            string  `json:"pixKey"`
	CommissionPercent float64 `json:"commissionPercent"`
}

type Coupon struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
	ValidUntil      *string `json:"validUntil"`
	UsageLimit      int     `json:"usageLimit"`
	Usages          int     `json:"usages"`
	Active          bool    `json:"active"`
}

type CouponRequest struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
	ValidUntil      *string `json:"validUntil"`
	UsageLimit      int     `json:"usageLimit"`
}

type LicenseRequest struct {
	CustomerName     string  `json:"customerName"`
	Email            string  `json:"email"`
	ValidUntil       *string `json:"validUntil"`
	AllowedPluginIDs []int64 `json:"allowedPluginIds"`
}

type AdminUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

type AdminSale struct {
	ID            int64           `json:"id"`
	PluginName    string          `json:"pluginName"`
	CustomerEmail string          `json:"customerEmail"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     string          `json:"createdAt"`
}

type RevenuePoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type PluginSales struct {
	Name  string `json:"name"`
	Sales int64  `json:"sales"`
}

type DashboardStats struct {
	TotalLicenses  int64           `json:"totalLicenses"`
	ActiveLicenses int64           `json:"activeLicenses"`
	TotalUsers     int64           `json:"totalUsers"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	MonthlyRevenue decimal.Decimal `json:"monthlyRevenue"`
	TotalPartners  int64           `json:"totalPartners"`
	OnlineServers  int64           `json:"onlineServers"`
	AverageTicket  decimal.Decimal `json:"averageTicket"`
	RevenueChart   []RevenuePoint  `json:"revenueChart,omitempty"`
	TopPlugins     []PluginSales   `json:"topPlugins,omitempty"`
}
