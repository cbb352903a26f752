package domain

import "github.com/shopspring/decimal"

// License is the server-issued entitlement record. This service only displays
// it and requests mutations; key generation and fingerprint binding are
// upstream concerns.
type License struct {
	ID                int64    `json:"id"`
	LicenseKey        string   `json:"licenseKey"`
	CustomerName      string   `json:"customerName"`
	Email             string   `json:"email"`
	ValidUntil        *string  `json:"validUntil"`
	Active            bool     `json:"active"`
	ServerIP          *string  `json:"serverIp"`
	ServerFingerprint *string  `json:"serverFingerprint"`
	AllowedPlugins    []string `json:"allowedPlugins"`
}

type Sale struct {
	ID         int64           `json:"id"`
	PluginName string          `json:"pluginName"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  string          `json:"createdAt"`
}

type TopBuyer struct {
	Username   string          `json:"username"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	AvatarURL  string          `json:"avatarUrl,omitempty"`
}

type ActivityLog struct {
	Action    string `json:"action"`
	Details   string `json:"details"`
	IPAddress string `json:"ipAddress"`
	Timestamp string `json:"timestamp"`
}
