package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// UserSummary is the cached profile returned by GET /client/me.
type UserSummary struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

func (u UserSummary) IsAdmin() bool {
	return u.Role == RoleAdmin
}
