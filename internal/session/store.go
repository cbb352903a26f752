package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Record is the authenticated session: the bearer token and the cached user
// summary, stored as a single value so they exist together or not at all.
type Record struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

// Older deployments sometimes stored the user payload as a bare username
// string. Migrate it once at load instead of branching forever.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Token = raw.Token
	if len(raw.User) == 0 {
		return nil
	}

	var user domain.UserSummary
	if err := json.Unmarshal(raw.User, &user); err == nil {
		r.User = user
		return nil
	}
	var username string
	if err := json.Unmarshal(raw.User, &username); err != nil {
		return fmt.Errorf("unrecognized user payload: %w", err)
	}
	r.User = domain.UserSummary{Username: username, Role: domain.RoleUser}
	return nil
}

// Store persists auth records by browser session id.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Record, error)
	Put(ctx context.Context, sessionID string, rec *Record) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNoSession = errors.New("no session")
