package session

import (
	"context"
	"fmt"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Authenticator is the slice of the store API the session manager needs.
// Authentication itself is entirely upstream; this side only caches the
// result.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password, email string) (string, error)
	Profile(ctx context.Context, token string) (*domain.UserSummary, error)
}

type Manager struct {
	store  Store
	api    Authenticator
	events *Broker
}

func NewManager(store Store, api Authenticator, events *Broker) *Manager {
	return &Manager{store: store, api: api, events: events}
}

// Login authenticates upstream, fetches the profile and persists both as one
// record. A profile failure leaves no half-written session behind.
func (m *Manager) Login(ctx context.Context, sessionID, username, password string) (*Record, error) {
	token, err := m.api.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	profile, err := m.api.Profile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	rec := &Record{Token: token, User: *profile}
	if err := m.store.Put(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.events.Publish(Event{Type: EventLoggedIn, SessionID: sessionID, Username: profile.Username})
	return rec, nil
}

func (m *Manager) Register(ctx context.Context, sessionID, username, password, email string) (*Record, error) {
	token, err := m.api.Register(ctx, username, password, email)
	if err != nil {
		return nil, err
	}
	profile, err := m.api.Profile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	rec := &Record{Token: token, User: *profile}
	if err := m.store.Put(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.events.Publish(Event{Type: EventLoggedIn, SessionID: sessionID, Username: profile.Username})
	return rec, nil
}

// Current returns the stored auth record, ErrNoSession when absent.
func (m *Manager) Current(ctx context.Context, sessionID string) (*Record, error) {
	return m.store.Get(ctx, sessionID)
}

// Logout drops the record and announces it, so other components (header
// state, in-flight checkout sessions) react immediately.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	m.events.Publish(Event{Type: EventLoggedOut, SessionID: sessionID})
	return nil
}
