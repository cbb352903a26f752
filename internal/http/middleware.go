package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/LegacyPlugin/platform-app/internal/domain"
	"github.com/LegacyPlugin/platform-app/internal/session"
)

type ctxKey int

const (
	sessionIDKey ctxKey = iota
	recordKey
)

const sessionCookie = "storefront_session"

const (
	loginPath     = "/auth/login"
	dashboardPath = "/dashboard"
)

// WithSession assigns every request a browser session id, minting one on
// first contact. The id keys the cart, auth record and checkout state.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(sessionCookie); err == nil {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value(sessionIDKey).(string); ok {
		return sid
	}
	return ""
}

func recordFromContext(ctx context.Context) *session.Record {
	if rec, ok := ctx.Value(recordKey).(*session.Record); ok {
		return rec
	}
	return nil
}

// SessionReader is the slice of the session manager the gate needs.
type SessionReader interface {
	Current(ctx context.Context, sessionID string) (*session.Record, error)
}

// Gate guards protected routes on locally cached credentials. It never calls
// the auth API itself: an anonymous request is turned away before any
// protected handler, and with it any upstream call, can run.
type Gate struct {
	sessions SessionReader
}

func NewGate(sessions SessionReader) *Gate {
	return &Gate{sessions: sessions}
}

func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := sessionIDFromContext(r.Context())
		rec, err := g.sessions.Current(r.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Printf("session lookup error: %v", err)
			}
			respondRedirect(w, http.StatusUnauthorized, "unauthenticated", "sign in to continue", loginPath)
			return
		}
		ctx := context.WithValue(r.Context(), recordKey, rec)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin runs after RequireAuth and additionally checks the cached
// role. Non-admins land on their own dashboard, not the login page.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordFromContext(r.Context())
		if rec == nil || rec.User.Role != domain.RoleAdmin {
			respondRedirect(w, http.StatusForbidden, "forbidden", "admin access required", dashboardPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}
