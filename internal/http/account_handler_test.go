package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyPlugin/platform-app/internal/domain"
	"github.com/LegacyPlugin/platform-app/internal/session"
	"github.com/LegacyPlugin/platform-app/internal/upstream"
)

type mockAccountAPI struct {
	license *domain.License
	err     error
}

func (m *mockAccountAPI) License(context.Context, string) (*domain.License, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.license, nil
}

func (m *mockAccountAPI) ResetLicense(context.Context, string) error { return m.err }

func (m *mockAccountAPI) UpdateLicenseIP(context.Context, string, string) error { return m.err }

func (m *mockAccountAPI) Sales(context.Context, string) ([]domain.Sale, error) {
	return nil, m.err
}

func (m *mockAccountAPI) TopBuyers(context.Context, string) ([]domain.TopBuyer, error) {
	return nil, m.err
}

func (m *mockAccountAPI) Activities(context.Context, string) ([]domain.ActivityLog, error) {
	return nil, m.err
}

type mockSessionManager struct {
	mockSessionReader
	loggedOut []string
}

func (m *mockSessionManager) Login(context.Context, string, string, string) (*session.Record, error) {
	return nil, nil
}

func (m *mockSessionManager) Register(context.Context, string, string, string, string) (*session.Record, error) {
	return nil, nil
}

func (m *mockSessionManager) Logout(_ context.Context, sessionID string) error {
	m.loggedOut = append(m.loggedOut, sessionID)
	return nil
}

func accountRequest(t *testing.T) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/client/license", nil)
	req = withSessionID(req, "s1")
	return req.WithContext(context.WithValue(req.Context(), recordKey, &session.Record{
		Token: "tok-1",
		User:  domain.UserSummary{Username: "steve", Role: domain.RoleUser},
	}))
}

func TestLicense_ReturnsUpstreamPayload(t *testing.T) {
	api := &mockAccountAPI{license: &domain.License{LicenseKey: "LIC-123", Active: true}}
	h := NewAccountHandler(api, &mockSessionManager{mockSessionReader: *newMockSessionReader()})

	rec := httptest.NewRecorder()
	h.License(rec, accountRequest(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "LIC-123")
}

func TestLicense_DeadTokenForcesLogout(t *testing.T) {
	api := &mockAccountAPI{err: &upstream.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired"}}
	sessions := &mockSessionManager{mockSessionReader: *newMockSessionReader()}
	h := NewAccountHandler(api, sessions)

	rec := httptest.NewRecorder()
	h.License(rec, accountRequest(t))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"s1"}, sessions.loggedOut, "the dead session must be dropped")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "session_expired", body.Code)
	assert.Equal(t, loginPath, body.Redirect)
}

func TestLicense_OtherUpstreamErrorsPassThrough(t *testing.T) {
	api := &mockAccountAPI{err: &upstream.APIError{StatusCode: http.StatusNotFound, Message: "no license"}}
	sessions := &mockSessionManager{mockSessionReader: *newMockSessionReader()}
	h := NewAccountHandler(api, sessions)

	rec := httptest.NewRecorder()
	h.License(rec, accountRequest(t))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, sessions.loggedOut, "a 404 is not a dead token")
}

func TestUpdateLicenseIP_RequiresIP(t *testing.T) {
	h := NewAccountHandler(&mockAccountAPI{}, &mockSessionManager{mockSessionReader: *newMockSessionReader()})

	req := accountRequest(t)
	req.Body = http.NoBody
	rec := httptest.NewRecorder()
	h.UpdateLicenseIP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
