package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnreachable marks transport-level failures: no response at all, or the
// circuit breaker refusing to try.
var ErrUnreachable = errors.New("store api unreachable")

// APIError is a non-success response from the store API. Message is safe to
// show to the user as-is.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api: %d %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether the upstream rejected the bearer token. The
// caller is expected to drop its cached session in that case.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

const maxPlainMessage = 140

// newAPIError extracts a display message from an error body. A structured
// body surfaces its message verbatim; anything else (HTML error pages, proxy
// noise) is stripped of markup and truncated.
func newAPIError(statusCode int, body []byte) *APIError {
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		msg := structured.Message
		if msg == "" {
			msg = structured.Error
		}
		if msg != "" {
			return &APIError{StatusCode: statusCode, Code: structured.Code, Message: msg}
		}
	}
	return &APIError{StatusCode: statusCode, Message: sanitizeBody(body)}
}

func sanitizeBody(body []byte) string {
	var b strings.Builder
	inTag := false
	for _, r := range string(body) {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	msg := strings.Join(strings.Fields(b.String()), " ")
	if len(msg) > maxPlainMessage {
		msg = strings.TrimSpace(msg[:maxPlainMessage]) + "..."
	}
	if msg == "" {
		msg = "request failed"
	}
	return msg
}
