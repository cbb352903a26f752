package checkout

import "github.com/LegacyPlugin/platform-app/internal/domain"

// Session tracks one browser session's progress from cart contents to a
// settled payment. Sessions live in process memory only; a restart drops
// them, which matches the transient lifecycle of the flow.
type Session struct {
	ID         string
	Status     domain.CheckoutStatus
	Form       domain.CheckoutForm
	CouponCode string
	Intent     *domain.PaymentIntent
	LicenseKey string
	LastError  string

	// products is the identifier list snapshotted at submit time. Cart
	// mutations after submit do not affect an in-flight checkout.
	products []string
}

func newSession(id string) *Session {
	return &Session{ID: id, Status: domain.CheckoutStatusEditing}
}

// SubmitResult is what a submission resolves to: either an updated session
// (PIX payload stored, payment pending) or a redirect URL that takes the
// flow out of the state machine entirely.
type SubmitResult struct {
	Session     Session
	RedirectURL string
}
