package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/LegacyPlugin/platform-app/internal/domain"
	"github.com/LegacyPlugin/platform-app/internal/upstream"
)

// purchaseApproved is the gateway status token that settles a transaction.
const purchaseApproved = "APPROVED"

// PaymentGateway is the slice of the store API the state machine needs.
// Consumers define this interface, not the HTTP client.
type PaymentGateway interface {
	Checkout(ctx context.Context, req domain.GatewayCheckoutRequest) (*domain.GatewayCheckoutResponse, error)
	Purchase(ctx context.Context, req domain.GatewayPurchaseRequest) (*domain.GatewayPurchaseResponse, error)
}

// CartAccess reads and clears the session's cart.
type CartAccess interface {
	Items(ctx context.Context, sessionID string) []domain.CartItem
	Clear(ctx context.Context, sessionID string) error
}

// Manager drives checkout sessions through
// EDITING -> SUBMITTING -> AWAITING_PAYMENT -> POLLING -> SUCCEEDED,
// with failed submissions falling back to EDITING.
type Manager struct {
	gateway  PaymentGateway
	cart     CartAccess
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(gateway PaymentGateway, cart CartAccess) *Manager {
	return &Manager{
		gateway:  gateway,
		cart:     cart,
		sessions: make(map[string]*Session),
	}
}

// Get returns a copy of the session's current state, a fresh EDITING session
// if none exists yet.
func (m *Manager) Get(sessionID string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return *s
	}
	return *newSession(sessionID)
}

// Drop forgets the session's checkout state. Used on logout; the cart is
// deliberately left alone.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Submit snapshots the cart and asks the gateway for a payment intent.
// Exactly one submission may be in flight per session; duplicates are
// rejected without touching the network. Each attempt carries a fresh
// idempotency key.
func (m *Manager) Submit(ctx context.Context, sessionID string, form domain.CheckoutForm, couponCode string) (SubmitResult, error) {
	items := m.cart.Items(ctx, sessionID)
	if len(items) == 0 {
		return SubmitResult{}, ErrEmptyCart
	}

	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = newSession(sessionID)
		m.sessions[sessionID] = s
	}
	switch s.Status {
	case domain.CheckoutStatusSubmitting:
		m.mu.Unlock()
		return SubmitResult{}, ErrSubmitInFlight
	case domain.CheckoutStatusPolling:
		m.mu.Unlock()
		return SubmitResult{}, ErrVerifyInFlight
	case domain.CheckoutStatusAwaitingPayment:
		m.mu.Unlock()
		return SubmitResult{}, ErrPaymentPending
	}
	if s.Status.IsTerminal() {
		m.mu.Unlock()
		return SubmitResult{}, ErrCheckoutComplete
	}

	s.Status = domain.CheckoutStatusSubmitting
	s.Form = form
	s.CouponCode = strings.TrimSpace(couponCode)
	s.LastError = ""
	s.products = domain.CartIdentifiers(items)

	req := domain.GatewayCheckoutRequest{
		CustomerName:   form.CustomerName,
		Email:          form.Email,
		Document:       form.Document,
		CouponCode:     s.CouponCode, // omitted from the wire when blank
		Products:       s.products,
		IdempotencyKey: uuid.NewString(),
	}
	m.mu.Unlock()

	resp, err := m.gateway.Checkout(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		s.Status = domain.CheckoutStatusFailed
		s.LastError = displayMessage(err)
		return SubmitResult{Session: *s}, err
	}

	if resp.RedirectURL != "" {
		// Full navigation away; nothing further happens locally.
		delete(m.sessions, sessionID)
		return SubmitResult{RedirectURL: resp.RedirectURL}, nil
	}

	if resp.TransactionID == "" || resp.CopyPasteCode == "" {
		s.Status = domain.CheckoutStatusFailed
		s.LastError = "checkout could not be completed"
		return SubmitResult{Session: *s}, errors.New("gateway returned neither payment payload nor redirect")
	}

	// Payment not confirmed yet: keep the cart intact.
	s.Status = domain.CheckoutStatusAwaitingPayment
	s.Intent = &domain.PaymentIntent{
		TransactionID: resp.TransactionID,
		QRCodePayload: resp.QRCodePayload,
		CopyPasteCode: resp.CopyPasteCode,
	}
	return SubmitResult{Session: *s}, nil
}

// Verify is the user-initiated "I already paid" action. It may be retried
// any number of times; only an approved status settles the session, clears
// the cart and records the license key.
func (m *Manager) Verify(ctx context.Context, sessionID string) (Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return Session{}, ErrNotAwaitingPayment
	}
	switch {
	case s.Status.IsTerminal():
		m.mu.Unlock()
		return *s, ErrCheckoutComplete
	case s.Status == domain.CheckoutStatusPolling:
		m.mu.Unlock()
		return *s, ErrVerifyInFlight
	case s.Status != domain.CheckoutStatusAwaitingPayment || s.Intent == nil:
		m.mu.Unlock()
		return *s, ErrNotAwaitingPayment
	}

	s.Status = domain.CheckoutStatusPolling
	req := domain.GatewayPurchaseRequest{
		TransactionID: s.Intent.TransactionID,
		CustomerName:  s.Form.CustomerName,
		Email:         s.Form.Email,
		Document:      s.Form.Document,
		Products:      append([]string(nil), s.products...),
	}
	m.mu.Unlock()

	resp, err := m.gateway.Purchase(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		s.Status = domain.CheckoutStatusAwaitingPayment
		s.LastError = displayMessage(err)
		return *s, err
	}

	if !strings.EqualFold(resp.Status, purchaseApproved) {
		s.Status = domain.CheckoutStatusAwaitingPayment
		return *s, ErrPaymentNotConfirmed
	}

	s.Status = domain.CheckoutStatusSucceeded
	s.LicenseKey = resp.LicenseKey
	s.LastError = ""
	if errClear := m.cart.Clear(ctx, sessionID); errClear != nil {
		log.Printf("clear cart after purchase %s: %v", s.Intent.TransactionID, errClear)
	}
	return *s, nil
}

// Cancel closes the payment view: the intent is discarded locally and the
// session returns to editing with the form preserved. Nothing is cancelled
// upstream; the transaction may still settle on the server.
func (m *Manager) Cancel(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.Status != domain.CheckoutStatusAwaitingPayment {
		return ErrNotAwaitingPayment
	}
	s.Intent = nil
	s.products = nil
	s.Status = domain.CheckoutStatusEditing
	return nil
}

// displayMessage keeps the upstream's own message when it sent one and falls
// back to a generic connection error otherwise.
func displayMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "could not reach the payment service"
}
