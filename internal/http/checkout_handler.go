package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/checkout"
	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// CheckoutFlow is the state machine as the handlers consume it.
type CheckoutFlow interface {
	Get(sessionID string) checkout.Session
	Submit(ctx context.Context, sessionID string, form domain.CheckoutForm, couponCode string) (checkout.SubmitResult, error)
	Verify(ctx context.Context, sessionID string) (checkout.Session, error)
	Cancel(sessionID string) error
}

type CheckoutHandler struct {
	flow CheckoutFlow
}

func NewCheckoutHandler(flow CheckoutFlow) *CheckoutHandler {
	return &CheckoutHandler{flow: flow}
}

type submitRequestDTO struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Document     string `json:"document"`
	CouponCode   string `json:"couponCode"`
}

type checkoutViewDTO struct {
	Status        domain.CheckoutStatus `json:"status"`
	Form          domain.CheckoutForm   `json:"form"`
	CouponCode    string                `json:"couponCode,omitempty"`
	PaymentIntent *domain.PaymentIntent `json:"paymentIntent,omitempty"`
	LicenseKey    string                `json:"licenseKey,omitempty"`
	LastError     string                `json:"lastError,omitempty"`
	RedirectURL   string                `json:"redirectUrl,omitempty"`
}

func checkoutView(s checkout.Session) checkoutViewDTO {
	return checkoutViewDTO{
		Status:        s.Status,
		Form:          s.Form,
		CouponCode:    s.CouponCode,
		PaymentIntent: s.Intent,
		LicenseKey:    s.LicenseKey,
		LastError:     s.LastError,
	}
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	respondJSON(w, http.StatusOK, checkoutView(h.flow.Get(sid)))
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CustomerName == "" || req.Email == "" || req.Document == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "customerName, email and document are required")
		return
	}

	sid := sessionIDFromContext(r.Context())
	form := domain.CheckoutForm{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Document:     req.Document,
	}
	result, err := h.flow.Submit(r.Context(), sid, form, req.CouponCode)
	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cannot check out an empty cart")
		return
	case errors.Is(err, checkout.ErrSubmitInFlight), errors.Is(err, checkout.ErrVerifyInFlight):
		respondError(w, http.StatusConflict, "in_flight", err.Error())
		return
	case errors.Is(err, checkout.ErrPaymentPending):
		respondError(w, http.StatusConflict, "payment_pending", "a payment is already awaiting confirmation")
		return
	case errors.Is(err, checkout.ErrCheckoutComplete):
		respondError(w, http.StatusConflict, "already_completed", "this checkout already completed")
		return
	default:
		// The session keeps the form and the display message; the client
		// lands back on the editing view.
		respondUpstreamError(w, err)
		return
	}

	if result.RedirectURL != "" {
		respondJSON(w, http.StatusOK, checkoutViewDTO{
			Status:      domain.CheckoutStatusEditing,
			RedirectURL: result.RedirectURL,
		})
		return
	}
	respondJSON(w, http.StatusCreated, checkoutView(result.Session))
}

type verifyResponseDTO struct {
	Status     domain.CheckoutStatus `json:"status"`
	Confirmed  bool                  `json:"confirmed"`
	LicenseKey string                `json:"licenseKey,omitempty"`
	Message    string                `json:"message,omitempty"`
}

// POST /api/v1/checkout/verify — the user-initiated "I already paid" poll.
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	s, err := h.flow.Verify(r.Context(), sid)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, verifyResponseDTO{
			Status:     s.Status,
			Confirmed:  true,
			LicenseKey: s.LicenseKey,
		})
	case errors.Is(err, checkout.ErrPaymentNotConfirmed):
		respondJSON(w, http.StatusOK, verifyResponseDTO{
			Status:  s.Status,
			Message: "payment not confirmed yet, try again in a moment",
		})
	case errors.Is(err, checkout.ErrVerifyInFlight):
		respondError(w, http.StatusConflict, "in_flight", err.Error())
	case errors.Is(err, checkout.ErrCheckoutComplete):
		respondError(w, http.StatusConflict, "already_completed", "this checkout already completed")
	case errors.Is(err, checkout.ErrNotAwaitingPayment):
		respondError(w, http.StatusConflict, "no_pending_payment", "there is no payment to verify")
	default:
		respondUpstreamError(w, err)
	}
}

// DELETE /api/v1/checkout — close the payment view. Local discard only; the
// upstream transaction may still settle.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	if err := h.flow.Cancel(sid); err != nil {
		respondError(w, http.StatusConflict, "no_pending_payment", "there is no pending payment to cancel")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
