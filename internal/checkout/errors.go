package checkout

import "errors"

var (
	// ErrEmptyCart refuses a submission before any network call happens.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSubmitInFlight rejects a duplicate submit while one is running.
	ErrSubmitInFlight = errors.New("checkout submission already in progress")

	// ErrVerifyInFlight rejects a duplicate verification call.
	ErrVerifyInFlight = errors.New("payment verification already in progress")

	// ErrPaymentPending rejects a new submit while an intent is awaiting payment.
	ErrPaymentPending = errors.New("a payment is already pending")

	// ErrNotAwaitingPayment means there is no pending intent to verify or cancel.
	ErrNotAwaitingPayment = errors.New("no pending payment")

	// ErrCheckoutComplete means the session already succeeded; no further
	// verification is offered.
	ErrCheckoutComplete = errors.New("checkout already completed")

	// ErrPaymentNotConfirmed is the non-success verification outcome: the
	// session returns to awaiting payment and the user may retry.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed yet")
)
