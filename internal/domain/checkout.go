package domain

type CheckoutStatus string

const (
	CheckoutStatusEditing         CheckoutStatus = "EDITING"
	CheckoutStatusSubmitting      CheckoutStatus = "SUBMITTING"
	CheckoutStatusAwaitingPayment CheckoutStatus = "AWAITING_PAYMENT"
	CheckoutStatusPolling         CheckoutStatus = "POLLING"
	CheckoutStatusSucceeded       CheckoutStatus = "SUCCEEDED"
	CheckoutStatusFailed          CheckoutStatus = "FAILED"
)

// IsTerminal reports whether the session is finished. FAILED is not terminal:
// a failed submission drops back to editing with the form preserved.
func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusSucceeded
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

// CheckoutForm holds the customer fields collected before payment.
type CheckoutForm struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Document     string `json:"document"`
}

// PaymentIntent is produced once per checkout submission and is immutable
// after creation. It does not carry the product identifiers; verification
// re-sends them alongside the transaction id.
type PaymentIntent struct {
	TransactionID string `json:"transactionId"`
	QRCodePayload string `json:"qrCodePayload"`
	CopyPasteCode string `json:"copyPasteCode"`
}

// GatewayCheckoutRequest is the body of POST /gateway/checkout.
type GatewayCheckoutRequest struct {
	CustomerName   string   `json:"customerName"`
	Email          string   `json:"email"`
	Document       string   `json:"document"`
	CouponCode     string   `json:"couponCode,omitempty"`
	Products       []string `json:"products"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

// GatewayCheckoutResponse carries either a PIX payload or a redirect URL.
type GatewayCheckoutResponse struct {
	TransactionID string `json:"transactionId"`
	QRCodePayload string `json:"qrCodePayload"`
	CopyPasteCode string `json:"copyPasteCode"`
	RedirectURL   string `json:"redirectUrl"`
}

// GatewayPurchaseRequest is the body of POST /gateway/purchase, the manual
// "I already paid" verification.
type GatewayPurchaseRequest struct {
	TransactionID string   `json:"transactionId"`
	CustomerName  string   `json:"customerName"`
	Email         string   `json:"email"`
	Document      string   `json:"document"`
	Products      []string `json:"products"`
}

type GatewayPurchaseResponse struct {
	Status     string `json:"status"`
	LicenseKey string `json:"licenseKey,omitempty"`
}
