package checkout

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyPlugin/platform-app/internal/domain"
	"github.com/LegacyPlugin/platform-app/internal/upstream"
)

type mockGateway struct {
	m sync.Mutex

	checkoutReqs []domain.GatewayCheckoutRequest
	checkoutResp *domain.GatewayCheckoutResponse
	checkoutErr  error
	// blockCheckout holds the Checkout call open until released, to test
	// the in-flight guard.
	blockCheckout chan struct{}

	purchaseReqs []domain.GatewayPurchaseRequest
	purchaseResp *domain.GatewayPurchaseResponse
	purchaseErr  error
}

func (m *mockGateway) Checkout(_ context.Context, req domain.GatewayCheckoutRequest) (*domain.GatewayCheckoutResponse, error) {
	m.m.Lock()
	m.checkoutReqs = append(m.checkoutReqs, req)
	block := m.blockCheckout
	m.m.Unlock()
	if block != nil {
		<-block
	}
	if m.checkoutErr != nil {
		return nil, m.checkoutErr
	}
	return m.checkoutResp, nil
}

func (m *mockGateway) Purchase(_ context.Context, req domain.GatewayPurchaseRequest) (*domain.GatewayPurchaseResponse, error) {
	m.m.Lock()
	m.purchaseReqs = append(m.purchaseReqs, req)
	m.m.Unlock()
	if m.purchaseErr != nil {
		return nil, m.purchaseErr
	}
	return m.purchaseResp, nil
}

func (m *mockGateway) checkoutCalls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.checkoutReqs)
}

type mockCart struct {
	m       sync.Mutex
	items   []domain.CartItem
	cleared bool
}

func (m *mockCart) Items(context.Context, string) []domain.CartItem {
	m.m.Lock()
	defer m.m.Unlock()
	return m.items
}

func (m *mockCart) Clear(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cleared = true
	m.items = nil
	return nil
}

func testForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		CustomerName: "Steve",
		Email:        "steve@example.com",
		Document:     "12345678900",
	}
}

func testCart() *mockCart {
	return &mockCart{items: []domain.CartItem{
		{ID: 1, Identifier: "essentials", Name: "Essentials", Price: decimal.RequireFromString("19.90")},
		{ID: 2, Identifier: "skins", Name: "Skins", Price: decimal.RequireFromString("9.90")},
	}}
}

func pixResponse() *domain.GatewayCheckoutResponse {
	return &domain.GatewayCheckoutResponse{
		TransactionID: "tx-1",
		QRCodePayload: "qr-payload",
		CopyPasteCode: "copy-paste",
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, &mockCart{})

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, gw.checkoutCalls(), "empty cart must never hit the gateway")
}

func TestSubmit_AwaitsPaymentOnPixPayload(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	cart := testCart()
	mgr := NewManager(gw, cart)

	result, err := mgr.Submit(context.Background(), "s1", testForm(), "")

	require.NoError(t, err)
	assert.Empty(t, result.RedirectURL)
	assert.Equal(t, domain.CheckoutStatusAwaitingPayment, result.Session.Status)
	require.NotNil(t, result.Session.Intent)
	assert.Equal(t, "tx-1", result.Session.Intent.TransactionID)
	assert.Equal(t, "copy-paste", result.Session.Intent.CopyPasteCode)
	assert.False(t, cart.cleared, "cart must survive until payment confirms")

	require.Len(t, gw.checkoutReqs, 1)
	assert.Equal(t, []string{"essentials", "skins"}, gw.checkoutReqs[0].Products)
	assert.NotEmpty(t, gw.checkoutReqs[0].IdempotencyKey)
}

func TestSubmit_TrimsCoupon(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "  SAVE10  ")

	require.NoError(t, err)
	require.Len(t, gw.checkoutReqs, 1)
	assert.Equal(t, "SAVE10", gw.checkoutReqs[0].CouponCode)
}

func TestSubmit_BlankCouponStaysEmpty(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "   ")

	require.NoError(t, err)
	require.Len(t, gw.checkoutReqs, 1)
	assert.Empty(t, gw.checkoutReqs[0].CouponCode)
}

func TestSubmit_RedirectEndsSession(t *testing.T) {
	gw := &mockGateway{checkoutResp: &domain.GatewayCheckoutResponse{RedirectURL: "https://pay.example.com/tx"}}
	mgr := NewManager(gw, testCart())

	result, err := mgr.Submit(context.Background(), "s1", testForm(), "")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/tx", result.RedirectURL)

	// The session is gone; the next read starts fresh.
	s := mgr.Get("s1")
	assert.Equal(t, domain.CheckoutStatusEditing, s.Status)
	assert.Nil(t, s.Intent)
}

func TestSubmit_GatewayErrorKeepsForm(t *testing.T) {
	gw := &mockGateway{checkoutErr: &upstream.APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "coupon expired",
	}}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "OLD10")
	require.Error(t, err)

	s := mgr.Get("s1")
	assert.Equal(t, domain.CheckoutStatusFailed, s.Status)
	assert.Equal(t, "coupon expired", s.LastError, "the upstream's own message is shown verbatim")
	assert.Equal(t, "Steve", s.Form.CustomerName, "form survives a failed attempt")
}

func TestSubmit_ConnectionErrorUsesGenericMessage(t *testing.T) {
	gw := &mockGateway{checkoutErr: upstream.ErrUnreachable}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.Error(t, err)

	s := mgr.Get("s1")
	assert.Equal(t, "could not reach the payment service", s.LastError)
}

func TestSubmit_RetryAfterFailureGetsFreshIdempotencyKey(t *testing.T) {
	gw := &mockGateway{checkoutErr: upstream.ErrUnreachable}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.Error(t, err)

	gw.checkoutErr = nil
	gw.checkoutResp = pixResponse()
	_, err = mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	require.Len(t, gw.checkoutReqs, 2)
	assert.NotEqual(t, gw.checkoutReqs[0].IdempotencyKey, gw.checkoutReqs[1].IdempotencyKey)
}

func TestSubmit_DuplicateWhileInFlight(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse(), blockCheckout: make(chan struct{})}
	mgr := NewManager(gw, testCart())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = mgr.Submit(context.Background(), "s1", testForm(), "")
	}()

	// Wait until the first submit reaches the gateway.
	require.Eventually(t, func() bool {
		return gw.checkoutCalls() == 1
	}, time.Second, 5*time.Millisecond)

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(gw.blockCheckout)
	<-done
	assert.Equal(t, 1, gw.checkoutCalls(), "the duplicate must not reach the gateway")
}

func TestSubmit_RejectedWhilePaymentPending(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	_, err = mgr.Submit(context.Background(), "s1", testForm(), "")
	assert.ErrorIs(t, err, ErrPaymentPending)
}

func TestVerify_WithoutPendingPayment(t *testing.T) {
	mgr := NewManager(&mockGateway{}, testCart())

	_, err := mgr.Verify(context.Background(), "s1")

	assert.ErrorIs(t, err, ErrNotAwaitingPayment)
}

func TestVerify_NotConfirmedKeepsWaiting(t *testing.T) {
	gw := &mockGateway{
		checkoutResp: pixResponse(),
		purchaseResp: &domain.GatewayPurchaseResponse{Status: "PENDING"},
	}
	cart := testCart()
	mgr := NewManager(gw, cart)

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	s, err := mgr.Verify(context.Background(), "s1")

	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
	assert.Equal(t, domain.CheckoutStatusAwaitingPayment, s.Status)
	assert.False(t, cart.cleared)
}

func TestVerify_ApprovedSettlesAndClearsCart(t *testing.T) {
	gw := &mockGateway{
		checkoutResp: pixResponse(),
		purchaseResp: &domain.GatewayPurchaseResponse{Status: "approved", LicenseKey: "LIC-123"},
	}
	cart := testCart()
	mgr := NewManager(gw, cart)

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	s, err := mgr.Verify(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStatusSucceeded, s.Status)
	assert.Equal(t, "LIC-123", s.LicenseKey)
	assert.True(t, cart.cleared, "a settled payment empties the cart")

	// Status comparison is case-insensitive: "approved" settled above.
	_, err = mgr.Verify(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrCheckoutComplete)
}

func TestVerify_ResendsCustomerAndProducts(t *testing.T) {
	gw := &mockGateway{
		checkoutResp: pixResponse(),
		purchaseResp: &domain.GatewayPurchaseResponse{Status: "APPROVED", LicenseKey: "LIC-123"},
	}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	_, err = mgr.Verify(context.Background(), "s1")
	require.NoError(t, err)

	require.Len(t, gw.purchaseReqs, 1)
	req := gw.purchaseReqs[0]
	assert.Equal(t, "tx-1", req.TransactionID)
	assert.Equal(t, "Steve", req.CustomerName)
	assert.Equal(t, []string{"essentials", "skins"}, req.Products)
}

func TestVerify_GatewayErrorReturnsToAwaiting(t *testing.T) {
	gw := &mockGateway{
		checkoutResp: pixResponse(),
		purchaseErr:  upstream.ErrUnreachable,
	}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	s, err := mgr.Verify(context.Background(), "s1")

	require.Error(t, err)
	assert.Equal(t, domain.CheckoutStatusAwaitingPayment, s.Status)

	// A later retry can still settle.
	gw.purchaseErr = nil
	gw.purchaseResp = &domain.GatewayPurchaseResponse{Status: "APPROVED", LicenseKey: "LIC-123"}
	s, err = mgr.Verify(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutStatusSucceeded, s.Status)
}

func TestCancel_ReturnsToEditing(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	require.NoError(t, mgr.Cancel("s1"))

	s := mgr.Get("s1")
	assert.Equal(t, domain.CheckoutStatusEditing, s.Status)
	assert.Nil(t, s.Intent)
	assert.Equal(t, "Steve", s.Form.CustomerName, "form survives a cancel")
}

func TestCancel_WithoutPendingPayment(t *testing.T) {
	mgr := NewManager(&mockGateway{}, testCart())

	assert.ErrorIs(t, mgr.Cancel("s1"), ErrNotAwaitingPayment)
}

func TestDrop_ForgetsSession(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	mgr.Drop("s1")

	s := mgr.Get("s1")
	assert.Equal(t, domain.CheckoutStatusEditing, s.Status)
	assert.Empty(t, s.Form.CustomerName)
}

func TestSessionsAreIsolated(t *testing.T) {
	gw := &mockGateway{checkoutResp: pixResponse()}
	mgr := NewManager(gw, testCart())

	_, err := mgr.Submit(context.Background(), "s1", testForm(), "")
	require.NoError(t, err)

	s := mgr.Get("s2")
	assert.Equal(t, domain.CheckoutStatusEditing, s.Status)
}
