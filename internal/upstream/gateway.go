package upstream

import (
	"context"
	"net/http"

	"github.com/LegacyPlugin/platform-app/internal/domain"
)

// Checkout submits a payment intent request. The response carries either a
// PIX payload or a redirect URL; the caller branches on which is present.
func (c *Client) Checkout(ctx context.Context, req domain.GatewayCheckoutRequest) (*domain.GatewayCheckoutResponse, error) {
	var out domain.GatewayCheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/gateway/checkout", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Purchase asks the gateway whether a pending PIX transaction has settled.
// The caller re-sends the customer fields and product identifiers; the
// intent itself does not carry them.
func (c *Client) Purchase(ctx context.Context, req domain.GatewayPurchaseRequest) (*domain.GatewayPurchaseResponse, error) {
	var out domain.GatewayPurchaseResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/gateway/purchase", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
