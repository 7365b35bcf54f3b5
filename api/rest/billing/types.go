package billing

import (
	"context"

	"github.com/ghibliart/server/internal/payments"
)

// Gateway is the payments surface the billing endpoints call through
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, userID, email, priceID, planName string) (*payments.CheckoutSession, error)
	PortalURL(ctx context.Context, userID string) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

// CheckoutRequest is the inbound body for starting a checkout
type CheckoutRequest struct {
	PriceID string `json:"priceId"`
	Plan    string `json:"plan"`
}

type PortalResponse struct {
	URL string `json:"url"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
