package payments

import (
	"context"

	"github.com/ghibliart/server/internal/subscription"
)

// Store is the slice of subscription persistence the payments flow writes to
type Store interface {
	GetSnapshot(ctx context.Context, userID string) (*subscription.Snapshot, error)
	Upsert(ctx context.Context, userID string, update subscription.Update) error
	RecordPayment(ctx context.Context, userID string, payment subscription.Payment) error
	StripeCustomerID(ctx context.Context, userID string) (string, error)
}

// Config holds the payments provider credentials and redirect addressing
type Config struct {
	SecretKey         string
	WebhookSecret     string
	BaseURL           string
	ProPriceID        string
	EnterprisePriceID string
}

// CheckoutSession is the client-facing handle for a started checkout
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}
