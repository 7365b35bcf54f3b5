package payments

import (
	"context"
	"fmt"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Gateway wraps the payments provider: checkout session creation, billing
// portal sessions, and webhook event handling feeding the subscription store
type Gateway struct {
	sc            *client.API
	store         Store
	baseURL       string
	webhookSecret string
}

func NewGateway(cfg Config, store Store) *Gateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)

	return &Gateway{
		sc:            sc,
		store:         store,
		baseURL:       cfg.BaseURL,
		webhookSecret: cfg.WebhookSecret,
	}
}

// starts a subscription-mode checkout for an authenticated account,
// reusing the Stripe customer when one exists for the account's email
func (g *Gateway) CreateCheckoutSession(ctx context.Context, userID, email, priceID, planName string) (*CheckoutSession, error) {
	plan := NormalizePlan(planName)

	if _, ok := LookupPlan(plan); !ok {
		return nil, apierrors.Validation("invalid subscription plan")
	}

	if priceID == "" {
		return nil, apierrors.Validation("missing price id")
	}

	// reject re-subscribing to the current plan
	if snapshot, err := g.store.GetSnapshot(ctx, userID); err == nil && snapshot.Plan == plan {
		return nil, apierrors.Validation("you are already subscribed to this plan")
	}

	customerID, err := g.findOrCreateCustomer(userID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stripe customer: %w", err)
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(g.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.baseURL + "/pricing"),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": userID,
				"plan":    plan,
			},
		},
		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String("required"),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("plan", plan)

	session, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// creates a billing-portal session for subscription self-management
func (g *Gateway) PortalURL(ctx context.Context, userID string) (string, error) {
	customerID, err := g.store.StripeCustomerID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	if customerID == "" {
		return "", apierrors.Validation("no subscription found for this account")
	}

	session, err := g.sc.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(g.baseURL + "/dashboard"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}

	return session.URL, nil
}

func (g *Gateway) findOrCreateCustomer(userID, email string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Limit = stripe.Int64(1)

	iter := g.sc.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}

	if err := iter.Err(); err != nil {
		return "", err
	}

	createParams := &stripe.CustomerParams{Email: stripe.String(email)}
	createParams.AddMetadata("supabase_user_id", userID)

	customer, err := g.sc.Customers.New(createParams)
	if err != nil {
		return "", err
	}

	return customer.ID, nil
}
