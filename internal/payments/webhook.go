package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/ghibliart/server/internal/logger"
	"github.com/ghibliart/server/internal/subscription"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// verifies the provider signature and applies the event to the
// subscription store. An invalid signature is a typed 400; processing
// failures bubble up so the provider retries delivery.
func (g *Gateway) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		return apierrors.New(apierrors.CodeValidationError, "invalid webhook signature", http.StatusBadRequest)
	}

	switch event.Type {
	case "checkout.session.completed":
		return g.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.created", "customer.subscription.updated":
		return g.handleSubscriptionChanged(ctx, event)
	case "customer.subscription.deleted":
		return g.handleSubscriptionDeleted(ctx, event)
	case "invoice.payment_succeeded":
		return g.handleInvoice(ctx, event, "succeeded")
	case "invoice.payment_failed":
		return g.handleInvoice(ctx, event, "failed")
	default:
		logger.Debug("unhandled stripe event type", "type", event.Type)
		return nil
	}
}

func (g *Gateway) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to decode checkout session: %w", err)
	}

	userID := session.Metadata["user_id"]
	plan := session.Metadata["plan"]

	if userID == "" || plan == "" {
		logger.Error("checkout session missing required metadata", "session_id", session.ID)
		return nil
	}

	if session.Subscription == nil {
		logger.Error("checkout session carries no subscription", "session_id", session.ID)
		return nil
	}

	sub, err := g.sc.Subscriptions.Get(session.Subscription.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to retrieve subscription: %w", err)
	}

	update := subscriptionUpdate(sub, plan)
	if session.Customer != nil {
		update.StripeCustomerID = session.Customer.ID
	}

	if err := g.store.Upsert(ctx, userID, update); err != nil {
		return err
	}

	logger.Info("subscription activated via checkout", "user_id", userID, "plan", plan)

	return nil
}

func (g *Gateway) handleSubscriptionChanged(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to decode subscription: %w", err)
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		logger.Error("subscription event missing user id", "subscription_id", sub.ID)
		return nil
	}

	plan := sub.Metadata["plan"]
	if plan == "" {
		plan = subscription.PlanPro
	}

	if err := g.store.Upsert(ctx, userID, subscriptionUpdate(&sub, plan)); err != nil {
		return err
	}

	logger.Info("subscription updated", "user_id", userID, "status", sub.Status)

	return nil
}

// cancellation drops the account back to the free tier
func (g *Gateway) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to decode subscription: %w", err)
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		logger.Error("subscription deletion missing user id", "subscription_id", sub.ID)
		return nil
	}

	update := subscriptionUpdate(&sub, subscription.PlanFree)
	update.Status = "canceled"

	if err := g.store.Upsert(ctx, userID, update); err != nil {
		return err
	}

	logger.Info("subscription canceled", "user_id", userID)

	return nil
}

func (g *Gateway) handleInvoice(ctx context.Context, event stripe.Event, status string) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to decode invoice: %w", err)
	}

	if invoice.Subscription == nil {
		logger.Debug("invoice without subscription, skipping", "invoice_id", invoice.ID)
		return nil
	}

	sub, err := g.sc.Subscriptions.Get(invoice.Subscription.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to retrieve subscription for invoice: %w", err)
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		logger.Error("invoice subscription missing user id", "invoice_id", invoice.ID)
		return nil
	}

	payment := subscription.Payment{
		Amount:   invoice.AmountPaid,
		Currency: string(invoice.Currency),
		Status:   status,
		Plan:     sub.Metadata["plan"],
	}

	if status == "failed" {
		payment.Amount = invoice.AmountDue
	}

	if invoice.PaymentIntent != nil {
		payment.StripePaymentIntentID = invoice.PaymentIntent.ID
	}

	return g.store.RecordPayment(ctx, userID, payment)
}

func subscriptionUpdate(sub *stripe.Subscription, plan string) subscription.Update {
	update := subscription.Update{
		StripeSubscriptionID: sub.ID,
		Status:               string(sub.Status),
		Plan:                 plan,
	}

	if sub.Customer != nil {
		update.StripeCustomerID = sub.Customer.ID
	}

	if sub.CurrentPeriodStart > 0 {
		start := time.Unix(sub.CurrentPeriodStart, 0).UTC()
		update.CurrentPeriodStart = &start
	}

	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		update.CurrentPeriodEnd = &end
	}

	return update
}
