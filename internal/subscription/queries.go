package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads and writes subscription state through the managed backend's
// SQL functions and tables
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// fetches the account's current plan, status, and daily usage via the
// backend's get_user_subscription function
func (s *Store) GetSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	query := `
		SELECT subscription_plan, subscription_status, current_period_end,
		       images_used_today, images_limit
		FROM get_user_subscription($1)
	`

	var snap Snapshot

	err := s.db.QueryRow(ctx, query, userID).Scan(
		&snap.Plan,
		&snap.Status,
		&snap.CurrentPeriodEnd,
		&snap.ImagesUsedToday,
		&snap.ImagesLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}

	return &snap, nil
}

// increments the account's daily usage counter via the backend's
// increment_usage function
func (s *Store) IncrementUsage(ctx context.Context, userID string, n int) error {
	var ok bool

	err := s.db.QueryRow(ctx, `SELECT increment_usage($1, $2)`, userID, n).Scan(&ok)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	if !ok {
		return fmt.Errorf("increment_usage returned false for user %s", userID)
	}

	return nil
}

// creates or updates the account's subscription row; called from the
// payments webhook handlers
func (s *Store) Upsert(ctx context.Context, userID string, update Update) error {
	query := `
		INSERT INTO user_subscriptions
			(user_id, stripe_customer_id, stripe_subscription_id, status, plan,
			 current_period_start, current_period_end, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			status = EXCLUDED.status,
			plan = EXCLUDED.plan,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.Exec(ctx, query,
		userID,
		update.StripeCustomerID,
		update.StripeSubscriptionID,
		update.Status,
		update.Plan,
		update.CurrentPeriodStart,
		update.CurrentPeriodEnd,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

// appends one payment history row
func (s *Store) RecordPayment(ctx context.Context, userID string, payment Payment) error {
	query := `
		INSERT INTO payment_history
			(user_id, stripe_payment_intent_id, amount, currency, status, plan)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Exec(ctx, query,
		userID,
		payment.StripePaymentIntentID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.Plan,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	return nil
}

// looks up the stripe customer id stored for an account; empty when the
// account never checked out
func (s *Store) StripeCustomerID(ctx context.Context, userID string) (string, error) {
	var customerID *string

	err := s.db.QueryRow(ctx,
		`SELECT stripe_customer_id FROM user_subscriptions WHERE user_id = $1`,
		userID,
	).Scan(&customerID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch stripe customer id: %w", err)
	}

	if customerID == nil {
		return "", nil
	}

	return *customerID, nil
}
