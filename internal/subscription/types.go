package subscription

import "time"

// subscription plans and their daily generation allowances.
// A limit of -1 means unlimited.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"

	StatusActive = "active"

	Unlimited = -1
)

// Snapshot is the per-request view of an account's plan and usage, fetched
// fresh from the managed backend on every generation request and never
// cached across requests.
type Snapshot struct {
	Plan             string     `json:"subscription_plan"`
	Status           string     `json:"subscription_status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	ImagesUsedToday  int        `json:"images_used_today"`
	ImagesLimit      int        `json:"images_limit"`
}

// Update carries the fields written when the payments webhook reports a
// subscription change
type Update struct {
	StripeCustomerID     string
	StripeSubscriptionID string
	Status               string
	Plan                 string
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
}

// Payment is one row of payment history
type Payment struct {
	StripePaymentIntentID string
	Amount                int64
	Currency              string
	Status                string
	Plan                  string
}
