package payments

import (
	"strings"

	"github.com/ghibliart/server/internal/subscription"
)

// Plan describes one purchasable subscription tier
type Plan struct {
	Name          string
	PriceUSD      int64
	ImagesPerDay  int // -1 means unlimited
	MaxResolution string
}

// the fixed plan table; daily allowances come from the subscription
// policy, price ids from configuration since they are environment-specific
var plans = map[string]Plan{
	subscription.PlanFree: {
		Name:          "Free",
		PriceUSD:      0,
		ImagesPerDay:  subscription.DailyLimit(subscription.PlanFree),
		MaxResolution: "512x512",
	},
	subscription.PlanPro: {
		Name:          "Pro",
		PriceUSD:      19,
		ImagesPerDay:  subscription.DailyLimit(subscription.PlanPro),
		MaxResolution: "1024x1024",
	},
	subscription.PlanEnterprise: {
		Name:          "Enterprise",
		PriceUSD:      99,
		ImagesPerDay:  subscription.DailyLimit(subscription.PlanEnterprise),
		MaxResolution: "2048x2048",
	},
}

// looks up a plan by name, case-insensitive
func LookupPlan(name string) (Plan, bool) {
	plan, ok := plans[strings.ToLower(name)]
	return plan, ok
}

// normalizes a client-supplied plan name to its canonical lowercase form
func NormalizePlan(name string) string {
	return strings.ToLower(name)
}
