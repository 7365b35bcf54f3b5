package generate

import (
	"context"
	"time"

	"github.com/ghibliart/server/internal/generation"
	"github.com/ghibliart/server/internal/subscription"
)

// SubscriptionStore is the slice of subscription persistence the generate
// endpoint needs
type SubscriptionStore interface {
	GetSnapshot(ctx context.Context, userID string) (*subscription.Snapshot, error)
	IncrementUsage(ctx context.Context, userID string, n int) error
}

// Generator runs one validated generation request end to end
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// RateLimiter is the per-client fixed-window counter
type RateLimiter interface {
	Allow(key string, maxRequests int, window time.Duration) bool
}

type Stats struct {
	TotalTime            string `json:"totalTime"`
	Model                string `json:"model"`
	AspectRatio          string `json:"aspectRatio"`
	PromptLength         int    `json:"promptLength"`
	RemainingGenerations int    `json:"remainingGenerations"` // -1 means unlimited
}

type Response struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message"`
	Stats    Stats  `json:"stats"`
}
