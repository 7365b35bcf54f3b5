package generate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/ghibliart/server/internal/auth"
	"github.com/ghibliart/server/internal/config"
	"github.com/ghibliart/server/internal/generation"
	"github.com/ghibliart/server/internal/logger"
	"github.com/ghibliart/server/internal/subscription"
	"github.com/ghibliart/server/internal/validation"
	"github.com/gin-gonic/gin"
)

// creates the handler for image generation. Order of gates: bind,
// validate, quota, rate limit, then the provider call. Usage is recorded
// after a successful generation and never blocks the response.
func Handler(store SubscriptionStore, gen Generator, limiter RateLimiter, limit config.RateLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.GenerateRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.Respond(c, apierrors.Validation("invalid request body"))
			return
		}

		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Respond(c, apierrors.Unauthenticated(""))
			return
		}

		validated, vErr := validation.ValidateGenerate(req)
		if vErr != nil {
			apierrors.Respond(c, vErr)
			return
		}

		snapshot, err := store.GetSnapshot(c.Request.Context(), userID)
		if err != nil {
			logger.ErrorErr(err, "failed to fetch subscription", "user_id", userID)
			apierrors.Respond(c, apierrors.SubscriptionUnavailable())

			return
		}

		if !subscription.CanGenerate(snapshot) {
			apierrors.Respond(c, apierrors.QuotaExceeded(snapshot.Plan, snapshot.ImagesLimit))
			return
		}

		if !limiter.Allow(clientIP(c), limit.MaxRequests, limit.Window) {
			apierrors.Respond(c, apierrors.RateLimited())
			return
		}

		result, err := gen.Generate(c.Request.Context(), generation.Request{
			Prompt:      validated.Prompt,
			AspectRatio: validated.AspectRatio,
			Quality:     validated.Quality,
			InputImage:  validated.InputImage,
		})
		if err != nil {
			apierrors.Respond(c, err)
			return
		}

		// fire-and-forget: a failed increment must not fail a delivered image
		go recordUsage(store, userID)

		c.JSON(http.StatusOK, Response{
			Success:  true,
			ImageURL: result.ImageURL,
			Message:  "image generated successfully",
			Stats: Stats{
				TotalTime:            fmt.Sprintf("%dms", result.Elapsed.Milliseconds()),
				Model:                result.Model,
				AspectRatio:          validated.AspectRatio,
				PromptLength:         len(validated.Prompt),
				RemainingGenerations: remainingAfter(snapshot),
			},
		})
	}
}

// detached from the request context so client disconnects cannot cancel
// the write
func recordUsage(store SubscriptionStore, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.IncrementUsage(ctx, userID, 1); err != nil {
		logger.ErrorErr(err, "failed to record usage", "user_id", userID)
	}
}

// remaining allowance counting the generation just performed
func remainingAfter(s *subscription.Snapshot) int {
	if s.ImagesLimit == subscription.Unlimited {
		return subscription.Unlimited
	}

	remaining := s.ImagesLimit - s.ImagesUsedToday - 1
	if remaining < 0 {
		return 0
	}

	return remaining
}

// best-effort client address for rate limiting: first hop of
// x-forwarded-for, then x-real-ip, then a shared fallback bucket
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("x-forwarded-for"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := c.GetHeader("x-real-ip"); realIP != "" {
		return realIP
	}

	return "unknown"
}
