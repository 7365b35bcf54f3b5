package config

import "time"

type Config struct {
	Environment string
	BaseURL     string

	// managed backend (auth + subscription persistence)
	SupabaseConnString string
	SupabaseJWTSecret  string

	// object storage (Cloudflare R2, S3-compatible)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2PublicURLBase   string

	// image generation providers (optional; missing keys surface as 503 per path)
	ReplicateAPIToken string
	IsmaqueAPIKey     string

	// payments
	StripeSecretKey         string
	StripeWebhookSecret     string
	StripeProPriceID        string
	StripeEnterprisePriceID string

	// abuse-prevention rate limit for /generate
	RateLimit RateLimit
}

// per-IP fixed-window limit applied to the generate endpoint
type RateLimit struct {
	MaxRequests int
	Window      time.Duration
}
