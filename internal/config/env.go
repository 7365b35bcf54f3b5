package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRateLimitMaxRequests = 10
	defaultRateLimitWindowMs    = 60000
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	supabaseConnStr := os.Getenv("SUPABASE_CONNECTION_STRING")
	supabaseJWTSecret := os.Getenv("SUPABASE_JWT_SECRET")

	if supabaseConnStr == "" {
		return nil, fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	if supabaseJWTSecret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET environment variable is required")
	}

	r2AccountID := os.Getenv("R2_ACCOUNT_ID")
	r2AccessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	r2SecretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	r2Bucket := os.Getenv("R2_BUCKET_NAME")
	r2PublicURLBase := os.Getenv("R2_PUBLIC_URL_BASE")

	for name, value := range map[string]string{
		"R2_ACCOUNT_ID":        r2AccountID,
		"R2_ACCESS_KEY_ID":     r2AccessKeyID,
		"R2_SECRET_ACCESS_KEY": r2SecretAccessKey,
		"R2_BUCKET_NAME":       r2Bucket,
		"R2_PUBLIC_URL_BASE":   r2PublicURLBase,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &Config{
		Environment:             environment,
		BaseURL:                 baseURL,
		SupabaseConnString:      supabaseConnStr,
		SupabaseJWTSecret:       supabaseJWTSecret,
		R2AccountID:             r2AccountID,
		R2AccessKeyID:           r2AccessKeyID,
		R2SecretAccessKey:       r2SecretAccessKey,
		R2Bucket:                r2Bucket,
		R2PublicURLBase:         r2PublicURLBase,
		ReplicateAPIToken:       os.Getenv("REPLICATE_API_TOKEN"),
		IsmaqueAPIKey:           os.Getenv("ISMAQUE_API_KEY"),
		StripeSecretKey:         os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeProPriceID:        os.Getenv("STRIPE_PRO_PRICE_ID"),
		StripeEnterprisePriceID: os.Getenv("STRIPE_ENTERPRISE_PRICE_ID"),
		RateLimit:               loadRateLimit(),
	}, nil
}

// reads rate-limit overrides, falling back to defaults on absent or bad values
func loadRateLimit() RateLimit {
	maxRequests := defaultRateLimitMaxRequests
	if s := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); s != "" {
		if val, err := strconv.Atoi(s); err == nil && val > 0 {
			maxRequests = val
		}
	}

	windowMs := defaultRateLimitWindowMs
	if s := os.Getenv("RATE_LIMIT_WINDOW_MS"); s != "" {
		if val, err := strconv.Atoi(s); err == nil && val > 0 {
			windowMs = val
		}
	}

	return RateLimit{
		MaxRequests: maxRequests,
		Window:      time.Duration(windowMs) * time.Millisecond,
	}
}
