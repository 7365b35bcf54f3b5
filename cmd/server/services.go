package main

import (
	"github.com/ghibliart/server/internal/config"
	"github.com/ghibliart/server/internal/generation"
	"github.com/ghibliart/server/internal/logger"
	"github.com/ghibliart/server/internal/payments"
	"github.com/ghibliart/server/internal/storage"
	"github.com/ghibliart/server/internal/subscription"
)

// creates and configures all service clients. Generation providers with
// missing credentials stay nil; their request paths answer 503.
func InitializeServices(cfg *config.Config, store *subscription.Store) *Services {
	storageClient := storage.NewClient(storage.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		Bucket:          cfg.R2Bucket,
		PublicURLBase:   cfg.R2PublicURLBase,
	})

	archiver := storage.NewArchiver(storageClient)

	var image generation.ImageProvider
	if cfg.ReplicateAPIToken != "" {
		image = generation.NewReplicateClient(cfg.ReplicateAPIToken)
	} else {
		logger.Warn("REPLICATE_API_TOKEN not set, image-conditioned generation disabled")
	}

	var text generation.TextProvider
	if cfg.IsmaqueAPIKey != "" {
		text = generation.NewIsmaqueClient(cfg.IsmaqueAPIKey, cfg.BaseURL+"/api/v1/webhook-callback")
	} else {
		logger.Warn("ISMAQUE_API_KEY not set, text-conditioned generation disabled")
	}

	generator := generation.NewService(image, text, storageClient, archiver)

	gateway := payments.NewGateway(payments.Config{
		SecretKey:         cfg.StripeSecretKey,
		WebhookSecret:     cfg.StripeWebhookSecret,
		BaseURL:           cfg.BaseURL,
		ProPriceID:        cfg.StripeProPriceID,
		EnterprisePriceID: cfg.StripeEnterprisePriceID,
	}, store)

	return &Services{
		Storage:   storageClient,
		Archiver:  archiver,
		Generator: generator,
		Payments:  gateway,
	}
}
