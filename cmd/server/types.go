package main

import (
	"github.com/ghibliart/server/internal/config"
	"github.com/ghibliart/server/internal/generation"
	"github.com/ghibliart/server/internal/payments"
	"github.com/ghibliart/server/internal/ratelimit"
	"github.com/ghibliart/server/internal/storage"
	"github.com/ghibliart/server/internal/subscription"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db            *pgxpool.Pool
	config        *config.Config
	subscriptions *subscription.Store
	services      *Services
	limiter       *ratelimit.Limiter
	router        *gin.Engine
}

// holds all external service clients (storage, generation, payments)
type Services struct {
	Storage   *storage.Client
	Archiver  *storage.Archiver
	Generator *generation.Service
	Payments  *payments.Gateway
}
