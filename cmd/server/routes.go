package main

import (
	"net/url"
	"time"

	"github.com/ghibliart/server/api/rest/billing"
	"github.com/ghibliart/server/api/rest/download"
	"github.com/ghibliart/server/api/rest/generate"
	"github.com/ghibliart/server/api/rest/health"
	"github.com/ghibliart/server/api/rest/webhooks"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	corsConfig := cors.Config{
		AllowOrigins:     []string{server.config.BaseURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router.Use(cors.New(corsConfig))
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1, server.subscriptions, server.services.Generator, server.limiter, server.config.RateLimit)
		download.RegisterRoutes(v1, download.Config{AllowedHosts: downloadAllowedHosts(server.config.R2PublicURLBase)})
		billing.RegisterRoutes(v1, server.services.Payments)
		webhooks.RegisterRoutes(v1)
	}
}

// the download proxy may only fetch from our own storage host and the two
// generation providers' delivery hosts
func downloadAllowedHosts(publicURLBase string) []string {
	hosts := []string{"replicate.delivery", "ismaque.org"}

	if parsed, err := url.Parse(publicURLBase); err == nil && parsed.Hostname() != "" {
		hosts = append(hosts, parsed.Hostname())
	}

	return hosts
}
