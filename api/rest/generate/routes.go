package generate

import (
	"github.com/ghibliart/server/internal/auth"
	"github.com/ghibliart/server/internal/config"
	"github.com/gin-gonic/gin"
)

// registers the image generation route
func RegisterRoutes(router *gin.RouterGroup, store SubscriptionStore, gen Generator, limiter RateLimiter, limit config.RateLimit) {
	router.POST("/generate", auth.AuthMiddleware(), Handler(store, gen, limiter, limit))
}
