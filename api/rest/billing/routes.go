package billing

import (
	"github.com/ghibliart/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the payments routes. The webhook is unauthenticated by
// design; the signature check stands in for auth.
func RegisterRoutes(router *gin.RouterGroup, gateway Gateway) {
	group := router.Group("/billing")

	group.POST("/create-checkout-session", auth.AuthMiddleware(), CheckoutHandler(gateway))
	group.POST("/customer-portal", auth.AuthMiddleware(), PortalHandler(gateway))
	group.POST("/webhook", WebhookHandler(gateway))
}
