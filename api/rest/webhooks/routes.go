package webhooks

import "github.com/gin-gonic/gin"

// registers the provider callback routes
func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/webhook-callback", CallbackHandler)
	router.GET("/webhook-callback", StatusHandler)
}
