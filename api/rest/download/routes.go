package download

import "github.com/gin-gonic/gin"

// registers the image download proxy route
func RegisterRoutes(router *gin.RouterGroup, cfg Config) {
	router.POST("/download", Handler(cfg))
}
