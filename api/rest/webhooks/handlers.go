package webhooks

import (
	"net/http"

	"github.com/ghibliart/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// receives the text provider's asynchronous completion callback. The
// synchronous generation flow takes the provider's immediate response as
// authoritative, so the callback payload is acknowledged but not
// consumed.
// TODO: reconcile callback results against pending generations once the
// text path moves to fully async delivery.
func CallbackHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		logger.Warn("failed to read webhook callback body", "error", err)
	} else {
		logger.Info("webhook callback received", "bytes", len(payload))
	}

	c.JSON(http.StatusOK, CallbackResponse{
		Success: true,
		Message: "webhook callback received",
	})
}

// confirms the callback endpoint is reachable
func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Message: "webhook callback endpoint is active",
	})
}
