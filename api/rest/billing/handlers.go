package billing

import (
	"net/http"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/ghibliart/server/internal/auth"
	"github.com/ghibliart/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// starts a subscription checkout for the authenticated account
func CheckoutHandler(gateway Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.Respond(c, apierrors.Validation("invalid request body"))
			return
		}

		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Respond(c, apierrors.Unauthenticated(""))
			return
		}

		email, ok := auth.GetUserEmail(c)
		if !ok || email == "" {
			apierrors.Respond(c, apierrors.Validation("account has no email address"))
			return
		}

		session, err := gateway.CreateCheckoutSession(c.Request.Context(), userID, email, req.PriceID, req.Plan)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// creates a billing-portal session so the account can manage its
// subscription on the provider's hosted pages
func PortalHandler(gateway Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Respond(c, apierrors.Unauthenticated(""))
			return
		}

		portalURL, err := gateway.PortalURL(c.Request.Context(), userID)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, PortalResponse{URL: portalURL})
	}
}

// receives signed payment provider events. The signature is verified
// before the payload is trusted; processing failures return 500 so the
// provider retries delivery.
func WebhookHandler(gateway Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			apierrors.Respond(c, apierrors.Validation("failed to read request body"))
			return
		}

		signature := c.GetHeader("Stripe-Signature")
		if signature == "" {
			apierrors.Respond(c, apierrors.Validation("missing signature header"))
			return
		}

		if err := gateway.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
			logger.ErrorErr(err, "webhook processing failed")
			apierrors.Respond(c, err)

			return
		}

		c.JSON(http.StatusOK, WebhookResponse{Received: true})
	}
}
