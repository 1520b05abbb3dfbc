package handlers

import (
	"errors"
	"net/http"

	"carelink/middleware"
	"carelink/services/billing"
	"carelink/services/directory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBytes = 65536

type checkoutRequest struct {
	Plan billing.Plan `json:"plan" binding:"required"`
}

// CheckoutHandler starts a hosted checkout for the session provider.
func (hb *HandlerBundle) CheckoutHandler(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, directory.ErrNotAuthenticated)
		return
	}
	checkout, err := hb.Billing.StartCheckout(c.Request.Context(), sess.ID, req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// StripeWebhookHandler verifies a Stripe event and fulfils completed checkouts.
// A fulfilment failure answers 500 so that Stripe redelivers the event.
func (hb *HandlerBundle) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes)
	payload, err := c.GetRawData()
	if err != nil {
		bindError(c, err)
		return
	}

	completion, err := hb.Billing.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, billing.ErrInvalidWebhook) {
			logger.Warn("Rejected webhook", zap.Error(err))
		}
		respondError(c, err)
		return
	}
	if completion == nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := hb.Fulfiller.Fulfil(c.Request.Context(), *completion); err != nil {
		logger.Error("Failed to fulfil checkout",
			zap.String("session", completion.SessionID), zap.String("providerId", completion.ProviderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fulfilment failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
