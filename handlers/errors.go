package handlers

import (
	"errors"
	"net/http"

	"carelink/database/repository"
	"carelink/services/auth"
	"carelink/services/billing"
	"carelink/services/directory"
	"carelink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps service errors to HTTP status codes and a public message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, directory.ErrValidation),
		errors.Is(err, billing.ErrUnknownPlan),
		errors.Is(err, billing.ErrInvalidWebhook):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, directory.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, directory.ErrFeatureUnavailable):
		return http.StatusPaymentRequired, "Upgrade required"
	case errors.Is(err, directory.ErrForbidden):
		return http.StatusForbidden, "Not permitted"
	case errors.Is(err, directory.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, directory.ErrEnquiryClosed),
		errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, billing.ErrBillingNotConfigured):
		return http.StatusServiceUnavailable, "Billing unavailable"
	case repository.IsRemote(err):
		return http.StatusServiceUnavailable, "Remote storage unavailable, please try again"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// respondError writes err as a structured error response.
func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error(message, zap.Error(err))
	}
	details := err.Error()
	if status == http.StatusInternalServerError {
		details = "An unexpected error occurred. Please try again later."
	}
	utils.JSONError(c, status, message, details)
}

// bindError reports a request body or query that could not be parsed.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
