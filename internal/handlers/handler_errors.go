package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ipupy/tesoreria_backend/internal/apperrors"
	"github.com/ipupy/tesoreria_backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondServiceError translates a service error into the matching HTTP
// response. Unexpected errors are logged and hidden behind a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var mismatchErr *apperrors.ReconciliationMismatchError
	if errors.As(err, &mismatchErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":              "Ledger failed reconciliation",
			"ledgerID":           mismatchErr.LedgerID,
			"balanceDiscrepancy": mismatchErr.BalanceDiscrepancy,
			"trialBalanceGap":    mismatchErr.TrialBalanceGap,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrPostingFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Ledger posting failed, report left unchanged"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// requirePrincipal pulls the authenticated principal off the request context,
// writing a 401 when the auth middleware did not run.
func requirePrincipal(c *gin.Context) (string, bool) {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return "", false
	}
	return principal.UserID, true
}
