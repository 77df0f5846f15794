package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/ecotrace/ecotrace-core/internal/api/shared/errors"
	"github.com/ecotrace/ecotrace-core/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, apiErr *apierrors.APIError) {
	c.JSON(statusCode, errorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondUnauthorized sends a 401 Unauthorized response
func respondUnauthorized(c *gin.Context, message string) {
	respondWithError(c, http.StatusUnauthorized, apierrors.NewUnauthorizedError(message))
}

// respondError maps a domain or API error to its HTTP representation.
// Server-side failures are logged; client errors are not.
func respondError(c *gin.Context, err error) {
	apiErr := apierrors.FromDomainError(err)
	status := apiErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}
	respondWithError(c, status, apiErr)
}
