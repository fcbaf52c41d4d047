package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/auth"
	"inkpress/cmd/api/dto"
	"inkpress/cmd/api/trace"
	"inkpress/internal/logger"
	"inkpress/services"
)

// writeError maps service errors onto HTTP statuses. Every failure yields a
// single human-readable message.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, auth.ErrNotAuthenticated),
		errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, auth.ErrAccountInactive):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrBlogNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrMissingSelector),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidImageFormat):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.ErrorWithFields("request failed", logger.Fields{
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
			"error":      err.Error(),
		})
	}
	c.JSON(status, dto.ErrorResponseDTO{Error: err.Error()})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
}
