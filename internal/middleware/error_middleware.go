package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/academia/internal/app/models/dto"
	"github.com/yigit/academia/internal/pkg/apperrors"
	"github.com/yigit/academia/internal/pkg/logger"
)

// HandleAPIError maps the error taxonomy to status codes. Expected outcomes
// carry their own message, anything else is a 500 with diagnostic details.
func HandleAPIError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(err.Error()))
	default:
		details := err.Error()
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			details = custom.Cause()
		}

		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestId", c.GetString(RequestIDKey)).
			Msg("Unexpected error while handling request")

		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.InternalErrorMessage).WithDetails(details))
	}
}
