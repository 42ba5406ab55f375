package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
)

const internalErrorMessage = "something went wrong"

// errorStatus maps an error to its status code and the message used when the error carries none
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		return http.StatusBadRequest, "Already exists"
	case errors.Is(err, apperrors.ErrBusinessRule):
		// observed behaviour: containment violations share the not found status
		return http.StatusNotFound, "Not found"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token revoked"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication credentials were not provided."
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, "Account is disabled"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, "You do not have permission to perform this action."
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// HandleAPIError writes the {"response": ...} body for err and aborts the chain
func HandleAPIError(c *gin.Context, err error) {
	status, message := errorStatus(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.AbortWithStatusJSON(status, dto.Message(internalErrorMessage))
		return
	}

	if fields := apperrors.FieldsOf(err); len(fields) > 0 {
		c.AbortWithStatusJSON(status, dto.Data(fields))
		return
	}

	if msg, ok := apperrors.MessageOf(err); ok {
		message = msg
	}
	c.AbortWithStatusJSON(status, dto.Message(message))
}
