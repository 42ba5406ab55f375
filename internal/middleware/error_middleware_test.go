package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleAPIError(t *testing.T, err error) (int, interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleAPIError(c, err)
	assert.True(t, c.IsAborted())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body["response"]
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   interface{}
	}{
		{"not found with message", apperrors.NewNotFoundError(apperrors.ErrCourseNotFound, "Course with given id does not exist"), http.StatusNotFound, "Course with given id does not exist"},
		{"bare not found", apperrors.ErrMappingNotFound, http.StatusNotFound, "Not found"},
		{"duplicate", apperrors.NewDuplicateError(apperrors.ErrCourseAlreadyExists, "Algebra is already present"), http.StatusBadRequest, "Algebra is already present"},
		{"business rule", apperrors.NewCustomError(apperrors.ErrCourseNotInMentorBucket, "Algebra is not in M's bucket"), http.StatusNotFound, "Algebra is not in M's bucket"},
		{"field error", apperrors.NewFieldError("student", "bad"), http.StatusBadRequest, map[string]interface{}{"student": "bad"}},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{"wrapped invalid token", fmt.Errorf("%w: signature", apperrors.ErrTokenInvalid), http.StatusUnauthorized, "Invalid token"},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, "Authentication credentials were not provided."},
		{"disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, "Account is disabled"},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, "You do not have permission to perform this action."},
		{"internal", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "something went wrong"},
		{"internal with custom message", apperrors.NewCustomError(errors.New("boom"), "secret detail"), http.StatusInternalServerError, "something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
