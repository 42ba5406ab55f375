package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
)

var setupOnce sync.Once

// SetupValidator makes gin's validator report json field names
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

// BindJSON binds the request body into obj. On failure it writes a 400 with one
// message per field and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	SetupValidator()
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ce := &apperrors.CustomError{Err: apperrors.ErrValidationFailed, Message: "Validation failed"}
		for _, fe := range verrs {
			ce.WithField(fieldName(fe), formatValidationError(fe))
		}
		return ce
	}
	return apperrors.NewFieldError("non_field_errors", "Invalid request body")
}

// fieldName strips the struct prefix, keeping the index of slice elements
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Ensure this list has at least %s items.", e.Param())
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", e.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", e.Value())
	default:
		return fmt.Sprintf("Failed on the %s rule.", e.Tag())
	}
}
