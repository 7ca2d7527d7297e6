package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"vacation-menu-api/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error   apperrors.Kind `json:"error"`
	Message string         `json:"message"`
	Details []string       `json:"details,omitempty"`
}

// ErrorHandler renders the last error a handler pushed with c.Error.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		resp, status := toResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		}
		c.JSON(status, resp)
	}
}

func toResponse(err error) (ErrorResponse, int) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return ErrorResponse{Error: appErr.Kind, Message: appErr.Message, Details: appErr.Details}, appErr.StatusCode()
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldMessage(fe))
		}
		return ErrorResponse{Error: apperrors.KindValidation, Message: "Invalid request body", Details: details}, http.StatusBadRequest
	}

	// Body decoding failures from ShouldBindJSON.
	var bindErr *bindError
	if errors.As(err, &bindErr) {
		return ErrorResponse{Error: apperrors.KindValidation, Message: "Invalid request body", Details: []string{bindErr.Error()}}, http.StatusBadRequest
	}

	return ErrorResponse{Error: apperrors.KindInternal, Message: "Internal Server Error"}, http.StatusInternalServerError
}

func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "min":
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "mealtype":
		return field + ": must be one of breakfast, lunch, dinner"
	case "dishcategory":
		return field + ": unknown dish category"
	case "ingredientcategory":
		return field + ": unknown ingredient category"
	default:
		return fmt.Sprintf("%s: failed on %s", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

type bindError struct{ err error }

func (e *bindError) Error() string { return e.err.Error() }
func (e *bindError) Unwrap() error { return e.err }

// BindError marks a request decoding failure so it renders as a 400.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return &bindError{err: err}
}
