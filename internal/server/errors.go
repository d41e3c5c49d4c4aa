package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/shoplink/internal/shopify"
	"github.com/smallbiznis/shoplink/pkg/db"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	// ErrAuthenticationFailed covers a missing or wrong request
	// signature. Always surfaced, never silently ignored.
	ErrAuthenticationFailed = errors.New("authentication_failed")
	ErrInvalidShopDomain    = errors.New("invalid_shop_domain")
	ErrStoreNotFound        = errors.New("store_not_found")
	ErrConflict             = errors.New("conflict")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	var upstream *shopify.UpstreamError
	switch {
	case errors.Is(err, ErrAuthenticationFailed):
		return http.StatusBadRequest, errorPayload{
			Type:    "authentication_failed",
			Message: "Failed to validate hmac",
		}
	case errors.Is(err, ErrInvalidShopDomain):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "Failed to validate request",
		}
	case errors.Is(err, ErrStoreNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "store not found",
		}
	case errors.Is(err, ErrConflict), db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.As(err, &upstream):
		return http.StatusBadGateway, errorPayload{
			Type:    "upstream_error",
			Message: "upstream platform request failed",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status == http.StatusBadGateway:
		return payload.Type, "upstream_error"
	case status >= http.StatusInternalServerError:
		return payload.Type, "server_error"
	default:
		return payload.Type, "client_error"
	}
}
