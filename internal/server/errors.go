package server

import (
	"errors"
	"net/http"

	ticketingdomain "github.com/boxofficehq/boxoffice/internal/ticketing/domain"
	"github.com/boxofficehq/boxoffice/pkg/db"
	"github.com/boxofficehq/boxoffice/pkg/db/query"
	"github.com/gin-gonic/gin"
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

// ErrorHandlingMiddleware converts errors recorded on the context into a
// structured JSON response after the handler chain runs.
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

// mapError discriminates the failure taxonomy: validation to 400, missing
// identifiers to 404, routine-rejected invariants to 400 carrying the
// routine's message, unreachable storage to 503, malformed result shapes and
// everything unknown to 500.
func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isTicketingValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	}

	var constraintErr *db.ConstraintError
	var connectivityErr *db.ConnectivityError
	var shapeErr *query.ShapeError

	switch {
	case errors.Is(err, ticketingdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.As(err, &constraintErr):
		return http.StatusBadRequest, errorPayload{
			Type:    "constraint_violation",
			Message: constraintErr.Message,
		}
	case errors.As(err, &connectivityErr):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.As(err, &shapeErr):
		return http.StatusInternalServerError, errorPayload{
			Type:    "query_shape_error",
			Message: shapeErr.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isTicketingValidationError(err error) bool {
	switch {
	case errors.Is(err, ticketingdomain.ErrInvalidTicketTypeID),
		errors.Is(err, ticketingdomain.ErrInvalidCustomerID),
		errors.Is(err, ticketingdomain.ErrInvalidDelta):
		return true
	default:
		return false
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return payload.Type, "server_error"
	case status == http.StatusNotFound:
		return payload.Type, "not_found"
	default:
		return payload.Type, "client_error"
	}
}
