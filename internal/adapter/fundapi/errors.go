package fundapi

import (
	"fmt"
	"net/http"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// Error codes the fund API is known to return in its envelope
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeCooldownActive  = "COOLDOWN_ACTIVE"
	CodeUnknown         = "UNKNOWN_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
)

// APIError is a failure reported by the fund API, either in its envelope or by status code
type APIError struct {
	Code       string
	Message    string
	Details    any
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fund api %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

// Unwrap exposes ErrUpstream plus the domain error matching the code or status, if any
func (e *APIError) Unwrap() []error {
	errs := []error{domain.ErrUpstream}
	switch {
	case e.Code == CodeCooldownActive:
		errs = append(errs, domain.ErrCooldownActive)
	case e.Code == CodeNotFound || e.StatusCode == http.StatusNotFound:
		errs = append(errs, domain.ErrNotFound)
	case e.Code == CodeValidation || e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		errs = append(errs, domain.ErrInvalidInput)
	}
	return errs
}

// Retryable reports whether the request may succeed when repeated: rate limits and server errors
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
