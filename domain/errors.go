package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRoleNotAllowed   = errors.New("role not allowed on storefront client")
	ErrSessionExpired   = errors.New("session has expired")
	ErrLoggingOut       = errors.New("logout in progress")
)

// Cart errors
var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Checkout errors
var (
	ErrSubmitInProgress = errors.New("order submission already in progress")
	ErrDiscountInvalid  = errors.New("discount code is not valid")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// APIError is a backend rejection carrying the human-readable message
// extracted from the error envelope. StatusCode is the HTTP status; zero
// means the request never reached the backend.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return e.Message
}

// IsAuthError reports whether the backend rejected the request for lack of
// authentication.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401
}

// APIMessage returns the backend message from err when it is (or wraps) an
// APIError, falling back to the given generic message otherwise.
func APIMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// ValidationErrors is a field-keyed map of local validation messages.
// The "general" key carries form-level failures.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v[k]))
	}
	return strings.Join(parts, "; ")
}
