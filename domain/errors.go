package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which member of the error taxonomy an error belongs to.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindAPI            Kind = "API"
	KindNetwork        Kind = "NETWORK"
	KindGateway        Kind = "GATEWAY"
)

// Error is the closed set of failures returned by this module. It is sealed by an
// unexported method, so the variants below are the only implementations:
//
//	*ValidationError, *AuthenticationError, *APIError, *NetworkError, *GatewayError
type Error interface {
	error
	Kind() Kind
	sealed()
}

// ValidationError is a local, pre-flight problem with caller input. It is never
// sent over the wire and never retried.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + strings.Join(e.Messages, ", ")
}

func (e *ValidationError) Kind() Kind { return KindValidation }
func (e *ValidationError) sealed()    {}

// AuthenticationError means the gateway rejected the merchant credential.
type AuthenticationError struct {
	Message      string
	StatusCode   int
	ResponseBody []byte
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error: %s (status: %d)", e.Message, e.StatusCode)
}

func (e *AuthenticationError) Kind() Kind { return KindAuthentication }
func (e *AuthenticationError) sealed()    {}

// APIError means the gateway answered with a non-success HTTP status.
// ResponseBody holds the raw body for diagnostics.
type APIError struct {
	Message      string
	StatusCode   int
	ResponseBody []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s (status: %d)", e.Message, e.StatusCode)
}

func (e *APIError) Kind() Kind { return KindAPI }
func (e *APIError) sealed()    {}

// Network error codes, named after the errno values most HTTP clients report.
const (
	CodeTimeout           = "ETIMEDOUT"
	CodeConnectionRefused = "ECONNREFUSED"
	CodeConnectionReset   = "ECONNRESET"
	CodeHostNotFound      = "ENOTFOUND"
	CodeCanceled          = "ECANCELED"
)

// NetworkError means no HTTP response was obtained. Code is empty when the cause
// could not be narrowed down.
type NetworkError struct {
	Message string
	Code    string
	Err     error
}

func (e *NetworkError) Error() string {
	msg := "network error: " + e.Message
	if e.Code != "" {
		msg += " [" + e.Code + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Kind() Kind { return KindNetwork }
func (e *NetworkError) sealed()    {}

// GatewayError means the HTTP exchange succeeded but the gateway reported
// success=false in the response envelope.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "gateway declined: " + e.Message
}

func (e *GatewayError) Kind() Kind { return KindGateway }
func (e *GatewayError) sealed()    {}

// KindOf reports the taxonomy member of err, or "" when err is nil or foreign.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return ""
}

func IsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	ok := errors.As(err, &valErr)
	return valErr, ok
}

func IsAuthenticationError(err error) (*AuthenticationError, bool) {
	var authErr *AuthenticationError
	ok := errors.As(err, &authErr)
	return authErr, ok
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func IsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	ok := errors.As(err, &netErr)
	return netErr, ok
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
