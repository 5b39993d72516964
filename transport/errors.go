package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/DanielPopoola/moneybag-go/domain"
)

const noResponseMessage = "No response from server"

// gatewayErrorResponse is the shape of the gateway's error bodies. Only the
// message is used; the raw body travels along in the error.
type gatewayErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// statusError maps a non-2xx response to the taxonomy.
func statusError(resp *Response) domain.Error {
	message := fmt.Sprintf("API error: %d", resp.StatusCode)

	var errResp gatewayErrorResponse
	if err := json.Unmarshal(resp.Body, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domain.AuthenticationError{
			Message:      message,
			StatusCode:   resp.StatusCode,
			ResponseBody: resp.Body,
		}
	default:
		return &domain.APIError{
			Message:      message,
			StatusCode:   resp.StatusCode,
			ResponseBody: resp.Body,
		}
	}
}

func noResponseError(err error) domain.Error {
	return &domain.NetworkError{
		Message: noResponseMessage,
		Code:    networkCode(err),
		Err:     err,
	}
}

func cancelledError(err error) domain.Error {
	return &domain.NetworkError{
		Message: "request cancelled",
		Code:    domain.CodeCanceled,
		Err:     err,
	}
}

// networkCode narrows a low-level failure down to an errno-style code, or "".
func networkCode(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.CodeTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.CodeConnectionRefused
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return domain.CodeConnectionReset
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return domain.CodeTimeout
		}
		return domain.CodeHostNotFound
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.CodeTimeout
	}

	return ""
}
