// Package retry holds the pure parts of the retry policy: how a single attempt
// is classified, and how long to wait before the next one. Nothing here performs
// I/O or reads a clock.
package retry

import (
	"net/http"
	"time"
)

// Class tells the retry loop whether repeating an unchanged request could help
type Class string

const (
	Transient Class = "TRANSIENT"
	Permanent Class = "PERMANENT"
)

const (
	BaseDelay = time.Second
	MaxDelay  = 10 * time.Second
)

// Classify maps the outcome of one physical attempt to a Class.
//
// No response at all (refused, reset, timed out) is transient, as are 5xx,
// 429 Too Many Requests and 408 Request Timeout. Every other response,
// including the remaining 4xx codes, is permanent.
func Classify(hasResponse bool, statusCode int) Class {
	if !hasResponse {
		return Transient
	}

	if statusCode >= 500 ||
		statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusRequestTimeout {
		return Transient
	}

	return Permanent
}

// Backoff returns the delay before retry n (1-indexed): 1s, 2s, 4s, ... capped at 10s.
func Backoff(n int) time.Duration {
	if n < 1 {
		return 0
	}
	// 2^4 seconds already exceeds the cap, avoid shifting further
	if n > 5 {
		return MaxDelay
	}

	return min(BaseDelay*time.Duration(1<<(n-1)), MaxDelay)
}

// TotalBackoff is the sum of every delay a call with the given retry budget can sleep.
func TotalBackoff(maxRetries int) time.Duration {
	var total time.Duration
	for n := 1; n <= maxRetries; n++ {
		total += Backoff(n)
	}
	return total
}
