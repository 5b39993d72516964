package retry_test

import (
	"testing"
	"time"

	"github.com/DanielPopoola/moneybag-go/retry"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		hasResponse bool
		statusCode  int
		want        retry.Class
	}{
		{"no response", false, 0, retry.Transient},
		{"internal server error", true, 500, retry.Transient},
		{"service unavailable", true, 503, retry.Transient},
		{"too many requests", true, 429, retry.Transient},
		{"request timeout", true, 408, retry.Transient},
		{"ok", true, 200, retry.Permanent},
		{"created", true, 201, retry.Permanent},
		{"bad request", true, 400, retry.Permanent},
		{"unauthorized", true, 401, retry.Permanent},
		{"not found", true, 404, retry.Permanent},
		{"unprocessable", true, 422, retry.Permanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retry.Classify(tt.hasResponse, tt.statusCode))
		})
	}
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, time.Duration(0), retry.Backoff(0))
	assert.Equal(t, 1*time.Second, retry.Backoff(1))
	assert.Equal(t, 2*time.Second, retry.Backoff(2))
	assert.Equal(t, 4*time.Second, retry.Backoff(3))
	assert.Equal(t, 8*time.Second, retry.Backoff(4))
	assert.Equal(t, 10*time.Second, retry.Backoff(5))
	assert.Equal(t, 10*time.Second, retry.Backoff(6))
	assert.Equal(t, 10*time.Second, retry.Backoff(100))
}

func TestTotalBackoff(t *testing.T) {
	assert.Equal(t, time.Duration(0), retry.TotalBackoff(0))
	assert.Equal(t, 7*time.Second, retry.TotalBackoff(3))
	assert.Equal(t, 25*time.Second, retry.TotalBackoff(5))
}
