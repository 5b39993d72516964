package redirect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/redirect"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"full url", "https://shop.example.com/payment/success?transaction_id=txn_123&status=SUCCESS"},
		{"bare query", "transaction_id=txn_123&status=SUCCESS"},
		{"extra params and fragment", "https://shop.example.com/ok?ref=abc&transaction_id=txn_123&status=SUCCESS#top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := redirect.Parse(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, "txn_123", p.TransactionID)
			assert.Equal(t, domain.StatusSuccess, p.Status)
		})
	}
}

func TestParse_MissingParams(t *testing.T) {
	for _, raw := range []string{
		"https://shop.example.com/payment/success?status=SUCCESS",
		"https://shop.example.com/payment/success?transaction_id=txn_123",
		"https://shop.example.com/payment/success",
		"",
	} {
		_, err := redirect.Parse(raw)
		assert.ErrorIs(t, err, redirect.ErrMissingParams, raw)
	}
}

func TestBuild(t *testing.T) {
	got, err := redirect.Build("https://shop.example.com/payment/success?ref=abc", redirect.Params{
		TransactionID: "txn_123",
		Status:        domain.StatusSuccess,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/payment/success?ref=abc&status=SUCCESS&transaction_id=txn_123", got)

	p, err := redirect.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "txn_123", p.TransactionID)
}

func TestURLForStatus(t *testing.T) {
	urls := redirect.URLs{
		SuccessURL: "https://shop.example.com/success",
		FailURL:    "https://shop.example.com/fail",
		CancelURL:  "https://shop.example.com/cancel",
	}

	assert.Equal(t, urls.SuccessURL, redirect.URLForStatus(domain.StatusSuccess, urls))
	assert.Equal(t, urls.FailURL, redirect.URLForStatus(domain.StatusFailed, urls))
	assert.Equal(t, urls.CancelURL, redirect.URLForStatus(domain.StatusCancelled, urls))
	assert.Equal(t, urls.FailURL, redirect.URLForStatus(domain.StatusPending, urls))
	assert.Equal(t, urls.FailURL, redirect.URLForStatus("UNKNOWN", urls))
}
