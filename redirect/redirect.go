// Package redirect reads and builds the URLs the gateway redirects shoppers to
// after a hosted checkout.
package redirect

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/DanielPopoola/moneybag-go/domain"
)

const (
	paramTransactionID = "transaction_id"
	paramStatus        = "status"
)

var ErrMissingParams = errors.New("invalid redirect URL: missing required parameters")

type Params struct {
	TransactionID string               `json:"transaction_id"`
	Status        domain.PaymentStatus `json:"status"`
}

// URLs are the merchant's redirect targets, as sent in the checkout request.
type URLs struct {
	SuccessURL string
	FailURL    string
	CancelURL  string
}

// Parse accepts a full redirect URL or a bare query string. Both transaction_id
// and status must be present.
func Parse(raw string) (Params, error) {
	query := raw
	if _, after, found := strings.Cut(raw, "?"); found {
		query = after
	}
	query, _, _ = strings.Cut(query, "#")

	values, err := url.ParseQuery(query)
	if err != nil {
		return Params{}, fmt.Errorf("invalid redirect URL: %w", err)
	}

	p := Params{
		TransactionID: values.Get(paramTransactionID),
		Status:        domain.PaymentStatus(values.Get(paramStatus)),
	}
	if p.TransactionID == "" || p.Status == "" {
		return Params{}, ErrMissingParams
	}
	return p, nil
}

// Build appends the redirect parameters to baseURL, keeping any query it already has.
func Build(baseURL string, p Params) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Add(paramTransactionID, p.TransactionID)
	q.Add(paramStatus, string(p.Status))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// URLForStatus picks the redirect target for a payment outcome. Unknown and
// pending statuses go to the fail URL.
func URLForStatus(status domain.PaymentStatus, urls URLs) string {
	switch status {
	case domain.StatusSuccess:
		return urls.SuccessURL
	case domain.StatusCancelled:
		return urls.CancelURL
	default:
		return urls.FailURL
	}
}
