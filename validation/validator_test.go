package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/validation"
)

func validRequest() *domain.CheckoutRequest {
	return &domain.CheckoutRequest{
		OrderID:     "ORD-1001",
		Currency:    domain.CurrencyBDT,
		OrderAmount: "1280.00",
		SuccessURL:  "https://shop.example.com/payment/success",
		CancelURL:   "https://shop.example.com/payment/cancel",
		FailURL:     "https://shop.example.com/payment/fail",
		Customer: &domain.Customer{
			Name:     "Rahim Uddin",
			Email:    "rahim@example.com",
			Address:  "12 Lake Road",
			City:     "Dhaka",
			Postcode: "1207",
			Country:  "BD",
			Phone:    "+880 1712-345678",
		},
	}
}

func messagesOf(t *testing.T, err error) []string {
	t.Helper()
	valErr, ok := domain.IsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	return valErr.Messages
}

func TestValidateCheckoutRequest_Valid(t *testing.T) {
	req := validRequest()
	req.IPNURL = "https://shop.example.com/ipn"
	req.PaymentInfo = &domain.PaymentInfo{
		AllowedPaymentMethods: []domain.PaymentMethod{domain.MethodCard, domain.MethodMobileBanking},
	}

	assert.NoError(t, validation.ValidateCheckoutRequest(req))
}

func TestValidateCheckoutRequest_Nil(t *testing.T) {
	assert.Equal(t, []string{"checkout request is required"}, messagesOf(t, validation.ValidateCheckoutRequest(nil)))
}

func TestValidateCheckoutRequest_AggregatesEveryViolation(t *testing.T) {
	req := validRequest()
	req.OrderID = ""
	req.Currency = "bdt"

	msgs := messagesOf(t, validation.ValidateCheckoutRequest(req))

	assert.Equal(t, []string{
		"order_id is required",
		"currency must be a 3-letter uppercase code (e.g., BDT, USD)",
	}, msgs)
}

func TestValidateCheckoutRequest_EmptyRequestReportsEveryRequiredField(t *testing.T) {
	msgs := messagesOf(t, validation.ValidateCheckoutRequest(&domain.CheckoutRequest{}))

	assert.Equal(t, []string{
		"order_id is required",
		"currency is required",
		"order_amount is required",
		"success_url is required",
		"cancel_url is required",
		"fail_url is required",
		"customer is required",
	}, msgs)
}

func TestValidateCheckoutRequest_OrderIDLength(t *testing.T) {
	req := validRequest()
	req.OrderID = strings.Repeat("A", 30)
	assert.NoError(t, validation.ValidateCheckoutRequest(req))

	req.OrderID = strings.Repeat("A", 31)
	assert.Equal(t, []string{"order_id must not exceed 30 characters"},
		messagesOf(t, validation.ValidateCheckoutRequest(req)))
}

func TestValidateCheckoutRequest_OrderIDLengthCountsCharacters(t *testing.T) {
	req := validRequest()
	req.OrderID = strings.Repeat("অ", 30)
	assert.NoError(t, validation.ValidateCheckoutRequest(req))

	req.OrderID = strings.Repeat("অ", 31)
	assert.Equal(t, []string{"order_id must not exceed 30 characters"},
		messagesOf(t, validation.ValidateCheckoutRequest(req)))
}

func TestValidateCheckoutRequest_URLLengthCountsCharacters(t *testing.T) {
	base := "https://shop.example.com/"
	req := validRequest()
	req.SuccessURL = base + strings.Repeat("ü", 255-len(base))
	assert.NoError(t, validation.ValidateCheckoutRequest(req))

	req.SuccessURL = base + strings.Repeat("ü", 256-len(base))
	assert.Equal(t, []string{"success_url must not exceed 255 characters"},
		messagesOf(t, validation.ValidateCheckoutRequest(req)))
}

func TestValidateCheckoutRequest_OrderAmount(t *testing.T) {
	const (
		rangeMsg     = "order_amount must be between 10.00 and 500000.00"
		precisionMsg = "order_amount must have at most 2 decimal places"
	)

	tests := []struct {
		amount string
		want   []string
	}{
		{"100.00", nil},
		{"10", nil},
		{"10.00", nil},
		{"500000.00", nil},
		{"99.9", nil},
		{"5.00", []string{rangeMsg}},
		{"9.99", []string{rangeMsg}},
		{"500000.01", []string{rangeMsg}},
		{"100.123", []string{precisionMsg}},
		{"-50.00", []string{rangeMsg, precisionMsg}},
		{"abc", []string{rangeMsg, precisionMsg}},
		{"1e3", []string{precisionMsg}},
		{"100abc", []string{precisionMsg}},
		{"50/2", []string{precisionMsg}},
		{"5/2", []string{rangeMsg, precisionMsg}},
		{".5", []string{rangeMsg, precisionMsg}},
		{"1e99999", []string{rangeMsg, precisionMsg}},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			req := validRequest()
			req.OrderAmount = tt.amount

			err := validation.ValidateCheckoutRequest(req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, messagesOf(t, err))
		})
	}
}

func TestValidateCheckoutRequest_RedirectURLs(t *testing.T) {
	req := validRequest()
	req.SuccessURL = "not-a-url"
	req.CancelURL = "ftp://shop.example.com/cancel"
	req.FailURL = "https://shop.example.com/" + strings.Repeat("f", 256)

	assert.Equal(t, []string{
		"success_url must be a valid URL starting with http:// or https://",
		"cancel_url must be a valid URL starting with http:// or https://",
		"fail_url must not exceed 255 characters",
	}, messagesOf(t, validation.ValidateCheckoutRequest(req)))

	req = validRequest()
	req.SuccessURL = "https://example.com/success"
	assert.NoError(t, validation.ValidateCheckoutRequest(req))
}

func TestValidateCheckoutRequest_IPNURL(t *testing.T) {
	req := validRequest()
	req.IPNURL = "shop.example.com/ipn"
	assert.Equal(t, []string{"ipn_url must be a valid URL starting with http:// or https://"},
		messagesOf(t, validation.ValidateCheckoutRequest(req)))

	// Length is only enforced on the redirect URLs
	req.IPNURL = "https://shop.example.com/" + strings.Repeat("i", 300)
	assert.NoError(t, validation.ValidateCheckoutRequest(req))
}

func TestValidateCheckoutRequest_Customer(t *testing.T) {
	req := validRequest()
	req.Customer = &domain.Customer{Email: "not-an-email", Phone: "12345"}

	assert.Equal(t, []string{
		"customer.name is required",
		"customer.address is required",
		"customer.city is required",
		"customer.postcode is required",
		"customer.country is required",
		"customer.email must be a valid email address",
		"customer.phone must be a valid phone number",
	}, messagesOf(t, validation.ValidateCheckoutRequest(req)))
}

func TestValidateCheckoutRequest_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+8801712345678", true},
		{"(017) 1234-5678", true},
		{"01712 345 678", true},
		{"017-123-456", false},
		{"+880 1712 abc 678", false},
		{"phone: 01712345678", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			req := validRequest()
			req.Customer.Phone = tt.phone

			err := validation.ValidateCheckoutRequest(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, []string{"customer.phone must be a valid phone number"}, messagesOf(t, err))
			}
		})
	}
}

func TestValidateCheckoutRequest_PaymentInfo(t *testing.T) {
	req := validRequest()
	req.PaymentInfo = &domain.PaymentInfo{IsRecurring: true}

	assert.Equal(t, []string{"payment_info.allowed_payment_methods must contain at least one payment method"},
		messagesOf(t, validation.ValidateCheckoutRequest(req)))
}

func TestValidateCheckoutRequest_DoesNotMutateRequest(t *testing.T) {
	req := validRequest()
	req.Currency = "usd"
	before := *req
	beforeCustomer := *req.Customer

	_ = validation.ValidateCheckoutRequest(req)

	assert.Equal(t, before, *req)
	assert.Equal(t, beforeCustomer, *req.Customer)
}

func TestValidateTransactionID(t *testing.T) {
	assert.NoError(t, validation.ValidateTransactionID("txn_8f3a2c"))

	for _, id := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, []string{"Transaction ID is required"}, messagesOf(t, validation.ValidateTransactionID(id)))
	}
}
