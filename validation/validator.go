// Package validation checks outbound requests before they reach the network.
//
// Checks never stop at the first problem: every rule appends to a shared list of
// violations, and the caller gets all of them in one *domain.ValidationError.
package validation

import (
	"fmt"
	"math/big"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DanielPopoola/moneybag-go/domain"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	amountPattern   = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	leadingNumber   = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

	minAmount = mustRat(domain.MinOrderAmount)
	maxAmount = mustRat(domain.MaxOrderAmount)
)

const minPhoneDigits = 10

func mustRat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("validation: bad amount constant " + s)
	}
	return r
}

type violations []string

func (v *violations) add(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return domain.NewValidationError(v...)
}

// ValidateCheckoutRequest returns nil or a *domain.ValidationError holding one
// message per violated rule, in field order.
func ValidateCheckoutRequest(req *domain.CheckoutRequest) error {
	if req == nil {
		return domain.NewValidationError("checkout request is required")
	}

	var v violations

	checkOrderID(&v, req.OrderID)
	checkCurrency(&v, req.Currency)
	checkOrderAmount(&v, req.OrderAmount)

	checkRedirectURL(&v, "success_url", req.SuccessURL)
	checkRedirectURL(&v, "cancel_url", req.CancelURL)
	checkRedirectURL(&v, "fail_url", req.FailURL)
	if req.IPNURL != "" && !isWebURL(req.IPNURL) {
		v.add("ipn_url must be a valid URL starting with http:// or https://")
	}

	checkCustomer(&v, req.Customer)
	checkPaymentInfo(&v, req.PaymentInfo)

	return v.err()
}

// ValidateTransactionID rejects empty and whitespace-only transaction IDs.
func ValidateTransactionID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("Transaction ID is required")
	}
	return nil
}

func checkOrderID(v *violations, orderID string) {
	switch {
	case orderID == "":
		v.add("order_id is required")
	case utf8.RuneCountInString(orderID) > domain.MaxOrderIDLength:
		v.add("order_id must not exceed %d characters", domain.MaxOrderIDLength)
	}
}

func checkCurrency(v *violations, currency string) {
	switch {
	case currency == "":
		v.add("currency is required")
	case !currencyPattern.MatchString(currency):
		v.add("currency must be a 3-letter uppercase code (e.g., BDT, USD)")
	}
}

// checkOrderAmount compares the leading number of amount exactly, the way a
// lenient float parse would read it, and separately inspects the literal string
// for precision. "100.123" and "100abc" only fail the precision check.
func checkOrderAmount(v *violations, amount string) {
	if amount == "" {
		v.add("order_amount is required")
		return
	}

	parsed, ok := parseLeadingAmount(amount)
	if !ok || parsed.Cmp(minAmount) < 0 || parsed.Cmp(maxAmount) > 0 {
		v.add("order_amount must be between %s and %s", domain.MinOrderAmount, domain.MaxOrderAmount)
	}

	if !amountPattern.MatchString(amount) {
		v.add("order_amount must have at most 2 decimal places")
	}
}

func parseLeadingAmount(amount string) (*big.Rat, bool) {
	m := leadingNumber.FindString(amount)
	if m == "" {
		return nil, false
	}

	m = strings.TrimSpace(m)
	sign := ""
	if m[0] == '+' || m[0] == '-' {
		sign, m = m[:1], m[1:]
	}
	mantissa, exponent, _ := strings.Cut(strings.ToLower(m), "e")
	mantissa = strings.TrimSuffix(mantissa, ".")
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if exponent != "" {
		// far outside the allowed range either way
		if len(strings.TrimLeft(exponent, "+-0")) > 4 {
			return nil, false
		}
		mantissa += "e" + exponent
	}

	return new(big.Rat).SetString(sign + mantissa)
}

func checkRedirectURL(v *violations, field, value string) {
	switch {
	case value == "":
		v.add("%s is required", field)
	case !isWebURL(value):
		v.add("%s must be a valid URL starting with http:// or https://", field)
	case utf8.RuneCountInString(value) > domain.MaxURLLength:
		v.add("%s must not exceed %d characters", field, domain.MaxURLLength)
	}
}

func checkCustomer(v *violations, c *domain.Customer) {
	if c == nil {
		v.add("customer is required")
		return
	}

	required := []struct {
		field string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"address", c.Address},
		{"city", c.City},
		{"postcode", c.Postcode},
		{"country", c.Country},
		{"phone", c.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			v.add("customer.%s is required", r.field)
		}
	}

	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		v.add("customer.email must be a valid email address")
	}

	if c.Phone != "" && !isPhone(c.Phone) {
		v.add("customer.phone must be a valid phone number")
	}
}

func checkPaymentInfo(v *violations, info *domain.PaymentInfo) {
	if info == nil {
		return
	}
	if len(info.AllowedPaymentMethods) == 0 {
		v.add("payment_info.allowed_payment_methods must contain at least one payment method")
	}
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func isPhone(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}

	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}
