// Package domain defines the request and response models exchanged with the
// Moneybag gateway, and the error taxonomy every operation reports through.
package domain

const (
	APIVersion = "v2"

	SandboxBaseURL    = "https://sandbox.api.moneybag.com.bd/api/v2"
	ProductionBaseURL = "https://api.moneybag.com.bd/api/v2"
)

// Limits enforced on checkout requests before they leave the process.
const (
	MaxOrderIDLength = 30
	MinOrderAmount   = "10.00"
	MaxOrderAmount   = "500000.00"
	MaxURLLength     = 255
)

// PaymentStatus is the outcome the gateway reports for a transaction
type PaymentStatus string

const (
	StatusSuccess   PaymentStatus = "SUCCESS"
	StatusFailed    PaymentStatus = "FAILED"
	StatusPending   PaymentStatus = "PENDING"
	StatusCancelled PaymentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	MethodCard            PaymentMethod = "card"
	MethodMobileBanking   PaymentMethod = "mobile_banking"
	MethodInternetBanking PaymentMethod = "internet_banking"
	MethodWallet          PaymentMethod = "wallet"
)

const (
	CurrencyBDT = "BDT"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// CheckoutRequest starts a hosted checkout session. Amounts are decimal strings
// so they reach the gateway exactly as the merchant wrote them.
type CheckoutRequest struct {
	OrderID          string         `json:"order_id" yaml:"order_id"`
	Currency         string         `json:"currency" yaml:"currency"`
	OrderAmount      string         `json:"order_amount" yaml:"order_amount"`
	OrderDescription string         `json:"order_description,omitempty" yaml:"order_description,omitempty"`
	SuccessURL       string         `json:"success_url" yaml:"success_url"`
	CancelURL        string         `json:"cancel_url" yaml:"cancel_url"`
	FailURL          string         `json:"fail_url" yaml:"fail_url"`
	IPNURL           string         `json:"ipn_url,omitempty" yaml:"ipn_url,omitempty"`
	Customer         *Customer      `json:"customer" yaml:"customer"`
	Shipping         *Shipping      `json:"shipping,omitempty" yaml:"shipping,omitempty"`
	OrderItems       []OrderItem    `json:"order_items,omitempty" yaml:"order_items,omitempty"`
	PaymentInfo      *PaymentInfo   `json:"payment_info,omitempty" yaml:"payment_info,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type Customer struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Address  string `json:"address" yaml:"address"`
	City     string `json:"city" yaml:"city"`
	Postcode string `json:"postcode" yaml:"postcode"`
	Country  string `json:"country" yaml:"country"`
	Phone    string `json:"phone" yaml:"phone"`
}

type Shipping struct {
	Name     string         `json:"name" yaml:"name"`
	Address  string         `json:"address" yaml:"address"`
	City     string         `json:"city" yaml:"city"`
	State    string         `json:"state,omitempty" yaml:"state,omitempty"`
	Postcode string         `json:"postcode" yaml:"postcode"`
	Country  string         `json:"country" yaml:"country"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type OrderItem struct {
	SKU             string         `json:"sku,omitempty" yaml:"sku,omitempty"`
	ProductName     string         `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	ProductCategory string         `json:"product_category,omitempty" yaml:"product_category,omitempty"`
	Quantity        int            `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	UnitPrice       string         `json:"unit_price,omitempty" yaml:"unit_price,omitempty"`
	VAT             string         `json:"vat,omitempty" yaml:"vat,omitempty"`
	ConvenienceFee  string         `json:"convenience_fee,omitempty" yaml:"convenience_fee,omitempty"`
	DiscountAmount  string         `json:"discount_amount,omitempty" yaml:"discount_amount,omitempty"`
	NetAmount       string         `json:"net_amount,omitempty" yaml:"net_amount,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type PaymentInfo struct {
	IsRecurring           bool            `json:"is_recurring,omitempty" yaml:"is_recurring,omitempty"`
	Installments          int             `json:"installments,omitempty" yaml:"installments,omitempty"`
	CurrencyConversion    bool            `json:"currency_conversion,omitempty" yaml:"currency_conversion,omitempty"`
	AllowedPaymentMethods []PaymentMethod `json:"allowed_payment_methods" yaml:"allowed_payment_methods"`
	RequiresEMI           bool            `json:"requires_emi,omitempty" yaml:"requires_emi,omitempty"`
}

// Envelope is the wrapper the gateway puts around every response body.
// Success is the gateway's logical outcome and is independent of the HTTP status.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

type CheckoutData struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
	ExpiresAt   string `json:"expires_at"`
}

type VerifyData struct {
	TransactionID      string        `json:"transaction_id"`
	OrderID            string        `json:"order_id"`
	Verified           bool          `json:"verified"`
	Status             PaymentStatus `json:"status"`
	Amount             string        `json:"amount"`
	Currency           string        `json:"currency"`
	PaymentMethod      string        `json:"payment_method"`
	PaymentReferenceID string        `json:"payment_reference_id"`
	Customer           Customer      `json:"customer"`
}

// IsPaid reports whether the gateway both verified the transaction and settled it.
func (d VerifyData) IsPaid() bool {
	return d.Verified && d.Status == StatusSuccess
}

type (
	CheckoutResponse = Envelope[CheckoutData]
	VerifyResponse   = Envelope[VerifyData]
)
