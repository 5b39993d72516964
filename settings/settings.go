// Package settings holds the validated, immutable connection parameters shared
// by the transport and the client.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/retry"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3

	HeaderAPIKey = "X-Merchant-API-Key"
)

// Settings is safe to share between goroutines: nothing mutates it after New.
type Settings struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	maxRetries int
}

type params struct {
	APIKey     string        `json:"api_key" validate:"required"`
	BaseURL    string        `json:"base_url" validate:"required,url"`
	Timeout    time.Duration `json:"timeout" validate:"gt=0"`
	MaxRetries int           `json:"max_retries" validate:"gte=0"`
}

type Option func(*params)

func WithTimeout(d time.Duration) Option {
	return func(p *params) {
		p.Timeout = d
	}
}

// WithMaxRetries sets the retry budget. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(p *params) {
		p.MaxRetries = n
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// New validates the parameters and returns Settings, or a *domain.ValidationError
// listing every invalid parameter.
func New(apiKey, baseURL string, opts ...Option) (*Settings, error) {
	p := params{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&p)
	}

	if err := validate.Struct(p); err != nil {
		return nil, toValidationError(err)
	}

	return &Settings{
		apiKey:     p.APIKey,
		baseURL:    strings.TrimRight(p.BaseURL, "/"),
		timeout:    p.Timeout,
		maxRetries: p.MaxRetries,
	}, nil
}

func toValidationError(err error) *domain.ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fe.Field()+" is required")
		case "url":
			messages = append(messages, fe.Field()+" must be a valid URL")
		case "gt":
			messages = append(messages, fe.Field()+" must be positive")
		case "gte":
			messages = append(messages, fe.Field()+" must not be negative")
		default:
			messages = append(messages, fmt.Sprintf("%s failed %q check", fe.Field(), fe.Tag()))
		}
	}
	return domain.NewValidationError(messages...)
}

// Headers returns the headers sent with every request. The map is a fresh copy.
func (s *Settings) Headers() map[string]string {
	return map[string]string{
		HeaderAPIKey:   s.apiKey,
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

func (s *Settings) APIKey() string { return s.apiKey }

// BaseURL is the endpoint without a trailing slash; request paths are appended to it.
func (s *Settings) BaseURL() string { return s.baseURL }

// Timeout bounds a single physical attempt.
func (s *Settings) Timeout() time.Duration { return s.timeout }

func (s *Settings) MaxRetries() int { return s.maxRetries }

// MaxCallDuration is the longest one logical call can take: every attempt
// running into its timeout plus every backoff delay in between.
func (s *Settings) MaxCallDuration() time.Duration {
	return s.timeout*time.Duration(s.maxRetries+1) + retry.TotalBackoff(s.maxRetries)
}

// LogValue keeps the API key out of logs.
func (s *Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", s.baseURL),
		slog.String("api_key", maskKey(s.apiKey)),
		slog.Duration("timeout", s.timeout),
		slog.Int("max_retries", s.maxRetries),
	)
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
