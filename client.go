// Package moneybag is a client for the Moneybag payment gateway.
//
// A Client validates each request locally, sends it through a retrying
// transport, and checks the gateway's success flag before handing back a typed
// response. Every failure is one of the domain.Error variants:
//
//	resp, err := client.Checkout(ctx, req)
//	switch domain.KindOf(err) {
//	case domain.KindValidation: // fix the request
//	case domain.KindGateway:    // the gateway declined
//	...
//	}
package moneybag

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/settings"
	"github.com/DanielPopoola/moneybag-go/transport"
	"github.com/DanielPopoola/moneybag-go/validation"
)

const (
	checkoutPath = "/payments/checkout"
	verifyPath   = "/payments/verify/"
)

// Sender performs one logical HTTP call, retries included.
type Sender interface {
	Send(ctx context.Context, method, path string, body any) (*transport.Response, error)
}

// Client holds no mutable state and is safe for concurrent use.
type Client struct {
	settings *settings.Settings
	sender   Sender
}

// New builds Settings and a Client in one step.
func New(apiKey, baseURL string, opts ...settings.Option) (*Client, error) {
	s, err := settings.New(apiKey, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(s), nil
}

func NewClient(s *settings.Settings, opts ...transport.Option) *Client {
	return NewClientWithSender(s, transport.New(s, opts...))
}

func NewClientWithSender(s *settings.Settings, sender Sender) *Client {
	return &Client{
		settings: s,
		sender:   sender,
	}
}

func (c *Client) Settings() *settings.Settings {
	return c.settings
}

// Checkout creates a hosted checkout session. The request is validated first;
// an invalid request never reaches the network.
func (c *Client) Checkout(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutResponse, error) {
	if err := validation.ValidateCheckoutRequest(req); err != nil {
		return nil, err
	}

	return call[domain.CheckoutData](c, ctx, http.MethodPost, checkoutPath, req, "Checkout request failed")
}

// Verify fetches the gateway's view of a transaction.
func (c *Client) Verify(ctx context.Context, transactionID string) (*domain.VerifyResponse, error) {
	if err := validation.ValidateTransactionID(transactionID); err != nil {
		return nil, err
	}

	path := verifyPath + url.PathEscape(transactionID)
	return call[domain.VerifyData](c, ctx, http.MethodGet, path, nil, "Verification request failed")
}

// call sends the request, decodes the envelope and turns success=false into a
// *domain.GatewayError. Transport errors are returned unchanged.
func call[T any](c *Client, ctx context.Context, method, path string, body any, fallback string) (*domain.Envelope[T], error) {
	resp, err := c.sender.Send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var envelope domain.Envelope[T]
	if err := resp.Decode(&envelope); err != nil {
		return nil, &domain.APIError{
			Message:      fmt.Sprintf("invalid response body: %v", err),
			StatusCode:   resp.StatusCode,
			ResponseBody: resp.Body,
		}
	}

	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = fallback
		}
		return nil, &domain.GatewayError{Message: message}
	}

	return &envelope, nil
}
