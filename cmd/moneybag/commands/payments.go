package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/DanielPopoola/moneybag-go/domain"
	"github.com/DanielPopoola/moneybag-go/redirect"
)

// checkout --file <order.yaml|order.json>: start a hosted checkout session.
func checkoutCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Create a checkout session from an order file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			req, err := decodeCheckoutRequest(raw)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			resp, err := a.client.Checkout(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "order file in YAML or JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// verify <transaction-id>: look up a transaction.
func verifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <transaction-id>",
		Short: "Verify a payment transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}

// redirect <url>: parse the parameters the gateway appended to a redirect URL.
func redirectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redirect <url>",
		Short: "Parse a checkout redirect URL",
		Args:  cobra.ExactArgs(1),
		// No gateway access needed, skip loading credentials
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := redirect.Parse(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}
}

// decodeCheckoutRequest reads a YAML (and therefore JSON) order file. Unquoted
// scalars such as 1280.50 or 1207 keep their literal text in string fields.
func decodeCheckoutRequest(raw []byte) (*domain.CheckoutRequest, error) {
	var req domain.CheckoutRequest
	if err := yaml.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
