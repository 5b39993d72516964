package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	moneybag "github.com/DanielPopoola/moneybag-go"
	"github.com/DanielPopoola/moneybag-go/internal/config"
	"github.com/DanielPopoola/moneybag-go/transport"
)

type app struct {
	client        *moneybag.Client
	logger        *slog.Logger
	metricsAddr   string
	metricsServer *http.Server
}

func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "moneybag",
		Short:         "Create and verify Moneybag payments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isBuiltin(cmd) {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while the command runs (e.g. :9090)")

	root.AddCommand(checkoutCmd(a), verifyCmd(a), redirectCmd())
	return root
}

// isBuiltin reports whether cmd is one of cobra's own help or completion
// commands, which run without credentials.
func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func (a *app) setup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	a.logger = cfg.Logger.NewLogger()
	slog.SetDefault(a.logger)

	s, err := cfg.Settings()
	if err != nil {
		return err
	}

	opts := []transport.Option{transport.WithLogger(a.logger)}
	if a.metricsAddr != "" {
		metrics, err := a.serveMetrics()
		if err != nil {
			return err
		}
		opts = append(opts, transport.WithMetrics(metrics))
	}

	a.client = moneybag.NewClient(s, opts...)
	a.logger.Debug("client configured", "settings", s)
	return nil
}

func (a *app) serveMetrics() (*transport.Metrics, error) {
	reg := prometheus.NewRegistry()
	metrics, err := transport.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", a.metricsAddr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("metrics server starting", "addr", ln.Addr().String())
		if err := a.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server error", "error", err)
		}
	}()

	return metrics, nil
}

func (a *app) teardown() error {
	if a.metricsServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.metricsServer.Shutdown(ctx)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
