package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ysip-labs/ysip/api"
	"github.com/ysip-labs/ysip/app"
)

// ServeCmd opens the application and serves the REST API until interrupted.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only REST API and metrics",
		Long: `Open the application in <home>/data and serve pair, token and balance queries
over HTTP, with Prometheus metrics at /metrics. The data directory stays locked
while the server runs.

Example:
  $ ysipd serve --api-address 0.0.0.0:1317`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			tel, err := app.InitTelemetry(nc.config.Telemetry)
			if err != nil {
				return fmt.Errorf("init telemetry: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := tel.Shutdown(ctx); err != nil {
					nc.logger.Error("telemetry shutdown", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return nc.node.withApp(func(a *app.App) error {
				if nc.config.Telemetry.Enabled {
					ct, err := app.NewContractTelemetry(tel.Meter())
					if err != nil {
						return err
					}
					a.ContractKeeper.SetTelemetry(ct)
				}
				server := api.NewServer(app.NewReadBackend(a), nc.config.APIServerConfig(), nc.logger)
				return server.Start(ctx)
			})
		},
	}
	cmd.Flags().String(FlagAPIAddress, "", "REST API listen address (overrides app.toml)")
	return cmd
}
