package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/systolic/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evaluations over HTTP",
		Long: `Serve evaluations over HTTP until interrupted.

Endpoints:
  POST /v1/evaluate   {"inputs":[1,2],"equation":"x^2+1"}
  GET  /health        health including an engine probe
  GET  /alive         liveness probe
  GET  /version       build information`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := a.load(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tel, err := setupTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer tel.Shutdown(context.WithoutCancel(ctx))

	srv := server.New(cfg.Server, log)
	srv.Setup(cfg.Name, tel.metrics, tel.tracing)
	return srv.Run(ctx)
}
