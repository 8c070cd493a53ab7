package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/calltrace/pkg/config"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), fx.New(appOptions(cfg)...))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path of a YAML config file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "env file loaded when present")
	return cmd
}

// run starts app, blocks until a shutdown signal or ctx ends, and stops it.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Err(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case sig := <-app.Wait():
			if sig.ExitCode != 0 {
				return fmt.Errorf("shutdown with exit code %d", sig.ExitCode)
			}
		case <-gctx.Done():
		}
		return nil
	})
	waitErr := g.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}
	return waitErr
}
