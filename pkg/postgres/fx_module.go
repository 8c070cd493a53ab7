package postgres

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
)

// healthCheckInterval is how often the connection is pinged while the application runs.
const healthCheckInterval = 10 * time.Second

var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgres,
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle starts the connection monitor on start and closes
// the pool on stop.
func RegisterPostgresLifecycle(lifecycle fx.Lifecycle, postgres *Postgres) {
	wg := &sync.WaitGroup{}
	// the loops outlive OnStart's context, which is cancelled once start completes
	runCtx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				postgres.monitorConnection(runCtx, healthCheckInterval)
			}()
			go func() {
				defer wg.Done()
				postgres.retryConnection(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			err := postgres.GracefulShutdown()
			wg.Wait()
			return err
		},
	})
}
