package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/calltrace/internal/item"
	"github.com/Aleph-Alpha/calltrace/pkg/calltrace"
	"github.com/Aleph-Alpha/calltrace/pkg/config"
	"github.com/Aleph-Alpha/calltrace/pkg/logger"
	"github.com/Aleph-Alpha/calltrace/pkg/metrics"
	"github.com/Aleph-Alpha/calltrace/pkg/postgres"
)

// appOptions assembles the application for cfg.
func appOptions(cfg *config.Config) []fx.Option {
	return []fx.Option{
		fx.Supply(cfg.Logger, cfg.Trace, cfg.Postgres, cfg.Metrics, cfg.Server),
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
		logger.FXModule,
		fx.Provide(
			func(l *logger.Logger) calltrace.Logger { return l },
			func(l *logger.Logger) metrics.Logger { return l },
			func(l *logger.Logger) postgres.Logger { return l },
			func(l *logger.Logger) item.Logger { return l },
		),
		calltrace.FXModule,
		metrics.FXModule,
		storageModule(cfg.Storage.Type),
		item.FXModule,
		fx.Provide(newRouter),
		fx.Invoke(registerServerLifecycle),
	}
}

func storageModule(kind string) fx.Option {
	if kind == config.StoragePostgres {
		return item.PostgresStorageModule
	}
	return item.MemoryStorageModule
}

// newRouter creates the gin engine with panic recovery, request metrics and
// request logging.
func newRouter(m *metrics.Metrics, l *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), metrics.GinMiddleware(m), requestLogger(l))
	return router
}

// requestLogger logs one line per request. The request context sits outside
// every traced call, so only OTel span ids are attached here; call trace ids
// appear on the lines ItemService logs.
func requestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			l.ErrorWithContext(c.Request.Context(), "request failed", c.Errors.Last(), fields)
			return
		}
		l.DebugWithContext(c.Request.Context(), "request served", nil, fields)
	}
}

// registerServerLifecycle serves router on the configured address while the
// application runs.
func registerServerLifecycle(lc fx.Lifecycle, cfg config.ServerConfig, router *gin.Engine, l *logger.Logger) {
	server := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			l.Info("Starting HTTP server", nil, map[string]interface{}{"address": listener.Addr().String()})

			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("HTTP server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Info("Shutting down HTTP server", nil, nil)
			return server.Shutdown(ctx)
		},
	})
}
