package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/calltrace/pkg/config"
	"github.com/Aleph-Alpha/calltrace/pkg/logger"
	"github.com/Aleph-Alpha/calltrace/pkg/metrics"
)

func TestAppGraphIsComplete(t *testing.T) {
	for _, storage := range []string{config.StorageMemory, config.StoragePostgres} {
		t.Run(storage, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.Type = storage
			assert.NoError(t, fx.ValidateApp(appOptions(cfg)...))
		})
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestServeRejectsInvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "redis")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--env-file", ""})

	assert.ErrorIs(t, cmd.Execute(), config.ErrInvalidConfig)
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	stopped := false
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.StopHook(func() { stopped = true }))
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx, app))
	assert.True(t, stopped)
}

func TestRunReportsNonZeroExitCode(t *testing.T) {
	stopped := false
	app := fx.New(
		fx.NopLogger,
		fx.Invoke(func(lc fx.Lifecycle, sd fx.Shutdowner) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					return sd.Shutdown(fx.ExitCode(3))
				},
				OnStop: func(context.Context) error {
					stopped = true
					return nil
				},
			})
		}),
	)

	err := run(context.Background(), app)
	require.EqualError(t, err, "shutdown with exit code 3")
	assert.True(t, stopped)
}

func TestRouterRecordsAndLogsRequests(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logger.NewFromZap(zap.New(core), false)
	m := metrics.NewMetrics(metrics.Config{Namespace: "test"})

	router := newRouter(m, l)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, logs.FilterMessage("request served").Len())
	count, err := testutil.GatherAndCount(m.Registry, "test_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
