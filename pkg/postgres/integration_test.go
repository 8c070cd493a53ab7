package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

// testItem is a sample model for the integration tests
type testItem struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	ItemName string `gorm:"uniqueIndex"`
	Price    int
}

func (testItem) TableName() string { return "test_item" }

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	Config Config
	Host   string
	Port   string
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portStr = mappedPort.Port()

	connection := Connection{
		Host:     host,
		Port:     portStr,
		User:     "testuser",
		Password: "testpass",
		DbName:   "testdb",
		SSLMode:  "disable",
	}

	if err := waitForPostgresReady(connection.DSN(), 30*time.Second); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("postgres container not ready: %w", err)
	}

	return &PostgresContainer{
		Container: pgContainer,
		Config:    Config{Connection: connection},
		Host:      host,
		Port:      portStr,
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = addr.Close() }()

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForPostgresReady attempts to connect to PostgreSQL until it's ready or times out
func waitForPostgresReady(dsn string, timeout time.Duration) error {
	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for PostgreSQL to be ready after %s", timeout)
		}

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		err = db.Ping()
		_ = db.Close()
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func newLenientLogger(t *testing.T) *MockLogger {
	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Fatal(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	return mockLogger
}

// TestPostgresWithFXModule tests the postgres package using the FX module
func TestPostgresWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pg, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var postgres *Postgres
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return pg.Config },
			func() Logger { return newLenientLogger(t) },
		),
		FXModule,
		fx.Populate(&postgres),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NoError(t, postgres.Migrate(&testItem{}))
	require.NoError(t, postgres.Exec(ctx, "TRUNCATE TABLE test_item"))

	t.Run("CRUD", func(t *testing.T) {
		item := testItem{ItemName: "itemA", Price: 1000}
		require.NoError(t, postgres.Create(ctx, &item))
		assert.NotZero(t, item.ID)

		var found testItem
		require.NoError(t, postgres.First(ctx, &found, item.ID))
		assert.Equal(t, "itemA", found.ItemName)

		rows, err := postgres.UpdateWhere(ctx, &testItem{}, map[string]interface{}{"price": 2000}, "id = ?", item.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		rows, err = postgres.UpdateWhere(ctx, &testItem{}, map[string]interface{}{"price": 1}, "id = ?", -1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		var all []testItem
		require.NoError(t, postgres.Find(ctx, &all))
		assert.Len(t, all, 1)

		err = postgres.First(ctx, &found, int64(-1))
		assert.ErrorIs(t, TranslateError(err), ErrRecordNotFound)
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		require.NoError(t, postgres.Create(ctx, &testItem{ItemName: "dup"}))
		err := postgres.Create(ctx, &testItem{ItemName: "dup"})
		assert.ErrorIs(t, TranslateError(err), ErrDuplicateKey)
	})

	t.Run("TransactionRollback", func(t *testing.T) {
		failure := errors.New("abort")
		err := postgres.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := postgres.Create(ctx, &testItem{ItemName: "rolled-back"}); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		var found testItem
		err = postgres.First(ctx, &found, "item_name = ?", "rolled-back")
		assert.ErrorIs(t, TranslateError(err), ErrRecordNotFound)
	})

	t.Run("TransactionCommit", func(t *testing.T) {
		err := postgres.WithinTransaction(ctx, func(ctx context.Context) error {
			return postgres.Create(ctx, &testItem{ItemName: "committed"})
		})
		require.NoError(t, err)

		var found testItem
		require.NoError(t, postgres.First(ctx, &found, "item_name = ?", "committed"))
	})

	t.Run("PoolStats", func(t *testing.T) {
		require.NoError(t, postgres.Ping(ctx))
		stats, err := postgres.Stats()
		require.NoError(t, err)
		assert.Equal(t, 50, stats.MaxOpenConnections)
		assert.Equal(t, ProviderName, postgres.ProviderName())
	})
}

// TestPostgresConnectionFailureRecovery tests that a retry signal reconnects
func TestPostgresConnectionFailureRecovery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pg, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	postgres, err := NewPostgres(pg.Config, newLenientLogger(t))
	require.NoError(t, err)
	defer func() { _ = postgres.GracefulShutdown() }()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go postgres.retryConnection(runCtx)

	postgres.retryChanSignal <- fmt.Errorf("test connection error")
	time.Sleep(100 * time.Millisecond)

	var result int
	err = postgres.DB().Raw("SELECT 1").Scan(&result).Error
	assert.NoError(t, err)
	assert.Equal(t, 1, result)
}
