package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Logger defines the interface for logging operations within the postgres package.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=postgres
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Postgres is a thread-safe wrapper around gorm.DB that provides connection monitoring,
// automatic reconnection, and standardized database operations.
type Postgres struct {
	client          *gorm.DB
	cfg             Config
	logger          Logger
	mu              sync.RWMutex
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewPostgres creates a new Postgres instance and establishes the initial connection.
func NewPostgres(cfg Config, logger Logger) (*Postgres, error) {
	conn, err := connectToPostgres(logger, cfg)
	if err != nil {
		return nil, err
	}
	return newWithDB(conn, cfg, logger), nil
}

// NewWithDB wraps an already opened gorm connection.
func NewWithDB(db *gorm.DB, logger Logger) *Postgres {
	return newWithDB(db, Config{}, logger)
}

func newWithDB(db *gorm.DB, cfg Config, logger Logger) *Postgres {
	return &Postgres{
		client:          db,
		cfg:             cfg,
		logger:          logger,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
}

// connectToPostgres opens the gorm connection and configures the pool.
func connectToPostgres(logger Logger, cfg Config) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(cfg.Connection.DSN()),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	details := cfg.ConnectionDetails.withDefaults()
	databaseInstance.SetMaxOpenConns(details.MaxOpenConns)
	databaseInstance.SetMaxIdleConns(details.MaxIdleConns)
	databaseInstance.SetConnMaxLifetime(details.ConnMaxLifetime)

	logger.Info("Successfully connected to PostgresSQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"database": cfg.Connection.DbName,
	})

	return database, nil
}

// retryConnection waits for failure signals from monitorConnection and
// reconnects until it succeeds, the context ends or shutdown is requested.
func (p *Postgres) retryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case _, ok := <-p.retryChanSignal:
			if !ok {
				return
			}
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.logger, p.cfg)
					if err != nil {
						p.logger.Error("Reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					p.mu.Lock()
					p.client = newConn
					p.mu.Unlock()
					p.logger.Info("Reconnected to PostgresSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// monitorConnection pings the database every interval and signals
// retryConnection when the ping fails.
func (p *Postgres) monitorConnection(ctx context.Context, interval time.Duration) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.logger.Info("Stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := p.Ping(ctx); err != nil {
				p.logger.Warn("database health check failed", err, nil)
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// GracefulShutdown stops the monitor loops and closes the connection pool.
func (p *Postgres) GracefulShutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}
	db, err := p.client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during shutdown: %w", err)
	}
	return db.Close()
}
