package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProviderName identifies the datasource implementation.
const ProviderName = "postgres (gorm, database/sql pool)"

// DB returns the underlying GORM DB client.
// This is for cases where direct access to GORM is needed.
func (p *Postgres) DB() *gorm.DB {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// ProviderName returns the name reported on the datasource info endpoint.
func (p *Postgres) ProviderName() string {
	return ProviderName
}

// Ping checks the connection with a five second timeout.
func (p *Postgres) Ping(ctx context.Context) error {
	db, err := p.sqlDB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// Stats returns the connection pool statistics.
func (p *Postgres) Stats() (sql.DBStats, error) {
	db, err := p.sqlDB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return db.Stats(), nil
}

func (p *Postgres) sqlDB() (*sql.DB, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.client == nil {
		return nil, fmt.Errorf("database client is not initialized")
	}
	db, err := p.client.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	return db, nil
}
