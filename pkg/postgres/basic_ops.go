package postgres

import (
	"context"
)

// Find finds records that match the given conditions
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.conn(ctx).Find(dest, conditions...).Error
}

// First finds the first record that matches the given conditions
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.conn(ctx).First(dest, conditions...).Error
}

// Create creates a new record
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	return p.conn(ctx).Create(value).Error
}

// UpdateWhere updates records that match the given condition and reports how many rows changed.
func (p *Postgres) UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error) {
	result := p.conn(ctx).Model(model).Where(condition, args...).Updates(attrs)
	return result.RowsAffected, result.Error
}

// Exec executes raw SQL
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) error {
	return p.conn(ctx).Exec(sql, values...).Error
}
