package item

import (
	"context"
	"database/sql"
)

// Repository stores items.
//
//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=item
type Repository interface {
	// Save stores a new item and returns it with its assigned id.
	Save(ctx context.Context, item Item) (Item, error)
	// FindByID returns ErrItemNotFound when id is unknown.
	FindByID(ctx context.Context, id int64) (Item, error)
	FindAll(ctx context.Context) ([]Item, error)
	// Update overwrites name, price and quantity of the item with the given id.
	Update(ctx context.Context, id int64, param Item) error
	ClearStore(ctx context.Context) error
}

// DataSource describes where a Repository keeps its items.
type DataSource interface {
	ProviderName() string
	Ping(ctx context.Context) error
	// Stats returns ErrNoPoolStats when the source has no connection pool.
	Stats() (sql.DBStats, error)
}
