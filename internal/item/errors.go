package item

import "errors"

var (
	// ErrItemNotFound is returned when no item has the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem is returned for items that cannot be stored.
	ErrInvalidItem = errors.New("invalid item")

	// ErrNoPoolStats is returned by data sources without a connection pool.
	ErrNoPoolStats = errors.New("data source has no connection pool")
)
