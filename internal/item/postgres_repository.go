package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/calltrace/pkg/postgres"
)

// Database is the subset of *postgres.Postgres the repository needs.
type Database interface {
	Create(ctx context.Context, value interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error)
	Exec(ctx context.Context, sql string, values ...interface{}) error
}

// PostgresRepository stores items in the item table.
type PostgresRepository struct {
	db Database
}

func NewPostgresRepository(db Database) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, item Item) (Item, error) {
	item.ID = 0
	if err := r.db.Create(ctx, &item); err != nil {
		return Item{}, postgres.TranslateError(err)
	}
	return item, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (Item, error) {
	var item Item
	if err := r.db.First(ctx, &item, id); err != nil {
		err = postgres.TranslateError(err)
		if errors.Is(err, postgres.ErrRecordNotFound) {
			return Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := r.db.Find(ctx, &items); err != nil {
		return nil, postgres.TranslateError(err)
	}
	return items, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, param Item) error {
	rows, err := r.db.UpdateWhere(ctx, &Item{}, map[string]interface{}{
		"item_name": param.ItemName,
		"price":     param.Price,
		"quantity":  param.Quantity,
	}, "id = ?", id)
	if err != nil {
		return postgres.TranslateError(err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return nil
}

func (r *PostgresRepository) ClearStore(ctx context.Context) error {
	return postgres.TranslateError(r.db.Exec(ctx, "TRUNCATE TABLE item"))
}
