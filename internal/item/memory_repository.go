package item

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
)

// MemoryProviderName identifies the in-memory data source.
const MemoryProviderName = "memory"

// MemoryRepository keeps items in a map. It is safe for concurrent use.
type MemoryRepository struct {
	mu       sync.RWMutex
	store    map[int64]Item
	sequence int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[int64]Item)}
}

func (r *MemoryRepository) Save(_ context.Context, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	item.ID = r.sequence
	r.store[item.ID] = item
	return item, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.store[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return item, nil
}

// FindAll returns the items ordered by id.
func (r *MemoryRepository) FindAll(_ context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Item, 0, len(r.store))
	for _, item := range r.store {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, param Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.store[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	item.ItemName = param.ItemName
	item.Price = param.Price
	item.Quantity = param.Quantity
	r.store[id] = item
	return nil
}

// ClearStore removes every item. Ids keep increasing afterwards.
func (r *MemoryRepository) ClearStore(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store = make(map[int64]Item)
	return nil
}

func (r *MemoryRepository) ProviderName() string { return MemoryProviderName }

func (r *MemoryRepository) Ping(_ context.Context) error { return nil }

func (r *MemoryRepository) Stats() (sql.DBStats, error) { return sql.DBStats{}, ErrNoPoolStats }
