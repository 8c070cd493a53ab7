package item

import (
	"context"
	"fmt"
	"strings"
)

// Service is the application API of the item domain.
type Service interface {
	SaveItem(ctx context.Context, item Item) (Item, error)
	FindItem(ctx context.Context, id int64) (Item, error)
	FindItems(ctx context.Context) ([]Item, error)
	UpdateItem(ctx context.Context, id int64, param Item) error
}

// Logger records the outcome of writes. The context passed in is the traced
// context of the call, so implementations can attach its correlation fields.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// ItemService implements Service on a Repository. Writes run inside a transaction.
type ItemService struct {
	repository   Repository
	transactions TransactionManager
	logger       Logger
}

func NewItemService(repository Repository, transactions TransactionManager) *ItemService {
	if transactions == nil {
		transactions = NoopTransactionManager{}
	}
	return &ItemService{
		repository:   repository,
		transactions: transactions,
	}
}

// WithLogger makes s log every write. A nil logger turns logging off.
func (s *ItemService) WithLogger(l Logger) *ItemService {
	s.logger = l
	return s
}

// SaveItem stores item and returns it with its id.
func (s *ItemService) SaveItem(ctx context.Context, item Item) (Item, error) {
	if err := validate(item); err != nil {
		return Item{}, err
	}

	var saved Item
	err := s.transactions.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repository.Save(ctx, item)
		return err
	})
	if err != nil {
		s.warn(ctx, "item not saved", err, map[string]interface{}{"item_name": item.ItemName})
		return Item{}, fmt.Errorf("save item: %w", err)
	}
	s.info(ctx, "item saved", map[string]interface{}{"item_id": saved.ID})
	return saved, nil
}

func (s *ItemService) FindItem(ctx context.Context, id int64) (Item, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *ItemService) FindItems(ctx context.Context) ([]Item, error) {
	return s.repository.FindAll(ctx)
}

// UpdateItem overwrites the item with the values of param.
func (s *ItemService) UpdateItem(ctx context.Context, id int64, param Item) error {
	if err := validate(param); err != nil {
		return err
	}

	err := s.transactions.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.repository.Update(ctx, id, param)
	})
	if err != nil {
		s.warn(ctx, "item not updated", err, map[string]interface{}{"item_id": id})
		return fmt.Errorf("update item %d: %w", id, err)
	}
	s.info(ctx, "item updated", map[string]interface{}{"item_id": id})
	return nil
}

func (s *ItemService) info(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (s *ItemService) warn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

func validate(item Item) error {
	switch {
	case strings.TrimSpace(item.ItemName) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidItem)
	case item.Price < 0:
		return fmt.Errorf("%w: negative price", ErrInvalidItem)
	case item.Quantity < 0:
		return fmt.Errorf("%w: negative quantity", ErrInvalidItem)
	}
	return nil
}
