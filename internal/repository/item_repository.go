package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/secondchance/secondchance-backend/internal/model"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByItemID(ctx context.Context, itemID string) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	MaxItemID(ctx context.Context) (uint64, error)
	Update(ctx context.Context, item *model.Item) (int64, error)
	Delete(ctx context.Context, itemID string) (int64, error)
	SetDB(db *gorm.DB)
}

type itemRepository struct {
	db *gorm.DB
}

var ErrDBNotReady = errors.New("database not initialized")

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByItemID(ctx context.Context, itemID string) (*model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var item model.Item
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Order("uid asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MaxItemID returns the current numeric maximum of item_id, 0 when the
// table is empty. item_id is stored as a decimal string, so the ordering
// casts it first.
func (r *itemRepository) MaxItemID(ctx context.Context) (uint64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var item model.Item
	err := r.db.WithContext(ctx).
		Order("CAST(item_id AS UNSIGNED) DESC").
		Limit(1).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	max, err := strconv.ParseUint(item.ItemID, 10, 64)
	if err != nil {
		return 0, nil
	}
	return max, nil
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	tx := r.db.WithContext(ctx).Save(item)
	return tx.RowsAffected, tx.Error
}

func (r *itemRepository) Delete(ctx context.Context, itemID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	tx := r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&model.Item{})
	return tx.RowsAffected, tx.Error
}

func (r *itemRepository) SetDB(db *gorm.DB) {
	r.db = db
}
