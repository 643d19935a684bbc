package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/secondchance/secondchance-backend/internal/model"
	"github.com/secondchance/secondchance-backend/internal/repository"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNothingStored = errors.New("no document updated")
)

// CreateItemInput carries the descriptive fields of a new listing. The id,
// age_years and date_added fields are assigned by the service.
type CreateItemInput struct {
	Name        string
	Description string
	Category    string
	Condition   string
	Zipcode     string
	Image       string
	Comments    string
	AgeDays     float64
}

// UpdateItemInput is a partial update: nil fields keep their stored value.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Category    *string
	Condition   *string
	Zipcode     *string
	Image       *string
	Comments    *string
	AgeDays     *float64
}

type ItemService interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, in CreateItemInput) (*model.Item, error)
	Get(ctx context.Context, itemID string) (*model.Item, error)
	Update(ctx context.Context, itemID string, in UpdateItemInput) error
	Delete(ctx context.Context, itemID string) error
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) List(ctx context.Context) ([]model.Item, error) {
	return s.repo.List(ctx)
}

func (s *itemService) Create(ctx context.Context, in CreateItemInput) (*model.Item, error) {
	maxID, err := s.repo.MaxItemID(ctx)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		ItemID:      strconv.FormatUint(maxID+1, 10),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Condition:   in.Condition,
		Zipcode:     in.Zipcode,
		Image:       in.Image,
		Comments:    in.Comments,
		AgeDays:     in.AgeDays,
		AgeYears:    ageYears(in.AgeDays),
		DateAdded:   time.Now().Unix(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, itemID string) (*model.Item, error) {
	item, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *itemService) Update(ctx context.Context, itemID string, in UpdateItemInput) error {
	item, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Condition != nil {
		item.Condition = *in.Condition
	}
	if in.Zipcode != nil {
		item.Zipcode = *in.Zipcode
	}
	if in.Image != nil {
		item.Image = *in.Image
	}
	if in.Comments != nil {
		item.Comments = *in.Comments
	}
	if in.AgeDays != nil {
		item.AgeDays = *in.AgeDays
	}

	// Recomputed on every update, from the stored value when age_days was
	// not part of this request.
	item.AgeYears = ageYears(item.AgeDays)

	rows, err := s.repo.Update(ctx, item)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNothingStored
	}
	return nil
}

func (s *itemService) Delete(ctx context.Context, itemID string) error {
	item, err := s.repo.FindByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if _, err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	return nil
}

// ageYears derives age in years from age in days, rounded to one decimal.
func ageYears(days float64) float64 {
	return math.Round(days/365*10) / 10
}
