package directory

import (
	"context"
	"fmt"

	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceRangeRepository struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewPriceRangeRepository(db *gorm.DB, logger *logging.Service) *PriceRangeRepository {
	return &PriceRangeRepository{db: db, logger: logger}
}

func (r *PriceRangeRepository) List(ctx context.Context) ([]PriceRange, error) {
	var ranges []PriceRange
	if err := r.db.WithContext(ctx).Order("name").Find(&ranges).Error; err != nil {
		return nil, fmt.Errorf("failed to list price ranges: %w", err)
	}
	return ranges, nil
}

func (r *PriceRangeRepository) GetByID(ctx context.Context, id string) (*PriceRange, error) {
	var pr PriceRange
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pr).Error; err != nil {
		return nil, notFound(err)
	}
	return &pr, nil
}

func (r *PriceRangeRepository) Create(ctx context.Context, pr *PriceRange) error {
	pr.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(pr).Error; err != nil {
		return fmt.Errorf("failed to create price range: %w", err)
	}
	return nil
}

func (r *PriceRangeRepository) Update(ctx context.Context, id, name string) (*PriceRange, error) {
	pr, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pr.Name = name
	if err := r.db.WithContext(ctx).Save(pr).Error; err != nil {
		return nil, fmt.Errorf("failed to update price range: %w", err)
	}
	return pr, nil
}

func (r *PriceRangeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PriceRange{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete price range: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
