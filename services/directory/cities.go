package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CityRepository struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewCityRepository(db *gorm.DB, logger *logging.Service) *CityRepository {
	return &CityRepository{db: db, logger: logger}
}

func (r *CityRepository) List(ctx context.Context) ([]City, error) {
	var cities []City
	if err := r.db.WithContext(ctx).Order("name").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// Page returns one page of cities whose name contains search, plus the total
// number of matches.
func (r *CityRepository) Page(ctx context.Context, search string, page, pageSize int) ([]City, int64, error) {
	query := r.db.WithContext(ctx).Model(&City{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cities: %w", err)
	}

	offset, limit := normalizePage(page, pageSize, DefaultPageSize)
	var cities []City
	if err := query.Order("name").Offset(offset).Limit(limit).Find(&cities).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to page cities: %w", err)
	}
	return cities, total, nil
}

func (r *CityRepository) GetByID(ctx context.Context, id string) (*City, error) {
	var city City
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error; err != nil {
		return nil, notFound(err)
	}
	return &city, nil
}

// GetByCode matches the code case-insensitively.
func (r *CityRepository) GetByCode(ctx context.Context, code string) (*City, error) {
	var city City
	if err := r.db.WithContext(ctx).Where("LOWER(code) = LOWER(?)", code).First(&city).Error; err != nil {
		return nil, notFound(err)
	}
	return &city, nil
}

func (r *CityRepository) Create(ctx context.Context, city *City) error {
	city.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		r.logger.Error("failed to create city", zap.String("code", city.Code), zap.Error(err))
		return fmt.Errorf("failed to create city: %w", err)
	}
	r.logger.Info("city created", zap.String("city_id", city.ID), zap.String("code", city.Code))
	return nil
}

func (r *CityRepository) Update(ctx context.Context, id string, changes City) (*City, error) {
	city, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	city.Code = changes.Code
	city.Name = changes.Name
	city.CityImageURL = changes.CityImageURL
	if err := r.db.WithContext(ctx).Save(city).Error; err != nil {
		return nil, fmt.Errorf("failed to update city: %w", err)
	}
	return city, nil
}

func (r *CityRepository) SetImageURL(ctx context.Context, id, url string) error {
	result := r.db.WithContext(ctx).Model(&City{}).Where("id = ?", id).Update("city_image_url", url)
	if result.Error != nil {
		return fmt.Errorf("failed to set city image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the city and returns it as it was.
func (r *CityRepository) Delete(ctx context.Context, id string) (*City, error) {
	city, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(city).Error; err != nil {
		return nil, fmt.Errorf("failed to delete city: %w", err)
	}
	r.logger.Info("city deleted", zap.String("city_id", id))
	return city, nil
}

func (r *CityRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&City{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}
	return total, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
