package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query selects restaurants. FilterOn currently understands "Name" and
// SortBy understands "Name" and "Rating"; both are case-insensitive and
// unknown values are ignored.
type Query struct {
	FilterOn    string
	FilterQuery string
	SortBy      string
	Ascending   bool
	PageNumber  int
	PageSize    int
}

type RestaurantRepository struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewRestaurantRepository(db *gorm.DB, logger *logging.Service) *RestaurantRepository {
	return &RestaurantRepository{db: db, logger: logger}
}

func (r *RestaurantRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("City").Preload("PriceRange")
}

func (r *RestaurantRepository) List(ctx context.Context, q Query) ([]Restaurant, error) {
	query := r.withRelations(ctx).Model(&Restaurant{})

	if strings.EqualFold(q.FilterOn, "Name") && strings.TrimSpace(q.FilterQuery) != "" {
		query = query.Where("name LIKE ?", "%"+q.FilterQuery+"%")
	}

	var column string
	switch {
	case strings.EqualFold(q.SortBy, "Name"):
		column = "name"
	case strings.EqualFold(q.SortBy, "Rating"):
		column = "rating"
	}
	if column != "" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: !q.Ascending})
	}

	offset, limit := normalizePage(q.PageNumber, q.PageSize, DefaultRestaurantLimit)

	var restaurants []Restaurant
	if err := query.Offset(offset).Limit(limit).Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	var restaurant Restaurant
	if err := r.withRelations(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, notFound(err)
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *Restaurant) (*Restaurant, error) {
	if err := r.checkReferences(ctx, restaurant.CityID, restaurant.PriceRangeID); err != nil {
		return nil, err
	}

	restaurant.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Omit("City", "PriceRange").Create(restaurant).Error; err != nil {
		r.logger.Error("failed to create restaurant", zap.Error(err))
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return r.GetByID(ctx, restaurant.ID)
}

func (r *RestaurantRepository) Update(ctx context.Context, id string, changes Restaurant) (*Restaurant, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.checkReferences(ctx, changes.CityID, changes.PriceRangeID); err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&Restaurant{}).Where("id = ?", existing.ID).
		Select("name", "description", "address", "restaurant_image_url", "rating", "price_range_id", "city_id").
		Updates(map[string]any{
			"name":                 changes.Name,
			"description":          changes.Description,
			"address":              changes.Address,
			"restaurant_image_url": changes.RestaurantImageURL,
			"rating":               changes.Rating,
			"price_range_id":       changes.PriceRangeID,
			"city_id":              changes.CityID,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *RestaurantRepository) Delete(ctx context.Context, id string) (*Restaurant, error) {
	restaurant, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Restaurant{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *RestaurantRepository) checkReferences(ctx context.Context, cityID, priceRangeID string) error {
	var cities, ranges int64
	if err := r.db.WithContext(ctx).Model(&City{}).Where("id = ?", cityID).Count(&cities).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&PriceRange{}).Where("id = ?", priceRangeID).Count(&ranges).Error; err != nil {
		return err
	}
	if cities == 0 || ranges == 0 {
		return ErrInvalidReference
	}
	return nil
}
