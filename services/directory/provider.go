package directory

import (
	"github.com/foodiehub/foodiehub/services/logging"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.Provide(func(db *gorm.DB, logger *logging.Service) *CityRepository {
		return NewCityRepository(db, logger.Named("cities"))
	}),
	fx.Provide(func(db *gorm.DB, logger *logging.Service) *PriceRangeRepository {
		return NewPriceRangeRepository(db, logger.Named("priceranges"))
	}),
	fx.Provide(func(db *gorm.DB, logger *logging.Service) *RestaurantRepository {
		return NewRestaurantRepository(db, logger.Named("restaurants"))
	}),
)
