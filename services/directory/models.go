package directory

type City struct {
	ID           string  `json:"id" gorm:"primaryKey;size:36"`
	Code         string  `json:"code" gorm:"size:16;not null;index"`
	Name         string  `json:"name" gorm:"size:100;not null"`
	CityImageURL *string `json:"cityImageUrl"`
}

type PriceRange struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"size:100;not null"`
}

type Restaurant struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:36"`
	Name               string     `json:"name" gorm:"size:100;not null;index"`
	Description        string     `json:"description" gorm:"size:1000;not null"`
	Address            string     `json:"address" gorm:"size:200;not null"`
	RestaurantImageURL *string    `json:"restaurantImageUrl"`
	Rating             float64    `json:"rating"`
	PriceRangeID       string     `json:"priceRangeId" gorm:"size:36;not null;index"`
	CityID             string     `json:"cityId" gorm:"size:36;not null;index"`
	PriceRange         PriceRange `json:"priceRange" gorm:"constraint:OnDelete:RESTRICT"`
	City               City       `json:"city" gorm:"constraint:OnDelete:RESTRICT"`
}

// Models lists every table owned by this package, in migration order.
func Models() []any {
	return []any{&City{}, &PriceRange{}, &Restaurant{}}
}
