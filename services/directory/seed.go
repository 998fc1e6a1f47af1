package directory

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func pexels(id string) *string {
	url := "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg"
	return &url
}

var SeedPriceRanges = []PriceRange{
	{ID: "54466f17-02af-48e7-8ed3-5a4a8bfacf6f", Name: "Budget-Friendly"},
	{ID: "ea294873-7a8c-4c0f-bfa7-a2eb492cbf8c", Name: "Moderate"},
	{ID: "f808ddcd-b5e5-4d80-b732-1ca523e48434", Name: "Fine Dining"},
}

var SeedCities = []City{
	{ID: "f7248fc3-2585-4efb-8d1d-1c555f4087f6", Code: "NYC", Name: "New York", CityImageURL: pexels("2190283")},
	{ID: "6884f7d7-ad1f-4101-8df3-7a6fa7387d81", Code: "LA", Name: "Los Angeles"},
	{ID: "14ceba71-4b51-4777-9b17-46602cf66153", Code: "CHI", Name: "Chicago"},
	{ID: "cfa06ed2-bf65-4b65-93ed-c9d286ddb0de", Code: "SF", Name: "San Francisco", CityImageURL: pexels("1259279")},
	{ID: "906cb139-415a-4bbb-a174-1a1faf9fb1f6", Code: "MIA", Name: "Miami", CityImageURL: pexels("2422461")},
	{ID: "f077a22e-4248-4bf6-b564-c7cf4e250263", Code: "BOS", Name: "Boston"},
}

// Seed inserts the reference price ranges and cities, skipping rows that
// already exist.
func Seed(ctx context.Context, db *gorm.DB) error {
	ranges := append([]PriceRange(nil), SeedPriceRanges...)
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&ranges).Error; err != nil {
		return err
	}

	cities := append([]City(nil), SeedCities...)
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&cities).Error
}
