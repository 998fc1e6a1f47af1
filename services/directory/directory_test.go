package directory

import (
	"context"
	"testing"

	"github.com/foodiehub/foodiehub/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutils.SetupTestDB(t, Models()...)
	require.NoError(t, Seed(context.Background(), db))
	return db
}

func TestSeed_Idempotent(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, Seed(context.Background(), db))

	var cities, ranges int64
	require.NoError(t, db.Model(&City{}).Count(&cities).Error)
	require.NoError(t, db.Model(&PriceRange{}).Count(&ranges).Error)
	assert.Equal(t, int64(6), cities)
	assert.Equal(t, int64(3), ranges)
}

func TestCityRepository_Page(t *testing.T) {
	repo := NewCityRepository(setupDB(t), nil)
	ctx := context.Background()

	t.Run("first page", func(t *testing.T) {
		cities, total, err := repo.Page(ctx, "", 1, 4)

		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		require.Len(t, cities, 4)
		assert.Equal(t, "Boston", cities[0].Name)
	})

	t.Run("second page", func(t *testing.T) {
		cities, total, err := repo.Page(ctx, "", 2, 4)

		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Len(t, cities, 2)
	})

	t.Run("search", func(t *testing.T) {
		cities, total, err := repo.Page(ctx, "San", 1, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, cities, 1)
		assert.Equal(t, "SF", cities[0].Code)
	})

	t.Run("invalid paging falls back to defaults", func(t *testing.T) {
		cities, _, err := repo.Page(ctx, "", 0, 0)

		require.NoError(t, err)
		assert.Len(t, cities, 6)
	})
}

func TestCityRepository_Lookup(t *testing.T) {
	repo := NewCityRepository(setupDB(t), nil)
	ctx := context.Background()

	city, err := repo.GetByCode(ctx, "nyc")
	require.NoError(t, err)
	assert.Equal(t, "New York", city.Name)
	require.NotNil(t, city.CityImageURL)
	assert.Equal(t, "https://images.pexels.com/photos/2190283/pexels-photo-2190283.jpeg", *city.CityImageURL)

	byID, err := repo.GetByID(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, "NYC", byID.Code)

	_, err = repo.GetByCode(ctx, "XXX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCityRepository_CRUD(t *testing.T) {
	repo := NewCityRepository(setupDB(t), nil)
	ctx := context.Background()

	city := &City{Code: "SEA", Name: "Seattle"}
	require.NoError(t, repo.Create(ctx, city))
	assert.NotEmpty(t, city.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	updated, err := repo.Update(ctx, city.ID, City{Code: "SEA", Name: "Seattle, WA"})
	require.NoError(t, err)
	assert.Equal(t, "Seattle, WA", updated.Name)

	require.NoError(t, repo.SetImageURL(ctx, city.ID, "/Images/x.png"))
	withImage, err := repo.GetByID(ctx, city.ID)
	require.NoError(t, err)
	require.NotNil(t, withImage.CityImageURL)
	assert.Equal(t, "/Images/x.png", *withImage.CityImageURL)

	deleted, err := repo.Delete(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, "SEA", deleted.Code)

	_, err = repo.Delete(ctx, city.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update(ctx, city.ID, City{Code: "X", Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.SetImageURL(ctx, city.ID, "/Images/y.png"), ErrNotFound)
}

func TestPriceRangeRepository(t *testing.T) {
	repo := NewPriceRangeRepository(setupDB(t), nil)
	ctx := context.Background()

	ranges, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 3)
	assert.Equal(t, []string{"Budget-Friendly", "Fine Dining", "Moderate"}, []string{ranges[0].Name, ranges[1].Name, ranges[2].Name})

	pr := &PriceRange{Name: "Luxury"}
	require.NoError(t, repo.Create(ctx, pr))

	updated, err := repo.Update(ctx, pr.ID, "Ultra Luxury")
	require.NoError(t, err)
	assert.Equal(t, "Ultra Luxury", updated.Name)

	require.NoError(t, repo.Delete(ctx, pr.ID))
	assert.ErrorIs(t, repo.Delete(ctx, pr.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, pr.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedRestaurants(t *testing.T, repo *RestaurantRepository) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []Restaurant{
		{Name: "Pizza Palace", Description: "Slices", Address: "1 Main St", Rating: 3.5},
		{Name: "Burger Barn", Description: "Burgers", Address: "2 Main St", Rating: 4.5},
		{Name: "Pasta Place", Description: "Noodles", Address: "3 Main St", Rating: 2.0},
	} {
		r.CityID = SeedCities[0].ID
		r.PriceRangeID = SeedPriceRanges[1].ID
		_, err := repo.Create(ctx, &r)
		require.NoError(t, err)
	}
}

func TestRestaurantRepository_List(t *testing.T) {
	repo := NewRestaurantRepository(setupDB(t), nil)
	seedRestaurants(t, repo)
	ctx := context.Background()

	t.Run("filter by name", func(t *testing.T) {
		restaurants, err := repo.List(ctx, Query{FilterOn: "name", FilterQuery: "Pa"})

		require.NoError(t, err)
		assert.Len(t, restaurants, 2)
	})

	t.Run("unknown filter is ignored", func(t *testing.T) {
		restaurants, err := repo.List(ctx, Query{FilterOn: "Address", FilterQuery: "1 Main"})

		require.NoError(t, err)
		assert.Len(t, restaurants, 3)
	})

	t.Run("sort by rating descending", func(t *testing.T) {
		restaurants, err := repo.List(ctx, Query{SortBy: "Rating", Ascending: false})

		require.NoError(t, err)
		require.Len(t, restaurants, 3)
		assert.Equal(t, "Burger Barn", restaurants[0].Name)
		assert.Equal(t, "Pasta Place", restaurants[2].Name)
	})

	t.Run("sort by name ascending with paging", func(t *testing.T) {
		restaurants, err := repo.List(ctx, Query{SortBy: "Name", Ascending: true, PageNumber: 2, PageSize: 2})

		require.NoError(t, err)
		require.Len(t, restaurants, 1)
		assert.Equal(t, "Pizza Palace", restaurants[0].Name)
	})

	t.Run("relations are loaded", func(t *testing.T) {
		restaurants, err := repo.List(ctx, Query{})

		require.NoError(t, err)
		require.NotEmpty(t, restaurants)
		assert.Equal(t, "New York", restaurants[0].City.Name)
		assert.Equal(t, "Moderate", restaurants[0].PriceRange.Name)
	})
}

func TestRestaurantRepository_CRUD(t *testing.T) {
	repo := NewRestaurantRepository(setupDB(t), nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, &Restaurant{Name: "Nowhere", CityID: "missing", PriceRangeID: SeedPriceRanges[0].ID})
	assert.ErrorIs(t, err, ErrInvalidReference)

	created, err := repo.Create(ctx, &Restaurant{
		Name:         "Deep Dish",
		Description:  "Chicago style",
		Address:      "5 Lake Shore",
		Rating:       4.8,
		CityID:       SeedCities[2].ID,
		PriceRangeID: SeedPriceRanges[2].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Chicago", created.City.Name)
	assert.Equal(t, "Fine Dining", created.PriceRange.Name)

	changes := *created
	changes.Rating = 4.1
	changes.CityID = SeedCities[0].ID
	updated, err := repo.Update(ctx, created.ID, changes)
	require.NoError(t, err)
	assert.Equal(t, 4.1, updated.Rating)
	assert.Equal(t, "New York", updated.City.Name)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep Dish", deleted.Name)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
