package handlers

import (
	"net/http"

	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/labstack/echo/v4"
)

type restaurantRequest struct {
	Name               string  `json:"name" validate:"required,max=100"`
	Description        string  `json:"description" validate:"required,max=1000"`
	Address            string  `json:"address" validate:"required,max=200"`
	RestaurantImageURL *string `json:"restaurantImageUrl" validate:"omitempty,url"`
	Rating             float64 `json:"rating" validate:"gte=0,lte=5"`
	PriceRangeID       string  `json:"priceRangeId" validate:"required,uuid"`
	CityID             string  `json:"cityId" validate:"required,uuid"`
}

func (r restaurantRequest) restaurant() directory.Restaurant {
	return directory.Restaurant{
		Name:               r.Name,
		Description:        r.Description,
		Address:            r.Address,
		RestaurantImageURL: r.RestaurantImageURL,
		Rating:             r.Rating,
		PriceRangeID:       r.PriceRangeID,
		CityID:             r.CityID,
	}
}

type RestaurantsHandler struct {
	restaurants *directory.RestaurantRepository
}

func NewRestaurantsHandler(restaurants *directory.RestaurantRepository) *RestaurantsHandler {
	return &RestaurantsHandler{restaurants: restaurants}
}

func (h *RestaurantsHandler) Routes(g *echo.Group) {
	g.GET("", h.List, reviewer)
	g.GET("/:id", h.Get, reviewer)
	g.POST("", h.Create, owner)
	g.PUT("/:id", h.Update, owner)
	g.DELETE("/:id", h.Delete, owner)
}

// List filters on name, sorts by name or rating and pages the result.
// isAscending defaults to true.
func (h *RestaurantsHandler) List(c echo.Context) error {
	q := directory.Query{
		Ascending:  true,
		PageNumber: 1,
		PageSize:   directory.DefaultRestaurantLimit,
	}
	err := echo.QueryParamsBinder(c).
		String("filterOn", &q.FilterOn).
		String("filterQuery", &q.FilterQuery).
		String("sortBy", &q.SortBy).
		Bool("isAscending", &q.Ascending).
		Int("pageNumber", &q.PageNumber).
		Int("pageSize", &q.PageSize).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	restaurants, err := h.restaurants.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurants)
}

func (h *RestaurantsHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.GetByID(c.Request().Context(), id)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantsHandler) Create(c echo.Context) error {
	var req restaurantRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	restaurant := req.restaurant()
	created, err := h.restaurants.Create(c.Request().Context(), &restaurant)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h *RestaurantsHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req restaurantRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.restaurants.Update(c.Request().Context(), id, req.restaurant())
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *RestaurantsHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	deleted, err := h.restaurants.Delete(c.Request().Context(), id)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, deleted)
}
