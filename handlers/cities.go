package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/images"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type cityRequest struct {
	Code         string  `json:"code" form:"code" validate:"required,max=16"`
	Name         string  `json:"name" form:"name" validate:"required,max=100"`
	CityImageURL *string `json:"cityImageUrl" form:"cityImageUrl" validate:"omitempty,url"`
}

func (r cityRequest) city() directory.City {
	return directory.City{Code: r.Code, Name: r.Name, CityImageURL: r.CityImageURL}
}

type CitiesHandler struct {
	cities *directory.CityRepository
	images *images.Service
	logger *logging.Service
}

func NewCitiesHandler(cities *directory.CityRepository, images *images.Service, logger *logging.Service) *CitiesHandler {
	return &CitiesHandler{
		cities: cities,
		images: images,
		logger: logger.Named("cities"),
	}
}

func (h *CitiesHandler) Routes(g *echo.Group) {
	g.GET("", h.List, reviewer)
	g.HEAD("", h.Head)
	g.GET("/code/:code", h.GetByCode, reviewer)
	g.GET("/:id", h.Get, reviewer)
	g.POST("", h.Create, owner)
	g.PUT("/:id", h.Update, owner)
	g.DELETE("/:id", h.Delete, owner)
	g.POST("/:id/image", h.UploadImage, owner)
}

// List returns one page of cities and the total match count in X-Total-Count.
func (h *CitiesHandler) List(c echo.Context) error {
	var search string
	page, pageSize := 1, directory.DefaultPageSize
	err := echo.QueryParamsBinder(c).
		String("search", &search).
		Int("page", &page).
		Int("pageSize", &pageSize).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	items, total, err := h.cities.Page(c.Request().Context(), search, page, pageSize)
	if err != nil {
		return err
	}

	c.Response().Header().Set(totalCountHeader, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func (h *CitiesHandler) Head(c echo.Context) error {
	total, err := h.cities.Count(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(totalCountHeader, strconv.FormatInt(total, 10))
	return c.NoContent(http.StatusOK)
}

func (h *CitiesHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	city, err := h.cities.GetByID(c.Request().Context(), id)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, city)
}

func (h *CitiesHandler) GetByCode(c echo.Context) error {
	city, err := h.cities.GetByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, city)
}

func (h *CitiesHandler) Create(c echo.Context) error {
	var req cityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	city := req.city()
	if err := h.cities.Create(c.Request().Context(), &city); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/cities/"+city.ID)
	return c.JSON(http.StatusCreated, city)
}

func (h *CitiesHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req cityRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	city, err := h.cities.Update(c.Request().Context(), id, req.city())
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, city)
}

func (h *CitiesHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	city, err := h.cities.Delete(c.Request().Context(), id)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, city)
}

// UploadImage stores a multipart "file" as the city's picture.
func (h *CitiesHandler) UploadImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	url, err := h.images.SaveCityImage(c.Request().Context(), id, images.Upload{
		Body:             file,
		OriginalFileName: fh.Filename,
		Size:             fh.Size,
	})
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return echo.ErrNotFound
		}
		if herr := imageError(err); herr != nil {
			return herr
		}
		h.logger.Error("failed to save city image", zap.String("city_id", id), zap.Error(err))
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"imageUrl": url})
}
