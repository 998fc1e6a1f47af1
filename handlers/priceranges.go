package handlers

import (
	"net/http"

	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/labstack/echo/v4"
)

type priceRangeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type PriceRangesHandler struct {
	ranges *directory.PriceRangeRepository
}

func NewPriceRangesHandler(ranges *directory.PriceRangeRepository) *PriceRangesHandler {
	return &PriceRangesHandler{ranges: ranges}
}

func (h *PriceRangesHandler) Routes(g *echo.Group) {
	g.GET("", h.List, reviewer)
	g.GET("/:id", h.Get, reviewer)
	g.POST("", h.Create, owner)
	g.PUT("/:id", h.Update, owner)
	g.DELETE("/:id", h.Delete, owner)
}

func (h *PriceRangesHandler) List(c echo.Context) error {
	ranges, err := h.ranges.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ranges)
}

func (h *PriceRangesHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	pr, err := h.ranges.GetByID(c.Request().Context(), id)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, pr)
}

func (h *PriceRangesHandler) Create(c echo.Context) error {
	var req priceRangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pr := directory.PriceRange{Name: req.Name}
	if err := h.ranges.Create(c.Request().Context(), &pr); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/priceranges/"+pr.ID)
	return c.JSON(http.StatusCreated, pr)
}

func (h *PriceRangesHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req priceRangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	pr, err := h.ranges.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return directoryError(err)
	}
	return c.JSON(http.StatusOK, pr)
}

func (h *PriceRangesHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.ranges.Delete(c.Request().Context(), id); err != nil {
		return directoryError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
