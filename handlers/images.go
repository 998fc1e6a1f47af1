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

type ImagesHandler struct {
	images *images.Service
	logger *logging.Service
}

func NewImagesHandler(images *images.Service, logger *logging.Service) *ImagesHandler {
	return &ImagesHandler{
		images: images,
		logger: logger.Named("images"),
	}
}

func (h *ImagesHandler) Routes(g *echo.Group) {
	g.POST("/upload", h.Upload, owner)
	g.GET("", h.List, reviewer)
	g.GET("/:fileName", h.Get, anyRole)
	g.DELETE("/:fileName", h.Delete, owner)
}

// imageError maps upload validation failures to a 400 carrying the reason.
// Other errors yield nil.
func imageError(err error) error {
	switch {
	case errors.Is(err, images.ErrUnsupportedExtension):
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported file extension")
	case errors.Is(err, images.ErrFileTooLarge):
		return echo.NewHTTPError(http.StatusBadRequest, "File size more than 10MB, please upload a smaller size file.")
	case errors.Is(err, images.ErrInvalidFileName):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file name")
	default:
		return nil
	}
}

// Upload expects multipart fields file, fileName and optionally fileDescription.
func (h *ImagesHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file is required")
	}
	name := c.FormValue("fileName")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "A file name is required")
	}
	var description *string
	if d := c.FormValue("fileDescription"); d != "" {
		description = &d
	}

	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	baseURL := c.Scheme() + "://" + c.Request().Host
	image, err := h.images.Upload(c.Request().Context(), images.Upload{
		Body:             file,
		OriginalFileName: fh.Filename,
		Size:             fh.Size,
		Name:             name,
		Description:      description,
	}, baseURL)
	if err != nil {
		if herr := imageError(err); herr != nil {
			return herr
		}
		return err
	}
	return c.JSON(http.StatusOK, image)
}

func (h *ImagesHandler) List(c echo.Context) error {
	page, pageSize := 1, directory.DefaultPageSize
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("pageSize", &pageSize).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	items, total, err := h.images.Page(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	c.Response().Header().Set(totalCountHeader, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

// Get streams the stored file with a content type derived from its extension.
func (h *ImagesHandler) Get(c echo.Context) error {
	body, contentType, err := h.images.Open(c.Request().Context(), c.Param("fileName"))
	if err != nil {
		if errors.Is(err, images.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	defer body.Close()

	return c.Stream(http.StatusOK, contentType, body)
}

func (h *ImagesHandler) Delete(c echo.Context) error {
	fileName := c.Param("fileName")
	if err := h.images.Delete(c.Request().Context(), fileName); err != nil {
		if errors.Is(err, images.ErrNotFound) {
			return echo.ErrNotFound
		}
		h.logger.Error("failed to delete image", zap.String("file_name", fileName), zap.Error(err))
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
