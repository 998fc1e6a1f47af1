package ui

import (
	"errors"
	"net/http"

	"github.com/foodiehub/foodiehub/middleware/csrf"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/foodiehub/foodiehub/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type cityForm struct {
	ID           string `form:"-"`
	Code         string `form:"code" validate:"required,max=16"`
	Name         string `form:"name" validate:"required,max=100"`
	CityImageURL string `form:"cityImageUrl" validate:"omitempty,url"`
}

func formFrom(c directory.City) cityForm {
	f := cityForm{ID: c.ID, Code: c.Code, Name: c.Name}
	if c.CityImageURL != nil {
		f.CityImageURL = *c.CityImageURL
	}
	return f
}

func (f cityForm) city() directory.City {
	city := directory.City{Code: f.Code, Name: f.Name}
	if f.CityImageURL != "" {
		url := f.CityImageURL
		city.CityImageURL = &url
	}
	return city
}

type page struct {
	Title  string
	CSRF   string
	Cities []cityForm
	City   cityForm
	Errors map[string]string
}

type CitiesPage struct {
	cities *directory.CityRepository
	logger *logging.Service
}

func NewCitiesPage(cities *directory.CityRepository, logger *logging.Service) *CitiesPage {
	return &CitiesPage{cities: cities, logger: logger.Named("ui")}
}

func (p *CitiesPage) Routes(g *echo.Group) {
	g.GET("/cities", p.Index)
	g.GET("/cities/add", p.Add)
	g.POST("/cities/add", p.Create)
	g.GET("/cities/:id/edit", p.Edit)
	g.POST("/cities/:id/edit", p.Update)
	g.POST("/cities/:id/delete", p.Delete)
}

func (p *CitiesPage) Index(c echo.Context) error {
	cities, err := p.cities.List(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]cityForm, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, formFrom(city))
	}
	return c.Render(http.StatusOK, "cities.html", page{CSRF: csrf.GetToken(c), Title: "Cities", Cities: rows})
}

func (p *CitiesPage) Add(c echo.Context) error {
	return c.Render(http.StatusOK, "add.html", page{CSRF: csrf.GetToken(c), Title: "Add city"})
}

func (p *CitiesPage) Create(c echo.Context) error {
	form, errs, err := bindForm(c)
	if err != nil {
		return err
	}
	if errs != nil {
		return c.Render(http.StatusBadRequest, "add.html", page{CSRF: csrf.GetToken(c), Title: "Add city", City: form, Errors: errs})
	}

	city := form.city()
	if err := p.cities.Create(c.Request().Context(), &city); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/ui/cities")
}

func (p *CitiesPage) Edit(c echo.Context) error {
	city, err := p.find(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit.html", page{CSRF: csrf.GetToken(c), Title: "Edit city", City: formFrom(*city)})
}

func (p *CitiesPage) Update(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.ErrNotFound
	}

	form, errs, err := bindForm(c)
	if err != nil {
		return err
	}
	form.ID = id
	if errs != nil {
		return c.Render(http.StatusBadRequest, "edit.html", page{CSRF: csrf.GetToken(c), Title: "Edit city", City: form, Errors: errs})
	}

	if _, err := p.cities.Update(c.Request().Context(), id, form.city()); err != nil {
		return notFound(err)
	}
	return c.Redirect(http.StatusSeeOther, "/ui/cities/"+id+"/edit")
}

func (p *CitiesPage) Delete(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.ErrNotFound
	}

	if _, err := p.cities.Delete(c.Request().Context(), id); err != nil {
		p.logger.Warn("city delete failed", zap.String("city_id", id), zap.Error(err))
		return notFound(err)
	}
	return c.Redirect(http.StatusSeeOther, "/ui/cities")
}

func (p *CitiesPage) find(c echo.Context) (*directory.City, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, echo.ErrNotFound
	}
	city, err := p.cities.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, notFound(err)
	}
	return city, nil
}

// bindForm returns field errors separately so the form can be shown again.
func bindForm(c echo.Context) (cityForm, map[string]string, error) {
	var form cityForm
	if err := c.Bind(&form); err != nil {
		return form, nil, err
	}
	if err := c.Validate(&form); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return form, verr.Fields, nil
		}
		return form, nil, err
	}
	return form, nil, nil
}

func notFound(err error) error {
	if errors.Is(err, directory.ErrNotFound) {
		return echo.ErrNotFound
	}
	return err
}
