package ui

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"

	"github.com/foodiehub/foodiehub/config"
	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var embedded embed.FS

// Renderer executes the city views. Views are read from the embedded copy
// unless the configured directory exists on disk.
type Renderer struct {
	config    *config.UIConfig
	source    fs.FS
	templates *template.Template
}

func NewRenderer(cfg *config.UIConfig) (*Renderer, error) {
	r := &Renderer{config: cfg, source: viewsFS(cfg)}
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

func viewsFS(cfg *config.UIConfig) fs.FS {
	if cfg.Dir != "" {
		if info, err := os.Stat(cfg.Dir); err == nil && info.IsDir() {
			return os.DirFS(cfg.Dir)
		}
	}
	sub, _ := fs.Sub(embedded, "views")
	return sub
}

func (r *Renderer) parse() (*template.Template, error) {
	ext := r.config.Extension
	if ext == "" {
		ext = ".html"
	}
	tmpl, err := template.ParseFS(r.source, "*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse views: %w", err)
	}
	return tmpl, nil
}

func (r *Renderer) Load() error {
	tmpl, err := r.parse()
	if err != nil {
		return err
	}
	r.templates = tmpl
	return nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl := r.templates
	if r.config.Development {
		fresh, err := r.parse()
		if err != nil {
			return err
		}
		tmpl = fresh
	}
	if tmpl == nil {
		return errors.New("views not loaded")
	}
	return tmpl.ExecuteTemplate(w, name, data)
}
