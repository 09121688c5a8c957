package transport

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/ui"
)

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := ui.Templates()
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
