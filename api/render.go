package api

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// boardPage is the template data for the board view.
type boardPage struct {
	Timestamp       string
	FrontRows       []domain.BoardRow
	BackRows        []domain.BoardRow
	TruckTypes      []string
	Overrides       map[int]string
	LocationOptions []string
	DoorOptions     []int
}

// Renderer serves the embedded HTML templates through echo's Renderer
// interface.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() *Renderer {
	return &Renderer{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
