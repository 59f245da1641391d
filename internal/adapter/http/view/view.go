package view

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"math"

	"github.com/Masterminds/sprig"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

var ErrUnknownTemplate = errors.New("unknown template")

var pages = []types.Template{
	types.TemplateHome,
	types.TemplateUserCreate,
	types.TemplateUserCreated,
	types.TemplateUserProfile,
	types.TemplateLapForm,
	types.TemplateLeaderboard,
	types.TemplateLogout,
}

// Renderer executes the embedded page templates. Every page is parsed
// together with the shared layout into its own template set.
type Renderer struct {
	pages map[types.Template]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{
		pages: make(map[types.Template]*template.Template, len(pages)),
	}

	for _, name := range pages {
		t, err := template.New(name.String()).
			Funcs(funcMap()).
			ParseFS(templatesFS, layoutFile, "templates/"+name.String()+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, tpl types.Template, data map[string]any) error {
	t, ok := r.pages[tpl]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, tpl)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func funcMap() template.FuncMap {
	fm := sprig.FuncMap()
	fm["laptime"] = FormatLapTime
	fm["seconds"] = FormatSeconds
	return fm
}

// FormatLapTime renders seconds as m:ss.mmm. Zero or negative times render
// as a placeholder.
func FormatLapTime(sec float64) string {
	if sec <= 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return "--:--.---"
	}

	ms := int64(math.Round(sec * 1000))
	mins := ms / 60000
	ms -= mins * 60000
	secs := ms / 1000
	ms -= secs * 1000

	return fmt.Sprintf("%d:%02d.%03d", mins, secs, ms)
}

// FormatSeconds renders a sector time with millisecond precision.
func FormatSeconds(sec float64) string {
	return fmt.Sprintf("%.3f", sec)
}
