package http

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/cadastro-clientes/internal/domain/income"
)

// Nombres de las vistas registradas.
const (
	ViewClientsList = "clients_list"
	ViewClientForm  = "client_form"
	ViewReports     = "reports"
	ViewNotFound    = "not_found"
	ViewError       = "error"
)

const layoutFile = "base.html"

// FormatCurrency formatea un valor como "R$ 1.234" redondeando a entero.
// Acepta decimal.Decimal o *decimal.Decimal; un valor nil se muestra como ingreso desconocido.
func FormatCurrency(v any) string {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return "—"
		}
		d = *x
	default:
		return "—"
	}
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %d", d.RoundBank(0).IntPart())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"currency":  FormatCurrency,
		"bandClass": func(b income.Band) string { return b.CSSClass() },
	}
}

// Views implementa fiber.Views sobre html/template. Cada página se combina con el
// layout base en su propio *template.Template.
type Views struct {
	fsys  fs.FS
	dir   string
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewViews carga las plantillas de dir dentro de fsys.
func NewViews(fsys fs.FS, dir string) (*Views, error) {
	v := &Views{fsys: fsys, dir: dir}
	if err := v.Load(); err != nil {
		return nil, err
	}
	return v, nil
}

// Load parsea el layout y todas las páginas. Fiber lo invoca al iniciar la app.
func (v *Views) Load() error {
	layout, err := template.New(layoutFile).Funcs(templateFuncs()).ParseFS(v.fsys, path.Join(v.dir, layoutFile))
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(v.fsys, path.Join(v.dir, "*.html"))
	if err != nil {
		return fmt.Errorf("glob templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		base := path.Base(file)
		if base == layoutFile {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return fmt.Errorf("clone layout: %w", err)
		}
		if _, err := t.ParseFS(v.fsys, file); err != nil {
			return fmt.Errorf("parse %s: %w", base, err)
		}
		pages[strings.TrimSuffix(base, ".html")] = t
	}

	v.mu.Lock()
	v.pages = pages
	v.mu.Unlock()
	return nil
}

// Render ejecuta la página name dentro del layout base.
func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.mu.RLock()
	t, ok := v.pages[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}
