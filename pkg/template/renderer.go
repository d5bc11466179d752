package template

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"sync"

	"marketplace-web/pkg/format"
	"marketplace-web/pkg/storefront"
)

//go:embed templates/*.html
var files embed.FS

type Renderer struct {
	templates *template.Template

	mu     sync.RWMutex
	global map[string]interface{}
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatNumber":   format.Number,
		"formatDuration": format.Duration,
		"initials":       format.Initials,
		"price":          format.Price,
		"scrollReset":    func() string { return storefront.ScrollReset },
		"sectionPath": func(sellerID, section string) string {
			return storefront.Path(sellerID, storefront.Section(section))
		},
	}
}

// pageTemplates are rendered by name from handlers and must exist.
var pageTemplates = []string{
	"storefront", "section", "section-swap", "reel-grid", "reel-player", "reel-delete-dialog",
	"reel-delete-requested", "inbox", "conversation-list", "thread",
	"error", "error-page",
}

// NewRenderer parses every embedded template once at startup.
func NewRenderer() (*Renderer, error) {
	log.Printf("🚀 Initializing templates...")
	t, err := template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r := &Renderer{templates: t, global: map[string]interface{}{}}
	for _, name := range pageTemplates {
		if !r.Has(name) {
			return nil, fmt.Errorf("parse templates: missing %q", name)
		}
	}
	log.Printf("✅ Templates initialized: %s", t.DefinedTemplates())
	return r, nil
}

// SetGlobalTemplateData sets values every full page receives under .Global.
func (r *Renderer) SetGlobalTemplateData(data map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.global = make(map[string]interface{}, len(data))
	for k, v := range data {
		r.global[k] = v
	}
}

func (r *Renderer) globals() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.global
}

// Render executes a named template into w. Callers that must not send a
// half-written response render into a buffer first.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("❌ Error rendering template %s: %v", name, err)
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) Has(name string) bool {
	return r.templates.Lookup(name) != nil
}
