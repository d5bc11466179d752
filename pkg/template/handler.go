package template

import (
	"bytes"
	"log"
	"net/http"

	apperrors "marketplace-web/pkg/errors"
	"marketplace-web/pkg/views"
)

// Page is the data passed to every full-document template.
type Page struct {
	Title  string
	User   views.UserView
	Global map[string]interface{}
	Data   interface{}
}

// IsPartial reports whether the request came from HTMX and wants a fragment.
// Boosted navigation swaps the whole body, so it gets the full page.
func IsPartial(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true"
}

func (r *Renderer) RenderPage(w http.ResponseWriter, status int, name string, page Page) error {
	page.Global = r.globals()
	return r.write(w, status, name, page)
}

func (r *Renderer) RenderPartial(w http.ResponseWriter, status int, name string, data interface{}) error {
	return r.write(w, status, name, data)
}

func (r *Renderer) write(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderError shows err to the user without leaking internal detail: the
// error partial for HTMX requests, the error page otherwise.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, err error) {
	status, message := apperrors.Describe(err)
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", req.Method, req.URL.Path, err)
	}
	view := views.ErrorView{Status: status, Message: message}

	var renderErr error
	if IsPartial(req) {
		renderErr = r.RenderPartial(w, status, "error", view)
	} else {
		renderErr = r.RenderPage(w, status, "error-page", Page{Title: http.StatusText(status), Data: view})
	}
	if renderErr != nil {
		log.Printf("❌ Could not render error view: %v", renderErr)
		http.Error(w, message, status)
	}
}
