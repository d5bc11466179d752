package handlers

import (
	"net/http"

	"marketplace-web/pkg/auth"
	"marketplace-web/pkg/template"
	"marketplace-web/pkg/views"
)

type BaseHandler struct {
	templateRenderer *template.Renderer
}

func (h *BaseHandler) viewer(r *http.Request) string {
	return auth.UserID(r.Context())
}

func (h *BaseHandler) renderPage(w http.ResponseWriter, r *http.Request, name, title string, data interface{}) {
	page := template.Page{
		Title: title,
		User:  views.ToUserView(auth.UserFromContext(r.Context())),
		Data:  data,
	}
	if err := h.templateRenderer.RenderPage(w, http.StatusOK, name, page); err != nil {
		h.renderError(w, r, err)
	}
}

func (h *BaseHandler) renderPartial(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if err := h.templateRenderer.RenderPartial(w, http.StatusOK, name, data); err != nil {
		h.renderError(w, r, err)
	}
}

func (h *BaseHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.templateRenderer.RenderError(w, r, err)
}

// redirect sends HTMX callers to url with HX-Redirect and everyone else with a 303.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
