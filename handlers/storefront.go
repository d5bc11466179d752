package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"marketplace-web/pkg/storefront"
	"marketplace-web/pkg/template"
)

// storefrontSection renders a seller section. HTMX navigation gets only the
// section body, swapped so the window lands at the top.
func (h *Handler) storefrontSection(w http.ResponseWriter, r *http.Request) {
	sellerID := chi.URLParam(r, "sellerID")
	subpath := chi.URLParam(r, "*")
	if subpath == "" && strings.HasSuffix(strings.TrimRight(r.URL.Path, "/"), "/reels") {
		subpath = "reels"
	}

	page, err := h.storefront.Page(r.Context(), sellerID, subpath, h.viewer(r), r.URL.Query())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if template.IsPartial(r) {
		w.Header().Set("HX-Reswap", storefront.ScrollReset)
		w.Header().Set("HX-Push-Url", storefront.Path(page.Seller.ID, page.Section))
		h.renderPartial(w, r, "section-swap", page)
		return
	}
	h.renderPage(w, r, "storefront", page.Seller.Name, page)
}
