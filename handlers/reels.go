package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) reelGrid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.reels.Grid(r.Context(), chi.URLParam(r, "sellerID"), h.viewer(r), q, q.Get("preview") == "1")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPartial(w, r, "reel-grid", view)
}

func (h *Handler) reelPlay(w http.ResponseWriter, r *http.Request) {
	view, err := h.reels.Play(r.Context(), chi.URLParam(r, "sellerID"), chi.URLParam(r, "reelID"), h.viewer(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPartial(w, r, "reel-player", view)
}

// reelClose empties the dialog slot.
func (h *Handler) reelClose(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) reelEdit(w http.ResponseWriter, r *http.Request) {
	to, err := h.reels.Edit(r.Context(), chi.URLParam(r, "sellerID"), chi.URLParam(r, "reelID"), h.viewer(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	redirect(w, r, to)
}

func (h *Handler) reelUpload(w http.ResponseWriter, r *http.Request) {
	to, err := h.reels.Upload(r.Context(), chi.URLParam(r, "sellerID"), h.viewer(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	redirect(w, r, to)
}

func (h *Handler) reelDeleteArm(w http.ResponseWriter, r *http.Request) {
	dialog, err := h.reels.ArmDelete(r.Context(), chi.URLParam(r, "sellerID"), chi.URLParam(r, "reelID"), h.viewer(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPartial(w, r, "reel-delete-dialog", dialog)
}

func (h *Handler) reelDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	reel, err := h.reels.ConfirmDelete(r.Context(), chi.URLParam(r, "sellerID"), chi.URLParam(r, "reelID"), h.viewer(r), r.PostFormValue("token"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPartial(w, r, "reel-delete-requested", reel)
}

func (h *Handler) reelDeleteCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.reels.CancelDelete(r.Context(), chi.URLParam(r, "sellerID"), chi.URLParam(r, "reelID"), h.viewer(r)); err != nil {
		h.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
