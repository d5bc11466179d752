package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"marketplace-web/pkg/inbox"
	"marketplace-web/pkg/views"
)

func listParams(r *http.Request, userID string) views.ConversationListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	return views.ConversationListParams{
		UserID:   userID,
		Tab:      inbox.ParseTab(q.Get("tab")),
		Search:   q.Get("q"),
		Page:     page,
		PageSize: size,
	}
}

// messagesPage renders the inbox shell; the list loads behind skeleton rows.
func (h *Handler) messagesPage(w http.ResponseWriter, r *http.Request) {
	p := listParams(r, h.viewer(r))
	view := views.ConversationListView{
		Tab:       p.Tab,
		Search:    p.Search,
		Skeletons: views.Skeletons(h.skeletons),
	}
	h.renderPage(w, r, "inbox", "Messages", view)
}

func (h *Handler) messagesList(w http.ResponseWriter, r *http.Request) {
	view, err := h.conversations.List(r.Context(), listParams(r, h.viewer(r)))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPartial(w, r, "conversation-list", view)
}

func (h *Handler) messageThread(w http.ResponseWriter, r *http.Request) {
	view, err := h.conversations.Thread(r.Context(), h.viewer(r), chi.URLParam(r, "conversationID"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPage(w, r, "thread", view.Party.Name, view)
}

func (h *Handler) messagesLive(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}
