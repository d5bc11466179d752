package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"marketplace-web/pkg/auth"
	"marketplace-web/pkg/realtime"
	"marketplace-web/pkg/template"
	"marketplace-web/services"
)

type Handler struct {
	BaseHandler
	storefront    *services.StorefrontService
	reels         *services.ReelService
	conversations *services.ConversationService
	hub           *realtime.Hub
	ready         func(context.Context) error
	skeletons     int
}

type Deps struct {
	Renderer      *template.Renderer
	Auth          *auth.Authenticator
	Limiter       *RateLimiter
	Storefront    *services.StorefrontService
	Reels         *services.ReelService
	Conversations *services.ConversationService
	Hub           *realtime.Hub
	// Ready reports whether backing stores are reachable.
	Ready     func(context.Context) error
	Skeletons int
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		BaseHandler:   BaseHandler{templateRenderer: d.Renderer},
		storefront:    d.Storefront,
		reels:         d.Reels,
		conversations: d.Conversations,
		hub:           d.Hub,
		ready:         d.Ready,
		skeletons:     d.Skeletons,
	}
}

func NewRouter(d Deps) http.Handler {
	h := NewHandler(d)

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/messages", http.StatusSeeOther)
	})

	r.Route("/sellers/{sellerID}", func(r chi.Router) {
		r.Use(d.Auth.Optional)

		r.Group(func(r chi.Router) {
			r.Use(d.Limiter.ViewLimit.Middleware)
			r.Get("/", h.storefrontSection)
			r.Get("/reels", h.storefrontSection)
			r.Get("/reels/grid", h.reelGrid)
			r.Get("/reels/close", h.reelClose)
			r.Get("/reels/{reelID}", h.reelPlay)
			r.Get("/*", h.storefrontSection)
		})

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Required)
			r.Use(d.Limiter.ActionLimit.Middleware)
			r.Post("/reels/upload", h.reelUpload)
			r.Post("/reels/{reelID}/edit", h.reelEdit)
			r.Post("/reels/{reelID}/delete", h.reelDeleteArm)
			r.Post("/reels/{reelID}/delete/confirm", h.reelDeleteConfirm)
			r.Post("/reels/{reelID}/delete/cancel", h.reelDeleteCancel)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(d.Auth.Required)
		r.Get("/live", h.messagesLive)

		r.Group(func(r chi.Router) {
			r.Use(d.Limiter.ViewLimit.Middleware)
			r.Get("/", h.messagesPage)
			r.Get("/list", h.messagesList)
			r.Get("/{conversationID}", h.messageThread)
		})
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.Write([]byte("ready"))
}
