package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"marketplace-web/cache"
	"marketplace-web/config"
	"marketplace-web/models"
	apperrors "marketplace-web/pkg/errors"
	"marketplace-web/pkg/inbox"
	"marketplace-web/pkg/views"
)

const threadMessageLimit = 100

type ConversationStore interface {
	ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ThreadMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
}

type ConversationService struct {
	store ConversationStore
	cache cache.Store
	group singleflight.Group
	ttl   time.Duration
	cfg   config.MessagesConfig
	now   func() time.Time
}

func NewConversationService(store ConversationStore, c cache.Store, ttl time.Duration, cfg config.MessagesConfig) *ConversationService {
	return &ConversationService{
		store: store,
		cache: c,
		ttl:   ttl,
		cfg:   cfg,
		now:   time.Now,
	}
}

// summaries returns the user's full list, most recent first, cache-aside.
func (s *ConversationService) summaries(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	return cache.Fetch(ctx, s.cache, &s.group, cache.InboxKey(userID), s.ttl,
		func(ctx context.Context) ([]models.ConversationSummary, error) {
			log.Printf("🔍 Loading conversations for user %s", userID)
			return s.store.ListConversations(ctx, userID)
		})
}

// List partitions, searches and pages the user's conversations.
func (s *ConversationService) List(ctx context.Context, params views.ConversationListParams) (*views.ConversationListView, error) {
	if params.UserID == "" {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Sign in to see your messages", nil)
	}
	params.Normalize(s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	all, err := s.summaries(ctx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	searched := inbox.Search(all, params.Search)
	counts := inbox.Counts(searched)
	matched := inbox.Partition(searched, params.Tab)
	page := views.Page(matched, params.Offset(), params.PageSize)

	return &views.ConversationListView{
		Rows:       views.ToConversationRows(page, params.Tab, s.now()),
		Tabs:       views.ToTabViews(counts, params.Tab, params.Search),
		Tab:        params.Tab,
		Search:     params.Search,
		Pagination: views.NewPagination(params.Page, params.PageSize, int64(len(matched))),
		Counts:     counts,
	}, nil
}

// Invalidate drops the cached list so the next read goes to the store.
func (s *ConversationService) Invalidate(ctx context.Context, userID string) error {
	return s.cache.Delete(ctx, cache.InboxKey(userID))
}

// Thread returns the recent messages of a conversation the user takes part in.
func (s *ConversationService) Thread(ctx context.Context, userID, conversationID string) (*views.ThreadView, error) {
	ok, err := s.store.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("thread %s: %w", conversationID, err)
	}
	if !ok {
		return nil, apperrors.NotFound("Conversation not found")
	}

	messages, err := s.store.ThreadMessages(ctx, conversationID, threadMessageLimit)
	if err != nil {
		return nil, fmt.Errorf("thread %s: %w", conversationID, err)
	}

	view := &views.ThreadView{
		ConversationID: conversationID,
		Messages:       views.ToMessageViews(messages, userID, s.now()),
	}
	if all, err := s.summaries(ctx, userID); err == nil {
		for _, c := range all {
			if c.ID == conversationID {
				view.Party = views.ToConversationRows([]models.ConversationSummary{c}, inbox.TabAll, s.now())[0]
				break
			}
		}
	}
	if view.Party.Name == "" {
		view.Party.Name = "Unknown"
	}
	return view, nil
}
