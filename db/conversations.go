package db

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace-web/models"
)

func scanConversationSummary(s scanner) (models.ConversationSummary, error) {
	var (
		c       models.ConversationSummary
		content sql.NullString
		sentAt  sql.NullTime
	)
	err := s.Scan(
		&c.ID, &c.OtherParty.ID, &c.OtherParty.DisplayName, &c.OtherParty.AvatarURL,
		&content, &sentAt,
		&c.UnreadCount, &c.Archived, &c.Blocked, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	if content.Valid {
		c.LastMessage = &models.LastMessage{Content: content.String}
		if sentAt.Valid {
			c.LastMessage.SentAt = sentAt.Time
		}
	}
	c.Normalize()
	return c, nil
}

// ListConversations returns every conversation userID takes part in.
func (d *Database) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	rows, err := d.DB.QueryContext(ctx, GetConversationSummariesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	return collect(rows, scanConversationSummary)
}

func (d *Database) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var ok bool
	if err := d.DB.QueryRowContext(ctx, IsParticipantQuery, conversationID, userID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return ok, nil
}

// ThreadMessages returns up to limit of the most recent messages, oldest first.
func (d *Database) ThreadMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	rows, err := d.DB.QueryContext(ctx, GetThreadMessagesQuery, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return collect(rows, func(s scanner) (models.Message, error) {
		var m models.Message
		err := s.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.SentAt, &m.Read)
		return m, err
	})
}
