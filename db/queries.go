package db

// Conversation related queries
const (
	// Query to fetch a user's conversation summaries, most recent activity first
	GetConversationSummariesQuery = `
        WITH mine AS (
            SELECT cp.conversation_id, cp.unread_count, cp.archived, cp.blocked
            FROM conversation_participants cp
            WHERE cp.user_id = $1
        ),
        other_party AS (
            SELECT DISTINCT ON (cp.conversation_id)
                cp.conversation_id,
                cp.user_id
            FROM conversation_participants cp
            JOIN mine ON mine.conversation_id = cp.conversation_id
            WHERE cp.user_id <> $1
            ORDER BY cp.conversation_id, cp.user_id
        ),
        latest_messages AS (
            SELECT DISTINCT ON (m.conversation_id)
                m.conversation_id,
                m.content,
                m.sent_at
            FROM messages m
            JOIN mine ON mine.conversation_id = m.conversation_id
            ORDER BY m.conversation_id, m.sent_at DESC
        )
        SELECT
            c.id,
            COALESCE(op.user_id, ''),
            COALESCE(NULLIF(TRIM(p.display_name), ''), ''),
            COALESCE(NULLIF(TRIM(p.avatar_url), ''), ''),
            lm.content,
            lm.sent_at,
            mine.unread_count,
            mine.archived,
            mine.blocked,
            c.updated_at
        FROM mine
        JOIN conversations c ON c.id = mine.conversation_id
        LEFT JOIN other_party op ON op.conversation_id = c.id
        LEFT JOIN profiles p ON p.id = op.user_id
        LEFT JOIN latest_messages lm ON lm.conversation_id = c.id
        ORDER BY COALESCE(lm.sent_at, c.updated_at) DESC, c.id`

	// Query to check that a user takes part in a conversation
	IsParticipantQuery = `
        SELECT EXISTS (
            SELECT 1 FROM conversation_participants
            WHERE conversation_id = $1 AND user_id = $2
        )`

	// Query to get the messages of one conversation, oldest first
	GetThreadMessagesQuery = `
        SELECT id, conversation_id, sender_id, content, sent_at, read
        FROM (
            SELECT id, conversation_id, sender_id, content, sent_at, read
            FROM messages
            WHERE conversation_id = $1
            ORDER BY sent_at DESC
            LIMIT $2
        ) recent
        ORDER BY sent_at ASC`
)

// Seller related queries
const (
	GetSellerQuery = `
        SELECT id, owner_id, name, COALESCE(logo_path, ''), bio, created_at
        FROM sellers
        WHERE id = $1`
)
