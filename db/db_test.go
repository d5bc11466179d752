package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"marketplace-web/config"
)

// rowScanner copies fixed values into Scan destinations.
type rowScanner []interface{}

func (r rowScanner) Scan(dest ...interface{}) error {
	if len(dest) != len(r) {
		return fmt.Errorf("got %d destinations, have %d values", len(dest), len(r))
	}
	for i, v := range r {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *bool:
			*d = v.(bool)
		case *time.Time:
			*d = v.(time.Time)
		case *sql.NullString:
			if v == nil {
				*d = sql.NullString{}
			} else {
				*d = sql.NullString{String: v.(string), Valid: true}
			}
		case *sql.NullTime:
			if v == nil {
				*d = sql.NullTime{}
			} else {
				*d = sql.NullTime{Time: v.(time.Time), Valid: true}
			}
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

func TestScanConversationSummary(t *testing.T) {
	t.Parallel()

	sent := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		row         rowScanner
		wantLast    bool
		wantName    string
		wantUnread  int
		wantBlocked bool
	}{
		{
			name:       "with last message",
			row:        rowScanner{"c1", "u2", "Ana", "", "hola", sent, 3, false, false, sent},
			wantLast:   true,
			wantName:   "Ana",
			wantUnread: 3,
		},
		{
			name:        "no messages and bad data",
			row:         rowScanner{"c2", "", "", "", nil, nil, -2, false, true, sent},
			wantName:    "Unknown",
			wantUnread:  0,
			wantBlocked: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := scanConversationSummary(tt.row)
			if err != nil {
				t.Fatal(err)
			}
			if (c.LastMessage != nil) != tt.wantLast {
				t.Fatalf("last message = %+v", c.LastMessage)
			}
			if tt.wantLast && !c.LastMessage.SentAt.Equal(sent) {
				t.Fatalf("sent at = %v", c.LastMessage.SentAt)
			}
			if c.OtherParty.DisplayName != tt.wantName || c.UnreadCount != tt.wantUnread || c.Blocked != tt.wantBlocked {
				t.Fatalf("summary = %+v", c)
			}
		})
	}
}

func TestNotFoundMapsNoRows(t *testing.T) {
	t.Parallel()

	if !errors.Is(notFound(sql.ErrNoRows), ErrNotFound) {
		t.Fatal("sql.ErrNoRows should map to ErrNotFound")
	}
	other := errors.New("boom")
	if notFound(other) != other {
		t.Fatal("other errors pass through")
	}
}

func TestOpenWithoutURLs(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), config.DatabaseConfig{}); err == nil {
		t.Fatal("expected an error with no urls configured")
	}
}
