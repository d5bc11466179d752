// Package inbox partitions and searches a user's conversation summaries.
//
// The provider hands over summaries most recent first; nothing here re-sorts.
package inbox

import (
	"strings"

	"marketplace-web/models"
)

type Tab string

const (
	TabAll      Tab = "all"
	TabUnread   Tab = "unread"
	TabBlocked  Tab = "blocked"
	TabArchived Tab = "archived"
)

// Tabs is the display order of the tab bar.
var Tabs = []Tab{TabAll, TabUnread, TabBlocked, TabArchived}

// ParseTab falls back to TabAll for anything it does not recognise.
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabUnread:
		return TabUnread
	case TabBlocked:
		return TabBlocked
	case TabArchived:
		return TabArchived
	default:
		return TabAll
	}
}

func (t Tab) Label() string {
	switch t {
	case TabUnread:
		return "Unread"
	case TabBlocked:
		return "Blocked"
	case TabArchived:
		return "Archived"
	default:
		return "All"
	}
}

// Interactive reports whether rows under this tab open the conversation.
// Blocked rows are display-only; this is not an authorization check.
func (t Tab) Interactive() bool {
	return t != TabBlocked
}

// InPartition reports whether c belongs under tab.
func InPartition(c models.ConversationSummary, tab Tab) bool {
	switch tab {
	case TabBlocked:
		return c.Blocked
	case TabArchived:
		return c.Archived && !c.Blocked
	case TabUnread:
		return c.UnreadCount > 0 && !c.Archived && !c.Blocked
	default:
		return !c.Archived && !c.Blocked
	}
}

// Partition keeps the conversations under tab, preserving order.
func Partition(list []models.ConversationSummary, tab Tab) []models.ConversationSummary {
	out := make([]models.ConversationSummary, 0, len(list))
	for _, c := range list {
		if InPartition(c, tab) {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns the size of every partition, keyed by tab.
func Counts(list []models.ConversationSummary) map[Tab]int {
	counts := make(map[Tab]int, len(Tabs))
	for _, tab := range Tabs {
		counts[tab] = 0
	}
	for _, c := range list {
		for _, tab := range Tabs {
			if InPartition(c, tab) {
				counts[tab]++
			}
		}
	}
	return counts
}

// Matches reports whether query is a case-insensitive substring of the
// display name or the last message. A blank query matches everything;
// otherwise spaces in the query count.
func Matches(c models.ConversationSummary, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.OtherParty.DisplayName), q) {
		return true
	}
	return c.LastMessage != nil && strings.Contains(strings.ToLower(c.LastMessage.Content), q)
}

// Search filters list by query. An empty query returns list itself.
func Search(list []models.ConversationSummary, query string) []models.ConversationSummary {
	if strings.TrimSpace(query) == "" {
		return list
	}
	out := make([]models.ConversationSummary, 0, len(list))
	for _, c := range list {
		if Matches(c, query) {
			out = append(out, c)
		}
	}
	return out
}
