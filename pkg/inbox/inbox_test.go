package inbox

import (
	"reflect"
	"testing"

	"marketplace-web/models"
)

func sample() []models.ConversationSummary {
	msg := func(s string) *models.LastMessage { return &models.LastMessage{Content: s} }
	return []models.ConversationSummary{
		{ID: "1", OtherParty: models.Party{DisplayName: "Sarah Johnson"}, LastMessage: msg("Thanks for the quick delivery!"), UnreadCount: 2},
		{ID: "2", OtherParty: models.Party{DisplayName: "Michael Chen"}, LastMessage: msg("Is the item still available?"), UnreadCount: 1},
		{ID: "3", OtherParty: models.Party{DisplayName: "Emma Wilson"}, LastMessage: msg("Perfect, just what I needed")},
		{ID: "4", OtherParty: models.Party{DisplayName: "David Brown"}, LastMessage: msg("Can you send more photos?"), Archived: true, UnreadCount: 3},
		{ID: "5", OtherParty: models.Party{DisplayName: "Lisa Anderson"}, Blocked: true, UnreadCount: 1},
		{ID: "6", OtherParty: models.Party{DisplayName: "Spam Account"}, Blocked: true, Archived: true},
	}
}

func ids(list []models.ConversationSummary) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestParseTab(t *testing.T) {
	t.Parallel()

	tests := map[string]Tab{
		"":          TabAll,
		"all":       TabAll,
		"UNREAD":    TabUnread,
		" blocked ": TabBlocked,
		"archived":  TabArchived,
		"starred":   TabAll,
	}
	for in, want := range tests {
		if got := ParseTab(in); got != want {
			t.Errorf("ParseTab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPartition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabAll, []string{"1", "2", "3"}},
		{TabUnread, []string{"1", "2"}},
		{TabBlocked, []string{"5", "6"}},
		{TabArchived, []string{"4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			got := Partition(sample(), tt.tab)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Fatalf("Partition(%s) = %v, want %v", tt.tab, ids(got), tt.want)
			}
			for _, c := range got {
				if !InPartition(c, tt.tab) {
					t.Fatalf("conversation %s rendered outside its partition", c.ID)
				}
				if tt.tab == TabUnread && c.UnreadCount <= 0 {
					t.Fatalf("conversation %s under unread has no unread messages", c.ID)
				}
			}
		})
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()

	got := Counts(sample())
	want := map[Tab]int{TabAll: 3, TabUnread: 2, TabBlocked: 2, TabArchived: 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Counts() = %v, want %v", got, want)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name case insensitive", "SARAH", []string{"1"}},
		{"last message", "photos", []string{"4"}},
		{"matches either field", "a", []string{"1", "2", "3", "4", "5", "6"}},
		{"no match", "zzz", []string{}},
		{"conversation without last message", "lisa", []string{"5"}},
		{"spaces are part of the query", "son ", []string{}},
		{"inner and trailing spaces", "is the ", []string{"2"}},
		{"untrimmed substring", "son", []string{"1", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Search(sample(), tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchEmptyQueryIsIdentity(t *testing.T) {
	t.Parallel()

	list := sample()
	for _, q := range []string{"", "   "} {
		got := Search(list, q)
		if !reflect.DeepEqual(got, list) {
			t.Fatalf("Search(%q) changed the list", q)
		}
		if &got[0] != &list[0] {
			t.Fatalf("Search(%q) copied the list", q)
		}
	}
}

func TestBlockedTabIsNotInteractive(t *testing.T) {
	t.Parallel()

	for _, tab := range Tabs {
		if got, want := tab.Interactive(), tab != TabBlocked; got != want {
			t.Errorf("%s.Interactive() = %v, want %v", tab, got, want)
		}
	}
}
