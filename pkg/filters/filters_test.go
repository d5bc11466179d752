package filters

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
)

func categories() []Category {
	return []Category{
		{ID: "sort", Label: "Sort By", Options: []string{"All", "Most Recent", "Most Viewed", "Most Liked"}},
		{ID: "duration", Label: "Duration", Options: []string{"All", "Under 30s", "30s-1m", "Over 1m"}},
	}
}

func TestSelectOnlyTouchesOneCategory(t *testing.T) {
	t.Parallel()

	b := NewBar(categories(), Selection{"sort": "All", "duration": "Over 1m"})
	if err := b.Select("sort", "Most Liked"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := Selection{"sort": "Most Liked", "duration": "Over 1m"}
	if !reflect.DeepEqual(b.Selection, want) {
		t.Fatalf("selection = %v, want %v", b.Selection, want)
	}
}

func TestSelectRejectsUnknownValues(t *testing.T) {
	t.Parallel()

	b := NewBar(categories(), nil)
	if err := b.Select("color", "Red"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if err := b.Select("sort", "Cheapest"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if len(b.Selection) != 0 {
		t.Fatalf("rejected selects must not change the mapping: %v", b.Selection)
	}
}

func TestClearAndClearAll(t *testing.T) {
	t.Parallel()

	b := NewBar(categories(), Selection{"sort": "Most Viewed", "duration": "Under 30s"})
	b.Clear("sort")
	if !reflect.DeepEqual(b.Selection, Selection{"duration": "Under 30s"}) {
		t.Fatalf("Clear left %v", b.Selection)
	}
	b.ClearAll()
	if len(b.Selection) != 0 {
		t.Fatalf("ClearAll left %v", b.Selection)
	}
}

func TestWithDefaultsKeepsExistingSelections(t *testing.T) {
	t.Parallel()

	cats := append(categories(), Category{ID: "empty", Label: "Empty"})
	b := NewBar(cats, Selection{"duration": "Over 1m"})
	b.WithDefaults()
	want := Selection{"sort": "All", "duration": "Over 1m"}
	if !reflect.DeepEqual(b.Selection, want) {
		t.Fatalf("selection = %v, want %v", b.Selection, want)
	}
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  Selection
	}{
		{"first display gets defaults", "", Selection{"sort": "All", "duration": "All"}},
		{"first display keeps explicit choice", "f.sort=Most+Viewed", Selection{"sort": "Most Viewed", "duration": "All"}},
		{"cleared category stays cleared", "fb=1&f.sort=Most+Liked", Selection{"sort": "Most Liked"}},
		{"cleared all stays empty", "fb=1", Selection{}},
		{"unknown option dropped", "fb=1&f.sort=Cheapest&f.size=XL", Selection{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got := FromQuery(categories(), q).Selection
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("selection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryLinks(t *testing.T) {
	t.Parallel()

	b := NewBar(categories(), Selection{"sort": "All", "duration": "Under 30s"})
	if got, want := b.SelectQuery("sort", "Most Viewed"), "f.duration=Under+30s&f.sort=Most+Viewed&fb=1"; got != want {
		t.Fatalf("SelectQuery = %q, want %q", got, want)
	}
	if got, want := b.ClearQuery("duration"), "f.sort=All&fb=1"; got != want {
		t.Fatalf("ClearQuery = %q, want %q", got, want)
	}
	if got, want := b.ClearAllQuery(), "fb=1"; got != want {
		t.Fatalf("ClearAllQuery = %q, want %q", got, want)
	}
	if b.Selection["sort"] != "All" {
		t.Fatalf("building links must not mutate the bar")
	}
}

func TestIsAllOption(t *testing.T) {
	t.Parallel()

	for option, want := range map[string]bool{"All": true, "all sizes": true, "Most Recent": false, "": false} {
		if got := IsAllOption(option); got != want {
			t.Errorf("IsAllOption(%q) = %v", option, got)
		}
	}
}

func TestActive(t *testing.T) {
	t.Parallel()

	b := NewBar(categories(), Selection{"sort": "All", "duration": "All"})
	if b.Active() {
		t.Fatalf("all-only selection should not be active")
	}
	_ = b.Select("duration", "Over 1m")
	if !b.Active() {
		t.Fatalf("narrowed selection should be active")
	}
}
