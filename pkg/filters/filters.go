// Package filters implements the storefront filter bar: categories of mutually
// exclusive options and the current selection per category.
package filters

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown filter category")
	ErrUnknownOption   = errors.New("option is not offered by this category")
)

const (
	// queryPrefix namespaces selections in the query string: f.sort=Most+Viewed.
	queryPrefix = "f."
	// MarkerParam is present once the bar has been displayed, so defaults are
	// only applied on first display.
	MarkerParam = "fb"
)

type Category struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Options []string `yaml:"options"`
}

func (c Category) Has(option string) bool {
	for _, o := range c.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Selection maps a category id to its chosen option label.
type Selection map[string]string

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Bar is the filter bar state for one render.
type Bar struct {
	Categories []Category
	Selection  Selection
}

func NewBar(categories []Category, selection Selection) *Bar {
	if selection == nil {
		selection = Selection{}
	}
	return &Bar{Categories: categories, Selection: selection}
}

func (b *Bar) Category(id string) (Category, bool) {
	for _, c := range b.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Select sets the option for one category and leaves the others alone.
func (b *Bar) Select(categoryID, option string) error {
	c, ok := b.Category(categoryID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	if !c.Has(option) {
		return fmt.Errorf("%w: %q in %q", ErrUnknownOption, option, categoryID)
	}
	b.Selection[categoryID] = option
	return nil
}

func (b *Bar) Clear(categoryID string) {
	delete(b.Selection, categoryID)
}

func (b *Bar) ClearAll() {
	b.Selection = Selection{}
}

// WithDefaults selects the first option of every category that has no
// selection yet.
func (b *Bar) WithDefaults() {
	for _, c := range b.Categories {
		if _, ok := b.Selection[c.ID]; !ok && len(c.Options) > 0 {
			b.Selection[c.ID] = c.Options[0]
		}
	}
}

func (b *Bar) Selected(categoryID string) (string, bool) {
	v, ok := b.Selection[categoryID]
	return v, ok
}

// Active reports whether any category is narrowed past an "All" option.
func (b *Bar) Active() bool {
	for _, v := range b.Selection {
		if !IsAllOption(v) {
			return true
		}
	}
	return false
}

// IsAllOption reports whether option is a catch-all such as "All" or "All sizes".
func IsAllOption(option string) bool {
	return strings.HasPrefix(strings.ToLower(option), "all")
}

// FromQuery rebuilds the bar from a request. Unknown categories and options
// are dropped. Defaults are applied only when the marker is absent.
func FromQuery(categories []Category, q url.Values) *Bar {
	b := NewBar(categories, nil)
	for key, values := range q {
		if !strings.HasPrefix(key, queryPrefix) || len(values) == 0 {
			continue
		}
		_ = b.Select(strings.TrimPrefix(key, queryPrefix), values[0])
	}
	if q.Get(MarkerParam) == "" {
		b.WithDefaults()
	}
	return b
}

// Query encodes the selection, marker included.
func (b *Bar) Query() url.Values {
	return encode(b.Selection)
}

func (b *Bar) SelectQuery(categoryID, option string) string {
	s := b.Selection.Clone()
	s[categoryID] = option
	return encode(s).Encode()
}

func (b *Bar) ClearQuery(categoryID string) string {
	s := b.Selection.Clone()
	delete(s, categoryID)
	return encode(s).Encode()
}

func (b *Bar) ClearAllQuery() string {
	return encode(nil).Encode()
}

func encode(s Selection) url.Values {
	q := url.Values{}
	q.Set(MarkerParam, "1")
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(queryPrefix+k, s[k])
	}
	return q
}
