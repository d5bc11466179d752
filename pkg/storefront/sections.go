// Package storefront maps seller page paths to their sections.
package storefront

import (
	"fmt"
	"net/url"
	"strings"
)

type Section string

const (
	SectionOverview Section = "overview"
	SectionProducts Section = "products"
	SectionReels    Section = "reels"
	SectionPosts    Section = "posts"
	SectionQAs      Section = "qas"
	SectionReviews  Section = "reviews"
)

// ScrollReset is the HTMX swap value used for every section change so the
// page lands at the top.
const ScrollReset = "innerHTML show:window:top"

// NavItem is one entry of the storefront tab bar.
type NavItem struct {
	Section Section
	Label   string
	Path    string
}

var nav = []NavItem{
	{SectionOverview, "Overview", ""},
	{SectionProducts, "Products", "products"},
	{SectionReels, "Reels", "reels"},
	{SectionPosts, "Posts", "posts"},
	{SectionQAs, "Q&A", "qas"},
	{SectionReviews, "Reviews", "reviews"},
}

// ResolveSection maps the path below /sellers/{id} to a section. Anything it
// does not know falls through to the overview.
func ResolveSection(subpath string) Section {
	p := strings.Trim(subpath, "/")
	if p == "" {
		return SectionOverview
	}
	first := strings.SplitN(p, "/", 2)[0]
	for _, item := range nav[1:] {
		if item.Path == first {
			return item.Section
		}
	}
	return SectionOverview
}

// BasePath is the storefront root for a seller.
func BasePath(sellerID string) string {
	return "/sellers/" + url.PathEscape(sellerID)
}

// Path returns the URL of a section of the seller's storefront.
func Path(sellerID string, s Section) string {
	for _, item := range nav {
		if item.Section == s && item.Path != "" {
			return fmt.Sprintf("%s/%s", BasePath(sellerID), item.Path)
		}
	}
	return BasePath(sellerID)
}

// Nav returns the tab bar for a seller with absolute paths filled in.
func Nav(sellerID string) []NavItem {
	out := make([]NavItem, len(nav))
	for i, item := range nav {
		out[i] = NavItem{Section: item.Section, Label: item.Label, Path: Path(sellerID, item.Section)}
	}
	return out
}
