package views

import (
	"marketplace-web/pkg/inbox"
	"marketplace-web/pkg/reels"
	"marketplace-web/pkg/storefront"
)

type UserView struct {
	ID   string
	Role string
	Name string
}

// ConversationRow is one inbox entry. Emphasized rows render bold with the
// unread badge.
type ConversationRow struct {
	ID          string
	Name        string
	Initials    string
	AvatarURL   string
	Preview     string
	Time        string
	UnreadCount int
	Emphasized  bool
	Interactive bool
	Href        string
}

type TabView struct {
	Tab    inbox.Tab
	Label  string
	Count  int
	Active bool
	Href   string
}

type ConversationListView struct {
	Rows       []ConversationRow
	Tabs       []TabView
	Tab        inbox.Tab
	Search     string
	Pagination Pagination
	Counts     map[inbox.Tab]int
	Skeletons  []int
}

func (v ConversationListView) URL() string {
	return ListURL(v.Tab, v.Search, v.Pagination.Page)
}

func (v ConversationListView) PageURL(page int) string {
	return ListURL(v.Tab, v.Search, page)
}

type MessageView struct {
	ID      string
	Content string
	Time    string
	Mine    bool
}

type ThreadView struct {
	ConversationID string
	Party          ConversationRow
	Messages       []MessageView
}

type FilterOptionView struct {
	Label    string
	Href     string
	Selected bool
	IsAll    bool
}

type FilterCategoryView struct {
	ID        string
	Label     string
	Selected  string
	ClearHref string
	Options   []FilterOptionView
}

type FilterBarView struct {
	Categories   []FilterCategoryView
	ClearAllHref string
	Active       bool
}

type ReelCard struct {
	ID        string
	SellerID  string
	Title     string
	VideoURL  string
	Views     string
	Likes     string
	Duration  string
	CanManage bool
}

type ReelStats struct {
	TotalReels int
	TotalViews string
	TotalLikes string
	Show       bool
}

type ReelGridView struct {
	SellerID string
	// Header shows the title, stats and upload action. Preview grids omit it.
	Header    bool
	State     reels.State
	Cards     []ReelCard
	Skeletons []int
	Stats     ReelStats
	Filters   FilterBarView
	CanManage bool
	GridURL   string
}

type DeleteDialogView struct {
	SellerID string
	ReelID   string
	Title    string
	Token    string
}

type PlayerView struct {
	Card ReelCard
}

type SellerHeader struct {
	ID       string
	Name     string
	Bio      string
	LogoURL  string
	Initials string
	IsOwner  bool
}

type NavTab struct {
	storefront.NavItem
	Active bool
}

type ProductCard struct {
	ID       string
	Name     string
	Price    string
	ImageURL string
}

type PostView struct {
	ID       string
	Body     string
	ImageURL string
	Time     string
}

type QuestionView struct {
	ID       string
	Question string
	Answer   string
	Answered bool
	AskedBy  string
	Time     string
}

type ReviewView struct {
	ID       string
	Author   string
	Rating   int
	Stars    string
	Comment  string
	Time     string
	Initials string
}

type ReviewsView struct {
	Average string
	Count   int
	Items   []ReviewView
}

type OverviewView struct {
	Products  []ProductCard
	GridURL   string
	Skeletons []int
}

// ReelSectionView lazy-loads the grid from GridURL behind skeleton cards.
type ReelSectionView struct {
	GridURL   string
	Skeletons []int
}

// SellerPage is the data for every storefront section. Body holds the
// section-specific view.
type SellerPage struct {
	Seller      SellerHeader
	Nav         []NavTab
	Section     storefront.Section
	ScrollReset string
	Body        interface{}
}

type ErrorView struct {
	Status  int
	Message string
}
