package views

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"marketplace-web/models"
	"marketplace-web/pkg/auth"
	"marketplace-web/pkg/filters"
	"marketplace-web/pkg/format"
	"marketplace-web/pkg/inbox"
	"marketplace-web/pkg/reels"
	"marketplace-web/pkg/storefront"
)

const NoMessagesYet = "No messages yet"

// Resolve turns a stored object path into a public URL.
type Resolve func(path string) string

func ToUserView(user *auth.User) UserView {
	if user == nil {
		return UserView{}
	}
	name := user.Email
	if name == "" {
		name = user.ID
	}
	return UserView{ID: user.ID, Role: user.Role, Name: name}
}

func ToConversationRows(list []models.ConversationSummary, tab inbox.Tab, now time.Time) []ConversationRow {
	rows := make([]ConversationRow, len(list))
	for i, c := range list {
		c.Normalize()
		row := ConversationRow{
			ID:          c.ID,
			Name:        c.OtherParty.DisplayName,
			Initials:    format.Initials(c.OtherParty.DisplayName),
			AvatarURL:   c.OtherParty.AvatarURL,
			Preview:     NoMessagesYet,
			Time:        format.Relative(c.UpdatedAt, now),
			UnreadCount: c.UnreadCount,
			Emphasized:  c.Unread(),
			Interactive: tab.Interactive(),
		}
		if c.LastMessage != nil {
			row.Preview = c.LastMessage.Content
			row.Time = format.Relative(c.LastMessage.SentAt, now)
		}
		if row.Interactive {
			row.Href = "/messages/" + url.PathEscape(c.ID)
		}
		rows[i] = row
	}
	return rows
}

// ListURL is the inbox list partial for a tab, query and page.
func ListURL(tab inbox.Tab, search string, page int) string {
	q := url.Values{}
	q.Set("tab", string(tab))
	if search != "" {
		q.Set("q", search)
	}
	if page > 1 {
		q.Set("page", fmt.Sprint(page))
	}
	return "/messages/list?" + q.Encode()
}

func ToTabViews(counts map[inbox.Tab]int, active inbox.Tab, search string) []TabView {
	tabs := make([]TabView, len(inbox.Tabs))
	for i, t := range inbox.Tabs {
		tabs[i] = TabView{
			Tab:    t,
			Label:  t.Label(),
			Count:  counts[t],
			Active: t == active,
			Href:   ListURL(t, search, 1),
		}
	}
	return tabs
}

func ToMessageViews(messages []models.Message, viewerID string, now time.Time) []MessageView {
	out := make([]MessageView, len(messages))
	for i, m := range messages {
		out[i] = MessageView{
			ID:      m.ID,
			Content: m.Content,
			Time:    format.Relative(m.SentAt, now),
			Mine:    m.SenderID == viewerID,
		}
	}
	return out
}

// ToFilterBarView builds chip links relative to basePath.
func ToFilterBarView(bar *filters.Bar, basePath string) FilterBarView {
	v := FilterBarView{
		ClearAllHref: basePath + "?" + bar.ClearAllQuery(),
		Active:       bar.Active(),
	}
	for _, c := range bar.Categories {
		selected, _ := bar.Selected(c.ID)
		cv := FilterCategoryView{
			ID:        c.ID,
			Label:     c.Label,
			Selected:  selected,
			ClearHref: basePath + "?" + bar.ClearQuery(c.ID),
		}
		for _, o := range c.Options {
			cv.Options = append(cv.Options, FilterOptionView{
				Label:    o,
				Href:     basePath + "?" + bar.SelectQuery(c.ID, o),
				Selected: o == selected,
				IsAll:    filters.IsAllOption(o),
			})
		}
		v.Categories = append(v.Categories, cv)
	}
	return v
}

func ToReelCard(v models.Video, canManage bool) ReelCard {
	return ReelCard{
		ID:        v.ID,
		SellerID:  v.SellerID,
		Title:     v.Title,
		VideoURL:  v.VideoURL,
		Views:     format.Number(v.Views),
		Likes:     format.Number(v.Likes),
		Duration:  format.Duration(v.DurationSeconds),
		CanManage: canManage,
	}
}

func ToReelCards(videos []models.Video, canManage bool) []ReelCard {
	cards := make([]ReelCard, len(videos))
	for i, v := range videos {
		cards[i] = ToReelCard(v, canManage)
	}
	return cards
}

func ToReelStats(s reels.Summary) ReelStats {
	return ReelStats{
		TotalReels: s.TotalReels,
		TotalViews: format.Number(s.TotalViews),
		TotalLikes: format.Number(s.TotalLikes),
		Show:       s.ShowStats(),
	}
}

// Skeletons returns n placeholders for range loops in templates.
func Skeletons(n int) []int {
	if n < 0 {
		n = 0
	}
	return make([]int, n)
}

func ToNavTabs(sellerID string, active storefront.Section) []NavTab {
	items := storefront.Nav(sellerID)
	tabs := make([]NavTab, len(items))
	for i, item := range items {
		tabs[i] = NavTab{NavItem: item, Active: item.Section == active}
	}
	return tabs
}

func ToSellerHeader(s *models.Seller, logoURL string, isOwner bool) SellerHeader {
	return SellerHeader{
		ID:       s.ID,
		Name:     s.Name,
		Bio:      s.Bio,
		LogoURL:  logoURL,
		Initials: format.Initials(s.Name),
		IsOwner:  isOwner,
	}
}

func ToProductCards(products []models.Product, resolve Resolve) []ProductCard {
	out := make([]ProductCard, len(products))
	for i, p := range products {
		out[i] = ProductCard{
			ID:       p.ID,
			Name:     p.Name,
			Price:    format.Price(p.PriceCents),
			ImageURL: resolve(p.ImagePath),
		}
	}
	return out
}

func ToPostViews(posts []models.Post, resolve Resolve, now time.Time) []PostView {
	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = PostView{ID: p.ID, Body: p.Body, Time: format.Relative(p.CreatedAt, now)}
		if p.ImagePath != "" {
			out[i].ImageURL = resolve(p.ImagePath)
		}
	}
	return out
}

func ToQuestionViews(questions []models.Question, now time.Time) []QuestionView {
	out := make([]QuestionView, len(questions))
	for i, q := range questions {
		out[i] = QuestionView{
			ID:       q.ID,
			Question: q.Question,
			Answer:   q.Answer,
			Answered: q.Answered(),
			AskedBy:  q.AskedBy,
			Time:     format.Relative(q.CreatedAt, now),
		}
	}
	return out
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func ToReviewsView(reviews []models.Review, now time.Time) ReviewsView {
	v := ReviewsView{Count: len(reviews), Items: make([]ReviewView, len(reviews))}
	total := 0
	for i, r := range reviews {
		total += r.Rating
		v.Items[i] = ReviewView{
			ID:       r.ID,
			Author:   r.Author,
			Rating:   r.Rating,
			Stars:    stars(r.Rating),
			Comment:  r.Comment,
			Time:     format.Relative(r.CreatedAt, now),
			Initials: format.Initials(r.Author),
		}
	}
	if len(reviews) > 0 {
		v.Average = fmt.Sprintf("%.1f", float64(total)/float64(len(reviews)))
	}
	return v
}
