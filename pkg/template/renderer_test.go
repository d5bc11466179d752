package template

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "marketplace-web/pkg/errors"
	"marketplace-web/pkg/inbox"
	"marketplace-web/pkg/reels"
	"marketplace-web/pkg/storefront"
	"marketplace-web/pkg/views"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	r.SetGlobalTemplateData(map[string]interface{}{"SiteName": "Market"})
	return r
}

func sellerPage(section storefront.Section, body interface{}) views.SellerPage {
	return views.SellerPage{
		Seller:      views.SellerHeader{ID: "s1", Name: "Tienda Sol", LogoURL: "https://cdn.test/logo.png"},
		Nav:         views.ToNavTabs("s1", section),
		Section:     section,
		ScrollReset: storefront.ScrollReset,
		Body:        body,
	}
}

func TestRenderStorefrontPage(t *testing.T) {
	r := newRenderer(t)
	rec := httptest.NewRecorder()

	page := sellerPage(storefront.SectionOverview, views.OverviewView{
		Products:  []views.ProductCard{{ID: "p1", Name: "Mug", Price: "$12.00"}},
		GridURL:   "/sellers/s1/reels/grid",
		Skeletons: views.Skeletons(3),
	})
	if err := r.RenderPage(rec, http.StatusOK, "storefront", Page{Title: "Tienda Sol", Data: page}); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	for _, want := range []string{"Tienda Sol", "Market", "Mug", `hx-swap="innerHTML show:window:top"`, `hx-get="/sellers/s1/reels/grid"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderSections(t *testing.T) {
	r := newRenderer(t)

	tests := []struct {
		section storefront.Section
		body    interface{}
		want    string
	}{
		{storefront.SectionProducts, []views.ProductCard{}, "No products yet."},
		{storefront.SectionReels, views.ReelSectionView{GridURL: "/sellers/s1/reels/grid"}, "/sellers/s1/reels/grid"},
		{storefront.SectionPosts, []views.PostView{{Body: "New stock"}}, "New stock"},
		{storefront.SectionQAs, []views.QuestionView{{Question: "Ships abroad?"}}, "Not answered yet"},
		{storefront.SectionReviews, views.ReviewsView{Average: "4.5", Count: 2}, "4.5"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		if err := r.Render(&sb, "section", sellerPage(tt.section, tt.body)); err != nil {
			t.Fatalf("%s: %v", tt.section, err)
		}
		if !strings.Contains(sb.String(), tt.want) {
			t.Errorf("%s: missing %q", tt.section, tt.want)
		}
	}
}

func TestRenderReelGridStates(t *testing.T) {
	r := newRenderer(t)

	tests := []struct {
		name string
		view views.ReelGridView
		want string
	}{
		{"loading", views.ReelGridView{State: reels.StateLoading, Skeletons: views.Skeletons(2)}, `aria-busy="true"`},
		{"empty owner", views.ReelGridView{SellerID: "s1", State: reels.StateEmpty, CanManage: true}, "Upload Your First Reel"},
		{"ready", views.ReelGridView{SellerID: "s1", State: reels.StateReady, Cards: []views.ReelCard{
			{ID: "r1", SellerID: "s1", Title: "Unboxing", Views: "1.2K", Duration: "0:45"},
		}}, "1.2K views"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		if err := r.Render(&sb, "reel-grid", tt.view); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !strings.Contains(sb.String(), tt.want) {
			t.Errorf("%s: missing %q in %s", tt.name, tt.want, sb.String())
		}
		if strings.Contains(sb.String(), "/delete\"") && !tt.view.CanManage {
			t.Errorf("%s: delete offered to a non-owner", tt.name)
		}
	}
}

func TestRenderReelGridHeader(t *testing.T) {
	r := newRenderer(t)
	cards := []views.ReelCard{{ID: "r1", SellerID: "s1", Title: "Unboxing", Views: "1.2K", Duration: "0:45"}}

	tests := []struct {
		name       string
		view       views.ReelGridView
		wantUpload bool
		wantTitle  bool
	}{
		{"owner with reels", views.ReelGridView{SellerID: "s1", Header: true, State: reels.StateReady, Cards: cards, CanManage: true,
			Stats: views.ReelStats{TotalReels: 1, TotalViews: "1.2K", TotalLikes: "0", Show: true}}, true, true},
		{"visitor with reels", views.ReelGridView{SellerID: "s1", Header: true, State: reels.StateReady, Cards: cards}, false, true},
		{"preview", views.ReelGridView{SellerID: "s1", State: reels.StateReady, Cards: cards, CanManage: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			if err := r.Render(&sb, "reel-grid", tt.view); err != nil {
				t.Fatal(err)
			}
			out := sb.String()
			if got := strings.Contains(out, "/sellers/s1/reels/upload"); got != tt.wantUpload {
				t.Errorf("upload action shown = %v, want %v", got, tt.wantUpload)
			}
			if got := strings.Contains(out, "Share engaging video content with your audience"); got != tt.wantTitle {
				t.Errorf("header shown = %v, want %v", got, tt.wantTitle)
			}
		})
	}
}

func TestRenderDeleteDialog(t *testing.T) {
	r := newRenderer(t)
	var sb strings.Builder
	err := r.Render(&sb, "reel-delete-dialog", views.DeleteDialogView{SellerID: "s1", ReelID: "r1", Title: "Unboxing", Token: "tok"})
	if err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"Delete Reel", "This action cannot be undone.", `value="tok"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dialog missing %q", want)
		}
	}
}

func TestRenderConversationList(t *testing.T) {
	r := newRenderer(t)
	v := views.ConversationListView{
		Tab:        inbox.TabBlocked,
		Tabs:       views.ToTabViews(nil, inbox.TabBlocked, ""),
		Pagination: views.NewPagination(1, 20, 1),
		Rows:       []views.ConversationRow{{ID: "c1", Name: "Ana", Preview: "Hi", Interactive: false}},
	}
	var sb strings.Builder
	if err := r.Render(&sb, "conversation-list", v); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sb.String(), `href="/messages/c1"`) {
		t.Fatalf("blocked row should not link")
	}
	if !strings.Contains(sb.String(), `aria-disabled="true"`) {
		t.Fatalf("blocked row should render disabled")
	}
}

func TestRenderError(t *testing.T) {
	r := newRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/sellers/x", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	r.RenderError(rec, req, apperrors.NotFound("Seller not found"))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Seller not found") {
		t.Fatalf("partial error = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.RenderError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "pq:") {
		t.Fatalf("internal error leaked: %d %q", rec.Code, rec.Body.String())
	}
}
