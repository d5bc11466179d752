package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"marketplace-web/models"
	"marketplace-web/pkg/storefront"
	"marketplace-web/pkg/views"
)

// overviewProducts is how many products the overview features.
const overviewProducts = 4

type StorefrontStore interface {
	ListProducts(ctx context.Context, sellerID string, limit int) ([]models.Product, error)
	ListPosts(ctx context.Context, sellerID string, limit int) ([]models.Post, error)
	ListQuestions(ctx context.Context, sellerID string, limit int) ([]models.Question, error)
	ListReviews(ctx context.Context, sellerID string, limit int) ([]models.Review, error)
}

type StorefrontService struct {
	store   StorefrontStore
	sellers *SellerService
	reels   *ReelService
	now     func() time.Time
}

func NewStorefrontService(store StorefrontStore, sellers *SellerService, reels *ReelService) *StorefrontService {
	return &StorefrontService{store: store, sellers: sellers, reels: reels, now: time.Now}
}

// Page builds the storefront for the path below /sellers/{id}. Unknown
// paths render the overview.
func (s *StorefrontService) Page(ctx context.Context, sellerID, subpath, viewerID string, q url.Values) (*views.SellerPage, error) {
	seller, err := s.sellers.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	section := storefront.ResolveSection(subpath)

	body, err := s.body(ctx, seller.ID, section, q)
	if err != nil {
		return nil, fmt.Errorf("%s section: %w", section, err)
	}

	return &views.SellerPage{
		Seller:      views.ToSellerHeader(seller, s.sellers.LogoURL(seller.LogoPath), IsOwner(seller, viewerID)),
		Nav:         views.ToNavTabs(seller.ID, section),
		Section:     section,
		ScrollReset: storefront.ScrollReset,
		Body:        body,
	}, nil
}

func (s *StorefrontService) body(ctx context.Context, sellerID string, section storefront.Section, q url.Values) (interface{}, error) {
	now := s.now()
	switch section {
	case storefront.SectionProducts:
		products, err := s.store.ListProducts(ctx, sellerID, 0)
		if err != nil {
			return nil, err
		}
		return views.ToProductCards(products, s.sellers.MediaURL), nil

	case storefront.SectionReels:
		return s.reels.Section(sellerID, q), nil

	case storefront.SectionPosts:
		posts, err := s.store.ListPosts(ctx, sellerID, 0)
		if err != nil {
			return nil, err
		}
		return views.ToPostViews(posts, s.sellers.MediaURL, now), nil

	case storefront.SectionQAs:
		questions, err := s.store.ListQuestions(ctx, sellerID, 0)
		if err != nil {
			return nil, err
		}
		return views.ToQuestionViews(questions, now), nil

	case storefront.SectionReviews:
		reviews, err := s.store.ListReviews(ctx, sellerID, 0)
		if err != nil {
			return nil, err
		}
		return views.ToReviewsView(reviews, now), nil

	default:
		products, err := s.store.ListProducts(ctx, sellerID, overviewProducts)
		if err != nil {
			return nil, err
		}
		preview := s.reels.Preview(sellerID)
		return views.OverviewView{
			Products:  views.ToProductCards(products, s.sellers.MediaURL),
			GridURL:   preview.GridURL,
			Skeletons: preview.Skeletons,
		}, nil
	}
}
