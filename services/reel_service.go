package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"marketplace-web/config"
	"marketplace-web/db"
	"marketplace-web/models"
	apperrors "marketplace-web/pkg/errors"
	"marketplace-web/pkg/events"
	"marketplace-web/pkg/filters"
	"marketplace-web/pkg/reels"
	"marketplace-web/pkg/storefront"
	"marketplace-web/pkg/views"
)

// PreviewCount is how many reels the storefront overview shows.
const PreviewCount = 4

type ReelStore interface {
	ListReels(ctx context.Context, sellerID string, limit int) ([]models.Video, error)
	GetReel(ctx context.Context, sellerID, reelID string) (*models.Video, error)
}

type ReelService struct {
	store     ReelStore
	sellers   *SellerService
	publisher events.Publisher
	gate      *reels.DeleteGate
	cfg       config.ReelsConfig
}

func NewReelService(store ReelStore, sellers *SellerService, publisher events.Publisher, gate *reels.DeleteGate, cfg config.ReelsConfig) *ReelService {
	return &ReelService{
		store:     store,
		sellers:   sellers,
		publisher: publisher,
		gate:      gate,
		cfg:       cfg,
	}
}

// GridPath is the lazy-loaded grid partial of a seller.
func GridPath(sellerID string) string {
	return storefront.Path(sellerID, storefront.SectionReels) + "/grid"
}

// Section is the reels tab body: skeletons that load the grid once shown.
func (s *ReelService) Section(sellerID string, q url.Values) views.ReelSectionView {
	bar := filters.FromQuery(s.cfg.FilterCategory, q)
	return views.ReelSectionView{
		GridURL:   GridPath(sellerID) + "?" + bar.Query().Encode(),
		Skeletons: views.Skeletons(s.cfg.SkeletonCount),
	}
}

// Preview is the overview variant of Section.
func (s *ReelService) Preview(sellerID string) views.ReelSectionView {
	return views.ReelSectionView{
		GridURL:   GridPath(sellerID) + "?preview=1",
		Skeletons: views.Skeletons(PreviewCount),
	}
}

// Grid loads, filters and summarizes the seller's reels. Preview grids show
// the newest few without the filter bar.
func (s *ReelService) Grid(ctx context.Context, sellerID, viewerID string, q url.Values, preview bool) (*views.ReelGridView, error) {
	seller, err := s.sellers.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	canManage := IsOwner(seller, viewerID)

	limit := 0
	if preview {
		limit = PreviewCount
	}
	videos, err := s.store.ListReels(ctx, sellerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reels: %w", err)
	}
	videos = validVideos(videos)

	view := &views.ReelGridView{
		SellerID:  sellerID,
		CanManage: canManage,
		Skeletons: views.Skeletons(s.cfg.SkeletonCount),
	}
	if !preview {
		view.Header = true
		bar := filters.FromQuery(s.cfg.FilterCategory, q)
		view.Stats = views.ToReelStats(reels.Summarize(videos))
		view.Filters = views.ToFilterBarView(bar, GridPath(sellerID))
		view.GridURL = GridPath(sellerID) + "?" + bar.Query().Encode()
		videos = reels.Apply(videos, bar.Selection)
	}
	view.State = reels.GridState(videos, false)
	view.Cards = views.ToReelCards(videos, canManage)
	return view, nil
}

func validVideos(videos []models.Video) []models.Video {
	out := videos[:0:0]
	for _, v := range videos {
		if err := v.Validate(); err != nil {
			log.Printf("⚠️ Skipping reel %q: %v", v.ID, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *ReelService) reel(ctx context.Context, sellerID, reelID string) (*models.Video, error) {
	v, err := s.store.GetReel(ctx, sellerID, reelID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperrors.NotFound("Reel not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get reel: %w", err)
	}
	return v, nil
}

// owned loads the seller and rejects viewers who do not own the storefront.
func (s *ReelService) owned(ctx context.Context, sellerID, viewerID string) error {
	seller, err := s.sellers.Get(ctx, sellerID)
	if err != nil {
		return err
	}
	if !IsOwner(seller, viewerID) {
		return apperrors.Forbidden("Only the store owner can manage reels")
	}
	return nil
}

func (s *ReelService) publish(ctx context.Context, eventType, sellerID, reelID, viewerID string) error {
	return events.PublishReelIntent(ctx, s.publisher, events.ReelIntent{
		Type:        eventType,
		ReelID:      reelID,
		SellerID:    sellerID,
		RequestedBy: viewerID,
		RequestedAt: time.Now().UTC(),
	})
}

// Play returns the player for a reel. The play intent is best effort.
func (s *ReelService) Play(ctx context.Context, sellerID, reelID, viewerID string) (*views.PlayerView, error) {
	seller, err := s.sellers.Get(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	v, err := s.reel(ctx, sellerID, reelID)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, events.ReelPlayRequested, sellerID, reelID, viewerID); err != nil {
		log.Printf("⚠️ %v", err)
	}
	return &views.PlayerView{Card: views.ToReelCard(*v, IsOwner(seller, viewerID))}, nil
}

func (s *ReelService) studioURL(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.TrimRight(s.cfg.StudioURL, "/") + "/" + strings.Join(escaped, "/")
}

// Edit publishes the edit intent and returns where the studio takes over.
func (s *ReelService) Edit(ctx context.Context, sellerID, reelID, viewerID string) (string, error) {
	if err := s.owned(ctx, sellerID, viewerID); err != nil {
		return "", err
	}
	if _, err := s.reel(ctx, sellerID, reelID); err != nil {
		return "", err
	}
	if err := s.publish(ctx, events.ReelEditRequested, sellerID, reelID, viewerID); err != nil {
		return "", err
	}
	return s.studioURL(reelID, "edit"), nil
}

func (s *ReelService) Upload(ctx context.Context, sellerID, viewerID string) (string, error) {
	if err := s.owned(ctx, sellerID, viewerID); err != nil {
		return "", err
	}
	if err := s.publish(ctx, events.ReelUploadRequested, sellerID, "", viewerID); err != nil {
		return "", err
	}
	return s.studioURL("new"), nil
}

// ArmDelete is the first step of a delete: it returns the confirmation dialog.
func (s *ReelService) ArmDelete(ctx context.Context, sellerID, reelID, viewerID string) (*views.DeleteDialogView, error) {
	if err := s.owned(ctx, sellerID, viewerID); err != nil {
		return nil, err
	}
	v, err := s.reel(ctx, sellerID, reelID)
	if err != nil {
		return nil, err
	}
	token, err := s.gate.Arm(ctx, viewerID, reelID)
	if err != nil {
		return nil, err
	}
	return &views.DeleteDialogView{SellerID: sellerID, ReelID: reelID, Title: v.Title, Token: token}, nil
}

// ConfirmDelete fires the delete intent only for an armed, matching token.
func (s *ReelService) ConfirmDelete(ctx context.Context, sellerID, reelID, viewerID, token string) (*models.Video, error) {
	if err := s.owned(ctx, sellerID, viewerID); err != nil {
		return nil, err
	}
	if err := s.gate.Confirm(ctx, viewerID, reelID, token); err != nil {
		if errors.Is(err, reels.ErrNotArmed) {
			return nil, apperrors.New(apperrors.ErrConflict, "This delete was not confirmed. Please try again.", err)
		}
		return nil, err
	}
	v, err := s.reel(ctx, sellerID, reelID)
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, events.ReelDeleteRequested, sellerID, reelID, viewerID); err != nil {
		return nil, err
	}
	log.Printf("✅ Delete requested for reel %s by %s", reelID, viewerID)
	return v, nil
}

func (s *ReelService) CancelDelete(ctx context.Context, sellerID, reelID, viewerID string) error {
	if err := s.owned(ctx, sellerID, viewerID); err != nil {
		return err
	}
	return s.gate.Cancel(ctx, viewerID, reelID)
}
