package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"marketplace-web/cache"
	"marketplace-web/config"
	"marketplace-web/db"
	"marketplace-web/models"
	apperrors "marketplace-web/pkg/errors"
	"marketplace-web/pkg/storage"
)

type SellerStore interface {
	GetSeller(ctx context.Context, id string) (*models.Seller, error)
}

type SellerService struct {
	store    SellerStore
	cache    cache.Store
	group    singleflight.Group
	ttl      time.Duration
	resolver *storage.Resolver
	storage  config.StorageConfig
}

func NewSellerService(store SellerStore, c cache.Store, ttl time.Duration, resolver *storage.Resolver, cfg config.StorageConfig) *SellerService {
	return &SellerService{
		store:    store,
		cache:    c,
		ttl:      ttl,
		resolver: resolver,
		storage:  cfg,
	}
}

// Get looks the seller up once per cache lifetime. Concurrent requests for
// the same id share a single store read.
func (s *SellerService) Get(ctx context.Context, id string) (*models.Seller, error) {
	if id == "" {
		return nil, apperrors.NotFound("Seller not found")
	}
	seller, err := cache.Fetch(ctx, s.cache, &s.group, cache.SellerKey(id), s.ttl,
		func(ctx context.Context) (*models.Seller, error) {
			return s.store.GetSeller(ctx, id)
		})
	if errors.Is(err, db.ErrNotFound) {
		return nil, apperrors.NotFound("Seller not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return seller, nil
}

// LogoURL resolves a stored logo path, or the placeholder when there is none.
func (s *SellerService) LogoURL(path string) string {
	return s.resolver.PublicURLOr(s.storage.LogoBucket, path, s.storage.PlaceholderLogo)
}

// MediaURL resolves product and post images.
func (s *SellerService) MediaURL(path string) string {
	return s.resolver.PublicURLOr(s.storage.MediaBucket, path, "")
}

func IsOwner(seller *models.Seller, viewerID string) bool {
	return seller != nil && viewerID != "" && seller.OwnerID == viewerID
}
