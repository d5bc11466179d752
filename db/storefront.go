package db

import (
	"context"
	"fmt"

	"marketplace-web/db/queries"
	"marketplace-web/models"
)

func scanVideo(s scanner) (models.Video, error) {
	var v models.Video
	err := s.Scan(&v.ID, &v.SellerID, &v.VideoURL, &v.Title, &v.Views, &v.Likes, &v.DurationSeconds, &v.CreatedAt)
	return v, err
}

// ListReels returns the seller's reels, newest first. limit <= 0 means all.
func (d *Database) ListReels(ctx context.Context, sellerID string, limit int) ([]models.Video, error) {
	q, args := queries.SellerScoped(queries.ReelColumns, "reels", sellerID).Limit(limit).Build()
	rows, err := d.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query reels: %w", err)
	}
	return collect(rows, scanVideo)
}

func (d *Database) GetReel(ctx context.Context, sellerID, reelID string) (*models.Video, error) {
	q, args := queries.NewQueryBuilder(queries.ReelColumns, "reels").
		Where("seller_id = ?", sellerID).
		Where("id = ?", reelID).
		Build()
	v, err := scanVideo(d.DB.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, fmt.Errorf("get reel %s: %w", reelID, notFound(err))
	}
	return &v, nil
}

func (d *Database) ListProducts(ctx context.Context, sellerID string, limit int) ([]models.Product, error) {
	q, args := queries.SellerScoped(queries.ProductColumns, "products", sellerID).Limit(limit).Build()
	rows, err := d.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return collect(rows, func(s scanner) (models.Product, error) {
		var p models.Product
		err := s.Scan(&p.ID, &p.SellerID, &p.Name, &p.PriceCents, &p.ImagePath, &p.CreatedAt)
		return p, err
	})
}

func (d *Database) ListPosts(ctx context.Context, sellerID string, limit int) ([]models.Post, error) {
	q, args := queries.SellerScoped(queries.PostColumns, "seller_posts", sellerID).Limit(limit).Build()
	rows, err := d.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	return collect(rows, func(s scanner) (models.Post, error) {
		var p models.Post
		err := s.Scan(&p.ID, &p.SellerID, &p.Body, &p.ImagePath, &p.CreatedAt)
		return p, err
	})
}

func (d *Database) ListQuestions(ctx context.Context, sellerID string, limit int) ([]models.Question, error) {
	q, args := queries.SellerScoped(queries.QuestionColumns, "questions", sellerID).Limit(limit).Build()
	rows, err := d.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return collect(rows, func(s scanner) (models.Question, error) {
		var x models.Question
		err := s.Scan(&x.ID, &x.SellerID, &x.AskedBy, &x.Question, &x.Answer, &x.CreatedAt)
		return x, err
	})
}

func (d *Database) ListReviews(ctx context.Context, sellerID string, limit int) ([]models.Review, error) {
	q, args := queries.SellerScoped(queries.ReviewColumns, "reviews", sellerID).Limit(limit).Build()
	rows, err := d.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	return collect(rows, func(s scanner) (models.Review, error) {
		var r models.Review
		err := s.Scan(&r.ID, &r.SellerID, &r.Author, &r.Rating, &r.Comment, &r.CreatedAt)
		return r, err
	})
}
