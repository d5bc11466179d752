package db

import (
	"context"
	"fmt"

	"marketplace-web/models"
)

func (d *Database) GetSeller(ctx context.Context, id string) (*models.Seller, error) {
	var s models.Seller
	err := d.DB.QueryRowContext(ctx, GetSellerQuery, id).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.LogoPath, &s.Bio, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get seller %s: %w", id, notFound(err))
	}
	return &s, nil
}
