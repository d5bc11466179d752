package models

import "time"

type Seller struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	LogoPath  string    `json:"logo_path,omitempty"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID         string    `json:"id"`
	SellerID   string    `json:"seller_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	ImagePath  string    `json:"image_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Post struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	Body      string    `json:"body"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Question struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	AskedBy   string    `json:"asked_by"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Answered reports whether the seller has replied.
func (q Question) Answered() bool {
	return q.Answer != ""
}

type Review struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
