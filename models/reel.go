package models

import (
	"errors"
	"time"
)

var ErrInvalidVideo = errors.New("video requires an id and a media url")

// Video is a short-form reel published by a seller.
type Video struct {
	ID              string    `json:"id"`
	SellerID        string    `json:"seller_id"`
	VideoURL        string    `json:"video_url"`
	Title           string    `json:"title"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	DurationSeconds int       `json:"duration"`
	CreatedAt       time.Time `json:"created_at"`
}

func (v Video) Validate() error {
	if v.ID == "" || v.VideoURL == "" {
		return ErrInvalidVideo
	}
	return nil
}
