// Package events forwards storefront intents to the backends that own them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const (
	ReelPlayRequested   = "reel.play_requested"
	ReelEditRequested   = "reel.edit_requested"
	ReelDeleteRequested = "reel.delete_requested"
	ReelUploadRequested = "reel.upload_requested"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error
	Close() error
}

// ReelIntent is the payload of every reel.* event.
type ReelIntent struct {
	Type        string    `json:"type"`
	ReelID      string    `json:"reel_id,omitempty"`
	SellerID    string    `json:"seller_id"`
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// PublishReelIntent marshals intent and publishes it keyed by seller so a
// seller's intents stay ordered.
func PublishReelIntent(ctx context.Context, p Publisher, intent ReelIntent) error {
	if intent.RequestedAt.IsZero() {
		intent.RequestedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", intent.Type, err)
	}
	if err := p.Publish(ctx, intent.Type, payload, intent.SellerID); err != nil {
		return fmt.Errorf("publish %s: %w", intent.Type, err)
	}
	return nil
}

// LogPublisher is used when no brokers are configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, eventType string, payload []byte, key string) error {
	log.Printf("📣 %s (key %s): %s", eventType, key, payload)
	return nil
}

func (LogPublisher) Close() error { return nil }
