package reels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotArmed is returned when a delete is confirmed without a matching,
// unexpired arm step.
var ErrNotArmed = errors.New("delete was not armed")

const DefaultConfirmTTL = 5 * time.Minute

// TokenStore keeps armed tokens between the trigger and the confirmation.
type TokenStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Take(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// DeleteGate turns a delete into two steps: Arm on the trigger click, Confirm
// once the user accepts the dialog. Only Confirm lets the delete through, and
// each armed token is good for one confirmation.
type DeleteGate struct {
	store TokenStore
	ttl   time.Duration
}

func NewDeleteGate(store TokenStore, ttl time.Duration) *DeleteGate {
	if ttl <= 0 {
		ttl = DefaultConfirmTTL
	}
	return &DeleteGate{store: store, ttl: ttl}
}

func gateKey(actorID, reelID string) string {
	return fmt.Sprintf("reel:%s:delete:%s", reelID, actorID)
}

// Arm records a pending delete and returns the token the dialog must echo back.
func (g *DeleteGate) Arm(ctx context.Context, actorID, reelID string) (string, error) {
	token := uuid.NewString()
	if err := g.store.Set(ctx, gateKey(actorID, reelID), []byte(token), g.ttl); err != nil {
		return "", fmt.Errorf("arm delete: %w", err)
	}
	return token, nil
}

// Confirm consumes the armed token. It fails with ErrNotArmed when nothing is
// armed or the token does not match.
func (g *DeleteGate) Confirm(ctx context.Context, actorID, reelID, token string) error {
	if token == "" {
		return ErrNotArmed
	}
	stored, ok, err := g.store.Take(ctx, gateKey(actorID, reelID))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok || string(stored) != token {
		return ErrNotArmed
	}
	return nil
}

func (g *DeleteGate) Cancel(ctx context.Context, actorID, reelID string) error {
	return g.store.Delete(ctx, gateKey(actorID, reelID))
}
