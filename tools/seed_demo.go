package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"marketplace-web/cache"
	"marketplace-web/config"
	"marketplace-web/db"
)

type demoConversation struct {
	name    string
	last    string
	ago     time.Duration
	unread  int
	blocked bool
}

var demoConversations = []demoConversation{
	{"Sarah Johnson", "Thanks for the quick delivery!", 2 * time.Minute, 1, false},
	{"Michael Chen", "Is the item still available?", time.Hour, 2, false},
	{"Emma Wilson", "Perfect, just what I needed", 3 * time.Hour, 0, false},
	{"David Brown", "Can you send more photos?", 5 * time.Hour, 0, false},
	{"Lisa Anderson", "Great product quality", 24 * time.Hour, 0, true},
}

func main() {
	ownerID := flag.String("owner", "demo-owner", "profile id that owns the demo seller and inbox")
	migrate := flag.Bool("migrate", true, "apply migrations before seeding")
	flag.Parse()

	// Try to load .env from current directory and parent directory
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Printf("⚠️ No .env file loaded: %v", err)
		}
	}

	cfg := config.Default()
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.IPv4URL = os.Getenv("DATABASE_IPV4")
	if cfg.Database.URL == "" && cfg.Database.IPv4URL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("❌ Error connecting to database: %v", err)
	}
	defer database.Close()

	if *migrate {
		if err := db.Migrate(database.DB); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
	}

	sellerID, err := seed(ctx, database.DB, *ownerID)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Printf("✅ Seeded seller %s (/sellers/%s) and %d conversations for %s",
		sellerID, sellerID, len(demoConversations), *ownerID)

	if addr := os.Getenv("REDIS_URL"); addr != "" {
		rdb, err := cache.Connect(ctx, addr, os.Getenv("REDIS_USERNAME"), os.Getenv("REDIS_PASSWORD"))
		if err != nil {
			log.Printf("⚠️ Skipping inbox notification: %v", err)
			return
		}
		defer rdb.Close()
		if err := rdb.PublishInboxChange(ctx, *ownerID); err != nil {
			log.Printf("⚠️ Inbox notification failed: %v", err)
		}
	}
}

func seed(ctx context.Context, conn *sql.DB, ownerID string) (string, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if err := upsertProfile(ctx, tx, ownerID, "Demo Seller"); err != nil {
		return "", err
	}

	sellerID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sellers (id, owner_id, name, bio) VALUES ($1, $2, $3, $4)`,
		sellerID, ownerID, "Demo Store", "Hand-picked goods, shipped fast."); err != nil {
		return "", fmt.Errorf("insert seller: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reels (seller_id, video_url, title, views, likes, duration_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sellerID, "https://sample-videos.com/video321/mp4/720/big_buck_bunny_720p_1mb.mp4",
		"Product Demo Video", 1200, 89, 60); err != nil {
		return "", fmt.Errorf("insert reel: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO products (seller_id, name, price_cents) VALUES ($1, $2, $3), ($1, $4, $5)`,
		sellerID, "Canvas Tote", 2400, "Ceramic Mug", 1800); err != nil {
		return "", fmt.Errorf("insert products: %w", err)
	}

	now := time.Now().UTC()
	for _, c := range demoConversations {
		if err := seedConversation(ctx, tx, ownerID, c, now); err != nil {
			return "", err
		}
	}

	return sellerID, tx.Commit()
}

func upsertProfile(ctx context.Context, tx *sql.Tx, id, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (id, display_name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name`,
		id, name)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", id, err)
	}
	return nil
}

func seedConversation(ctx context.Context, tx *sql.Tx, ownerID string, c demoConversation, now time.Time) error {
	partyID := "demo-" + uuid.NewString()[:8]
	if err := upsertProfile(ctx, tx, partyID, c.name); err != nil {
		return err
	}

	sentAt := now.Add(-c.ago)
	conversationID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (id, created_at, updated_at) VALUES ($1, $2, $2)`,
		conversationID, sentAt); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversation_participants (conversation_id, user_id, unread_count, blocked)
		 VALUES ($1, $2, $3, $4), ($1, $5, 0, FALSE)`,
		conversationID, ownerID, c.unread, c.blocked, partyID); err != nil {
		return fmt.Errorf("insert participants: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content, sent_at, read)
		 VALUES ($1, $2, $3, $4, $5)`,
		conversationID, partyID, c.last, sentAt, c.unread == 0); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}
