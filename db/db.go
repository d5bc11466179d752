package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"marketplace-web/config"
)

var ErrNotFound = errors.New("record not found")

const connectAttempts = 3

// Database holds the pool and implements the repositories the services use.
type Database struct {
	DB *sql.DB
}

func New(conn *sql.DB) *Database {
	return &Database{DB: conn}
}

// Open connects with DATABASE_URL and falls back to DATABASE_IPV4. Each
// candidate gets a few attempts before the next one is tried.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	var lastErr error
	for _, candidate := range []struct{ name, url string }{
		{"DATABASE_URL", cfg.URL},
		{"DATABASE_IPV4", cfg.IPv4URL},
	} {
		if candidate.url == "" {
			continue
		}
		conn, err := connectWithRetry(ctx, candidate.url)
		if err == nil {
			conn.SetMaxOpenConns(cfg.MaxOpenConns)
			conn.SetMaxIdleConns(cfg.MaxIdleConns)
			conn.SetConnMaxLifetime(30 * time.Minute)
			log.Printf("✅ Successfully connected using %s", candidate.name)
			return New(conn), nil
		}
		log.Printf("❌ Failed to connect with %s: %v", candidate.name, err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no database url configured")
	}
	return nil, fmt.Errorf("connect database: %w", lastErr)
}

func connectWithRetry(ctx context.Context, url string) (*sql.DB, error) {
	var err error
	for i := 0; i < connectAttempts; i++ {
		log.Printf("🔄 Database connection attempt %d/%d...", i+1, connectAttempts)
		var conn *sql.DB
		if conn, err = connect(ctx, url); err == nil {
			return conn, nil
		}
		log.Printf("❌ Connection attempt %d failed: %v", i+1, err)
		if i < connectAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
	return nil, err
}

func connect(ctx context.Context, url string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.DB.Close()
}
