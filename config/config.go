package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"marketplace-web/pkg/filters"
	"marketplace-web/pkg/reels"
)

const DefaultPlaceholderLogo = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Messages  MessagesConfig  `yaml:"messages"`
	Reels     ReelsConfig     `yaml:"reels"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	SiteName     string        `yaml:"site_name"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	URL          string `yaml:"url"`
	IPv4URL      string `yaml:"ipv4_url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

type RedisConfig struct {
	// Addr is a redis:// URL or host:port. Empty runs with the in-memory cache.
	Addr      string        `yaml:"addr"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	SellerTTL time.Duration `yaml:"seller_ttl"`
	InboxTTL  time.Duration `yaml:"inbox_ttl"`
}

type AuthConfig struct {
	Secret string `yaml:"secret"`
}

type StorageConfig struct {
	PublicURL       string `yaml:"public_url"`
	LogoBucket      string `yaml:"logo_bucket"`
	MediaBucket     string `yaml:"media_bucket"`
	PlaceholderLogo string `yaml:"placeholder_logo"`
}

type KafkaConfig struct {
	Brokers          []string `yaml:"brokers"`
	ReelIntentsTopic string   `yaml:"reel_intents_topic"`
}

type MessagesConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type ReelsConfig struct {
	SkeletonCount  int                `yaml:"skeleton_count"`
	StudioURL      string             `yaml:"studio_url"`
	DeleteTTL      time.Duration      `yaml:"delete_ttl"`
	FilterCategory []filters.Category `yaml:"filter_categories"`
}

type RateLimitConfig struct {
	ViewsPerMinute   int `yaml:"views_per_minute"`
	ActionsPerMinute int `yaml:"actions_per_minute"`
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means clients are keyed by their socket address.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			SiteName:     "Marketplace",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{MaxOpenConns: 20, MaxIdleConns: 5},
		Redis: RedisConfig{
			SellerTTL: 5 * time.Minute,
			InboxTTL:  30 * time.Second,
		},
		Storage: StorageConfig{
			LogoBucket:      "seller-logos",
			MediaBucket:     "seller-media",
			PlaceholderLogo: DefaultPlaceholderLogo,
		},
		Kafka:    KafkaConfig{ReelIntentsTopic: "marketplace.reels.intents"},
		Messages: MessagesConfig{DefaultPageSize: 20, MaxPageSize: 100},
		Reels: ReelsConfig{
			SkeletonCount:  8,
			StudioURL:      "/studio/reels",
			DeleteTTL:      reels.DefaultConfirmTTL,
			FilterCategory: reels.DefaultCategories(),
		},
		RateLimit: RateLimitConfig{ViewsPerMinute: 1200, ActionsPerMinute: 300},
	}
}

// Load reads .env, then the YAML file named by CONFIG_FILE, then the
// environment. Later layers win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ No .env file loaded: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️ Config file %s not found, using defaults", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.SiteName = getEnvOrDefault("SITE_NAME", c.Server.SiteName)

	c.Database.URL = getEnvOrDefault("DATABASE_URL", c.Database.URL)
	c.Database.IPv4URL = getEnvOrDefault("DATABASE_IPV4", c.Database.IPv4URL)
	c.Database.AutoMigrate = envBool("AUTO_MIGRATE", c.Database.AutoMigrate)

	c.Redis.Addr = getEnvOrDefault("REDIS_URL", c.Redis.Addr)
	if host := os.Getenv("REDIS_HOST"); host != "" {
		c.Redis.Addr = host + ":" + getEnvOrDefault("REDIS_PORT", "6379")
	}
	c.Redis.Username = getEnvOrDefault("REDIS_USERNAME", c.Redis.Username)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)

	c.Auth.Secret = getEnvOrDefault("JWT_SECRET", c.Auth.Secret)

	c.Storage.PublicURL = getEnvOrDefault("STORAGE_PUBLIC_URL", c.Storage.PublicURL)
	c.Storage.LogoBucket = getEnvOrDefault("STORAGE_LOGO_BUCKET", c.Storage.LogoBucket)

	c.Kafka.Brokers = envCSV("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.ReelIntentsTopic = getEnvOrDefault("KAFKA_REEL_INTENTS_TOPIC", c.Kafka.ReelIntentsTopic)

	c.Messages.DefaultPageSize = envInt("MESSAGES_PAGE_SIZE", c.Messages.DefaultPageSize)
	c.Reels.SkeletonCount = envInt("REELS_SKELETON_COUNT", c.Reels.SkeletonCount)
	c.Reels.StudioURL = getEnvOrDefault("REELS_STUDIO_URL", c.Reels.StudioURL)

	c.RateLimit.ViewsPerMinute = envInt("RATE_LIMIT_VIEWS", c.RateLimit.ViewsPerMinute)
	c.RateLimit.ActionsPerMinute = envInt("RATE_LIMIT_ACTIONS", c.RateLimit.ActionsPerMinute)
	c.RateLimit.TrustedProxies = envCSV("TRUSTED_PROXIES", c.RateLimit.TrustedProxies)
}

func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Database.URL == "" && c.Database.IPv4URL == "" {
		return errors.New("DATABASE_URL or DATABASE_IPV4 is required")
	}
	if c.Messages.DefaultPageSize <= 0 || c.Messages.MaxPageSize < c.Messages.DefaultPageSize {
		return fmt.Errorf("invalid message page sizes %d/%d", c.Messages.DefaultPageSize, c.Messages.MaxPageSize)
	}
	if _, err := ParseProxies(c.RateLimit.TrustedProxies); err != nil {
		return err
	}
	for _, cat := range c.Reels.FilterCategory {
		if cat.ID == "" || len(cat.Options) == 0 {
			return fmt.Errorf("filter category %q needs an id and options", cat.Label)
		}
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envCSV(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseProxies turns trusted proxy entries into networks. A bare IP becomes a
// single-address network.
func ParseProxies(entries []string) ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, e := range entries {
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", e)
			}
			bits := 8 * net.IPv4len
			if ip.To4() == nil {
				bits = 8 * net.IPv6len
			}
			e = fmt.Sprintf("%s/%d", e, bits)
		}
		_, n, err := net.ParseCIDR(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", e, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}
