package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-web/cache"
	"marketplace-web/config"
	"marketplace-web/db"
	"marketplace-web/handlers"
	"marketplace-web/pkg/auth"
	"marketplace-web/pkg/events"
	"marketplace-web/pkg/realtime"
	"marketplace-web/pkg/reels"
	"marketplace-web/pkg/storage"
	"marketplace-web/pkg/template"
	"marketplace-web/services"
)

type Services struct {
	DB            *db.Database
	Cache         cache.Store
	Redis         *cache.RedisStore
	Publisher     events.Publisher
	Template      *template.Renderer
	Auth          *auth.Authenticator
	Storefront    *services.StorefrontService
	Reels         *services.ReelService
	Conversations *services.ConversationService
}

func (s *Services) Close() {
	if err := s.Publisher.Close(); err != nil {
		log.Printf("⚠️ Error closing publisher: %v", err)
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Printf("⚠️ Error closing redis: %v", err)
		}
	}
	if err := s.DB.Close(); err != nil {
		log.Printf("⚠️ Error closing database: %v", err)
	}
}

func setupCache(ctx context.Context, cfg config.RedisConfig) (cache.Store, *cache.RedisStore) {
	if cfg.Addr == "" {
		log.Printf("💾 REDIS_URL not set, using in-memory cache")
		return cache.NewMemory(), nil
	}
	rdb, err := cache.Connect(ctx, cfg.Addr, cfg.Username, cfg.Password)
	if err != nil {
		log.Printf("⚠️ Redis unavailable (%v), using in-memory cache", err)
		return cache.NewMemory(), nil
	}
	log.Printf("✅ Connected to redis")
	return rdb, rdb
}

func setupPublisher(cfg config.KafkaConfig) events.Publisher {
	if len(cfg.Brokers) == 0 {
		log.Printf("📣 No Kafka brokers configured, reel intents will only be logged")
		return events.LogPublisher{}
	}
	topics := map[string]string{
		events.ReelPlayRequested:   cfg.ReelIntentsTopic,
		events.ReelEditRequested:   cfg.ReelIntentsTopic,
		events.ReelDeleteRequested: cfg.ReelIntentsTopic,
		events.ReelUploadRequested: cfg.ReelIntentsTopic,
	}
	p, err := events.NewKafkaPublisher(cfg.Brokers, topics)
	if err != nil {
		log.Printf("⚠️ Kafka publisher disabled: %v", err)
		return events.LogPublisher{}
	}
	return p
}

func setupServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	log.Printf("🗄️ Initializing database...")
	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		log.Printf("📜 Running migrations...")
		if err := db.Migrate(database.DB); err != nil {
			database.Close()
			return nil, err
		}
	}

	store, rdb := setupCache(ctx, cfg.Redis)
	publisher := setupPublisher(cfg.Kafka)

	renderer, err := template.NewRenderer()
	if err != nil {
		database.Close()
		return nil, err
	}
	renderer.SetGlobalTemplateData(map[string]interface{}{
		"SiteName": cfg.Server.SiteName,
	})

	resolver := storage.NewResolver(cfg.Storage.PublicURL)
	sellers := services.NewSellerService(database, store, cfg.Redis.SellerTTL, resolver, cfg.Storage)
	reelService := services.NewReelService(database, sellers, publisher, reels.NewDeleteGate(store, cfg.Reels.DeleteTTL), cfg.Reels)

	return &Services{
		DB:            database,
		Cache:         store,
		Redis:         rdb,
		Publisher:     publisher,
		Template:      renderer,
		Auth:          auth.NewAuthenticator(cfg.Auth.Secret),
		Storefront:    services.NewStorefrontService(database, sellers, reelService),
		Reels:         reelService,
		Conversations: services.NewConversationService(database, store, cfg.Redis.InboxTTL, cfg.Messages),
	}, nil
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("🚀 Starting server initialization...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := setupServices(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to set up services: %v", err)
	}
	defer svc.Close()

	hub := realtime.NewHub()
	go hub.Run(ctx)
	if svc.Redis != nil {
		go hub.Listen(ctx, svc.Redis.SubscribeInbox(ctx), svc.Conversations)
	}

	log.Printf("🛣️ Setting up routes...")
	router := handlers.NewRouter(handlers.Deps{
		Renderer:      svc.Template,
		Auth:          svc.Auth,
		Limiter:       handlers.NewRateLimiter(cfg.RateLimit),
		Storefront:    svc.Storefront,
		Reels:         svc.Reels,
		Conversations: svc.Conversations,
		Hub:           hub,
		Ready:         svc.DB.Ping,
		Skeletons:     cfg.Reels.SkeletonCount,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("🌐 Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Graceful shutdown failed: %v", err)
	}
}
