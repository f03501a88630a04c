package main // Entry point package

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-catalog/internal/auth"
	"github.com/iliyamo/library-catalog/internal/config"
	"github.com/iliyamo/library-catalog/internal/database"
	"github.com/iliyamo/library-catalog/internal/handler"
	"github.com/iliyamo/library-catalog/internal/middleware"
	"github.com/iliyamo/library-catalog/internal/queue"
	"github.com/iliyamo/library-catalog/internal/repository"
	"github.com/iliyamo/library-catalog/internal/router"
	"github.com/iliyamo/library-catalog/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := database.RunMigrations(context.Background(), db); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	}

	userRepo := repository.NewUserRepo(db)
	bookRepo := repository.NewBookRepo(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTLDays)
	authSvc := service.NewAuthService(userRepo, tokens, cfg.BcryptCost)

	// Catalog events are best effort; the consumer reconnects on its own.
	publisher := queue.NewPublisher(queue.BrokerURL())
	catalogSvc := service.NewCatalogService(bookRepo, publisher)
	go queue.StartCatalogConsumer()

	// Redis is optional: a nil client turns the response cache into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, handler.NewAuthHandler(authSvc), handler.NewBookHandler(catalogSvc), tokens, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
