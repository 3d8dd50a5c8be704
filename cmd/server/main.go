package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sponsorbridge/staff-auth/internal/config"
	"github.com/sponsorbridge/staff-auth/internal/database"
	"github.com/sponsorbridge/staff-auth/internal/handler"
	"github.com/sponsorbridge/staff-auth/internal/middleware"
	"github.com/sponsorbridge/staff-auth/internal/queue"
	"github.com/sponsorbridge/staff-auth/internal/repository"
	"github.com/sponsorbridge/staff-auth/internal/router"
	queue_publisher "github.com/sponsorbridge/staff-auth/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	authCfg := config.LoadAuthConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	staff := repository.NewStaffRepo(db)
	sessions := repository.NewSessionRepo(db)
	attempts := repository.NewLoginAttemptRepo(db)
	resets := repository.NewResetTokenRepo(db)

	a := handler.NewAuthHandler(cfg, authCfg, staff, sessions, attempts, resets)
	a.Audit = queue_publisher.Publisher{}

	// The audit consumer keeps its own reconnect loop; losing the broker
	// never takes the API down.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	// The dashboard front-end is served from another origin; all origins
	// and methods are allowed, matching the deployed behavior.
	e.Use(echomw.CORS())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, a, limiter, sessions, staff)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
