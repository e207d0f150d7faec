package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/arvelez/user-register-api/internal/config"
	"github.com/arvelez/user-register-api/internal/database"
	"github.com/arvelez/user-register-api/internal/handler"
	"github.com/arvelez/user-register-api/internal/queue"
	"github.com/arvelez/user-register-api/internal/repository"
	"github.com/arvelez/user-register-api/internal/router"
)

func main() {
	// Best effort: a missing .env is fine in containerized deploys where
	// the environment is injected directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema setup failed: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}

	// Background consumer mirrors every created register into logs/registers.log.
	go func() {
		if err := queue.StartRegisterConsumer(); err != nil {
			log.Printf("register consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	registers := repository.NewRegisterRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	registerHandler := handler.NewRegisterHandler(registers)

	e := echo.New()
	e.HideBanner = true
	router.RegisterGlobal(e, cfg)
	router.RegisterRoutes(e, cfg, authHandler, registerHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("API escuchando en puerto %s", cfg.Port)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
