package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/monitool/monitool/internal/config"
	"github.com/monitool/monitool/internal/database"
	"github.com/monitool/monitool/internal/handler"
	"github.com/monitool/monitool/internal/middleware"
	"github.com/monitool/monitool/internal/queue"
	"github.com/monitool/monitool/internal/repository"
	"github.com/monitool/monitool/internal/router"
	"github.com/monitool/monitool/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	store, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	technicians := repository.NewTechnicianRepo(db)
	toolboxes := repository.NewToolboxRepo(db)
	inventory := repository.NewInventoryRepo(db)
	accessLogs := repository.NewAccessLogRepo(db)
	images := repository.NewImageRepo(db)
	alerts := repository.NewAlertRepo(db)
	requestLogs := repository.NewRequestLogRepo(db)

	// The consumer turns queued alert events into alert rows.  It keeps
	// reconnecting on its own, so a broker outage only delays alerts.
	go queue.StartAlertConsumer(alerts)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users, tokens),
		Technicians: handler.NewTechnicianHandler(technicians),
		Toolboxes:   handler.NewToolboxHandler(toolboxes, store),
		Inventory:   handler.NewInventoryHandler(inventory, toolboxes),
		AccessLogs:  handler.NewAccessLogHandler(accessLogs, toolboxes, technicians),
		Dashboard:   handler.NewDashboardHandler(accessLogs),
		Images:      handler.NewImageHandler(images, toolboxes, store, cfg.MaxUploadBytes),
		Alerts:      handler.NewAlertHandler(alerts),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLog(requestLogs))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
