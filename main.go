package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/petplan/backend/config"
	"github.com/petplan/backend/database"
	"github.com/petplan/backend/database/repositories"
	"github.com/petplan/backend/gamification"
	"github.com/petplan/backend/handlers"
	"github.com/petplan/backend/logger"
	"github.com/petplan/backend/middleware"
	"github.com/petplan/backend/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("PetPlan-Backend")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting PetPlan Backend API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "sys"))

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	customHandler.SetLevel(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...", slog.String("type", "db"))
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully", slog.String("type", "db"))

	if err := db.InitializeBadgeData(ctx); err != nil {
		slog.Error("Failed to seed badge catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	taskRepo := repositories.NewTaskRepository(db.BunDB())
	petRepo := repositories.NewPetRepository(db.BunDB())
	badgeRepo := repositories.NewBadgeRepository(db.BunDB())
	activityRepo := repositories.NewActivityRepository(db.BunDB())

	calc := gamification.NewCalculator(gamification.NewDefaultConfig())
	tokenService := services.NewTokenService(cfg.Auth.Secret)
	badgeService := services.NewBadgeService(badgeRepo, activityRepo, calc)
	completionService := services.NewCompletionService(taskRepo, petRepo, activityRepo, badgeService, calc)

	app := fiber.New(fiber.Config{
		AppName:      "PetPlan Backend API",
		ServerHeader: "PetPlan-Backend",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins(cfg),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	if cfg.Web.RateLimit > 0 {
		window := time.Duration(cfg.Web.RateLimitWindow) * time.Second
		if window <= 0 {
			window = time.Minute
		}
		app.Use(middleware.RateLimit(cfg.Web.RateLimit, window))
	}
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:     cfg,
		DB:         db,
		Tasks:      taskRepo,
		Pets:       petRepo,
		Badges:     badgeRepo,
		Activity:   activityRepo,
		Completion: completionService,
		Awards:     badgeService,
		Tokens:     tokenService,
		Calc:       calc,
		Version:    version,
		Commit:     commit,
	}

	setupRoutes(app, webApp)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting backend server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down backend server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("Backend server shutdown complete")
}

func allowOrigins(cfg *config.Config) string {
	if cfg.Web.AllowOrigins != "" {
		return cfg.Web.AllowOrigins
	}
	return "http://localhost:8081,http://localhost:19006"
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api")

	// Service-to-service badge awarding; invoked by the completion workflow
	// and by backfill jobs, not by end users.
	api.Post("/badges/award", handlers.AwardBadges(webApp))

	auth := middleware.AuthRequired(webApp.Tokens)

	tasks := api.Group("/tasks", auth)
	tasks.Post("/complete", handlers.CompleteTask(webApp))
	tasks.Get("/", handlers.TasksList(webApp))
	tasks.Post("/", handlers.TasksCreate(webApp))
	tasks.Put("/:id", handlers.TasksUpdate(webApp))
	tasks.Delete("/:id", handlers.TasksDelete(webApp))

	api.Get("/schedule", auth, handlers.Schedule(webApp))
	api.Get("/pet", auth, handlers.GetPet(webApp))
	api.Get("/badges", auth, handlers.UserBadges(webApp))
	api.Get("/activity", auth, handlers.ActivityFeed(webApp))

	// No catch-all: unmatched paths and method mismatches fall through to the
	// router's 404/405, which CustomErrorHandler turns into the JSON envelope.
}
