package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"photo-bridge/internal/broadcast"
	"photo-bridge/internal/config"
	"photo-bridge/internal/handler"
	"photo-bridge/internal/logging"
	"photo-bridge/internal/middleware"
	"photo-bridge/internal/repository"
	"photo-bridge/internal/service"
	"photo-bridge/internal/service/gallery"
	"photo-bridge/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	appLog := logging.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := config.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	var broadcaster broadcast.Broadcaster
	if redis != nil {
		defer redis.Close()
		relay := broadcast.NewRedisRelay(redis, cfg.RedisStatusChannel, appLog)
		go func() {
			if err := relay.Run(ctx); err != nil {
				appLog.Error(ctx, "status relay stopped, live status stays process-local", "error", err)
			}
		}()
		broadcaster = relay
	} else {
		broadcaster = broadcast.NewHub()
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up %s storage: %v", cfg.StorageBackend, err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		log.Println("JWT_SECRET not set, gallery tokens will not survive a restart")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, store, broadcaster, cfg, appLog)
	handlers := handler.NewHandlers(services, broadcaster, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(appLog),
		BodyLimit:    int(cfg.MaxManualUploadBytes) + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	if cfg.StorageBackend == config.StorageBackendDisk {
		app.Static(storage.DiskRoutePrefix, cfg.DiskStorageDir)
	}

	setupRoutes(app, handlers, services.Gallery)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := services.Bridge.Shutdown(shutdownCtx); err != nil {
			appLog.Warn(shutdownCtx, "upload tasks still running at shutdown", "error", err)
		}
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLog.Error(shutdownCtx, "http shutdown", "error", err)
		}
	}()

	log.Printf("Bridge Engine running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, galleryService gallery.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use("/ws", h.Live.Upgrade)
	app.Get("/ws", h.Live.Stream())

	api := app.Group("/api")

	events := api.Group("/events")
	events.Get("/", h.Event.List)
	events.Post("/", h.Event.Create)
	events.Delete("/:id", h.Event.Delete)
	events.Get("/:id/photos", h.Photo.ListByEvent)
	events.Post("/:id/photos", h.Photo.Upload)

	api.Delete("/photos/:id", h.Photo.Delete)

	api.Post("/start", h.Bridge.Start)
	api.Post("/stop", h.Bridge.Stop)
	api.Get("/status", h.Bridge.Status)

	galleryGroup := api.Group("/gallery")
	galleryGroup.Post("/access", h.Gallery.Access)
	galleryGroup.Get("/photos", middleware.GalleryAuth(galleryService), h.Gallery.Photos)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate JWT secret: %v", err)
	}
	return hex.EncodeToString(b)
}
