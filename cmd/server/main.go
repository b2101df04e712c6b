package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"

	config "github.com/hverbeek/artflow/configs"
	"github.com/hverbeek/artflow/internal/api/handlers"
	"github.com/hverbeek/artflow/internal/api/middleware"
	"github.com/hverbeek/artflow/internal/files"
	"github.com/hverbeek/artflow/internal/gallery"
	job "github.com/hverbeek/artflow/internal/jobs"
	"github.com/hverbeek/artflow/internal/metadata"
	"github.com/hverbeek/artflow/internal/queue"
	"github.com/hverbeek/artflow/internal/schedule"
	"github.com/hverbeek/artflow/internal/service"
	"github.com/hverbeek/artflow/internal/social"
	"github.com/hverbeek/artflow/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	if cfg.APIKey == "" {
		key, err := utils.GenerateRandomKey(32)
		if err != nil {
			log.Fatalf("Failed to generate API key: %v", err)
		}
		cfg.APIKey = key
		log.Printf("API_KEY not set, generated one for this run: %s", key)
	}

	sched, err := schedule.New(cfg.SchedulePath)
	if err != nil {
		log.Fatalf("Failed to load schedule: %v", err)
	}

	tracker, err := gallery.NewTracker(cfg.UploadTrackerPath, []string{"faso"})
	if err != nil {
		log.Fatalf("Failed to load upload tracker: %v", err)
	}

	metadataManager, err := metadata.NewManager(cfg.MetadataOutputPath)
	if err != nil {
		log.Fatalf("Failed to prepare metadata output: %v", err)
	}

	platforms := social.NewRegistry(
		social.NewMastodon(cfg.MastodonInstanceURL, cfg.MastodonAccessToken),
		social.NewPixelfed(),
		social.NewBluesky(),
		social.NewCara(),
	)

	fileManager := files.NewManager(cfg.PaintingsBigPath, cfg.PaintingsSocialPath)
	analyzerService := service.NewAnalyzerService(*cfg)
	archiveService := service.NewArchiveService(*cfg)
	processService := service.NewProcessService(*cfg, fileManager, metadataManager, analyzerService, tracker, archiveService)

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-API-Key",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	authMiddleware := middleware.NewAuthMiddleware(*cfg)
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	scheduleHandler := handlers.NewScheduleHandler(sched, platforms, client)
	api.Post("/posts/schedule", scheduleHandler.CreatePost)
	api.Get("/posts/pending", scheduleHandler.ListPending)
	api.Get("/posts/upcoming", scheduleHandler.ListUpcoming)
	api.Get("/posts/history", scheduleHandler.History)
	api.Delete("/posts/:id", scheduleHandler.CancelPost)

	platformHandler := handlers.NewPlatformHandler(platforms)
	api.Get("/platforms", platformHandler.ListPlatforms)
	api.Get("/platforms/:name/verify", platformHandler.VerifyCredentials)

	artworkHandler := handlers.NewArtworkHandler(processService, metadataManager)
	api.Post("/artworks/analyze", artworkHandler.Analyze)
	api.Post("/artworks/process", artworkHandler.Process)
	api.Get("/artworks/:category/:name", artworkHandler.GetMetadata)

	// cron jobs
	sweepJob := job.NewDuePostsJob(sched, client)

	// queue
	runner := queue.NewRunner(sched, platforms)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.SweepDuePosts)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			// One post at a time keeps us inside the platforms' rate limits.
			Concurrency: 1,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeSocialPost, runner.HandleSocialPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
