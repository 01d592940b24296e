package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// multipart framing on top of the file itself
const uploadOverhead = 64 << 10

func main() {
	// Load configuration
	cfg, envFile := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck
	log.Info("config loaded", zap.Bool("env_file", envFile), zap.String("env", cfg.Server.Env))

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	resumeRepo := repositories.NewResumeRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}
	parser := services.NewDocumentParser()

	ctx := context.Background()

	// Gemini is optional; without it every analysis runs on local heuristics
	var gemini services.GeminiService
	analyzerOpts := []analysis.Option{
		analysis.WithTimeout(cfg.Gemini.Timeout),
		analysis.WithLogger(log.Named("analysis")),
	}
	if cfg.Gemini.APIKey != "" {
		gemini, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log.Named("gemini"))
		if err != nil {
			log.Fatal("failed to initialize Gemini", zap.Error(err))
		}
		gateway := services.NewGeminiGateway(gemini, cfg.Gemini.MinInterval, log.Named("gateway"))
		analyzerOpts = append(analyzerOpts, analysis.WithGateway(gateway))
		log.Info("inference gateway enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		log.Warn("GEMINI_API_KEY not set, using local heuristics only")
	}
	analyzer := analysis.NewAnalyzer(analyzerOpts...)
	localAnalyzer := analysis.NewAnalyzer(analysis.WithLogger(log.Named("analysis")))

	// Qdrant needs Gemini embeddings
	var similarity services.SimilarityService
	if cfg.Qdrant.URL != "" && gemini != nil {
		index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log.Named("qdrant"))
		if err != nil {
			log.Fatal("failed to initialize Qdrant", zap.Error(err))
		}
		if err := index.InitCollection(ctx); err != nil {
			log.Fatal("failed to initialize Qdrant collection", zap.Error(err))
		}
		similarity = services.NewSimilarityService(index, gemini, log.Named("similarity"))
		log.Info("similarity index enabled", zap.String("collection", cfg.Qdrant.Collection))
	}

	analysisService := services.NewResumeAnalysisService(resumeRepo, analyzer, similarity, log.Named("analysis_service"))

	worker := services.NewWorker(resumeRepo, analysisService, services.WorkerOptions{
		Concurrency:  cfg.Worker.Concurrency,
		RetryDelay:   cfg.Worker.RetryDelay,
		PollInterval: cfg.Worker.PollInterval,
	}, log)
	worker.Start(ctx)

	routes := handlers.Routes{
		Upload:  handlers.NewUploadHandler(resumeRepo, storageService, parser, localAnalyzer, worker, cfg.Storage.MaxFileSize, log.Named("upload")),
		Status:  handlers.NewStatusHandler(resumeRepo),
		Analyze: handlers.NewAnalyzeHandler(analyzer),
		Similar: handlers.NewSimilarHandler(resumeRepo, similarity, log.Named("similar")),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + uploadOverhead,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "healthy",
			"time":       time.Now(),
			"gateway":    gemini != nil,
			"similarity": similarity != nil,
		})
	})

	routes.Register(api)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Analyzer API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints(),
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
