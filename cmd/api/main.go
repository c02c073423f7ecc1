package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/herinqueoliveira/Teste-Wiki/internal/archive"
	"github.com/herinqueoliveira/Teste-Wiki/internal/config"
	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
	"github.com/herinqueoliveira/Teste-Wiki/internal/convert/engine"
	"github.com/herinqueoliveira/Teste-Wiki/internal/database"
	"github.com/herinqueoliveira/Teste-Wiki/internal/database/migration"
	handlers "github.com/herinqueoliveira/Teste-Wiki/internal/http/handler"
	"github.com/herinqueoliveira/Teste-Wiki/internal/http/middleware"
	"github.com/herinqueoliveira/Teste-Wiki/internal/otel"
	"github.com/herinqueoliveira/Teste-Wiki/internal/repository/postgres"
	"github.com/herinqueoliveira/Teste-Wiki/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	loc := time.UTC

	// Tracing degrades to noop if the exporter cannot be reached
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// PostgreSQL connection (pooled via database/sql, traced via otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Optional raw source archive on S3-compatible object storage
	var arc archive.Archive
	if cfg.Archive.Enabled {
		arc, err = archive.NewMinIO(cfg.Archive)
		if err != nil {
			log.Fatalf("failed to initialize source archive: %v", err)
		}
	}

	pipeline := convert.NewPipeline(
		engine.NewFitzRenderer(),
		engine.NewDocxEngine(),
		cfg.Limits.MaxFileSizeBytes(),
	)
	sanitizer := convert.NewSanitizer()

	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(docRepo, arc)
	ingSvc := service.NewIngestService(pipeline, docSvc, arc, cfg.Limits.PDFScale, cfg.Limits.MaxPDFPages)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Leave headroom above the per-file ceiling for multipart framing and
		// multi-file batches.
		BodyLimit: int(cfg.Limits.MaxFileSizeBytes()) * 4,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app.Use(middleware.CORS(cfg.AllowedOrigins))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, docSvc, ingSvc, arc, sanitizer, registry)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
