package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tci-platform/trinity/internal/application"
	apptrinity "github.com/tci-platform/trinity/internal/application/trinity"
	"github.com/tci-platform/trinity/internal/config"
	"github.com/tci-platform/trinity/internal/domain/claims"
	"github.com/tci-platform/trinity/internal/domain/documents"
	domain "github.com/tci-platform/trinity/internal/domain/trinity"
	aiopenai "github.com/tci-platform/trinity/internal/infra/ai/openai"
	mysqlp "github.com/tci-platform/trinity/internal/infra/db/mysql"
	postgresp "github.com/tci-platform/trinity/internal/infra/db/postgres"
	"github.com/tci-platform/trinity/internal/infra/httpserver"
	minioStore "github.com/tci-platform/trinity/internal/infra/storage"
	"github.com/tci-platform/trinity/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	// connect DB, driver dari config
	var (
		db          *sql.DB
		claimRepo   claims.Repository
		docRepo     documents.Repository
		reportRepo  domain.Repository
		analysisRep domain.AnalysisRepository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		claimRepo = postgresp.NewClaimRepository(db)
		docRepo = postgresp.NewExtractedDocumentRepository(db)
		reportRepo = postgresp.NewTrinityReportRepository(db)
		analysisRep = postgresp.NewDocumentAnalysisRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		claimRepo = mysqlp.NewClaimRepository(db)
		docRepo = mysqlp.NewExtractedDocumentRepository(db)
		reportRepo = mysqlp.NewTrinityReportRepository(db)
		analysisRep = mysqlp.NewDocumentAnalysisRepository(db)
	}
	defer db.Close()

	// init minio untuk arsip report
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init check catalog + engine
	catalog, err := domain.DefaultCatalog()
	if err != nil {
		log.Fatalf("catalog init error: %v", err)
	}
	engine := domain.NewEngine(catalog, cfg.EngineOptions())

	// reasoner opsional, hanya kalau ada API key
	var reasoner domain.Reasoner
	if cfg.OpenAI.APIKey != "" {
		reasoner = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	cacheTTL := time.Duration(cfg.Trinity.CacheTTL)
	svc := &apptrinity.Service{
		Claims:   claimRepo,
		Docs:     docRepo,
		Reports:  reportRepo,
		Analyses: analysisRep,
		Catalog:  catalog,
		Engine:   engine,
		Reasoner: reasoner,
		Archive:  store,
		Cache:    gocache.New(cacheTTL, 2*cacheTTL),
		CacheTTL: cacheTTL,
		Clock:    application.SystemClock{},
		Log:      logger,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	mux.Use(middleware.RequireValidTenant)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
		"storage":  middleware.CheckerFunc(store.Check),
	}))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "db_driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
