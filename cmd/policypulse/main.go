package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"policypulse/internal/api"
	"policypulse/internal/config"
	"policypulse/internal/logging"
	"policypulse/internal/service"
	"policypulse/internal/store"
	"policypulse/internal/store/memory"
	"policypulse/internal/store/postgres"
	"policypulse/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		owner   string
		serve   bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/policypulse/config.yaml if not provided)")
	flag.StringVar(&owner, "owner", "local", "Owner the ingested documents are recorded under")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API instead of the terminal UI")
	flag.Parse()
	inputs := flag.Args()
	if !serve && len(inputs) == 0 {
		fmt.Println("Usage: policypulse [--config=config.yaml] [--owner=name] file1.txt [file2.txt ...]")
		fmt.Println("       policypulse [--config=config.yaml] --serve")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, cleanup := logging.New(cfg.Log.Level)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("type", cfg.Store.Type), zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("error closing store", zap.Error(err))
		}
	}()

	svc := service.NewAnalysisService(service.DefaultComponents(), st, service.Options{
		SummarySentences: cfg.Analysis.SummarySentences,
		KeywordCount:     cfg.Analysis.KeywordCount,
	}, logger)

	if serve {
		runServer(ctx, cfg, svc, logger)
		return
	}

	analyses, err := svc.IngestFiles(ctx, owner, inputs)
	if err != nil {
		logger.Fatal("ingest failed", zap.Error(err))
	}
	if _, err := tea.NewProgram(tui.New(analyses)).Run(); err != nil {
		logger.Fatal("tui failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.AppConfig) (store.Storage, error) {
	switch cfg.Store.Type {
	case "memory", "":
		return memory.NewStorage(), nil
	case "postgres":
		if cfg.Store.Postgres == nil || cfg.Store.Postgres.DSN == "" {
			return nil, fmt.Errorf("postgres store config missing")
		}
		return postgres.NewStorage(ctx, postgres.Config{
			DSN:      cfg.Store.Postgres.DSN,
			MaxConns: cfg.Store.Postgres.MaxConns,
		})
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Store.Type)
	}
}

func runServer(ctx context.Context, cfg *config.AppConfig, svc *service.AnalysisService, logger *zap.Logger) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.SetupRoutes(router, svc, logger)

	timeout := time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}
