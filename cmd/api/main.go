package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jinsol-dev/busango/internal/app"
	"github.com/jinsol-dev/busango/internal/appconf"
	"github.com/jinsol-dev/busango/internal/favorites"
	"github.com/jinsol-dev/busango/internal/logging"
	"github.com/jinsol-dev/busango/internal/metrics"
	"github.com/jinsol-dev/busango/internal/opendata"
	"github.com/jinsol-dev/busango/internal/restapi"
	"github.com/jinsol-dev/busango/internal/sessionstate"
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	var (
		envFlag     string
		apiKeysFlag string
		configPath  string
	)
	cfg := appconf.Config{
		Port:       4000,
		CityCode:   opendata.DefaultCityCode,
		DataDir:    "data",
		SessionTTL: sessionstate.DefaultTTL,
	}

	flag.IntVar(&cfg.Port, "port", envInt("PORT", cfg.Port), "API server port")
	flag.StringVar(&envFlag, "env", envString("ENV", "development"), "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", envString("API_KEYS", "test"), "Comma separated API keys")
	flag.StringVar(&cfg.ServiceKey, "service-key", envString("SERVICE_KEY", ""), "data.go.kr service key")
	flag.IntVar(&cfg.CityCode, "city-code", envInt("CITY_CODE", cfg.CityCode), "TAGO city code to keep in nearby results")
	flag.StringVar(&cfg.DataDir, "data-dir", envString("DATA_DIR", cfg.DataDir), "Directory for the favorites database and owner identity")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file; file values override flags")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.ApiKeys = splitKeys(apiKeysFlag)

	var logger *slog.Logger
	if cfg.Env == appconf.Production {
		logger = logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	} else {
		logger = logging.NewTextLogger(os.Stdout, slog.LevelDebug)
	}

	if configPath != "" {
		if err := appconf.LoadFile(configPath, &cfg); err != nil {
			logging.LogError(logger, "failed to load config file", err)
			os.Exit(1)
		}
	}

	if cfg.ServiceKey == "" {
		logger.Warn("no service key configured, open data calls will be rejected upstream")
	}

	collector := metrics.NewCollector()

	openData := opendata.NewClient(opendata.Config{
		ServiceKey: cfg.ServiceKey,
		CityCode:   cfg.CityCode,
	}, logger, collector)

	identity := favorites.NewFileIdentity(filepath.Join(cfg.DataDir, "owner.id"))
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logging.LogError(logger, "failed to create data directory", err)
		os.Exit(1)
	}
	favStore, err := favorites.NewStore(filepath.Join(cfg.DataDir, "favorites.db"), identity, logger, collector)
	if err != nil {
		logging.LogError(logger, "failed to open favorites store", err)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(favStore, logger, "favorites_store")

	sessions := sessionstate.NewStore(cfg.SessionTTL)
	defer sessions.Close()

	application := &app.Application{
		Config:       cfg,
		Logger:       logger,
		OpenData:     openData,
		Favorites:    favStore,
		SessionState: sessions,
		Metrics:      collector,
	}
	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", envFlag, "city_code", cfg.CityCode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(logger, "server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(logger, "graceful shutdown failed", err)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
