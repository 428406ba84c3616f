package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/juliocesarjcrs/investment-compare/internal/config"
	"github.com/juliocesarjcrs/investment-compare/internal/database"
	"github.com/juliocesarjcrs/investment-compare/internal/health"
	"github.com/juliocesarjcrs/investment-compare/internal/logger"
	"github.com/juliocesarjcrs/investment-compare/internal/metrics"
	"github.com/juliocesarjcrs/investment-compare/internal/repository"
	"github.com/juliocesarjcrs/investment-compare/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
	svc        *service.ComparisonService
	checks     map[string]health.Pinger
	closers    []func()
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.AddCommand(evaluateCmd, showCmd, recentCmd, deleteCmd, clearCmd, serveCmd)
}

var rootCmd = &cobra.Command{
	Use:     "invest-compare",
	Short:   "Compare savings, CDTs and rental properties",
	Long:    `Evaluates investment scenarios against a risk profile and recommends the best fit.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	secretsCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := config.LoadSecretsFromAWS(secretsCtx, cfg); err != nil {
		return err
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLoggerForEnvironment(os.Stderr, cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	kv, err := openKVStore(ctx)
	if err != nil {
		return err
	}

	store := repository.NewComparisonStore(kv, cfg.Storage.RecentMax)
	svc = service.NewComparisonService(store, service.TaxDefaultsFromConfig(cfg.Tax), appLogger)
	return nil
}

// openKVStore connects the configured storage backend and registers its readiness check.
func openKVStore(ctx context.Context) (repository.KVStore, error) {
	checks = make(map[string]health.Pinger)
	entry := appLogger.WithField("backend", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		kv := repository.NewRedisKV(cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := kv.Ping(pingCtx); err != nil {
			kv.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		checks["redis"] = kv
		closers = append(closers, func() { kv.Close() })
		entry.WithField("addr", cfg.Storage.Redis.Addr).Debug("Comparison store connected")
		return kv, nil

	case config.BackendPostgres:
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return nil, err
		}
		checks["database"] = db
		closers = append(closers, db.Close)
		entry.WithField("host", cfg.Storage.Database.Host).Debug("Comparison store connected")
		return repository.NewPostgresKV(db), nil

	default:
		entry.Debug("Using in-memory comparison store")
		return repository.NewMemoryKV(), nil
	}
}
