// Command seed loads reference countries and categories from a YAML fixture.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"gowhere/internal/config"
	mongoRepo "gowhere/internal/infra/adapter/persistence/mongo"
	"gowhere/internal/infra/db"
	"gowhere/internal/observability/logging"
	"gowhere/internal/resilience/circuitbreaker"
	"gowhere/internal/resilience/retry"
	catUC "gowhere/internal/usecase/category"
	ctyUC "gowhere/internal/usecase/country"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	fixturePath := flag.String("fixture", "seed.yaml", "path to the YAML fixture")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	file, err := os.Open(*fixturePath)
	if err != nil {
		logger.Error("failed to open fixture", slog.String("path", *fixturePath), slog.Any("error", err))
		os.Exit(1)
	}
	fixture, err := LoadFixture(file)
	_ = file.Close()
	if err != nil {
		logger.Error("failed to load fixture", slog.String("path", *fixturePath), slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var store *db.Store
	err = retry.WithBackoff(ctx, retry.ConnectConfig(), func() error {
		var err error
		store, err = db.Open(ctx, cfg.Mongo)
		return err
	})
	if err != nil {
		logger.Error("failed to connect to document store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(cfg.HTTP.ShutdownTimeout); err != nil {
			logger.Error("failed to close document store", slog.Any("error", err))
		}
	}()

	breaker := circuitbreaker.New(circuitbreaker.StoreConfig(mongodriver.ErrNoDocuments))
	seeder := &Seeder{
		Countries:  &ctyUC.Service{Repo: mongoRepo.NewCountryRepo(store.Database, breaker)},
		Categories: &catUC.Service{Repo: mongoRepo.NewCategoryRepo(store.Database, breaker)},
		Logger:     logger,
	}

	sum, err := seeder.Run(ctx, fixture)
	logger.Info("seeding finished",
		slog.Int("created", sum.Created),
		slog.Int("skipped", sum.Skipped),
		slog.Int("rejected", sum.Rejected))
	if err != nil {
		logger.Error("seeding aborted", slog.Any("error", err))
		os.Exit(1)
	}
	if sum.Rejected > 0 {
		os.Exit(2)
	}
}
