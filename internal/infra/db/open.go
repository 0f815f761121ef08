// Package db opens the document store and maintains its indexes.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gowhere/internal/config"
)

// Store is a connected client with the selected database.
// It is built once at startup and passed to the repositories; it is never
// mutated afterwards.
type Store struct {
	Client   *mongodriver.Client
	Database *mongodriver.Database
}

// ClientOptions maps the configuration onto driver options.
func ClientOptions(cfg config.MongoConfig) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	return opts
}

// Open connects, pings the primary and optionally ensures indexes.
// The client is disconnected again when any step fails.
func Open(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	client, err := mongodriver.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	s := &Store{Client: client, Database: client.Database(cfg.Database)}

	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	slog.Info("document store connection established",
		slog.String("database", cfg.Database),
		slog.Uint64("max_pool_size", cfg.MaxPoolSize),
		slog.Duration("connect_timeout", cfg.ConnectTimeout))

	if cfg.EnsureIndexes {
		if err := EnsureIndexes(ctx, s.Database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	return s, nil
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting at most timeout for in-flight operations.
func (s *Store) Close(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
