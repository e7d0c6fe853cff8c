package db

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/academia/internal/config"
	"github.com/yigit/academia/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB database connection structure
type MongoDB struct {
	Client   *mongo.Client
	database *mongo.Database
	timeout  time.Duration
}

// NewMongoDB connects to the configured deployment and verifies it answers
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	timeout := cfg.DatabaseTimeout()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &MongoDB{
		Client:   client,
		database: client.Database(cfg.Database.Name),
		timeout:  timeout,
	}, nil
}

// Database returns the application database handle
func (db *MongoDB) Database() *mongo.Database {
	return db.database
}

// Ping checks that the primary is reachable
func (db *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting at most for the store timeout
func (db *MongoDB) Close() {
	if db.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), db.timeout)
	defer cancel()
	if err := db.Client.Disconnect(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to disconnect mongo client")
	}
}
