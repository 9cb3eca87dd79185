package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func New(ctx context.Context, uri string, dbName string) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("mongodb connected", "database", dbName)
	return &DB{Client: client, Database: client.Database(dbName)}, nil
}

func (db *DB) Close(ctx context.Context) {
	if db.Client != nil {
		_ = db.Client.Disconnect(ctx)
	}
}

func (db *DB) Health(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}
