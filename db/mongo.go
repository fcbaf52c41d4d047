package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"inkpress/internal/logger"
)

// Connect establishes a MongoDB connection, verifies it with a ping and
// ensures the collection indexes. The caller owns the client lifecycle and
// should call Disconnect on shutdown.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("mongodb uri is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := client.Database(dbName)
	if err := ensureIndexes(ctx, database); err != nil {
		return nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Log.Info("MongoDB connected and indexes ensured")

	return client, database, nil
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// users: unique index on email
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		}
		if _, err := d.Collection("users").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	// blogs
	{
		// unique slug
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("uniq_slug").SetUnique(true),
		}); err != nil {
			return err
		}
		// status + published_at desc
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}},
			Options: options.Index().SetName("idx_status_published_at"),
		}); err != nil {
			return err
		}
		// tags
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_tags"),
		}); err != nil {
			return err
		}
		// categories
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "categories", Value: 1}},
			Options: options.Index().SetName("idx_categories"),
		}); err != nil {
			return err
		}
		// author + status
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "author", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_author_status"),
		}); err != nil {
			return err
		}
		// created_at desc
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at_desc"),
		}); err != nil {
			return err
		}
		// text search over title/content/excerpt/tags/categories
		if _, err := d.Collection("blogs").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "content", Value: "text"},
				{Key: "excerpt", Value: "text"},
				{Key: "tags", Value: "text"},
				{Key: "categories", Value: "text"},
			},
			Options: options.Index().SetName("txt_blogs"),
		}); err != nil {
			return err
		}
	}
	return nil
}
