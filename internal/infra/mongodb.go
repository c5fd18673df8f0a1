package infra

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/umalmyha/custdb/internal/config"
)

// Mongodb connects to the document store and bootstraps the indexes the
// customer collection relies on. The unique index on email is the
// authoritative duplicate guard - the application-level pre-check is an
// optimization only.
func Mongodb(ctx context.Context, cfg config.MongoCfg) (*mongo.Client, error) {
	uri := fmt.Sprintf("%s/?maxPoolSize=%d", cfg.URI, cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	if err := ensureCustomerIndexes(ctx, client.Database(cfg.Database)); err != nil {
		return nil, err
	}
	return client, nil
}

func ensureCustomerIndexes(ctx context.Context, db *mongo.Database) error {
	customers := db.Collection("customers")

	_, err := customers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create customer indexes - %w", err)
	}
	return nil
}
