package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/umalmyha/custdb/internal/errors"
)

const (
	countersCollection = "counters"
	customerSequence   = "customerid"
)

// SequenceRepository mints application-level customer identifiers from a
// singleton counter document. Next relies on the storage-side atomic
// increment, so concurrent callers never observe the same value.
type SequenceRepository interface {
	Init(context.Context) error
	Next(context.Context) (int64, error)
	ResetTo(context.Context, int64) error
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type mongoSequenceRepository struct {
	counters *mongo.Collection
}

// NewMongoSequenceRepository builds new SequenceRepository on top of mongo
func NewMongoSequenceRepository(client *mongo.Client, database string) SequenceRepository {
	return &mongoSequenceRepository{counters: client.Database(database).Collection(countersCollection)}
}

func (r *mongoSequenceRepository) Init(ctx context.Context) error {
	err := r.counters.FindOne(ctx, bson.M{"_id": customerSequence}).Err()
	if err == nil {
		return nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NewServerErr("failed to read customer id counter", err)
	}

	if _, err := r.counters.InsertOne(ctx, &counter{ID: customerSequence, Seq: 0}); err != nil {
		// concurrent init may have inserted the counter first
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return apperrors.NewServerErr("failed to initialize customer id counter", err)
	}
	return nil
}

func (r *mongoSequenceRepository) Next(ctx context.Context) (int64, error) {
	res := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": customerSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var c counter
	if err := res.Decode(&c); err != nil {
		return 0, apperrors.NewServerErr("failed to allocate next customer id", err)
	}
	return c.Seq, nil
}

func (r *mongoSequenceRepository) ResetTo(ctx context.Context, seq int64) error {
	_, err := r.counters.UpdateOne(
		ctx,
		bson.M{"_id": customerSequence},
		bson.M{"$set": bson.M{"seq": seq}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperrors.NewServerErr("failed to reset customer id counter", err)
	}
	return nil
}
