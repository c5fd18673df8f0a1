package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/umalmyha/custdb/internal/errors"
	"github.com/umalmyha/custdb/internal/model"
)

const customersCollection = "customers"

// CustomerRepository owns the customers collection. Finders return
// (nil, nil) when nothing matched - absence is not an error at this level.
// Storage failures never escape raw: duplicate key violations become
// DuplicateEntryErr, anything else becomes ServerErr.
type CustomerRepository interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int64) (*model.Customer, error)
	FindByEmail(context.Context, string) (*model.Customer, error)
	FindByEmailExcluding(context.Context, string, int64) (*model.Customer, error)
	FindByCity(context.Context, string) ([]*model.Customer, error)
	FindByField(context.Context, string, any) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, int64, *model.CustomerPatch, time.Time) (bool, error)
	DeleteByID(context.Context, int64) (bool, error)
	DeleteAll(context.Context) error
	CreateAll(context.Context, []*model.Customer) (int64, error)
	Count(context.Context) (int64, error)
}

type mongoCustomerRepository struct {
	customers *mongo.Collection
}

// NewMongoCustomerRepository builds new CustomerRepository on top of mongo
func NewMongoCustomerRepository(client *mongo.Client, database string) CustomerRepository {
	return &mongoCustomerRepository{customers: client.Database(database).Collection(customersCollection)}
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"customerId": id})
}

func (r *mongoCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoCustomerRepository) FindByEmailExcluding(ctx context.Context, email string, id int64) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email, "customerId": bson.M{"$ne": id}})
}

func (r *mongoCustomerRepository) FindByCity(ctx context.Context, city string) ([]*model.Customer, error) {
	return r.find(ctx, bson.M{"address.city": city})
}

func (r *mongoCustomerRepository) FindByField(ctx context.Context, field string, value any) ([]*model.Customer, error) {
	return r.find(ctx, bson.M{field: value})
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if _, err := r.customers.InsertOne(ctx, c); err != nil {
		return classify("failed to create customer", err)
	}
	return nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, id int64, patch *model.CustomerPatch, updatedAt time.Time) (bool, error) {
	set := bson.M{"updatedAt": updatedAt}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}

	res, err := r.customers.UpdateOne(ctx, bson.M{"customerId": id}, bson.M{"$set": set})
	if err != nil {
		return false, classify("failed to update customer", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.customers.DeleteOne(ctx, bson.M{"customerId": id})
	if err != nil {
		return false, classify("failed to delete customer", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoCustomerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.customers.DeleteMany(ctx, bson.M{}); err != nil {
		return classify("failed to delete customers", err)
	}
	return nil
}

func (r *mongoCustomerRepository) CreateAll(ctx context.Context, customers []*model.Customer) (int64, error) {
	docs := make([]any, 0, len(customers))
	for _, c := range customers {
		docs = append(docs, c)
	}

	res, err := r.customers.InsertMany(ctx, docs)
	if err != nil {
		return 0, classify("failed to insert customers", err)
	}
	return int64(len(res.InsertedIDs)), nil
}

func (r *mongoCustomerRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.customers.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, classify("failed to count customers", err)
	}
	return count, nil
}

func (r *mongoCustomerRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var c model.Customer
	if err := r.customers.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, classify("failed to read customer", err)
	}
	return &c, nil
}

func (r *mongoCustomerRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*model.Customer, error) {
	cursor, err := r.customers.Find(ctx, filter, opts...)
	if err != nil {
		return nil, classify("failed to read customers", err)
	}

	customers := make([]*model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, classify("failed to decode customers", err)
	}
	return customers, nil
}

// classify relabels storage failures into the closed error set. The unique
// index on email is the authoritative duplicate guard, so a duplicate key
// error surfaces as DuplicateEntry regardless of which operation hit it.
func classify(msg string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.NewDuplicateEntryErr("A customer with this email already exists")
	}
	return apperrors.NewServerErr(msg, err)
}
