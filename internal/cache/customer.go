package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/umalmyha/custdb/internal/model"
)

const cachedCustomerTimeToLive = 10 * time.Minute

const customerKeyPattern = "customer:*"

// CustomerCacheRepository is a read-through cache over single-customer
// lookups. It is best-effort - callers treat failures as misses.
type CustomerCacheRepository interface {
	FindByID(context.Context, int64) (*model.Customer, error)
	Create(context.Context, *model.Customer) error
	DeleteByID(context.Context, int64) error
	DeleteAll(context.Context) error
}

type redisCustomerCacheRepository struct {
	client *redis.Client
}

// NewRedisCustomerCacheRepository builds new CustomerCacheRepository on top of redis
func NewRedisCustomerCacheRepository(client *redis.Client) CustomerCacheRepository {
	return &redisCustomerCacheRepository{client: client}
}

func (r *redisCustomerCacheRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	res, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c model.Customer
	if err := msgpack.Unmarshal([]byte(res), &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *redisCustomerCacheRepository) Create(ctx context.Context, c *model.Customer) error {
	encoded, err := msgpack.Marshal(c)
	if err != nil {
		return err
	}

	if _, err := r.client.SetNX(ctx, r.key(c.CustomerID), encoded, cachedCustomerTimeToLive).Result(); err != nil {
		return err
	}
	return nil
}

func (r *redisCustomerCacheRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.client.Del(ctx, r.key(id)).Result(); err != nil {
		return err
	}
	return nil
}

// DeleteAll drops every cached customer. Used by the bulk reset and seed
// flows where identifiers are reassigned from scratch.
func (r *redisCustomerCacheRepository) DeleteAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, customerKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *redisCustomerCacheRepository) key(id int64) string {
	return fmt.Sprintf("customer:%d", id)
}
