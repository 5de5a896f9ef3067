package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanderbook/wanderbook/internal/entity"
)

const experiencesKey = "catalog:experiences"

// CacheRepository keeps the catalog listing warm in redis. The listing is
// read-mostly, so a TTL'd snapshot is enough; writers never go through it.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) GetExperiences(ctx context.Context) ([]*entity.Experience, error) {
	data, err := r.client.Get(ctx, experiencesKey).Result()
	if err != nil {
		return nil, err
	}

	var experiences []*entity.Experience
	err = json.Unmarshal([]byte(data), &experiences)
	if err != nil {
		return nil, err
	}

	return experiences, nil
}

func (r *CacheRepository) SetExperiences(ctx context.Context, experiences []*entity.Experience) error {
	data, err := json.Marshal(experiences)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, experiencesKey, data, r.ttl).Err()
}
