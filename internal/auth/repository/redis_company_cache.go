package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	apperrors "github.com/allisson/recommendations/internal/errors"
)

const companyKeyPrefix = "recommendations:company:"

// RedisCompanyCache keeps company reference data in Redis for a bounded time.
type RedisCompanyCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCompanyCache creates a cache whose entries expire after ttl.
func NewRedisCompanyCache(client redis.Cmdable, ttl time.Duration) *RedisCompanyCache {
	return &RedisCompanyCache{client: client, ttl: ttl}
}

// Get returns the cached company, or nil without error on a cache miss.
func (r *RedisCompanyCache) Get(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	data, err := r.client.Get(ctx, companyKey(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get company from cache")
	}

	var company authDomain.Company
	if err := json.Unmarshal(data, &company); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode cached company")
	}
	return &company, nil
}

// Set stores company until the cache ttl elapses.
func (r *RedisCompanyCache) Set(ctx context.Context, company *authDomain.Company) error {
	data, err := json.Marshal(company)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode company")
	}

	if err := r.client.Set(ctx, companyKey(company.ID), string(data), r.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to cache company")
	}
	return nil
}

func companyKey(companyID int64) string {
	return companyKeyPrefix + strconv.FormatInt(companyID, 10)
}
