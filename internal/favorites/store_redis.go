// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/byfest/byfest/internal/platform/constants"
)

// savedSetTTL is refreshed on every write so active visitors keep their
// bookmarks while abandoned sets expire on their own.
const savedSetTTL = 180 * 24 * time.Hour

// # Redis Store

// redisStore implements [Store] on a Redis set per visitor.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis backed saved-set store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// key builds the visitor's saved-set cache key.
func key(visitorID string) string {
	return constants.RedisPrefixSaved + visitorID
}

// Add puts an event id into the visitor's saved set and refreshes its TTL.
func (store *redisStore) Add(context context.Context, visitorID, eventID string) error {
	pipe := store.client.TxPipeline()
	pipe.SAdd(context, key(visitorID), eventID)
	pipe.Expire(context, key(visitorID), savedSetTTL)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to save event: %w", err)
	}
	return nil
}

// Remove deletes an event id from the visitor's saved set.
func (store *redisStore) Remove(context context.Context, visitorID, eventID string) error {
	if err := store.client.SRem(context, key(visitorID), eventID).Err(); err != nil {
		return fmt.Errorf("redis: failed to unsave event: %w", err)
	}
	return nil
}

// Members returns every event id in the visitor's saved set.
func (store *redisStore) Members(context context.Context, visitorID string) ([]string, error) {
	members, err := store.client.SMembers(context, key(visitorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to read saved set: %w", err)
	}
	return members, nil
}
