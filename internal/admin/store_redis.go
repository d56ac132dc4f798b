// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gfyalova/granfondo/internal/platform/constants"
)

// RedisRevocationRepository implements RevocationRepository using Redis.
//
// Entries carry a TTL equal to the revoked token's remaining lifetime, so
// the deny-list cleans itself up: once a token would have expired anyway,
// its entry disappears.
type RedisRevocationRepository struct {
	client *redis.Client
}

// NewRevocationRepository creates a new Redis-backed RevocationRepository.
func NewRevocationRepository(client *redis.Client) *RedisRevocationRepository {
	return &RedisRevocationRepository{client: client}
}

/*
Revoke adds a token ID to the deny-list with the given TTL.

Parameters:
  - context: context.Context
  - tokenID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRevocationRepository) Revoke(context context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired naturally; nothing to deny.
		return nil
	}

	key := constants.RedisPrefixRevokedSession + tokenID

	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revocation_set_failed: %w", err)
	}

	return nil
}

/*
IsRevoked reports whether a token ID is on the deny-list.

Parameters:
  - context: context.Context
  - tokenID: string

Returns:
  - bool: true when the token has been revoked
  - error: Connectivity errors
*/
func (repository *RedisRevocationRepository) IsRevoked(context context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixRevokedSession + tokenID

	if err := repository.client.Get(context, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revocation_get_failed: %w", err)
	}

	return true, nil
}
