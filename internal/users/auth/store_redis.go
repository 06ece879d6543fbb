// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manovapp/manov/internal/platform/apperr"
)

// # Volatile Token Storage

// RedisTokenRepository is a Redis-backed store for short-lived account
// lifecycle tokens. Reset and verification tokens share the same shape
// (token -> userID with a TTL), so one implementation serves both
// [ResetTokenRepository] and [VerificationTokenRepository]; the key
// prefix keeps the two token spaces disjoint.
type RedisTokenRepository struct {
	client    *redis.Client
	keyPrefix string
	kind      string
}

// NewResetTokenRepository creates the Redis-backed password reset token store.
func NewResetTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, keyPrefix: "auth:reset_token:", kind: "Reset"}
}

// NewVerificationTokenRepository creates the Redis-backed email verification token store.
func NewVerificationTokenRepository(client *redis.Client) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, keyPrefix: "auth:verify_token:", kind: "Verification"}
}

/*
Set stores a token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.keyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, repository.keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound(repository.kind + " token is invalid or expired")
		}
		return "", fmt.Errorf("redis_token_get_failed: %w", err)
	}
	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, repository.keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis_token_delete_failed: %w", err)
	}
	return nil
}
