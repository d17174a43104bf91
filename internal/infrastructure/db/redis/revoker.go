package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions are stateless JWTs, so the only way to force a refresh (e.g.
// after a role change) is a revocation marker: tokens issued at or before
// the marker are rejected by the auth middleware. Markers expire with the
// longest possible token lifetime.
//
// Key format: revoked_after:<user_id> → unix seconds

// SessionRevoker stores per-user revocation cutoffs in Redis.
type SessionRevoker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRevoker creates a SessionRevoker. ttl should match the
// session token lifetime; markers older than any live token are useless.
func NewSessionRevoker(client *redis.Client, ttl time.Duration) *SessionRevoker {
	return &SessionRevoker{client: client, ttl: ttl}
}

// RevokeUser invalidates every session issued to userID at or before now.
func (r *SessionRevoker) RevokeUser(ctx context.Context, userID string) error {
	now := time.Now().UTC().Unix()
	if err := r.client.Set(ctx, r.key(userID), strconv.FormatInt(now, 10), r.ttl).Err(); err != nil {
		return fmt.Errorf("set revocation marker: %w", err)
	}
	return nil
}

// RevokedAfter returns the cutoff for userID, or the zero time when no
// marker exists.
func (r *SessionRevoker) RevokedAfter(ctx context.Context, userID string) (time.Time, error) {
	val, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get revocation marker: %w", err)
	}
	secs, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse revocation marker: %w", err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

func (r *SessionRevoker) key(userID string) string {
	return "revoked_after:" + userID
}
