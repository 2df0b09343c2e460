package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	noncePrefix = "nonce:"
	// NonceTTL bounds how long a login challenge can be answered
	NonceTTL = 5 * time.Minute
)

// ErrNonceNotFound means no challenge is pending for the wallet, or it expired
var ErrNonceNotFound = errors.New("nonce not found or expired")

// NonceStore keeps one pending login challenge per wallet
type NonceStore interface {
	SetNonce(ctx context.Context, wallet, nonce string) error
	// TakeNonce returns and removes the pending challenge so it cannot be replayed
	TakeNonce(ctx context.Context, wallet string) (string, error)
}

// NewRedisClient connects to the Redis instance at url (redis://...)
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// RedisNonceStore is a NonceStore backed by expiring Redis keys
type RedisNonceStore struct {
	rdb *redis.Client
}

// NewRedisNonceStore creates a nonce store on rdb
func NewRedisNonceStore(rdb *redis.Client) *RedisNonceStore {
	return &RedisNonceStore{rdb: rdb}
}

// SetNonce stores nonce for wallet, replacing any earlier one, for NonceTTL
func (s *RedisNonceStore) SetNonce(ctx context.Context, wallet, nonce string) error {
	return s.rdb.Set(ctx, noncePrefix+wallet, nonce, NonceTTL).Err()
}

// TakeNonce returns and deletes wallet's nonce in one GETDEL
func (s *RedisNonceStore) TakeNonce(ctx context.Context, wallet string) (string, error) {
	nonce, err := s.rdb.GetDel(ctx, noncePrefix+wallet).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNonceNotFound
	}
	if err != nil {
		return "", err
	}
	return nonce, nil
}
