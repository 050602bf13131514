package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lazymak3r/zetik-backend-sub007/services/fair"
)

// Session state kept in Redis: the user's current fairness seed pair and
// the pointer to their unfinished round. TTL keeps abandoned sessions
// from piling up; the round itself always lives in PostgreSQL.
const sessionTTL = 72 * time.Hour

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("redis: key not found")

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// InitRedis initializes the Redis connection and basic configuration
func InitRedis(addr string, db int) (*RedisClient, error) {
	rc := NewRedisClient(addr, db)
	if err := rc.client.Ping(rc.ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Successfully connected to Redis")
	return rc, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %w", err)
	}
	return nil
}

// GetSeedPair returns the user's current fairness seed pair.
func (rc *RedisClient) GetSeedPair(username string) (*fair.SeedPair, error) {
	data, err := rc.client.Get(rc.ctx, formatSeedPairKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting seed pair: %w", err)
	}
	var pair fair.SeedPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("error parsing seed pair: %w", err)
	}
	return &pair, nil
}

// SaveSeedPair stores the user's seed pair, nonce included.
func (rc *RedisClient) SaveSeedPair(username string, pair *fair.SeedPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("error serializing seed pair: %w", err)
	}
	return rc.client.Set(rc.ctx, formatSeedPairKey(username), data, sessionTTL).Err()
}

// GetActiveGameID returns the id of the user's unfinished round.
func (rc *RedisClient) GetActiveGameID(username string) (string, error) {
	id, err := rc.client.Get(rc.ctx, formatActiveGameKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error getting active game: %w", err)
	}
	return id, nil
}

// SetActiveGameID points the user's session at an unfinished round.
func (rc *RedisClient) SetActiveGameID(username, gameID string) error {
	return rc.client.Set(rc.ctx, formatActiveGameKey(username), gameID, sessionTTL).Err()
}

// ClearActiveGameID removes the pointer once the round completes.
func (rc *RedisClient) ClearActiveGameID(username string) error {
	return rc.client.Del(rc.ctx, formatActiveGameKey(username)).Err()
}
