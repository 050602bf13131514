package config

import (
	"log"
	"os"

	"github.com/lazymak3r/zetik-backend-sub007/services/redis"
)

// ConnectRedis connects to Redis using the REDIS_URL environment variable
func ConnectRedis() (*redis.RedisClient, error) {
	redisURI := os.Getenv("REDIS_URL")
	if redisURI == "" {
		redisURI = "localhost:6379"
	}
	redisClient, err := redis.InitRedis(redisURI, 0)
	if err != nil {
		log.Printf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Println("Redis connection established")
	return redisClient, nil
}
