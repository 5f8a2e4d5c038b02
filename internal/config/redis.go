package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisMaxRetries = 5
	redisRetryDelay = 2 * time.Second
)

// NewRedis connects to addr, retrying a few times before giving up.
func NewRedis(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Network: "tcp",
		Addr:    addr,
	})

	var err error
	for i := 0; i < redisMaxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			log.Printf("Connection to redis at %s successfully!", addr)
			return client, nil
		}

		log.Printf("Failed to connect to Redis (attempt %d/%d): %v", i+1, redisMaxRetries, err)
		time.Sleep(redisRetryDelay)
	}

	client.Close()
	return nil, err
}
