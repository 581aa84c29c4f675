package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client when REDIS_ADDR is configured,
// nil otherwise. Single-node deployments run fine without Redis; the
// in-process keyed mutex still serializes the critical sections.
func ConnectRedis(env Env) *redis.Client {
	if env.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddr,
		Password: env.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Gagal ping Redis (%s): %v; lanjut tanpa distributed lock", env.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	log.Println("Berhasil konek ke Redis")
	return client
}
