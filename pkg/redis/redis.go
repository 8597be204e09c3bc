package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient estructura para manejar conexiones con Redis.
// Implementa storage.Store guardando valores JSON bajo claves con namespace.
type RedisClient struct {
	client    *redis.Client
	ctx       context.Context
	namespace string
}

// NewRedisClient crea una nueva instancia del cliente Redis
func NewRedisClient(addr, password string, db int, namespace string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Verificar conexión
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("error conectando a Redis: %w", err)
	}

	log.Println("✅ Conexión exitosa a Redis")

	return &RedisClient{
		client:    rdb,
		ctx:       ctx,
		namespace: namespace,
	}, nil
}

// Get obtiene y decodifica el valor guardado bajo key
func (r *RedisClient) Get(key string, dst any) (bool, error) {
	data, err := r.client.Get(r.ctx, r.namespace+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("error getting %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("error parsing %s: %w", key, err)
	}
	return true, nil
}

// Set serializa y guarda value bajo key
func (r *RedisClient) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing %s: %w", key, err)
	}

	if err := r.client.Set(r.ctx, r.namespace+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave indicada
func (r *RedisClient) Delete(key string) error {
	if err := r.client.Del(r.ctx, r.namespace+key).Err(); err != nil {
		return fmt.Errorf("error deleting %s: %w", key, err)
	}
	return nil
}

// Ping verifica que Redis esté funcionando
func (r *RedisClient) Ping() error {
	if _, err := r.client.Ping(r.ctx).Result(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}
