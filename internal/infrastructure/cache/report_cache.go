package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/reports"
)

var _ reports.ReportCache = (*RedisReportCache)(nil)

// RedisReportCache guarda snapshots de reporte serializados en JSON con TTL
// corto. Un miss o un error de deserialización se tratan como miss.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache conecta a Redis y verifica la conexión con Ping.
func NewRedisReportCache(addr, password string, db int) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisReportCache{client: client}, nil
}

func (c *RedisReportCache) Get(ctx context.Context, key string) (*dto.ReportDTO, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var report dto.ReportDTO
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, false, nil
	}
	return &report, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, value *dto.ReportDTO, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
