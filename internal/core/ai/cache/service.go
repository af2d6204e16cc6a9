package cache

import (
	"context"
	"fmt"

	"pantry-assistant/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// Service 共享緩存層（redis），跨實例共用模型回應
type Service struct {
	client *redis.Client
	config *config.Config
}

// NewService 創建共享緩存服務，redis 未啟用時回傳 nil
func NewService(cfg *config.Config) (*Service, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, "ai:response:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("cache miss")
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return val, nil
}

// Set 設置緩存
func (s *Service) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, "ai:response:"+key, value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉連接
func (s *Service) Close() error {
	return s.client.Close()
}
