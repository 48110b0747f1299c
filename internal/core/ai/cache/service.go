package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Service AI 回應快取服務
// 注意：這是生成服務內層的回應快取，食譜層級的 (hash, cuisine) 快取在 recipe store
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 創建緩存服務
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
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
func (s *Service) Get(ctx context.Context, prompt string) (string, error) {
	if !s.config.Enabled || s.client == nil {
		return "", common.ErrCacheDisabled
	}

	key := s.generateKey(prompt)

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("ai_response", key)
			return "", fmt.Errorf("cache miss")
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("ai_response", key)
	return data, nil
}

// Set 設置緩存
func (s *Service) Set(ctx context.Context, prompt string, content string) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	key := s.generateKey(prompt)

	if err := s.client.Set(ctx, key, content, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// generateKey 生成緩存鍵
func (s *Service) generateKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("ai:response:%s", hex.EncodeToString(hash[:]))
}

// Close 關閉緩存服務
func (s *Service) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
