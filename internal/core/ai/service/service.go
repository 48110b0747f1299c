package service

import (
	"context"
	"strings"

	"reverse-cookbook/internal/core/ai/cache"
	"reverse-cookbook/internal/core/ai/provider"
	"reverse-cookbook/internal/infrastructure/config"
)

// Response AI 回應結構
type Response struct {
	Content  string
	CacheHit bool
}

// Service AI 服務，組合提供者與回應快取
type Service struct {
	config   *config.Config
	provider provider.Provider
	cache    *cache.Service
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, p provider.Provider, cacheSvc *cache.Service) *Service {
	return &Service{
		config:   cfg,
		provider: p,
		cache:    cacheSvc,
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (*Response, error) {
	// 統一 prompt 格式，去除前後空白，確保快取 key 一致
	prompt = strings.TrimSpace(prompt)

	// 檢查回應快取
	if s.config.Cache.Enabled && s.cache != nil {
		if val, err := s.cache.Get(ctx, prompt); err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		}
	}

	content, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if s.config.Cache.Enabled && s.cache != nil {
		// 快取寫入失敗不影響回應
		_ = s.cache.Set(ctx, prompt, content)
	}

	return &Response{Content: content}, nil
}

// Health 檢查生成服務是否可用
func (s *Service) Health(ctx context.Context) bool {
	return s.provider.Health(ctx)
}

// Close 關閉 AI 服務
func (s *Service) Close() error {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	return s.provider.Close()
}
