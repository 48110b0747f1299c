package provider

import (
	"context"
	"time"
)

// Provider 定義 AI 提供者介面
type Provider interface {
	// Generate 依照 prompt 生成文字回應
	Generate(ctx context.Context, prompt string) (string, error)

	// Health 檢查提供者是否可用
	Health(ctx context.Context) bool

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// GetTimeout 獲取請求超時時間
	GetTimeout() time.Duration

	// Close 關閉提供者連接
	Close() error
}

// Config 定義 AI 提供者配置
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}
