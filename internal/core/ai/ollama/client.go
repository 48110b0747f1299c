package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reverse-cookbook/internal/core/ai/provider"
	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client Ollama API 客戶端
type Client struct {
	config *config.OllamaConfig
	client *resty.Client
}

// generateRequest Ollama /api/generate 請求結構
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

// generateOptions 模型採樣參數
type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// generateResponse Ollama /api/generate 響應結構
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewClient 創建新的 Ollama 客戶端
func NewClient(cfg *config.OllamaConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	req := generateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.7,
			TopP:        0.9,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/generate")

	common.LogAICall(prompt, time.Since(start), err, "")

	if err != nil {
		return "", common.NewGenerationError("failed to send request to Ollama", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", common.NewGenerationError(
			fmt.Sprintf("Ollama API returned status %d: %s", resp.StatusCode(), resp.String()), nil)
	}

	// 解析回應
	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", common.NewGenerationError("failed to parse Ollama response", err)
	}

	if result.Response == "" {
		return "", common.NewGenerationError("empty response from Ollama", nil)
	}

	common.LogDebug("Ollama 回應",
		zap.String("model", c.config.Model),
		zap.Int("content_length", len(result.Response)),
	)

	return result.Response, nil
}

// Health 檢查 Ollama 服務是否可用
func (c *Client) Health(ctx context.Context) bool {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/api/version")
	return err == nil && resp.StatusCode() == http.StatusOK
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

var _ provider.Provider = (*Client)(nil)
