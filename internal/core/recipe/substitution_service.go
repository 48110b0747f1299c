package recipe

import (
	"context"
	"fmt"
	"strings"

	"reverse-cookbook/internal/core/ai/service"
	"reverse-cookbook/internal/pkg/common"

	"go.uber.org/zap"
)

// SubstitutionService 食材替代品建議服務。
// 無狀態的單次請求／回應，重複查詢少且與使用者情境綁定，因此不走快取。
type SubstitutionService struct {
	aiService *service.Service
}

// NewSubstitutionService 創建新的替代品建議服務
func NewSubstitutionService(aiService *service.Service) *SubstitutionService {
	return &SubstitutionService{
		aiService: aiService,
	}
}

// looseAlternatives 寬鬆版中繼結構
type looseAlternatives struct {
	IsOptional   any `json:"isOptional"`
	Alternatives []struct {
		Name        any `json:"name"`
		Explanation any `json:"explanation"`
	} `json:"alternatives"`
}

// GetAlternatives 詢問某食材在指定食譜中是否可省略，以及有哪些替代品。
// 由生成服務判斷可省略性與替代方案；失敗直接回傳給呼叫端，不重試。
func (s *SubstitutionService) GetAlternatives(ctx context.Context, req *AlternativesRequest) (*AlternativesResponse, error) {
	if err := validateAlternativesRequest(req); err != nil {
		return nil, err
	}

	prompt := buildAlternativesPrompt(req)

	resp, err := s.aiService.ProcessRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Content == "" {
		return nil, common.NewGenerationError("empty AI response", nil)
	}

	content := common.ExtractJSONObject(resp.Content)

	var loose looseAlternatives
	if err := common.ParseJSON(content, &loose); err != nil {
		common.LogError("替代品回應解析失敗",
			zap.Error(err),
			zap.String("ingredient", req.Ingredient),
		)
		return nil, common.NewGenerationError("failed to parse alternatives response", err)
	}

	result := &AlternativesResponse{
		Ingredient:   req.Ingredient,
		IsOptional:   asBool(loose.IsOptional),
		Alternatives: make([]Alternative, 0, len(loose.Alternatives)),
	}
	for _, alt := range loose.Alternatives {
		name := asString(alt.Name, "")
		if name == "" {
			continue
		}
		result.Alternatives = append(result.Alternatives, Alternative{
			Name:        name,
			Explanation: asString(alt.Explanation, ""),
		})
	}

	common.LogInfo("替代品查詢成功",
		zap.String("ingredient", req.Ingredient),
		zap.Bool("is_optional", result.IsOptional),
		zap.Int("alternatives", len(result.Alternatives)),
	)

	return result, nil
}

// validateAlternativesRequest 檢查替代品查詢的必要欄位
func validateAlternativesRequest(req *AlternativesRequest) error {
	if req == nil {
		return common.NewValidationError("request is required")
	}
	if strings.TrimSpace(req.Ingredient) == "" {
		return common.NewValidationError("ingredient is required")
	}
	if strings.TrimSpace(req.RecipeTitle) == "" {
		return common.NewValidationError("recipe title is required")
	}
	if strings.TrimSpace(req.Cuisine) == "" {
		return common.NewValidationError("cuisine is required")
	}
	return nil
}

// buildAlternativesPrompt 組裝替代品查詢 prompt
func buildAlternativesPrompt(req *AlternativesRequest) string {
	return fmt.Sprintf(`For the %s recipe "%s", is the ingredient "%s" optional, and what are suitable substitutes for it?

Return the response as a JSON object with this exact structure:
{
  "isOptional": false,
  "alternatives": [
    {
      "name": "substitute name",
      "explanation": "why this works as a substitute"
    }
  ]
}

Only return the JSON object, no additional text.`,
		req.Cuisine, req.RecipeTitle, req.Ingredient)
}

// asBool 取布林值，缺漏或型別不符時回 false
func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
