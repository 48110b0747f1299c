package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"reverse-cookbook/internal/core/ai/service"
	"reverse-cookbook/internal/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 解析失敗時補上的預設值
const (
	defaultTitle       = "Untitled Recipe"
	defaultCuisine     = "Unknown"
	defaultCookingTime = 30
	defaultServings    = 4
	defaultDifficulty  = DifficultyMedium
)

// GenerationService 食譜生成服務：先查快取，未命中才呼叫 AI 並落地
type GenerationService struct {
	aiService *service.Service
	store     *Store
}

// NewGenerationService 創建新的食譜生成服務
func NewGenerationService(aiService *service.Service, store *Store) *GenerationService {
	return &GenerationService{
		aiService: aiService,
		store:     store,
	}
}

// GenerateRecipes 依食材與菜系生成食譜。
// 快取命中直接回傳，不重新驗證偏好（接受的陳舊性取捨）；
// 未命中時呼叫生成服務、逐筆儲存並更新快取關聯。
func (s *GenerationService) GenerateRecipes(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cached, err := s.store.FindCachedRecipes(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		common.LogInfo("回傳快取食譜",
			zap.String("cuisine", req.Cuisine),
			zap.Int("count", len(cached)),
		)
		return &Response{
			Recipes:    cached,
			TotalCount: len(cached),
		}, nil
	}

	prompt := buildRecipePrompt(req)

	resp, err := s.aiService.ProcessRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Content == "" {
		return nil, common.NewGenerationError("empty AI response", nil)
	}

	recipes, err := parseRecipeResponse(resp.Content)
	if err != nil {
		return nil, err
	}

	// 逐筆儲存；後面失敗不回滾前面已存的（接受部分持久化）
	for i := range recipes {
		if _, err := s.store.SaveRecipe(ctx, &recipes[i], req); err != nil {
			return nil, err
		}
	}

	common.LogInfo("食譜生成成功",
		zap.String("cuisine", req.Cuisine),
		zap.Int("count", len(recipes)),
	)

	return &Response{
		Recipes:    recipes,
		TotalCount: len(recipes),
	}, nil
}

// validateRequest 檢查生成請求的必要欄位
func validateRequest(req *Request) error {
	if req == nil {
		return common.NewValidationError("request is required")
	}
	if len(req.Ingredients) == 0 {
		return common.NewValidationError("at least one ingredient is required")
	}
	if strings.TrimSpace(req.Cuisine) == "" {
		return common.NewValidationError("cuisine is required")
	}
	return nil
}

// buildRecipePrompt 組裝生成 prompt
func buildRecipePrompt(req *Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate 3 %s recipes using these ingredients: %s.",
		req.Cuisine, strings.Join(req.Ingredients, ", "))

	if p := req.Preferences; p != nil {
		if p.Difficulty != "" {
			fmt.Fprintf(&sb, " Difficulty level: %s.", p.Difficulty)
		}
		if p.MaxCookingTime > 0 {
			fmt.Fprintf(&sb, " Maximum cooking time: %d minutes.", p.MaxCookingTime)
		}
		if p.Servings > 0 {
			fmt.Fprintf(&sb, " Servings: %d.", p.Servings)
		}
	}

	fmt.Fprintf(&sb, `

Return the response as a JSON array with this exact structure:
[
  {
    "title": "Recipe Name",
    "cuisine": "%s",
    "ingredients": ["ingredient 1", "ingredient 2"],
    "instructions": ["step 1", "step 2"],
    "cookingTime": 30,
    "servings": 4,
    "difficulty": "easy",
    "description": "Brief description"
  }
]

Only return the JSON array, no additional text.`, req.Cuisine)

	return sb.String()
}

// looseRecipe 寬鬆版中繼結構：逐欄位容忍缺漏與型別雜訊
type looseRecipe struct {
	Title        any `json:"title"`
	Cuisine      any `json:"cuisine"`
	Ingredients  any `json:"ingredients"`
	Instructions any `json:"instructions"`
	CookingTime  any `json:"cookingTime"`
	Servings     any `json:"servings"`
	Difficulty   any `json:"difficulty"`
	Description  any `json:"description"`
	Tags         any `json:"tags"`
}

// parseRecipeResponse 解析 AI 回應成食譜清單。
// 可容忍 markdown code fence 與缺漏欄位（補預設值）；
// 整段無法解析才視為生成失敗。
func parseRecipeResponse(raw string) ([]Recipe, error) {
	content := common.ExtractJSONArray(raw)

	var loose []looseRecipe
	if err := common.ParseJSON(content, &loose); err != nil {
		preview := content
		if len(preview) > 200 {
			preview = preview[:200]
		}
		common.LogError("AI 回應解析失敗",
			zap.Error(err),
			zap.Int("ai_response_length", len(content)),
			zap.String("ai_response_preview", preview),
		)
		return nil, common.NewGenerationError("failed to parse recipe response", err)
	}

	recipes := make([]Recipe, len(loose))
	for i, lr := range loose {
		recipes[i] = Recipe{
			ID:           fmt.Sprintf("generated-%s", uuid.New().String()),
			Title:        asString(lr.Title, defaultTitle),
			Cuisine:      asString(lr.Cuisine, defaultCuisine),
			Ingredients:  asStringSlice(lr.Ingredients),
			Instructions: asStringSlice(lr.Instructions),
			CookingTime:  asInt(lr.CookingTime, defaultCookingTime),
			Servings:     asInt(lr.Servings, defaultServings),
			Difficulty:   asDifficulty(lr.Difficulty),
			Description:  asString(lr.Description, ""),
			Tags:         asStringSlice(lr.Tags),
		}
	}
	return recipes, nil
}

// asString 取字串值，缺漏或型別不符時回預設值
func asString(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// asInt 取正整數值，缺漏或型別不符時回預設值
func asInt(v any, def int) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil && i > 0 {
			return int(i)
		}
		if f, err := n.Float64(); err == nil && f > 0 {
			return int(f)
		}
	case float64:
		if n > 0 {
			return int(n)
		}
	}
	return def
}

// asStringSlice 取字串陣列，缺漏或型別不符時回空陣列
func asStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asDifficulty 取難度值，僅接受已知等級
func asDifficulty(v any) string {
	switch asString(v, "") {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return defaultDifficulty
	}
}
