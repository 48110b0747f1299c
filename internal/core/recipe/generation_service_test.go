package recipe

import (
	"context"
	"strings"
	"testing"
	"time"

	"reverse-cookbook/internal/core/ai/service"
	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider 測試用的固定回應提供者
type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) Health(ctx context.Context) bool { return true }
func (f *fakeProvider) GetModel() string                { return "fake-model" }
func (f *fakeProvider) GetTimeout() time.Duration       { return time.Second }
func (f *fakeProvider) Close() error                    { return nil }

func newGenerationService(t *testing.T, p *fakeProvider) (*GenerationService, *Store) {
	t.Helper()

	cfg := &config.Config{}
	aiSvc := service.NewService(cfg, p, nil)
	store := newTestStore(t)

	return NewGenerationService(aiSvc, store), store
}

const twoRecipesJSON = `[
  {
    "title": "Garlic Chicken Rice",
    "cuisine": "Chinese",
    "ingredients": ["chicken", "rice", "garlic"],
    "instructions": ["Cook rice", "Stir-fry chicken"],
    "cookingTime": 25,
    "servings": 2,
    "difficulty": "easy",
    "description": "Quick stir-fry"
  },
  {
    "ingredients": ["chicken", "rice"],
    "instructions": ["Simmer everything"],
    "difficulty": "extreme"
  }
]`

func TestGenerateRecipesValidation(t *testing.T) {
	svc, _ := newGenerationService(t, &fakeProvider{})
	ctx := context.Background()

	_, err := svc.GenerateRecipes(ctx, nil)
	assert.True(t, common.IsValidationError(err))

	_, err = svc.GenerateRecipes(ctx, &Request{Cuisine: "Chinese"})
	assert.True(t, common.IsValidationError(err))

	_, err = svc.GenerateRecipes(ctx, &Request{Ingredients: []string{"chicken"}, Cuisine: "  "})
	assert.True(t, common.IsValidationError(err))
}

func TestGenerateRecipesParsesAndPersists(t *testing.T) {
	p := &fakeProvider{response: "```json\n" + twoRecipesJSON + "\n```"}
	svc, store := newGenerationService(t, p)
	ctx := context.Background()

	resp, err := svc.GenerateRecipes(ctx, &Request{
		Ingredients: []string{"chicken", "rice", "garlic"},
		Cuisine:     "Chinese",
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Recipes, 2)

	first := resp.Recipes[0]
	assert.True(t, strings.HasPrefix(first.ID, "generated-"))
	assert.Equal(t, "Garlic Chicken Rice", first.Title)
	assert.Equal(t, 25, first.CookingTime)
	assert.Equal(t, DifficultyEasy, first.Difficulty)

	// 缺漏欄位補預設值，未知難度退回 medium
	second := resp.Recipes[1]
	assert.Equal(t, "Untitled Recipe", second.Title)
	assert.Equal(t, "Unknown", second.Cuisine)
	assert.Equal(t, 30, second.CookingTime)
	assert.Equal(t, 4, second.Servings)
	assert.Equal(t, DifficultyMedium, second.Difficulty)

	// 生成結果已落地
	for _, r := range resp.Recipes {
		saved, err := store.GetRecipeByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.Title, saved.Title)
	}
}

func TestGenerateRecipesReturnsCachedOnSecondCall(t *testing.T) {
	p := &fakeProvider{response: twoRecipesJSON}
	svc, _ := newGenerationService(t, p)
	ctx := context.Background()

	req := &Request{
		Ingredients: []string{"chicken", "rice", "garlic"},
		Cuisine:     "Chinese",
	}

	first, err := svc.GenerateRecipes(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 1, p.calls)

	// 食材順序與大小寫不同仍命中快取，不再呼叫生成服務
	second, err := svc.GenerateRecipes(ctx, &Request{
		Ingredients: []string{"Rice", "GARLIC", "chicken"},
		Cuisine:     "Chinese",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, first.TotalCount, second.TotalCount)
}

func TestGenerateRecipesUnparseableResponse(t *testing.T) {
	p := &fakeProvider{response: "Sorry, I can't come up with any recipes today."}
	svc, _ := newGenerationService(t, p)

	_, err := svc.GenerateRecipes(context.Background(), &Request{
		Ingredients: []string{"chicken"},
		Cuisine:     "Chinese",
	})
	require.Error(t, err)
	assert.True(t, common.IsGenerationError(err))
}

func TestGenerateRecipesEmptyResponse(t *testing.T) {
	p := &fakeProvider{response: ""}
	svc, _ := newGenerationService(t, p)

	_, err := svc.GenerateRecipes(context.Background(), &Request{
		Ingredients: []string{"chicken"},
		Cuisine:     "Chinese",
	})
	require.Error(t, err)
	assert.True(t, common.IsGenerationError(err))
}

func TestBuildRecipePromptIncludesPreferences(t *testing.T) {
	prompt := buildRecipePrompt(&Request{
		Ingredients: []string{"chicken", "rice"},
		Cuisine:     "Thai",
		Preferences: &Preferences{
			Difficulty:     DifficultyEasy,
			MaxCookingTime: 20,
			Servings:       2,
		},
	})

	assert.Contains(t, prompt, "Generate 3 Thai recipes")
	assert.Contains(t, prompt, "chicken, rice")
	assert.Contains(t, prompt, "Difficulty level: easy.")
	assert.Contains(t, prompt, "Maximum cooking time: 20 minutes.")
	assert.Contains(t, prompt, "Servings: 2.")
}

func TestParseRecipeResponseToleratesNoise(t *testing.T) {
	raw := "Here are your recipes:\n```json\n" + twoRecipesJSON + "\n```\nEnjoy!"

	recipes, err := parseRecipeResponse(raw)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Garlic Chicken Rice", recipes[0].Title)
}
