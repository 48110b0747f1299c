package recipe

import (
	"context"
	"testing"

	"reverse-cookbook/internal/core/ai/service"
	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubstitutionService(p *fakeProvider) *SubstitutionService {
	cfg := &config.Config{}
	return NewSubstitutionService(service.NewService(cfg, p, nil))
}

func TestGetAlternativesValidation(t *testing.T) {
	svc := newSubstitutionService(&fakeProvider{})
	ctx := context.Background()

	_, err := svc.GetAlternatives(ctx, nil)
	assert.True(t, common.IsValidationError(err))

	_, err = svc.GetAlternatives(ctx, &AlternativesRequest{RecipeTitle: "Omelette", Cuisine: "French"})
	assert.True(t, common.IsValidationError(err))

	_, err = svc.GetAlternatives(ctx, &AlternativesRequest{Ingredient: "eggs", Cuisine: "French"})
	assert.True(t, common.IsValidationError(err))

	_, err = svc.GetAlternatives(ctx, &AlternativesRequest{Ingredient: "eggs", RecipeTitle: "Omelette"})
	assert.True(t, common.IsValidationError(err))
}

func TestGetAlternativesParsesResponse(t *testing.T) {
	p := &fakeProvider{response: `Sure, here you go:
{
  "isOptional": true,
  "alternatives": [
    {"name": "flax egg", "explanation": "binds similarly when baked"},
    {"name": "", "explanation": "should be skipped"},
    {"name": "chia egg"}
  ]
}`}
	svc := newSubstitutionService(p)

	result, err := svc.GetAlternatives(context.Background(), &AlternativesRequest{
		Ingredient:  "eggs",
		RecipeTitle: "Omelette",
		Cuisine:     "French",
	})
	require.NoError(t, err)

	assert.Equal(t, "eggs", result.Ingredient)
	assert.True(t, result.IsOptional)

	// 空名稱的替代品被略過，缺漏說明補空字串
	require.Len(t, result.Alternatives, 2)
	assert.Equal(t, "flax egg", result.Alternatives[0].Name)
	assert.Equal(t, "binds similarly when baked", result.Alternatives[0].Explanation)
	assert.Equal(t, "chia egg", result.Alternatives[1].Name)
	assert.Equal(t, "", result.Alternatives[1].Explanation)
}

func TestGetAlternativesUnparseableResponse(t *testing.T) {
	p := &fakeProvider{response: "That ingredient is essential, you cannot replace it."}
	svc := newSubstitutionService(p)

	_, err := svc.GetAlternatives(context.Background(), &AlternativesRequest{
		Ingredient:  "eggs",
		RecipeTitle: "Omelette",
		Cuisine:     "French",
	})
	require.Error(t, err)
	assert.True(t, common.IsGenerationError(err))
}

func TestGetAlternativesMissingFields(t *testing.T) {
	// isOptional 缺漏視為 false，alternatives 缺漏視為空清單
	p := &fakeProvider{response: `{}`}
	svc := newSubstitutionService(p)

	result, err := svc.GetAlternatives(context.Background(), &AlternativesRequest{
		Ingredient:  "salt",
		RecipeTitle: "Soup",
		Cuisine:     "French",
	})
	require.NoError(t, err)
	assert.False(t, result.IsOptional)
	assert.Empty(t, result.Alternatives)
}
