package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	// 回傳的是副本，改動不影響目錄
	all[0].Name = "Mutated"
	assert.NotEqual(t, "Mutated", All()[0].Name)
}

func TestByCategoryOrderAndNames(t *testing.T) {
	categories := ByCategory()
	require.Len(t, categories, 7)

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"Proteins", "Vegetables", "Grains & Starches",
		"Dairy", "Herbs", "Spices", "Pantry Items",
	}, names)

	total := 0
	for _, c := range categories {
		assert.NotEmpty(t, c.Ingredients)
		total += len(c.Ingredients)
	}
	assert.Equal(t, len(All()), total)
}

func TestSearch(t *testing.T) {
	results := Search("pep")
	require.Len(t, results, 1)
	assert.Equal(t, "bell-pepper", results[0].ID)

	// 不分大小寫
	results = Search("CHICKEN")
	require.Len(t, results, 1)
	assert.Equal(t, "chicken", results[0].ID)

	assert.Empty(t, Search("durian"))
}

func TestByID(t *testing.T) {
	ing, ok := ByID("tofu")
	require.True(t, ok)
	assert.Equal(t, "Tofu", ing.Name)
	assert.Equal(t, "protein", ing.Category)

	_, ok = ByID("unobtainium")
	assert.False(t, ok)
}
