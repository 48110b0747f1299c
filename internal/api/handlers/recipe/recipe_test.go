package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reverse-cookbook/internal/core/ai/service"
	recipeCore "reverse-cookbook/internal/core/recipe"
	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	common.LogMode = "concise"
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubProvider 測試用的固定回應提供者
type stubProvider struct {
	response string
}

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, nil
}

func (s *stubProvider) Health(ctx context.Context) bool { return true }
func (s *stubProvider) GetModel() string                { return "stub-model" }
func (s *stubProvider) GetTimeout() time.Duration       { return time.Second }
func (s *stubProvider) Close() error                    { return nil }

func newTestRouter(t *testing.T, aiResponse string) (*gin.Engine, *recipeCore.Store) {
	t.Helper()

	store, err := recipeCore.OpenStore(&config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	aiSvc := service.NewService(&config.Config{}, &stubProvider{response: aiResponse}, nil)
	handler := NewHandler(
		recipeCore.NewGenerationService(aiSvc, store),
		recipeCore.NewSubstitutionService(aiSvc),
		store,
	)

	router := gin.New()
	group := router.Group("/api/recipes")
	group.POST("/generate", handler.HandleGenerate)
	group.POST("/ingredient-alternatives", handler.HandleIngredientAlternatives)
	group.GET("/search", handler.HandleSearch)
	group.GET("/favorites", handler.HandleFavorites)
	group.GET("/:id", handler.HandleGetRecipe)

	return router, store
}

func doJSONRequest(t *testing.T, router *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w.Code, parsed
}

const generateResponse = `[
  {
    "title": "Garlic Chicken Rice",
    "cuisine": "Chinese",
    "ingredients": ["chicken", "rice", "garlic"],
    "instructions": ["Cook rice", "Stir-fry chicken"],
    "cookingTime": 25,
    "servings": 2,
    "difficulty": "easy",
    "description": "Quick stir-fry"
  }
]`

func TestHandleGenerate(t *testing.T) {
	router, _ := newTestRouter(t, generateResponse)

	status, body := doJSONRequest(t, router, http.MethodPost, "/api/recipes/generate",
		`{"ingredients": ["chicken", "rice", "garlic"], "cuisine": "Chinese"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, data["totalCount"])

	recipes, ok := data["recipes"].([]any)
	require.True(t, ok)
	require.Len(t, recipes, 1)
	recipe := recipes[0].(map[string]any)
	assert.Equal(t, "Garlic Chicken Rice", recipe["title"])
}

func TestHandleGenerateInvalidBody(t *testing.T) {
	router, _ := newTestRouter(t, generateResponse)

	// 缺少 cuisine
	status, body := doJSONRequest(t, router, http.MethodPost, "/api/recipes/generate",
		`{"ingredients": ["chicken"]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	// 空食材清單
	status, body = doJSONRequest(t, router, http.MethodPost, "/api/recipes/generate",
		`{"ingredients": [], "cuisine": "Chinese"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestHandleIngredientAlternatives(t *testing.T) {
	router, _ := newTestRouter(t, `{"isOptional": true, "alternatives": [{"name": "flax egg", "explanation": "binds similarly"}]}`)

	status, body := doJSONRequest(t, router, http.MethodPost, "/api/recipes/ingredient-alternatives",
		`{"ingredient": "eggs", "recipeTitle": "Omelette", "cuisine": "French"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "eggs", data["ingredient"])
	assert.Equal(t, true, data["isOptional"])
}

func TestHandleGetRecipe(t *testing.T) {
	router, store := newTestRouter(t, generateResponse)

	_, err := store.SaveRecipe(context.Background(), &recipeCore.Recipe{
		ID:          "r1",
		Title:       "Tomato Pasta",
		Cuisine:     "Italian",
		Ingredients: []string{"pasta", "tomato"},
	}, nil)
	require.NoError(t, err)

	status, body := doJSONRequest(t, router, http.MethodGet, "/api/recipes/r1", "")
	assert.Equal(t, http.StatusOK, status)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tomato Pasta", data["title"])

	status, body = doJSONRequest(t, router, http.MethodGet, "/api/recipes/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestHandleSearch(t *testing.T) {
	router, store := newTestRouter(t, generateResponse)

	_, err := store.SaveRecipe(context.Background(), &recipeCore.Recipe{
		ID:          "r1",
		Title:       "Tomato Pasta",
		Cuisine:     "Italian",
		Ingredients: []string{"pasta", "tomato"},
	}, nil)
	require.NoError(t, err)

	status, body := doJSONRequest(t, router, http.MethodGet, "/api/recipes/search?q=tomato", "")
	assert.Equal(t, http.StatusOK, status)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, data["totalCount"])

	// 缺少關鍵字
	status, body = doJSONRequest(t, router, http.MethodGet, "/api/recipes/search", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestHandleFavorites(t *testing.T) {
	router, store := newTestRouter(t, generateResponse)
	ctx := context.Background()

	_, err := store.SaveRecipe(ctx, &recipeCore.Recipe{
		ID:          "r1",
		Title:       "Tomato Pasta",
		Cuisine:     "Italian",
		Ingredients: []string{"pasta", "tomato"},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, store.AddFavorite(ctx, "r1", "alice"))

	status, body := doJSONRequest(t, router, http.MethodGet, "/api/recipes/favorites?userId=alice", "")
	assert.Equal(t, http.StatusOK, status)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, data["totalCount"])

	status, body = doJSONRequest(t, router, http.MethodGet, "/api/recipes/favorites?userId=bob", "")
	assert.Equal(t, http.StatusOK, status)
	data, _ = body["data"].(map[string]any)
	assert.EqualValues(t, 0, data["totalCount"])
}
