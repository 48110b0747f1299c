package recipe

import (
	"net/http"

	recipeCore "reverse-cookbook/internal/core/recipe"
	"reverse-cookbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求體
type GenerateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
	Cuisine     string   `json:"cuisine" binding:"required"`
	Preferences *struct {
		Difficulty     string `json:"difficulty,omitempty"`
		MaxCookingTime int    `json:"maxCookingTime,omitempty"`
		Servings       int    `json:"servings,omitempty"`
	} `json:"preferences,omitempty"`
}

// AlternativesRequest 食材替代品查詢請求體
type AlternativesRequest struct {
	Ingredient  string `json:"ingredient" binding:"required"`
	RecipeTitle string `json:"recipeTitle" binding:"required"`
	Cuisine     string `json:"cuisine" binding:"required"`
}

// Handler 食譜處理程序
type Handler struct {
	generationService   *recipeCore.GenerationService
	substitutionService *recipeCore.SubstitutionService
	store               *recipeCore.Store
}

// NewHandler 創建新的食譜處理程序
func NewHandler(generationService *recipeCore.GenerationService, substitutionService *recipeCore.SubstitutionService, store *recipeCore.Store) *Handler {
	return &Handler{
		generationService:   generationService,
		substitutionService: substitutionService,
		store:               store,
	}
}

// HandleGenerate 依食材與菜系生成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.RespondErrorWithStatus(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	serviceReq := &recipeCore.Request{
		Ingredients: req.Ingredients,
		Cuisine:     req.Cuisine,
	}
	if req.Preferences != nil {
		serviceReq.Preferences = &recipeCore.Preferences{
			Difficulty:     req.Preferences.Difficulty,
			MaxCookingTime: req.Preferences.MaxCookingTime,
			Servings:       req.Preferences.Servings,
		}
	}

	result, err := h.generationService.GenerateRecipes(c.Request.Context(), serviceReq)
	if err != nil {
		common.LogError("食譜生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.RespondError(c, err)
		return
	}

	common.LogInfo("食譜生成完成",
		zap.String("request_id", requestID),
		zap.Int("total_count", result.TotalCount),
	)

	common.RespondOK(c, result)
}

// HandleIngredientAlternatives 查詢食材替代品
func (h *Handler) HandleIngredientAlternatives(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req AlternativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.RespondErrorWithStatus(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.substitutionService.GetAlternatives(c.Request.Context(), &recipeCore.AlternativesRequest{
		Ingredient:  req.Ingredient,
		RecipeTitle: req.RecipeTitle,
		Cuisine:     req.Cuisine,
	})
	if err != nil {
		common.LogError("替代品查詢失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("ingredient", req.Ingredient),
		)
		common.RespondError(c, err)
		return
	}

	common.RespondOK(c, result)
}

// HandleGetRecipe 以 id 查詢單一食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		common.RespondErrorWithStatus(c, http.StatusBadRequest, "Recipe ID is required")
		return
	}

	recipe, err := h.store.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		if !common.IsNotFound(err) {
			common.LogError("食譜查詢失敗",
				zap.Error(err),
				zap.String("recipe_id", id),
			)
		}
		common.RespondError(c, err)
		return
	}

	common.RespondOK(c, recipe)
}

// HandleSearch 以關鍵字搜尋食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.RespondErrorWithStatus(c, http.StatusBadRequest, "Search query is required")
		return
	}
	cuisine := c.Query("cuisine")

	recipes, err := h.store.SearchRecipes(c.Request.Context(), query, cuisine)
	if err != nil {
		common.LogError("食譜搜尋失敗",
			zap.Error(err),
			zap.String("query", query),
		)
		common.RespondError(c, err)
		return
	}

	common.RespondOK(c, recipeCore.Response{
		Recipes:    recipes,
		TotalCount: len(recipes),
	})
}

// HandleFavorites 查詢收藏的食譜
func (h *Handler) HandleFavorites(c *gin.Context) {
	userID := c.Query("userId")

	recipes, err := h.store.GetFavoriteRecipes(c.Request.Context(), userID)
	if err != nil {
		common.LogError("收藏查詢失敗",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		common.RespondError(c, err)
		return
	}

	common.RespondOK(c, recipeCore.Response{
		Recipes:    recipes,
		TotalCount: len(recipes),
	})
}
