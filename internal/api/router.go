package api

import (
	"context"
	"net/http"
	"time"

	"reverse-cookbook/internal/api/handlers/health"
	ingredientHandler "reverse-cookbook/internal/api/handlers/ingredient"
	recipeHandler "reverse-cookbook/internal/api/handlers/recipe"
	"reverse-cookbook/internal/api/middleware"
	"reverse-cookbook/internal/core/ai/service"
	recipeCore "reverse-cookbook/internal/core/recipe"
	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *recipeCore.Store, aiService *service.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 相同請求去重（壓低重複生成呼叫）
	router.Use(middleware.Deduplication(cfg))

	// 初始化服務
	generationSvc := recipeCore.NewGenerationService(aiService, store)
	substitutionSvc := recipeCore.NewSubstitutionService(aiService)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.Ollama.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("ai_service", aiService)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"success": false,
				"error":   "Request timeout",
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api")
	{
		recipeHandlerInstance := recipeHandler.NewHandler(generationSvc, substitutionSvc, store)

		// 註冊食譜相關路由
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/generate", recipeHandlerInstance.HandleGenerate)
			recipeGroup.POST("/ingredient-alternatives", recipeHandlerInstance.HandleIngredientAlternatives)
			recipeGroup.GET("/search", recipeHandlerInstance.HandleSearch)
			recipeGroup.GET("/favorites", recipeHandlerInstance.HandleFavorites)
			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGetRecipe)
		}

		// 註冊食材目錄路由
		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", ingredientHandler.HandleList)
			ingredientGroup.GET("/categories", ingredientHandler.HandleCategories)
			ingredientGroup.GET("/search", ingredientHandler.HandleSearch)
			ingredientGroup.GET("/:id", ingredientHandler.HandleGet)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
