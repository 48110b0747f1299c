package ingredient

import (
	"net/http"

	ingredientCore "reverse-cookbook/internal/core/ingredient"
	"reverse-cookbook/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleList 回傳完整食材目錄
func HandleList(c *gin.Context) {
	common.RespondOK(c, ingredientCore.All())
}

// HandleCategories 依分類回傳食材目錄
func HandleCategories(c *gin.Context) {
	common.RespondOK(c, ingredientCore.ByCategory())
}

// HandleSearch 以關鍵字搜尋食材
func HandleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.RespondErrorWithStatus(c, http.StatusBadRequest, "Search query is required")
		return
	}

	results := ingredientCore.Search(query)
	if results == nil {
		results = []ingredientCore.Ingredient{}
	}
	common.RespondOK(c, results)
}

// HandleGet 以 id 查詢單一食材
func HandleGet(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		common.RespondErrorWithStatus(c, http.StatusBadRequest, "Ingredient ID is required")
		return
	}

	ing, ok := ingredientCore.ByID(id)
	if !ok {
		common.RespondErrorWithStatus(c, http.StatusNotFound, "Ingredient not found")
		return
	}
	common.RespondOK(c, ing)
}
