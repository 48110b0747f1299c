package recipe

// 難度等級
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe 食譜，一經儲存即不可變（僅允許同 id 覆寫）
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  int      `json:"cookingTime"` // 分鐘
	Servings     int      `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Preferences 生成偏好
type Preferences struct {
	Difficulty     string `json:"difficulty,omitempty"`
	MaxCookingTime int    `json:"maxCookingTime,omitempty"`
	Servings       int    `json:"servings,omitempty"`
}

// Request 食譜生成請求，不落地儲存，僅供單次生成使用
type Request struct {
	Ingredients []string     `json:"ingredients"`
	Cuisine     string       `json:"cuisine"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Response 食譜生成結果
type Response struct {
	Recipes    []Recipe `json:"recipes"`
	TotalCount int      `json:"totalCount"`
}

// AlternativesRequest 食材替代品查詢請求
type AlternativesRequest struct {
	Ingredient  string `json:"ingredient"`
	RecipeTitle string `json:"recipeTitle"`
	Cuisine     string `json:"cuisine"`
}

// Alternative 單一替代品建議
type Alternative struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
}

// AlternativesResponse 食材替代品查詢結果
type AlternativesResponse struct {
	Ingredient   string        `json:"ingredient"`
	IsOptional   bool          `json:"isOptional"`
	Alternatives []Alternative `json:"alternatives"`
}
