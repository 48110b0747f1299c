package ingredient

import (
	"strings"
)

// Ingredient 靜態食材目錄的條目
type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Category 分類後的食材群組
type Category struct {
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients"`
}

// 目錄在進程啟動時載入一次，之後只讀
var catalog = []Ingredient{
	// 蛋白質
	{ID: "chicken", Name: "Chicken", Category: "protein"},
	{ID: "beef", Name: "Beef", Category: "protein"},
	{ID: "pork", Name: "Pork", Category: "protein"},
	{ID: "fish", Name: "Fish", Category: "protein"},
	{ID: "tofu", Name: "Tofu", Category: "protein"},
	{ID: "eggs", Name: "Eggs", Category: "protein"},

	// 蔬菜
	{ID: "onion", Name: "Onion", Category: "vegetable"},
	{ID: "garlic", Name: "Garlic", Category: "vegetable"},
	{ID: "tomato", Name: "Tomato", Category: "vegetable"},
	{ID: "bell-pepper", Name: "Bell Pepper", Category: "vegetable"},
	{ID: "carrot", Name: "Carrot", Category: "vegetable"},
	{ID: "broccoli", Name: "Broccoli", Category: "vegetable"},
	{ID: "spinach", Name: "Spinach", Category: "vegetable"},
	{ID: "mushroom", Name: "Mushroom", Category: "vegetable"},

	// 穀物與澱粉
	{ID: "rice", Name: "Rice", Category: "grain"},
	{ID: "pasta", Name: "Pasta", Category: "grain"},
	{ID: "potato", Name: "Potato", Category: "grain"},
	{ID: "bread", Name: "Bread", Category: "grain"},
	{ID: "quinoa", Name: "Quinoa", Category: "grain"},

	// 乳製品
	{ID: "cheese", Name: "Cheese", Category: "dairy"},
	{ID: "milk", Name: "Milk", Category: "dairy"},
	{ID: "yogurt", Name: "Yogurt", Category: "dairy"},
	{ID: "butter", Name: "Butter", Category: "dairy"},

	// 香草與香料
	{ID: "basil", Name: "Basil", Category: "herb"},
	{ID: "oregano", Name: "Oregano", Category: "herb"},
	{ID: "thyme", Name: "Thyme", Category: "herb"},
	{ID: "ginger", Name: "Ginger", Category: "spice"},
	{ID: "cumin", Name: "Cumin", Category: "spice"},
	{ID: "paprika", Name: "Paprika", Category: "spice"},

	// 常備食材
	{ID: "olive-oil", Name: "Olive Oil", Category: "pantry"},
	{ID: "soy-sauce", Name: "Soy Sauce", Category: "pantry"},
	{ID: "vinegar", Name: "Vinegar", Category: "pantry"},
	{ID: "flour", Name: "Flour", Category: "pantry"},
	{ID: "sugar", Name: "Sugar", Category: "pantry"},
	{ID: "salt", Name: "Salt", Category: "pantry"},
}

// 分類顯示順序固定，與目錄的出現順序一致
var categoryOrder = []string{"protein", "vegetable", "grain", "dairy", "herb", "spice", "pantry"}

var categoryNames = map[string]string{
	"protein":   "Proteins",
	"vegetable": "Vegetables",
	"grain":     "Grains & Starches",
	"dairy":     "Dairy",
	"herb":      "Herbs",
	"spice":     "Spices",
	"pantry":    "Pantry Items",
}

// All 回傳完整食材目錄
func All() []Ingredient {
	return append([]Ingredient(nil), catalog...)
}

// ByCategory 依分類回傳食材群組
func ByCategory() []Category {
	grouped := make(map[string][]Ingredient)
	for _, ing := range catalog {
		grouped[ing.Category] = append(grouped[ing.Category], ing)
	}

	categories := make([]Category, 0, len(categoryOrder))
	for _, key := range categoryOrder {
		if items, ok := grouped[key]; ok {
			categories = append(categories, Category{
				Name:        formatCategoryName(key),
				Ingredients: items,
			})
		}
	}
	return categories
}

// Search 以名稱做不分大小寫的子字串搜尋
func Search(query string) []Ingredient {
	lowered := strings.ToLower(query)
	var out []Ingredient
	for _, ing := range catalog {
		if strings.Contains(strings.ToLower(ing.Name), lowered) {
			out = append(out, ing)
		}
	}
	return out
}

// ByID 以 id 查詢單一食材
func ByID(id string) (Ingredient, bool) {
	for _, ing := range catalog {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// formatCategoryName 將分類代碼轉成顯示名稱
func formatCategoryName(category string) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
