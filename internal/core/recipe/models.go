package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice JSON 編碼的字串切片欄位
type StringSlice []string

// Scan 實現 sql.Scanner 介面
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value 實現 driver.Valuer 介面
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// recipeModel recipes 資料表
type recipeModel struct {
	ID           string      `gorm:"type:text;primaryKey"`
	Title        string      `gorm:"type:text;not null;index"`
	Cuisine      string      `gorm:"type:text;not null;index"`
	Ingredients  StringSlice `gorm:"type:text;not null"`
	Instructions StringSlice `gorm:"type:text;not null"`
	CookingTime  int         `gorm:"column:cooking_time"`
	Servings     int
	Difficulty   string `gorm:"type:text"`
	Description  string `gorm:"type:text"`
	Tags         StringSlice
	CreatedAt    time.Time
}

func (recipeModel) TableName() string {
	return "recipes"
}

// cacheEntryModel recipe_cache 資料表，以 (ingredients_hash, cuisine) 為鍵
type cacheEntryModel struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"`
	IngredientsHash string      `gorm:"column:ingredients_hash;type:text;not null;index:idx_cache_key"`
	Cuisine         string      `gorm:"type:text;not null;index:idx_cache_key"`
	RecipeIDs       StringSlice `gorm:"column:recipe_ids;type:text;not null"`
	CreatedAt       time.Time
}

func (cacheEntryModel) TableName() string {
	return "recipe_cache"
}

// favoriteModel favorites 資料表
type favoriteModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	RecipeID  string `gorm:"column:recipe_id;type:text;not null;index"`
	UserID    string `gorm:"column:user_id;type:text;index"`
	CreatedAt time.Time
}

func (favoriteModel) TableName() string {
	return "favorites"
}

// recipeToModel 將食譜轉成資料列
func recipeToModel(r *Recipe) *recipeModel {
	return &recipeModel{
		ID:           r.ID,
		Title:        r.Title,
		Cuisine:      r.Cuisine,
		Ingredients:  StringSlice(r.Ingredients),
		Instructions: StringSlice(r.Instructions),
		CookingTime:  r.CookingTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Description:  r.Description,
		Tags:         StringSlice(r.Tags),
	}
}

// modelToRecipe 將資料列轉回食譜
func modelToRecipe(m *recipeModel) Recipe {
	return Recipe{
		ID:           m.ID,
		Title:        m.Title,
		Cuisine:      m.Cuisine,
		Ingredients:  []string(m.Ingredients),
		Instructions: []string(m.Instructions),
		CookingTime:  m.CookingTime,
		Servings:     m.Servings,
		Difficulty:   m.Difficulty,
		Description:  m.Description,
		Tags:         []string(m.Tags),
	}
}
