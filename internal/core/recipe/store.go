package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"reverse-cookbook/internal/infrastructure/config"
	"reverse-cookbook/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// 快取條目有效時間：超過即視為過期，僅忽略、不主動刪除
const cacheEntryTTL = time.Hour

// Store 食譜持久化儲存（SQLite）
type Store struct {
	db *gorm.DB
}

// OpenStore 依設定開啟資料庫並完成遷移
func OpenStore(cfg *config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, common.NewStorageError("failed to open database", err)
	}
	return NewStore(db)
}

// NewStore 以現有連線建立儲存層
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&recipeModel{}, &cacheEntryModel{}, &favoriteModel{}); err != nil {
		return nil, common.NewStorageError("failed to migrate database", err)
	}
	return &Store{db: db}, nil
}

// SaveRecipe 以 id 為鍵覆寫儲存食譜。
// 若帶入生成請求，會順帶更新 (hash, cuisine) 快取關聯；
// 快取更新只是 best-effort，失敗不影響食譜本身的儲存。
func (s *Store) SaveRecipe(ctx context.Context, r *Recipe, req *Request) (*Recipe, error) {
	model := recipeToModel(r)

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model)
	if result.Error != nil {
		return nil, common.NewStorageError("failed to save recipe", result.Error)
	}

	if req != nil {
		if err := s.cacheRecipe(ctx, r.ID, req); err != nil {
			common.LogWarn("快取關聯更新失敗",
				zap.Error(err),
				zap.String("recipe_id", r.ID),
			)
		}
	}

	return r, nil
}

// GetRecipeByID 以 id 查詢食譜
func (s *Store) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	var model recipeModel

	result := s.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("recipe", id)
		}
		return nil, common.NewStorageError("failed to get recipe", result.Error)
	}

	recipe := modelToRecipe(&model)
	return &recipe, nil
}

// SearchRecipes 以標題或描述做不分大小寫的子字串搜尋，可再以菜系過濾
func (s *Store) SearchRecipes(ctx context.Context, query string, cuisine string) ([]Recipe, error) {
	var models []recipeModel

	pattern := "%" + strings.ToLower(query) + "%"
	tx := s.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	if cuisine != "" {
		tx = tx.Where("cuisine = ?", cuisine)
	}

	if result := tx.Find(&models); result.Error != nil {
		return nil, common.NewStorageError("failed to search recipes", result.Error)
	}

	recipes := make([]Recipe, len(models))
	for i := range models {
		recipes[i] = modelToRecipe(&models[i])
	}
	return recipes, nil
}

// FindCachedRecipes 以指紋查詢一小時內的快取條目，回傳其引用的食譜。
// 條目不存在或已過期回傳空切片；被刪除的食譜 id 直接略過。
func (s *Store) FindCachedRecipes(ctx context.Context, req *Request) ([]Recipe, error) {
	hash := Fingerprint(req.Ingredients)

	var entry cacheEntryModel
	result := s.db.WithContext(ctx).
		Where("ingredients_hash = ? AND cuisine = ?", hash, req.Cuisine).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return []Recipe{}, nil
		}
		return nil, common.NewStorageError("failed to query recipe cache", result.Error)
	}

	// 過期條目僅忽略，不主動刪除
	if time.Since(entry.CreatedAt) >= cacheEntryTTL {
		common.LogCacheMiss("recipe", hash)
		return []Recipe{}, nil
	}

	if len(entry.RecipeIDs) == 0 {
		return []Recipe{}, nil
	}

	var models []recipeModel
	if result := s.db.WithContext(ctx).Where("id IN ?", []string(entry.RecipeIDs)).Find(&models); result.Error != nil {
		return nil, common.NewStorageError("failed to load cached recipes", result.Error)
	}

	common.LogCacheHit("recipe", hash)

	recipes := make([]Recipe, len(models))
	for i := range models {
		recipes[i] = modelToRecipe(&models[i])
	}
	return recipes, nil
}

// GetFavoriteRecipes 查詢收藏的食譜，userID 為空時不過濾使用者
func (s *Store) GetFavoriteRecipes(ctx context.Context, userID string) ([]Recipe, error) {
	var models []recipeModel

	tx := s.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id")
	if userID != "" {
		tx = tx.Where("favorites.user_id = ?", userID)
	}

	if result := tx.Find(&models); result.Error != nil {
		return nil, common.NewStorageError("failed to get favorite recipes", result.Error)
	}

	recipes := make([]Recipe, len(models))
	for i := range models {
		recipes[i] = modelToRecipe(&models[i])
	}
	return recipes, nil
}

// AddFavorite 新增收藏關聯
func (s *Store) AddFavorite(ctx context.Context, recipeID string, userID string) error {
	fav := favoriteModel{
		RecipeID: recipeID,
		UserID:   userID,
	}
	if result := s.db.WithContext(ctx).Create(&fav); result.Error != nil {
		return common.NewStorageError("failed to add favorite", result.Error)
	}
	return nil
}

// cacheRecipe 將食譜 id 併入 (hash, cuisine) 的快取條目。
// id 合併是冪等的（不重複收錄），且每次都刷新時間戳，
// 讓每一次成功生成都算作快取活動。
func (s *Store) cacheRecipe(ctx context.Context, recipeID string, req *Request) error {
	hash := Fingerprint(req.Ingredients)

	var entry cacheEntryModel
	result := s.db.WithContext(ctx).
		Where("ingredients_hash = ? AND cuisine = ?", hash, req.Cuisine).
		First(&entry)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return common.NewStorageError("failed to check recipe cache", result.Error)
		}
		entry = cacheEntryModel{
			IngredientsHash: hash,
			Cuisine:         req.Cuisine,
			RecipeIDs:       StringSlice{recipeID},
			CreatedAt:       time.Now(),
		}
		if result := s.db.WithContext(ctx).Create(&entry); result.Error != nil {
			return common.NewStorageError("failed to create cache entry", result.Error)
		}
		return nil
	}

	ids := entry.RecipeIDs
	exists := false
	for _, id := range ids {
		if id == recipeID {
			exists = true
			break
		}
	}
	if !exists {
		ids = append(ids, recipeID)
	}

	updates := map[string]interface{}{
		"recipe_ids": ids,
		"created_at": time.Now(),
	}
	if result := s.db.WithContext(ctx).Model(&cacheEntryModel{}).
		Where("id = ?", entry.ID).
		Updates(updates); result.Error != nil {
		return common.NewStorageError("failed to update cache entry", result.Error)
	}
	return nil
}

// Close 關閉資料庫連線
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
