package recipe

import (
	"context"
	"strings"
)

// IngredientStatus 食材可用狀態
type IngredientStatus string

const (
	StatusAvailable   IngredientStatus = "available"
	StatusUnavailable IngredientStatus = "unavailable"
	StatusUnknown     IngredientStatus = "unknown"
)

// AvailabilityEntry 單一食材的可用性紀錄
type AvailabilityEntry struct {
	Ingredient         string           `json:"ingredient"`         // 目前顯示名稱
	OriginalIngredient string           `json:"originalIngredient"` // 食譜原始名稱，替換後仍保留
	Status             IngredientStatus `json:"status"`
	IsUserSelected     bool             `json:"isUserSelected"` // 建立時決定，之後不再變動
	Substitute         string           `json:"substitute,omitempty"`
}

// AvailabilityTracker 單一食譜的食材可用性狀態機。
// 條目以「目前食材名稱」為鍵並保留顯示順序；
// 由單一 goroutine（一個食譜檢視的生命週期）持有。
type AvailabilityTracker struct {
	recipeTitle       string
	cuisine           string
	recipeIngredients []string
	userSelected      []string
	advisor           *SubstitutionService

	order   []string
	entries map[string]*AvailabilityEntry
}

// NewAvailabilityTracker 依食譜食材與使用者原始選擇建立狀態機。
// 名稱（不分大小寫）命中使用者選擇的食材初始為 available，其餘為 unknown。
func NewAvailabilityTracker(r *Recipe, userSelected []string, advisor *SubstitutionService) *AvailabilityTracker {
	t := &AvailabilityTracker{
		recipeTitle:       r.Title,
		cuisine:           r.Cuisine,
		recipeIngredients: append([]string(nil), r.Ingredients...),
		userSelected:      append([]string(nil), userSelected...),
		advisor:           advisor,
	}
	t.rebuild()
	return t
}

// rebuild 從建構輸入重建完整條目集合
func (t *AvailabilityTracker) rebuild() {
	t.order = make([]string, 0, len(t.recipeIngredients))
	t.entries = make(map[string]*AvailabilityEntry, len(t.recipeIngredients))

	for _, ingredient := range t.recipeIngredients {
		isUserSelected := false
		for _, sel := range t.userSelected {
			if strings.EqualFold(sel, ingredient) {
				isUserSelected = true
				break
			}
		}

		status := StatusUnknown
		if isUserSelected {
			status = StatusAvailable
		}

		if _, exists := t.entries[ingredient]; !exists {
			t.order = append(t.order, ingredient)
		}
		t.entries[ingredient] = &AvailabilityEntry{
			Ingredient:         ingredient,
			OriginalIngredient: ingredient,
			Status:             status,
			IsUserSelected:     isUserSelected,
		}
	}
}

// SetStatus 直接切換既有條目的狀態；條目不存在時不做任何事。
// 使用者已選食材一樣允許被標為不可用，是否鎖定是外層 UI 的政策。
func (t *AvailabilityTracker) SetStatus(ingredient string, status IngredientStatus) {
	if entry, ok := t.entries[ingredient]; ok {
		entry.Status = status
	}
}

// Substitute 以替代品取代 originalKey 對應的條目：
// 移除舊鍵、以替代品名稱插入新條目（狀態 available），
// OriginalIngredient 與 IsUserSelected 原樣帶過。
// originalKey 不存在時不做任何事，因此重複呼叫是冪等的。
func (t *AvailabilityTracker) Substitute(originalKey string, substituteName string) {
	current, ok := t.entries[originalKey]
	if !ok {
		return
	}

	delete(t.entries, originalKey)
	for i, key := range t.order {
		if key == originalKey {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}

	// 替代品名稱撞上既有條目時原位覆寫，否則附加在尾端
	if _, exists := t.entries[substituteName]; !exists {
		t.order = append(t.order, substituteName)
	}
	t.entries[substituteName] = &AvailabilityEntry{
		Ingredient:         substituteName,
		OriginalIngredient: current.OriginalIngredient,
		Status:             StatusAvailable,
		IsUserSelected:     current.IsUserSelected,
		Substitute:         substituteName,
	}
}

// RequestAlternatives 向建議服務查詢替代品；不改動狀態機本身。
// 呼叫端在觀察到狀態轉為 unavailable 時觸發。
func (t *AvailabilityTracker) RequestAlternatives(ctx context.Context, ingredient string) (*AlternativesResponse, error) {
	return t.advisor.GetAlternatives(ctx, &AlternativesRequest{
		Ingredient:  ingredient,
		RecipeTitle: t.recipeTitle,
		Cuisine:     t.cuisine,
	})
}

// Reset 丟棄所有手動狀態與替換，從建構輸入重建
func (t *AvailabilityTracker) Reset() {
	t.rebuild()
}

// Get 取得指定食材的條目
func (t *AvailabilityTracker) Get(ingredient string) (AvailabilityEntry, bool) {
	if entry, ok := t.entries[ingredient]; ok {
		return *entry, true
	}
	return AvailabilityEntry{}, false
}

// Entries 依顯示順序回傳所有條目
func (t *AvailabilityTracker) Entries() []AvailabilityEntry {
	out := make([]AvailabilityEntry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.entries[key])
	}
	return out
}

// CurrentIngredients 回傳目前的食材名稱清單（替換後以替代品名稱為準）
func (t *AvailabilityTracker) CurrentIngredients() []string {
	return append([]string(nil), t.order...)
}

// AvailableIngredients 回傳狀態為 available 的條目
func (t *AvailabilityTracker) AvailableIngredients() []AvailabilityEntry {
	return t.filter(func(e *AvailabilityEntry) bool { return e.Status == StatusAvailable })
}

// UnavailableIngredients 回傳狀態為 unavailable 的條目
func (t *AvailabilityTracker) UnavailableIngredients() []AvailabilityEntry {
	return t.filter(func(e *AvailabilityEntry) bool { return e.Status == StatusUnavailable })
}

// UnknownIngredients 回傳狀態為 unknown 的條目
func (t *AvailabilityTracker) UnknownIngredients() []AvailabilityEntry {
	return t.filter(func(e *AvailabilityEntry) bool { return e.Status == StatusUnknown })
}

// SubstitutedIngredients 回傳已被替換的條目
func (t *AvailabilityTracker) SubstitutedIngredients() []AvailabilityEntry {
	return t.filter(func(e *AvailabilityEntry) bool {
		return e.Substitute != "" && e.Substitute != e.OriginalIngredient
	})
}

func (t *AvailabilityTracker) filter(pred func(*AvailabilityEntry) bool) []AvailabilityEntry {
	out := make([]AvailabilityEntry, 0, len(t.order))
	for _, key := range t.order {
		if entry := t.entries[key]; pred(entry) {
			out = append(out, *entry)
		}
	}
	return out
}
