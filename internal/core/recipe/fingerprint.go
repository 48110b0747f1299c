package recipe

import (
	"sort"
	"strings"
)

// Fingerprint 將食材清單正規化為穩定的快取鍵：逐項小寫、字典序排序、逗號串接。
// 讀寫兩側必須使用同一函式，否則只會造成快取未命中，不會造成資料損壞。
func Fingerprint(ingredients []string) string {
	normalized := make([]string, len(ingredients))
	for i, ing := range ingredients {
		normalized[i] = strings.ToLower(ing)
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}
