package pantry

import (
	"strings"

	"pantry-assistant/internal/pkg/common"
)

// ReconcileIngredients 將食譜食材清單與庫存、原始請求清單比對
// 兩段式比對：先對庫存，命中者歸入 have；未命中者再對請求清單，
// 命中者視為使用者已自行指定、不列入 missing；兩邊都沒命中的才是缺少的
// （通常是模型自行假設的常備品，如鹽、油）
//
// 比對規則是大小寫摺疊後的雙向子字串包含，刻意從寬：
// 名稱短而不一致（"chicken breast" 對 "chicken"）時寧可多認也不漏認
func ReconcileIngredients(recipeIngredients []string, inventory []common.InventoryItem, requested []string) common.ReconciliationResult {
	result := common.ReconciliationResult{
		HaveIngredients:    []string{},
		MissingIngredients: []string{},
	}

	inventoryNames := make([]string, 0, len(inventory))
	for _, item := range inventory {
		inventoryNames = append(inventoryNames, item.Name)
	}

	for _, ingredient := range recipeIngredients {
		switch {
		case matchesAny(ingredient, inventoryNames):
			result.HaveIngredients = append(result.HaveIngredients, ingredient)
		case matchesAny(ingredient, requested):
			// 使用者指定過的食材不算缺少，也不算庫存既有
		default:
			result.MissingIngredients = append(result.MissingIngredients, ingredient)
		}
	}

	return result
}

// matchesAny 檢查食材是否與候選名稱列表中任何一項相符
func matchesAny(ingredient string, candidates []string) bool {
	folded := strings.ToLower(strings.TrimSpace(ingredient))
	if folded == "" {
		return false
	}

	for _, candidate := range candidates {
		name := strings.ToLower(strings.TrimSpace(candidate))
		if name == "" {
			continue
		}
		if strings.Contains(folded, name) || strings.Contains(name, folded) {
			return true
		}
	}
	return false
}
