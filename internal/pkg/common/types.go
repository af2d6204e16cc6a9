package common

import (
	"fmt"
	"strings"
)

// Intent 萃取任務類型
type Intent string

const (
	IntentSuggestion    Intent = "suggestion"     // 物品名稱 → 信心分級建議
	IntentDetection     Intent = "detection"      // 圖片 → 偵測到的物品列表
	IntentRecipe        Intent = "recipe"         // 食材列表 → 食譜
	IntentShopping      Intent = "shopping"       // 自由文字行 → 購物清單項目
	IntentQuickDefaults Intent = "quick_defaults" // 物品名稱 → 儲存位置與效期預設值
)

// StorageLocation 儲存位置（封閉集合）
type StorageLocation string

const (
	LocationPantry  StorageLocation = "pantry"
	LocationFridge  StorageLocation = "fridge"
	LocationFreezer StorageLocation = "freezer"
)

// ValidLocation 檢查儲存位置是否在封閉集合內
func ValidLocation(loc StorageLocation) bool {
	switch loc {
	case LocationPantry, LocationFridge, LocationFreezer:
		return true
	}
	return false
}

// Action 信心分級動作
type Action string

const (
	ActionAccept  Action = "accept"  // 信心 > 0.8，單一建議直接採用
	ActionChoose  Action = "choose"  // 0.4 ≤ 信心 ≤ 0.8，提供 2-4 個候選
	ActionSpecify Action = "specify" // 信心 < 0.4，請使用者補充描述
)

// Complexity 食譜複雜度
type Complexity string

const (
	ComplexityQuick         Complexity = "quick"         // 15-30 分鐘，簡單技巧
	ComplexitySophisticated Complexity = "sophisticated" // 45 分鐘以上，進階技巧
)

// InventoryItem 使用者庫存中的一項物品，由外部協作者提供，核心不會修改
type InventoryItem struct {
	Name            string `json:"name"`
	Quantity        string `json:"quantity,omitempty"`
	DaysUntilExpiry *int   `json:"days_until_expiry,omitempty"` // 可為負數（已過期）
}

// RecipeConstraints 食譜生成的限制條件
type RecipeConstraints struct {
	ServingSize         string     `json:"serving_size"`
	DietaryRestrictions []string   `json:"dietary_restrictions"`
	Complexity          Complexity `json:"complexity"`
}

// GenerationRequest 一次生成呼叫的完整輸入，建構後不可變
type GenerationRequest struct {
	Intent       Intent            `json:"intent"`
	ItemName     string            `json:"item_name,omitempty"`
	Line         string            `json:"line,omitempty"`
	Ingredients  []string          `json:"ingredients,omitempty"`
	Constraints  RecipeConstraints `json:"constraints"`
	Inventory    []InventoryItem   `json:"inventory,omitempty"`
	VariantCount int               `json:"variant_count"`
	VariantIndex int               `json:"variant_index"` // 從 1 開始
}

// PantryDefaults 儲存位置與效期預設值
type PantryDefaults struct {
	Location        StorageLocation `json:"location"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
}

// PantryItemSuggestion 分類建議的一個候選
type PantryItemSuggestion struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Location        StorageLocation `json:"location"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	Quantity        string          `json:"quantity"`
}

// Guidance 低信心時給使用者的補充說明
type Guidance struct {
	Message   string   `json:"message"`
	Examples  []string `json:"examples"`
	Reasoning string   `json:"reasoning"`
}

// ConfidenceResult 信心分級結果
// 不變量：accept ⇒ 恰好 1 個建議；choose ⇒ 2-4 個；specify ⇒ 0 個且 guidance 非空
type ConfidenceResult struct {
	Confidence  float64                `json:"confidence"`
	Action      Action                 `json:"action"`
	Suggestions []PantryItemSuggestion `json:"suggestions"`
	Guidance    *Guidance              `json:"guidance,omitempty"`
}

// DetectedItem 圖片偵測到的一項物品
type DetectedItem struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Quantity        string          `json:"quantity"`
	Location        StorageLocation `json:"location"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	Confidence      float64         `json:"confidence"`
}

// Recipe 生成的食譜
type Recipe struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cooking_time"`
	Servings     string   `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	FamilyID     string   `json:"family_id,omitempty"`     // 同一批次共享的關聯識別碼
	VariantIndex int      `json:"variant_index,omitempty"` // 批次內位置，從 1 開始
}

// ReconciliationResult 食譜食材與庫存比對結果
// have 與 missing 互斥，聯集恰好涵蓋未被請求清單排除的所有食材
type ReconciliationResult struct {
	HaveIngredients    []string `json:"have_ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
}

// VariantBatch 多變體生成批次，results 長度保證 ≥ 1
type VariantBatch struct {
	FamilyID string   `json:"family_id"`
	Results  []Recipe `json:"results"`
}

// ShoppingListEntry 購物清單項目
type ShoppingListEntry struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

// FormatInventory 格式化庫存列表，供提示詞與日誌使用
func FormatInventory(items []InventoryItem) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item.Name)
		if item.Quantity != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", item.Quantity))
		}
		if item.DaysUntilExpiry != nil {
			sb.WriteString(fmt.Sprintf("，剩餘 %d 天", *item.DaysUntilExpiry))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatIngredients 格式化食材列表
func FormatIngredients(ingredients []string) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s\n", ing))
	}
	return sb.String()
}
