package pantry

import (
	"encoding/json"
	"strings"

	"pantry-assistant/internal/pkg/common"
)

// 正規化的預設值與夾取範圍
const (
	defaultConfidence = 0.7
	minExpiryDays     = 1
	maxExpiryDays     = 365
)

// NormalizeSuggestion 將萃取出的物件補齊為完整的信心分級結果
// 欄位缺漏或非法一律以安全預設值補上，不會因 schema 問題失敗
func NormalizeSuggestion(obj map[string]interface{}) *common.ConfidenceResult {
	result := &common.ConfidenceResult{
		Confidence:  clampFloat(getFloat(obj, "confidence", defaultConfidence), 0, 1),
		Action:      common.Action(getString(obj, "action", "")),
		Suggestions: []common.PantryItemSuggestion{},
	}

	if rawList, ok := obj["suggestions"].([]interface{}); ok {
		for _, raw := range rawList {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			result.Suggestions = append(result.Suggestions, normalizeSuggestionItem(item))
		}
	}

	if rawGuidance, ok := obj["guidance"].(map[string]interface{}); ok {
		result.Guidance = &common.Guidance{
			Message:   getString(rawGuidance, "message", "請提供更多描述"),
			Examples:  getStringList(rawGuidance, "examples"),
			Reasoning: getString(rawGuidance, "reasoning", "無法從目前的名稱判斷"),
		}
	}

	return result
}

// normalizeSuggestionItem 補齊單一分類建議
func normalizeSuggestionItem(obj map[string]interface{}) common.PantryItemSuggestion {
	return common.PantryItemSuggestion{
		Name:            getString(obj, "name", "未知物品"),
		Category:        getString(obj, "category", "其他"),
		Location:        normalizeLocation(getString(obj, "location", "")),
		DaysUntilExpiry: clampInt(getInt(obj, "days_until_expiry", 30), minExpiryDays, maxExpiryDays),
		Quantity:        getString(obj, "quantity", "1"),
	}
}

// NormalizeDetectedItems 補齊圖片偵測結果列表
func NormalizeDetectedItems(items []map[string]interface{}) []common.DetectedItem {
	result := make([]common.DetectedItem, 0, len(items))
	for _, obj := range items {
		result = append(result, common.DetectedItem{
			Name:            getString(obj, "name", "未知物品"),
			Category:        getString(obj, "category", "其他"),
			Quantity:        getString(obj, "quantity", "1"),
			Location:        normalizeLocation(getString(obj, "location", "")),
			DaysUntilExpiry: clampInt(getInt(obj, "days_until_expiry", 30), minExpiryDays, maxExpiryDays),
			Confidence:      clampFloat(getFloat(obj, "confidence", defaultConfidence), 0, 1),
		})
	}
	return result
}

// NormalizeRecipe 補齊食譜欄位
// 呼叫端在萃取失敗時不會走到這裡；能走到這裡表示至少解析出一個物件
func NormalizeRecipe(obj map[string]interface{}) *common.Recipe {
	return &common.Recipe{
		Title:        getString(obj, "title", "未命名食譜"),
		Description:  getString(obj, "description", "暫無描述"),
		Ingredients:  getStringList(obj, "ingredients"),
		Instructions: getStringList(obj, "instructions"),
		CookingTime:  getString(obj, "cooking_time", "30分鐘"),
		Servings:     getString(obj, "servings", "2人份"),
		Difficulty:   getString(obj, "difficulty", "簡單"),
	}
}

// NormalizeShoppingEntry 補齊購物清單項目
func NormalizeShoppingEntry(obj map[string]interface{}, line string) common.ShoppingListEntry {
	fallbackName := strings.TrimSpace(line)
	if fallbackName == "" {
		fallbackName = "未知物品"
	}
	return common.ShoppingListEntry{
		Name:     getString(obj, "name", fallbackName),
		Quantity: getString(obj, "quantity", "1"),
		Category: getString(obj, "category", "其他"),
	}
}

// NormalizeDefaults 補齊儲存位置與效期預設值
func NormalizeDefaults(obj map[string]interface{}) common.PantryDefaults {
	return common.PantryDefaults{
		Location:        normalizeLocation(getString(obj, "location", "")),
		DaysUntilExpiry: clampInt(getInt(obj, "days_until_expiry", 30), minExpiryDays, maxExpiryDays),
	}
}

// normalizeLocation 將儲存位置收斂到封閉集合，非法值落到 pantry
func normalizeLocation(raw string) common.StorageLocation {
	loc := common.StorageLocation(strings.ToLower(strings.TrimSpace(raw)))
	if common.ValidLocation(loc) {
		return loc
	}
	return common.LocationPantry
}

// getString 取出字符串欄位，空白或缺漏時回傳預設值
func getString(obj map[string]interface{}, key, def string) string {
	if val, ok := obj[key].(string); ok {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return trimmed
		}
	}
	return def
}

// getFloat 取出數值欄位，缺漏或非數值時回傳預設值
func getFloat(obj map[string]interface{}, key string, def float64) float64 {
	switch val := obj[key].(type) {
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case float64:
		return val
	case int:
		return float64(val)
	}
	return def
}

// getInt 取出整數欄位，缺漏或非數值時回傳預設值
func getInt(obj map[string]interface{}, key string, def int) int {
	switch val := obj[key].(type) {
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(val)
	case int:
		return val
	}
	return def
}

// getStringList 取出字符串列表欄位，永遠回傳非 nil 的切片
func getStringList(obj map[string]interface{}, key string) []string {
	result := []string{}
	if rawList, ok := obj[key].([]interface{}); ok {
		for _, raw := range rawList {
			if s, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					result = append(result, trimmed)
				}
			}
		}
	}
	return result
}

// clampFloat 將數值夾在 [min, max] 區間內
func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampInt 將整數夾在 [min, max] 區間內
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
