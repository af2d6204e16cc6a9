package pantry

import (
	"strings"

	"pantry-assistant/internal/pkg/common"
)

// 各儲存位置的預設效期（天）
const (
	fridgeExpiryDays  = 7
	pantryExpiryDays  = 30
	freezerExpiryDays = 90
)

// 關鍵字詞典：名稱含這些字樣時判定為冷藏或冷凍
// 中英文都收，輸入端兩種語言都會出現
var fridgeKeywords = []string{
	"milk", "cheese", "yogurt", "butter", "cream", "egg",
	"meat", "chicken", "pork", "beef", "fish", "tofu",
	"牛奶", "鮮奶", "起司", "乳酪", "優格", "奶油", "蛋",
	"肉", "雞", "豬", "牛", "魚", "豆腐", "鮮",
}

var freezerKeywords = []string{
	"frozen", "ice cream", "冷凍", "冰淇淋", "雪糕",
}

// FallbackDefaults 不經模型的儲存位置與效期推斷
// 萃取失敗時的無條件安全網：純關鍵字包含比對，永遠給出一個可用的結果
func FallbackDefaults(itemName string) common.PantryDefaults {
	folded := strings.ToLower(strings.TrimSpace(itemName))

	for _, kw := range freezerKeywords {
		if strings.Contains(folded, kw) {
			return common.PantryDefaults{
				Location:        common.LocationFreezer,
				DaysUntilExpiry: freezerExpiryDays,
			}
		}
	}

	for _, kw := range fridgeKeywords {
		if strings.Contains(folded, kw) {
			return common.PantryDefaults{
				Location:        common.LocationFridge,
				DaysUntilExpiry: fridgeExpiryDays,
			}
		}
	}

	return common.PantryDefaults{
		Location:        common.LocationPantry,
		DaysUntilExpiry: pantryExpiryDays,
	}
}

// FallbackShoppingEntry 購物行解析失敗時的保底結果
// 整行原樣當作名稱，數量與分類給最保守的預設值
func FallbackShoppingEntry(line string) common.ShoppingListEntry {
	name := strings.TrimSpace(line)
	if name == "" {
		name = "未知物品"
	}
	return common.ShoppingListEntry{
		Name:     name,
		Quantity: "1",
		Category: "其他",
	}
}
