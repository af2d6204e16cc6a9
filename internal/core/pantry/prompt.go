package pantry

import (
	"fmt"
	"strings"

	"pantry-assistant/internal/pkg/common"
)

// BuildPrompt 依任務類型組裝提示詞
// 純函數：相同的請求必定產生逐位元組相同的提示詞，
// 這是快取鍵與黃金測試的前提，不得混入時間戳或隨機內容
func BuildPrompt(req common.GenerationRequest) string {
	switch req.Intent {
	case common.IntentSuggestion:
		return buildSuggestionPrompt(req.ItemName)
	case common.IntentDetection:
		return buildDetectionPrompt()
	case common.IntentRecipe:
		return buildRecipePrompt(req)
	case common.IntentShopping:
		return buildShoppingPrompt(req.Line)
	case common.IntentQuickDefaults:
		return buildDefaultsPrompt(req.ItemName)
	}
	return ""
}

// buildSuggestionPrompt 物品分類建議的提示詞
func buildSuggestionPrompt(itemName string) string {
	return fmt.Sprintf(`你是食材管理助手。請判斷使用者輸入的物品「%s」是什麼食材，並給出分類建議。

請以JSON格式返回，格式如下：
{
    "confidence": 0.9,
    "action": "accept",
    "suggestions": [
        {
            "name": "物品名稱",
            "category": "分類",
            "location": "fridge",
            "days_until_expiry": 7,
            "quantity": "1"
        }
    ],
    "guidance": {
        "message": "說明文字",
        "examples": ["範例1", "範例2"],
        "reasoning": "原因"
    }
}

規則：
1. confidence 為 0 到 1 之間的數值，表示你對判斷的把握
2. action 只能是 accept、choose、specify 三者之一：
   - 非常確定（confidence > 0.8）時用 accept，只給一個建議
   - 有幾種可能（0.4 到 0.8）時用 choose，給 2 到 4 個建議
   - 無法判斷（confidence < 0.4）時用 specify，不給建議，改在 guidance 說明需要什麼資訊
3. location 只能是 pantry、fridge、freezer 三者之一
4. days_until_expiry 為 1 到 365 的整數
5. 只返回JSON，不要有其他文字`, itemName)
}

// buildDetectionPrompt 圖片偵測的提示詞
func buildDetectionPrompt() string {
	return `你是食材管理助手。請辨識圖片中的所有食材與食品。

請以JSON格式返回，格式如下：
[
    {
        "name": "物品名稱",
        "category": "分類",
        "quantity": "數量",
        "location": "fridge",
        "days_until_expiry": 7,
        "confidence": 0.9
    }
]

規則：
1. 每個辨識到的物品一個條目，看不清楚的物品給較低的 confidence
2. location 只能是 pantry、fridge、freezer 三者之一，依該物品的常見保存方式判斷
3. days_until_expiry 為 1 到 365 的整數，估計該物品的剩餘保存天數
4. 只返回JSON陣列，不要有其他文字`
}

// buildRecipePrompt 食譜生成的提示詞，依限制條件附加指引區塊
func buildRecipePrompt(req common.GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString("你是專業廚師。請根據以下食材設計一道食譜。\n\n")
	sb.WriteString("指定食材：\n")
	sb.WriteString(common.FormatIngredients(req.Ingredients))

	// 庫存優先區塊：只在快照非空時加入
	if len(req.Inventory) > 0 {
		sb.WriteString("\n使用者目前的庫存：\n")
		sb.WriteString(common.FormatInventory(req.Inventory))
		sb.WriteString("\n請優先使用庫存中的食材，特別是剩餘 3 天以內即將到期的品項。\n")
	}

	// 複雜度區塊：兩種互斥的寫法
	switch req.Constraints.Complexity {
	case common.ComplexitySophisticated:
		sb.WriteString("\n這道菜請做精緻版本：總時間 45 分鐘以上，可使用進階烹飪技巧，重視擺盤與層次。\n")
	default:
		sb.WriteString("\n這道菜請做快手版本：總時間控制在 15 到 30 分鐘，使用簡單的烹飪技巧。\n")
	}

	if req.Constraints.ServingSize != "" {
		sb.WriteString(fmt.Sprintf("\n份量：%s\n", req.Constraints.ServingSize))
	}
	if len(req.Constraints.DietaryRestrictions) > 0 {
		sb.WriteString(fmt.Sprintf("\n飲食限制：%s\n", strings.Join(req.Constraints.DietaryRestrictions, "、")))
	}

	// 變化區塊：批次中第 2 道之後要求與先前不同
	if req.VariantIndex > 1 {
		sb.WriteString(fmt.Sprintf("\n這是同一批次中的第 %d 道方案，請在烹飪方式、菜系或風味上與其他方案明顯不同。\n", req.VariantIndex))
	}

	sb.WriteString(`
請以JSON格式返回，格式如下：
{
    "title": "菜名",
    "description": "簡短描述",
    "ingredients": ["食材1 份量", "食材2 份量"],
    "instructions": ["步驟1", "步驟2"],
    "cooking_time": "30分鐘",
    "servings": "2人份",
    "difficulty": "簡單"
}

只返回JSON，不要有其他文字`)

	return sb.String()
}

// buildShoppingPrompt 購物清單解析的提示詞
func buildShoppingPrompt(line string) string {
	return fmt.Sprintf(`你是購物清單助手。請解析這行購物需求：「%s」

請以JSON格式返回，格式如下：
{
    "name": "物品名稱",
    "quantity": "數量",
    "category": "分類"
}

規則：
1. name 為去掉數量後的物品名稱
2. quantity 保留原文的數量描述，沒有寫就填 "1"
3. category 為常見的購物分類（如蔬果、肉類、乳製品、日用品）
4. 只返回JSON，不要有其他文字`, line)
}

// buildDefaultsPrompt 儲存位置與效期預設值的提示詞
func buildDefaultsPrompt(itemName string) string {
	return fmt.Sprintf(`你是食材保存專家。請判斷「%s」應該存放在哪裡、大約能放幾天。

請以JSON格式返回，格式如下：
{
    "location": "fridge",
    "days_until_expiry": 7
}

規則：
1. location 只能是 pantry、fridge、freezer 三者之一
2. days_until_expiry 為 1 到 365 的整數
3. 只返回JSON，不要有其他文字`, itemName)
}
