package pantry

import (
	"fmt"

	"pantry-assistant/internal/pkg/common"
)

// 信心分級邊界
const (
	acceptThreshold  = 0.8 // confidence > 0.8 ⇒ accept
	specifyThreshold = 0.4 // confidence < 0.4 ⇒ specify
)

// ClassifyConfidence 依信心值校正分級結果
// 模型自報的 action 可能與自己的 confidence 矛盾（例如 confidence 0.3
// 卻說 accept），一律以信心值決定分級，並強制建議數量符合各分級的約定：
// accept 恰好 1 個、choose 2-4 個、specify 0 個且附 guidance
func ClassifyConfidence(result *common.ConfidenceResult, itemName string) *common.ConfidenceResult {
	switch {
	case result.Confidence > acceptThreshold:
		result.Action = common.ActionAccept
	case result.Confidence < specifyThreshold:
		result.Action = common.ActionSpecify
	default:
		result.Action = common.ActionChoose
	}

	switch result.Action {
	case common.ActionAccept:
		if len(result.Suggestions) == 0 {
			// 高信心卻沒給建議，降級為 specify
			result.Action = common.ActionSpecify
		} else {
			result.Suggestions = result.Suggestions[:1]
			result.Guidance = nil
		}
	case common.ActionChoose:
		if len(result.Suggestions) < 2 {
			// 候選不足以構成選擇，降級為 specify
			result.Action = common.ActionSpecify
		} else {
			if len(result.Suggestions) > 4 {
				result.Suggestions = result.Suggestions[:4]
			}
			result.Guidance = nil
		}
	}

	if result.Action == common.ActionSpecify {
		result.Suggestions = []common.PantryItemSuggestion{}
		if result.Guidance == nil {
			result.Guidance = defaultGuidance(itemName)
		}
	}

	return result
}

// defaultGuidance 模型沒附 guidance 時的補充說明
func defaultGuidance(itemName string) *common.Guidance {
	return &common.Guidance{
		Message:   fmt.Sprintf("無法確定「%s」是什麼，請補充更多描述", itemName),
		Examples:  []string{"品牌名稱", "包裝形式", "大概的分量"},
		Reasoning: "名稱太簡短或不常見，無法可靠分類",
	}
}
