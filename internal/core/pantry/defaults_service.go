package pantry

import (
	"context"

	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// QuickDefaults 依物品名稱給出儲存位置與效期預設值
// 高頻低風險任務：模型呼叫或解析失敗一律走關鍵字保底，不會失敗
func (s *Service) QuickDefaults(ctx context.Context, itemName string) common.PantryDefaults {
	req := common.GenerationRequest{
		Intent:       common.IntentQuickDefaults,
		ItemName:     itemName,
		VariantCount: 1,
		VariantIndex: 1,
	}

	raw, err := s.invoker.Invoke(ctx, BuildPrompt(req), "")
	if err != nil {
		common.LogWarn("預設值模型呼叫失敗，使用保底規則",
			zap.String("item", itemName),
			zap.Error(err),
		)
		return FallbackDefaults(itemName)
	}

	obj, err := ExtractObject(raw)
	if err != nil {
		common.LogWarn("預設值回應無法解析，使用保底規則", zap.String("item", itemName))
		return FallbackDefaults(itemName)
	}

	return NormalizeDefaults(obj)
}
