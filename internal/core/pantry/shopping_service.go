package pantry

import (
	"context"

	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// ParseShoppingLine 解析一行自由文字的購物需求
// 與預設值任務同屬低風險：任何失敗都以整行原文保底，不會失敗
func (s *Service) ParseShoppingLine(ctx context.Context, line string) common.ShoppingListEntry {
	req := common.GenerationRequest{
		Intent:       common.IntentShopping,
		Line:         line,
		VariantCount: 1,
		VariantIndex: 1,
	}

	raw, err := s.invoker.Invoke(ctx, BuildPrompt(req), "")
	if err != nil {
		common.LogWarn("購物行模型呼叫失敗，使用保底規則",
			zap.String("line", line),
			zap.Error(err),
		)
		return FallbackShoppingEntry(line)
	}

	obj, err := ExtractObject(raw)
	if err != nil {
		common.LogWarn("購物行回應無法解析，使用保底規則", zap.String("line", line))
		return FallbackShoppingEntry(line)
	}

	return NormalizeShoppingEntry(obj, line)
}
