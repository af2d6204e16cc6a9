package pantry

import (
	"context"

	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// SuggestItem 依物品名稱產生信心分級的分類建議
// 萃取失敗對此任務是致命的：建議結果沒有可接受的保底值
func (s *Service) SuggestItem(ctx context.Context, itemName string) (*common.ConfidenceResult, error) {
	req := common.GenerationRequest{
		Intent:       common.IntentSuggestion,
		ItemName:     itemName,
		VariantCount: 1,
		VariantIndex: 1,
	}

	raw, err := s.invoker.Invoke(ctx, BuildPrompt(req), "")
	if err != nil {
		return nil, err
	}

	obj, err := ExtractObject(raw)
	if err != nil {
		common.LogWarn("分類建議回應無法解析", zap.String("item", itemName))
		return nil, err
	}

	result := ClassifyConfidence(NormalizeSuggestion(obj), itemName)

	common.LogInfo("分類建議完成",
		zap.String("item", itemName),
		zap.String("action", string(result.Action)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("suggestions", len(result.Suggestions)),
	)

	return result, nil
}
