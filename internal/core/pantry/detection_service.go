package pantry

import (
	"context"

	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// DetectItems 從圖片辨識食材列表，imageData 為已驗證的 data URI
// 萃取失敗對此任務是致命的：偵測結果沒有可接受的保底值
func (s *Service) DetectItems(ctx context.Context, imageData string) ([]common.DetectedItem, error) {
	req := common.GenerationRequest{
		Intent:       common.IntentDetection,
		VariantCount: 1,
		VariantIndex: 1,
	}

	raw, err := s.invoker.Invoke(ctx, BuildPrompt(req), imageData)
	if err != nil {
		return nil, err
	}

	arr, err := ExtractArray(raw)
	if err != nil {
		common.LogWarn("圖片偵測回應無法解析")
		return nil, err
	}

	items := NormalizeDetectedItems(arr)
	common.LogInfo("圖片偵測完成", zap.Int("items", len(items)))
	return items, nil
}
