package pantry

import (
	"context"

	"pantry-assistant/internal/infrastructure/config"
)

// ModelInvoker 生成模型呼叫能力，由 AI 服務層注入
// 核心不持有客戶端實例，也不管理其生命週期
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string, imageData string) (string, error)
}

// Service 萃取與比對管線的統一入口
// 所有狀態都是每次請求建立的，Service 本身無可變狀態
type Service struct {
	invoker ModelInvoker
	config  *config.Config
}

// NewService 創建管線服務
func NewService(cfg *config.Config, invoker ModelInvoker) *Service {
	return &Service{
		invoker: invoker,
		config:  cfg,
	}
}
