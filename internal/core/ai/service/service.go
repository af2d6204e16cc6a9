package service

import (
	"context"
	"time"

	"pantry-assistant/internal/core/ai/cache"
	"pantry-assistant/internal/core/ai/openrouter"
	"pantry-assistant/internal/core/ai/queue"
	"pantry-assistant/internal/infrastructure/config"
	"pantry-assistant/internal/pkg/common"
)

// Service AI 服務門面：快取 → 隊列 → OpenRouter
// 作為核心管線的模型呼叫能力注入，核心不持有任何行程級狀態
type Service struct {
	config       *config.Config
	queueManager *queue.Manager
	cacheManager *cache.Manager
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	client := openrouter.NewClient(cfg)
	queueManager := queue.NewManager(cfg, client)

	return &Service{
		config:       cfg,
		queueManager: queueManager,
		cacheManager: cacheManager,
	}
}

// Invoke 呼叫生成模型，imageData 僅在圖片偵測時使用
// 實作 pantry.ModelInvoker
func (s *Service) Invoke(ctx context.Context, prompt string, imageData string) (string, error) {
	// 檢查緩存
	if s.config.Cache.Enabled && s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, prompt, imageData); err == nil && val != "" {
			return val, nil
		}
	}

	start := time.Now()
	content, err := s.queueManager.Submit(ctx, prompt, imageData)
	common.LogAICall(time.Since(start), err)
	if err != nil {
		return "", err
	}

	if s.config.Cache.Enabled && s.cacheManager != nil {
		_ = s.cacheManager.Set(ctx, prompt, imageData, content)
	}

	return content, nil
}

// QueueStatus 獲取模型呼叫隊列狀態
func (s *Service) QueueStatus() queue.Status {
	return s.queueManager.GetStatus()
}

// Close 關閉服務
func (s *Service) Close() {
	s.queueManager.Close()
}
