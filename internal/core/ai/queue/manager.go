package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"pantry-assistant/internal/core/ai/openrouter"
	"pantry-assistant/internal/infrastructure/config"
	"pantry-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// request 隊列請求
type request struct {
	ctx       context.Context
	prompt    string
	imageData string
	result    chan result
}

// result 處理結果
type result struct {
	content string
	err     error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 模型呼叫隊列，以固定數量的 worker 限制對外併發
// 多變體的扇出也經由此處，確保不會同時打爆上游
type Manager struct {
	config    *config.Config
	client    *openrouter.Client
	queue     chan *request
	done      chan struct{}
	processed int64
	closeOnce sync.Once
}

// NewManager 創建隊列管理器並啟動 worker
func NewManager(cfg *config.Config, client *openrouter.Client) *Manager {
	m := &Manager{
		config: cfg,
		client: client,
		queue:  make(chan *request, cfg.Queue.MaxSize),
		done:   make(chan struct{}),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		go m.worker(i)
	}

	common.LogInfo("模型呼叫隊列已啟動",
		zap.Int("workers", cfg.Queue.Workers),
		zap.Int("max_size", cfg.Queue.MaxSize),
	)

	return m
}

// worker 處理隊列中的請求
func (m *Manager) worker(id int) {
	for {
		select {
		case <-m.done:
			return
		case req := <-m.queue:
			content, err := m.client.GenerateResponse(req.ctx, req.prompt, req.imageData)
			atomic.AddInt64(&m.processed, 1)
			select {
			case req.result <- result{content: content, err: err}:
			case <-req.ctx.Done():
			}
		}
	}
}

// Submit 提交請求並等待結果
func (m *Manager) Submit(ctx context.Context, prompt string, imageData string) (string, error) {
	req := &request{
		ctx:       ctx,
		prompt:    prompt,
		imageData: imageData,
		result:    make(chan result, 1),
	}

	// 隊列滿時立即拒絕，不阻塞等待空位
	select {
	case m.queue <- req:
	default:
		return "", fmt.Errorf("model call queue is full (max %d)", m.config.Queue.MaxSize)
	}

	select {
	case res := <-req.result:
		return res.content, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetStatus 獲取隊列狀態
func (m *Manager) GetStatus() Status {
	return Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		MaxQueueSize:   m.config.Queue.MaxSize,
		Workers:        m.config.Queue.Workers,
	}
}

// Close 關閉隊列
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}
