package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"pantry-assistant/internal/infrastructure/config"
	"pantry-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 請求指紋緩存，用於短視窗去重
// 過期指紋在寫入時順手清理，不另開背景協程
var requestCache = struct {
	sync.Mutex
	requests  map[string]time.Time
	lastSweep time.Time
}{
	requests: make(map[string]time.Time),
}

// Deduplication 請求去重中間件
// 同一個 POST 請求體在去重視窗內重送會被擋下，
// 避免連點或重試把同一段文字重複送進模型
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	window := 1 * time.Second
	if cfg != nil && cfg.DedupWindow > 0 {
		window = cfg.DedupWindow
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		// 檢查與記錄必須在同一把鎖內，
		// 否則兩個同時到達的相同請求會一起通過
		now := time.Now()
		requestCache.Lock()
		if lastTime, exists := requestCache.requests[fingerprint]; exists && now.Sub(lastTime) <= window {
			requestCache.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Request too frequent",
				"code":  common.ErrCodeTooManyRequests,
			})
			c.Abort()
			return
		}
		requestCache.requests[fingerprint] = now

		// 順手清理過期指紋
		if now.Sub(requestCache.lastSweep) > 10*window {
			for k, t := range requestCache.requests {
				if now.Sub(t) > window {
					delete(requestCache.requests, k)
				}
			}
			requestCache.lastSweep = now
		}
		requestCache.Unlock()

		c.Next()
	}
}
