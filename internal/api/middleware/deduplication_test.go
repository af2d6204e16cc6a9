package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pantry-assistant/internal/infrastructure/config"
	"pantry-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newDedupRouter(window time.Duration) *gin.Engine {
	cfg := &config.Config{DedupWindow: window}
	router := gin.New()
	router.Use(Deduplication(cfg))
	router.POST("/submit", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/status", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func post(router *gin.Engine, body string) int {
	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestDeduplicationBlocksRepeatInWindow(t *testing.T) {
	router := newDedupRouter(time.Minute)

	assert.Equal(t, http.StatusOK, post(router, `{"item_name": "重送測試A"}`))
	assert.Equal(t, http.StatusTooManyRequests, post(router, `{"item_name": "重送測試A"}`))

	// 不同請求體不受影響
	assert.Equal(t, http.StatusOK, post(router, `{"item_name": "重送測試B"}`))
}

func TestDeduplicationConcurrentDuplicatesAdmitOne(t *testing.T) {
	// 同時到達的相同請求只能有一個通過，
	// 檢查與記錄分開上鎖的寫法會讓它們全部通過
	router := newDedupRouter(time.Minute)

	var passed int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if post(router, `{"item_name": "併發重送測試"}`) == http.StatusOK {
				atomic.AddInt64(&passed, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, passed)
}

func TestDeduplicationIgnoresNonPost(t *testing.T) {
	router := newDedupRouter(time.Minute)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestDeduplicationAllowsAfterWindow(t *testing.T) {
	router := newDedupRouter(time.Millisecond)

	assert.Equal(t, http.StatusOK, post(router, `{"item_name": "視窗過期測試"}`))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, http.StatusOK, post(router, `{"item_name": "視窗過期測試"}`))
}
