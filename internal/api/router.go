package api

import (
	"context"
	"net/http"
	"time"

	"pantry-assistant/internal/api/handlers/health"
	pantryHandler "pantry-assistant/internal/api/handlers/pantry"
	recipeHandler "pantry-assistant/internal/api/handlers/recipe"
	shoppingHandler "pantry-assistant/internal/api/handlers/shopping"
	"pantry-assistant/internal/api/middleware"
	"pantry-assistant/internal/core/ai/cache"
	aiService "pantry-assistant/internal/core/ai/service"
	imageService "pantry-assistant/internal/core/image"
	pantryService "pantry-assistant/internal/core/pantry"
	"pantry-assistant/internal/infrastructure/config"
	"pantry-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 模型呼叫含排隊可能很慢，逾時放寬到兩分鐘
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)，圖片偵測的 base64 需要這個量級
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, *aiService.Service, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制與去重
	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))

	// 限流：管線假設進來的請求都已通過額度檢查
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務：AI 門面 → 圖片驗證 → 萃取管線
	ai := aiService.NewService(cfg, cacheManager)
	imageSvc := imageService.NewService(cfg.Image.MaxSizeBytes)
	pantrySvc := pantryService.NewService(cfg, ai)

	// 全局中間件：請求逾時與健康檢查用的依賴注入
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("ai_service", ai)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		pantryH := pantryHandler.NewHandler(pantrySvc, imageSvc)
		recipeH := recipeHandler.NewHandler(pantrySvc)
		shoppingH := shoppingHandler.NewHandler(pantrySvc)

		pantryGroup := api.Group("/pantry")
		{
			// 物品分類建議
			pantryGroup.POST("/suggest", pantryH.HandleSuggest)

			// 儲存位置與效期預設值
			pantryGroup.POST("/defaults", pantryH.HandleQuickDefaults)

			// 圖片食材偵測
			pantryGroup.POST("/detect", pantryH.HandleDetect)
		}

		recipeGroup := api.Group("/recipe")
		{
			// 食譜生成（含多變體與庫存比對）
			recipeGroup.POST("/generate", recipeH.HandleGenerate)
		}

		shoppingGroup := api.Group("/shopping")
		{
			// 購物行解析
			shoppingGroup.POST("/parse", shoppingH.HandleParse)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, ai, nil
}
