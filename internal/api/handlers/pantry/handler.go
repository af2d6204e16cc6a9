package pantry

import (
	"net/http"

	"pantry-assistant/internal/api/handlers"
	imageService "pantry-assistant/internal/core/image"
	pantryService "pantry-assistant/internal/core/pantry"
	"pantry-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食材管理處理器
type Handler struct {
	pantrySvc *pantryService.Service
	imageSvc  *imageService.Service
}

// NewHandler 創建處理器
func NewHandler(pantrySvc *pantryService.Service, imageSvc *imageService.Service) *Handler {
	return &Handler{
		pantrySvc: pantrySvc,
		imageSvc:  imageSvc,
	}
}

// SuggestRequest 分類建議請求
type SuggestRequest struct {
	ItemName string `json:"item_name" binding:"required"`
}

// HandleSuggest 物品名稱 → 信心分級的分類建議
func (h *Handler) HandleSuggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "item_name 為必填欄位",
		})
		return
	}

	result, err := h.pantrySvc.SuggestItem(c.Request.Context(), req.ItemName)
	if err != nil {
		common.LogError("分類建議失敗",
			zap.String("item", req.ItemName),
			zap.Error(err),
		)
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DefaultsRequest 預設值請求
type DefaultsRequest struct {
	ItemName string `json:"item_name" binding:"required"`
}

// HandleQuickDefaults 物品名稱 → 儲存位置與效期預設值
// 這條路有保底規則，永遠回 200
func (h *Handler) HandleQuickDefaults(c *gin.Context) {
	var req DefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "item_name 為必填欄位",
		})
		return
	}

	defaults := h.pantrySvc.QuickDefaults(c.Request.Context(), req.ItemName)
	c.JSON(http.StatusOK, defaults)
}

// DetectRequest 圖片偵測請求，image 可為 URL、data URI 或裸 base64
type DetectRequest struct {
	Image string `json:"image" binding:"required"`
}

// DetectResponse 圖片偵測響應
type DetectResponse struct {
	Items []common.DetectedItem `json:"items"`
}

// HandleDetect 圖片 → 偵測到的物品列表
func (h *Handler) HandleDetect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "image 為必填欄位",
		})
		return
	}

	// 先驗證並標準化圖片，格式不在白名單直接擋下
	dataURI, err := h.imageSvc.ProcessImage(req.Image)
	if err != nil {
		handlers.WriteError(c, err)
		return
	}

	items, err := h.pantrySvc.DetectItems(c.Request.Context(), dataURI)
	if err != nil {
		common.LogError("圖片偵測失敗", zap.Error(err))
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, DetectResponse{Items: items})
}
