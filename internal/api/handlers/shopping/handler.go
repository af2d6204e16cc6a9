package shopping

import (
	"net/http"

	pantryService "pantry-assistant/internal/core/pantry"
	"pantry-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 購物清單處理器
type Handler struct {
	pantrySvc *pantryService.Service
}

// NewHandler 創建處理器
func NewHandler(pantrySvc *pantryService.Service) *Handler {
	return &Handler{pantrySvc: pantrySvc}
}

// ParseRequest 購物行解析請求
type ParseRequest struct {
	Line string `json:"line" binding:"required"`
}

// HandleParse 自由文字行 → 購物清單項目
// 解析失敗時以整行原文保底，永遠回 200
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "line 為必填欄位",
		})
		return
	}

	entry := h.pantrySvc.ParseShoppingLine(c.Request.Context(), req.Line)
	c.JSON(http.StatusOK, entry)
}
