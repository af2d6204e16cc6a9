package recipe

import (
	"net/http"

	"pantry-assistant/internal/api/handlers"
	pantryService "pantry-assistant/internal/core/pantry"
	"pantry-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜生成處理器
type Handler struct {
	pantrySvc *pantryService.Service
}

// NewHandler 創建處理器
func NewHandler(pantrySvc *pantryService.Service) *Handler {
	return &Handler{pantrySvc: pantrySvc}
}

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Ingredients  []string                 `json:"ingredients" binding:"required,min=1"`
	Constraints  common.RecipeConstraints `json:"constraints"`
	Inventory    []common.InventoryItem   `json:"inventory"`
	VariantCount int                      `json:"variant_count"`
}

// HandleGenerate 食材列表 → 食譜或多變體批次
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "ingredients 為必填欄位，至少一項",
		})
		return
	}

	genReq := common.GenerationRequest{
		Intent:       common.IntentRecipe,
		Ingredients:  req.Ingredients,
		Constraints:  req.Constraints,
		Inventory:    req.Inventory,
		VariantCount: req.VariantCount,
	}

	result, err := h.pantrySvc.GenerateRecipe(c.Request.Context(), genReq)
	if err != nil {
		common.LogError("食譜生成失敗",
			zap.Int("variant_count", req.VariantCount),
			zap.Error(err),
		)
		handlers.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
