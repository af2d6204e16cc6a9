package handlers

import (
	"errors"
	"net/http"

	"pantry-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// WriteError 將管線錯誤轉成統一的錯誤響應
// 自定義錯誤帶自己的狀態碼；其餘一律視為上游模型呼叫失敗
func WriteError(c *gin.Context, err error) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, common.ErrorResponse{
			Code:    customErr.Code,
			Message: customErr.Message,
		})
		return
	}

	c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
		Code:    common.ErrCodeAIServiceError,
		Message: "AI 服務錯誤",
	})
}
