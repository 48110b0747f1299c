package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse 統一的 API 響應包裝
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondOK 回傳成功響應
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// RespondError 依錯誤分類回傳對應的狀態碼與錯誤訊息
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case IsValidationError(err):
		status = http.StatusBadRequest
	case IsNotFound(err):
		status = http.StatusNotFound
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// RespondErrorWithStatus 以指定狀態碼回傳錯誤訊息
func RespondErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   message,
	})
}
