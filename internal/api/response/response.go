package response

import (
	"net/http"

	"ytsearch-mcp/internal/api/dto"

	"github.com/gin-gonic/gin"
)

// ErrorInfo 错误详情
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorResponse 统一错误响应（仅用于请求校验失败等 HTTP 层错误）
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// Tool 工具调用结果，成功与失败均为 200，由 results / error 字段区分
func Tool(c *gin.Context, resp dto.SearchResponse) {
	c.JSON(http.StatusOK, resp)
}

func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorInfo{
			Code:    statusCode,
			Message: message,
			Type:    errType,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, "BadRequest", message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, "NotFound", message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, "InternalServerError", message)
}
