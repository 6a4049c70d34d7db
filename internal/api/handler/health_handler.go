package handler

import (
	"net/http"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/config"
	"ytsearch-mcp/internal/tool"
	"ytsearch-mcp/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const aliveMessage = "MCP Server is alive..."

var endpoints = []string{
	"GET /",
	"POST /mcp/youtube_search",
	"POST /mcp/youtube_search_tool",
	"POST /mcp/run_tool",
	"POST /mcp",
}

type HealthHandler struct {
	app      config.AppConfig
	provider string
	registry *tool.Registry
}

func NewHealthHandler(app config.AppConfig, provider string, registry *tool.Registry) *HealthHandler {
	return &HealthHandler{app: app, provider: provider, registry: registry}
}

// Status 服务状态
// 不访问搜索提供方，与提供方配置是否完整无关
// @Summary 服务状态
// @Description 返回服务状态与已注册工具
// @Tags 系统
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *HealthHandler) Status(c *gin.Context) {
	logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "running",
		Service:   h.app.Name,
		Version:   h.app.Version,
		Provider:  h.provider,
		Tools:     h.registry.Names(),
		Endpoints: endpoints,
	})
}

// Alive 存活确认
// @Summary 存活确认
// @Tags 系统
// @Produce json
// @Success 200 {object} dto.AliveResponse
// @Router / [post]
func (h *HealthHandler) Alive(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AliveResponse{Message: aliveMessage})
}
