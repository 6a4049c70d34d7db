package router

import (
	"net/http"

	"ytsearch-mcp/internal/api/handler"
	"ytsearch-mcp/internal/api/middleware"
	"ytsearch-mcp/internal/api/response"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// New 创建 Gin 路由器并注册全部路由
func New(
	healthHandler *handler.HealthHandler,
	toolHandler *handler.ToolHandler,
	mcpHandler http.Handler,
) *gin.Engine {
	// 不使用默认中间件
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	Setup(r, healthHandler, toolHandler, mcpHandler)
	return r
}

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	healthHandler *handler.HealthHandler,
	toolHandler *handler.ToolHandler,
	mcpHandler http.Handler,
) {
	// --- 基础路由 ---
	r.GET("/", healthHandler.Status)
	r.POST("/", healthHandler.Alive)
	r.GET("/healthz", healthHandler.Status)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- MCP 工具 ---
	tools := r.Group("/mcp")
	{
		tools.POST("/youtube_search", toolHandler.YouTubeSearch)
		tools.POST("/youtube_search_tool", toolHandler.YouTubeSearch)
		tools.POST("/run_tool", toolHandler.RunTool)
	}

	// MCP Streamable HTTP 传输
	if mcpHandler != nil {
		mcp := gin.WrapH(mcpHandler)
		r.GET("/mcp", mcp)
		r.POST("/mcp", mcp)
		r.DELETE("/mcp", mcp)
	}
}
