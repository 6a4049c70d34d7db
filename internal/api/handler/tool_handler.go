package handler

import (
	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/api/response"
	"ytsearch-mcp/internal/apperr"
	"ytsearch-mcp/internal/tool"
	"ytsearch-mcp/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ToolHandler struct {
	searchTool *tool.SearchTool
	registry   *tool.Registry
}

func NewToolHandler(searchTool *tool.SearchTool, registry *tool.Registry) *ToolHandler {
	return &ToolHandler{searchTool: searchTool, registry: registry}
}

// YouTubeSearch 搜索 YouTube 视频
// @Summary 搜索 YouTube 视频
// @Description 按关键词搜索视频，按相关度返回前 max_results 条；失败时同样返回 200，body 为 {"error": "..."}
// @Tags 工具
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "搜索参数"
// @Success 200 {object} dto.SearchResponse "搜索结果或错误"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /mcp/youtube_search [post]
func (h *ToolHandler) YouTubeSearch(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	resp, err := h.searchTool.Call(c.Request.Context(), &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Tool(c, resp)
}

// RunTool 按名称调用工具
// @Summary 按名称调用工具
// @Description tool 为已注册的工具名，args 为该工具的参数；未知工具返回 {"error": "Unknown tool '<name>'"}
// @Tags 工具
// @Accept json
// @Produce json
// @Param request body dto.RunToolRequest true "工具名与参数"
// @Success 200 {object} dto.SearchResponse "工具结果或错误"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /mcp/run_tool [post]
func (h *ToolHandler) RunTool(c *gin.Context) {
	var req dto.RunToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	resp, err := h.registry.Run(c.Request.Context(), req.Tool, req.Args)
	if err != nil {
		if apperr.IsValidation(err) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("Run tool failed", zap.String("tool", req.Tool), zap.Error(err))
		response.InternalError(c, err.Error())
		return
	}
	response.Tool(c, resp)
}
