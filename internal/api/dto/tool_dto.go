package dto

import (
	"ytsearch-mcp/pkg/jsonx"
)

// RunToolRequest 通用工具调用请求
type RunToolRequest struct {
	Tool string           `json:"tool" binding:"required"`
	Args jsonx.RawMessage `json:"args" swaggertype:"object"`
}

// HealthResponse 健康检查返回
type HealthResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Provider  string   `json:"provider"`
	Tools     []string `json:"tools"`
	Endpoints []string `json:"endpoints,omitempty"`
}

// AliveResponse POST / 的存活确认
type AliveResponse struct {
	Message string `json:"message"`
}
