// Package provider 外部视频搜索提供方适配层
package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/config"
)

const (
	NameSerpAPI = "serpapi"
	NameYouTube = "youtube"

	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxErrorBody   = 512
	maxPayloadSize = 4 * 1024 * 1024
)

// Provider 视频搜索能力，与具体提供方无关
type Provider interface {
	// Name 提供方名称，用于日志与错误信息
	Name() string
	// CheckConfig 检查调用所需配置，不发起网络请求
	CheckConfig() error
	// Search 按相关度顺序返回结果，limit 仅作为提示，调用方负责截断
	Search(ctx context.Context, query string, limit int) ([]dto.VideoSummary, error)
}

// New 根据配置选择提供方
func New(cfg config.SearchConfig, client *http.Client) (Provider, error) {
	if client == nil {
		client = NewHTTPClient(cfg.Timeout())
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case NameSerpAPI, "":
		return NewSerpAPI(cfg.SerpAPI, client), nil
	case NameYouTube:
		return NewYouTube(cfg.YouTube, client), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.Provider)
	}
}

// NewHTTPClient 带连接池的 HTTP 客户端，所有请求共用
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
