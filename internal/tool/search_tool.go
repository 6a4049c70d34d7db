package tool

import (
	"bytes"
	"context"
	"fmt"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/apperr"
	"ytsearch-mcp/internal/service"
	"ytsearch-mcp/pkg/jsonx"

	"github.com/gin-gonic/gin/binding"
)

const (
	SearchToolName  = "youtube_search_tool"
	SearchToolAlias = "youtube_search"

	searchToolDescription = "Search YouTube for videos based on a text query. Returns title, link, channel, publish time and view count for each video, in relevance order."
)

// SearchTool YouTube 搜索工具
type SearchTool struct {
	svc     *service.SearchService
	ceiling int
}

// NewSearchTool ceiling 为 max_results 上限，0 表示不限制
func NewSearchTool(svc *service.SearchService, ceiling int) *SearchTool {
	return &SearchTool{svc: svc, ceiling: ceiling}
}

func (t *SearchTool) Name() string {
	return SearchToolName
}

func (t *SearchTool) Aliases() []string {
	return []string{SearchToolAlias}
}

func (t *SearchTool) Description() string {
	return searchToolDescription
}

// Validate 校验请求参数
func (t *SearchTool) Validate(req *dto.SearchRequest) error {
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return &apperr.ValidationError{Err: err}
	}
	if t.ceiling > 0 && req.MaxResults != nil && *req.MaxResults > t.ceiling {
		return &apperr.ValidationError{Err: fmt.Errorf("max_results must be <= %d", t.ceiling)}
	}
	return nil
}

// Call 校验后执行搜索
func (t *SearchTool) Call(ctx context.Context, req *dto.SearchRequest) (dto.SearchResponse, error) {
	if err := t.Validate(req); err != nil {
		return dto.SearchResponse{}, err
	}
	return t.svc.Search(ctx, req), nil
}

func (t *SearchTool) Invoke(ctx context.Context, args jsonx.RawMessage) (dto.SearchResponse, error) {
	var req dto.SearchRequest
	args = bytes.TrimSpace(args)
	if len(args) > 0 && !bytes.Equal(args, []byte("null")) {
		if err := jsonx.Unmarshal(args, &req); err != nil {
			return dto.SearchResponse{}, &apperr.ValidationError{Err: fmt.Errorf("decode args: %w", err)}
		}
	}
	return t.Call(ctx, &req)
}
