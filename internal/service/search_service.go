package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/apperr"
	"ytsearch-mcp/internal/provider"
	"ytsearch-mcp/pkg/logger"

	"go.uber.org/zap"
)

// SearchService YouTube 搜索工具的核心处理逻辑
// 无共享可变状态，可被并发调用
type SearchService struct {
	provider          provider.Provider
	timeout           time.Duration
	defaultMaxResults int
}

// NewSearchService 创建搜索服务，timeout <= 0 时不额外限制提供方调用时间
func NewSearchService(p provider.Provider, timeout time.Duration, defaultMaxResults int) *SearchService {
	if defaultMaxResults < 1 {
		defaultMaxResults = 5
	}
	return &SearchService{
		provider:          p,
		timeout:           timeout,
		defaultMaxResults: defaultMaxResults,
	}
}

// ProviderName 当前使用的提供方
func (s *SearchService) ProviderName() string {
	return s.provider.Name()
}

// DefaultMaxResults 未指定 max_results 时的结果数
func (s *SearchService) DefaultMaxResults() int {
	return s.defaultMaxResults
}

// Search 执行一次搜索，任何失败都转换为 {error} 结果，不向调用方返回错误
func (s *SearchService) Search(ctx context.Context, req *dto.SearchRequest) dto.SearchResponse {
	start := time.Now()
	query := req.QueryText()
	limit := req.Limit(s.defaultMaxResults)

	videos, err := s.search(ctx, query, limit)
	if err != nil {
		logger.Warn("YouTube search failed",
			zap.String("provider", s.provider.Name()),
			zap.String("query", query),
			zap.Int("max_results", limit),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return dto.SearchFailed(err)
	}

	logger.Info("YouTube search completed",
		zap.String("provider", s.provider.Name()),
		zap.String("query", query),
		zap.Int("max_results", limit),
		zap.Int("count", len(videos)),
		zap.Duration("duration", time.Since(start)),
	)
	return dto.SearchOK(query, videos)
}

func (s *SearchService) search(ctx context.Context, query string, limit int) (videos []dto.VideoSummary, err error) {
	if limit < 1 {
		return nil, &apperr.ValidationError{Err: fmt.Errorf("max_results must be >= 1, got %d", limit)}
	}

	// 配置缺失时不发起网络请求
	if err := s.provider.CheckConfig(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Provider panic recovered",
				zap.String("provider", s.provider.Name()),
				zap.Any("panic", r),
			)
			videos = nil
			err = &apperr.ProviderError{Provider: s.provider.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	raw, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		if apperr.IsConfiguration(err) {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		return nil, &apperr.ProviderError{Provider: s.provider.Name(), Err: err}
	}

	if len(raw) > limit {
		raw = raw[:limit]
	}
	return raw, nil
}
