package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/apperr"
	"ytsearch-mcp/internal/config"
	"ytsearch-mcp/pkg/jsonx"
	"ytsearch-mcp/pkg/logger"

	"go.uber.org/zap"
)

// SerpAPI 搜索聚合 API 的 YouTube 视频垂类
type SerpAPI struct {
	apiKey  string
	baseURL string
	engine  string
	client  *http.Client
}

// NewSerpAPI 创建 SerpAPI 提供方
func NewSerpAPI(cfg config.SerpAPIConfig, client *http.Client) *SerpAPI {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}
	engine := cfg.Engine
	if engine == "" {
		engine = "youtube"
	}
	return &SerpAPI{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		engine:  engine,
		client:  client,
	}
}

func (p *SerpAPI) Name() string {
	return NameSerpAPI
}

func (p *SerpAPI) CheckConfig() error {
	if p.apiKey == "" {
		return &apperr.ConfigurationError{Name: config.EnvSerpAPIKey}
	}
	return nil
}

type serpAPIResponse struct {
	Error        string           `json:"error"`
	VideoResults jsonx.RawMessage `json:"video_results"`
}

type serpAPIVideo struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Channel *struct {
		Name string `json:"name"`
	} `json:"channel"`
	PublishedDate string           `json:"published_date"`
	Views         jsonx.RawMessage `json:"views"`
}

// Search 调用 /search.json，返回 video_results 中的视频
func (p *SerpAPI) Search(ctx context.Context, query string, limit int) ([]dto.VideoSummary, error) {
	if err := p.CheckConfig(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", p.engine)
	params.Set("search_query", query)
	params.Set("api_key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		// 避免 api_key 出现在错误信息里
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("request failed: %w", uerr.Err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var payload serpAPIResponse
	decodeErr := jsonx.Unmarshal(body, &payload)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && payload.Error != "" {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, payload.Error)
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	if payload.Error != "" {
		if isNoResults(payload.Error) {
			return []dto.VideoSummary{}, nil
		}
		return nil, fmt.Errorf("provider error: %s", payload.Error)
	}

	return p.mapVideos(payload.VideoResults, limit), nil
}

func (p *SerpAPI) mapVideos(raw jsonx.RawMessage, limit int) []dto.VideoSummary {
	var records []jsonx.RawMessage
	if len(raw) == 0 || jsonx.Unmarshal(raw, &records) != nil {
		return []dto.VideoSummary{}
	}

	videos := make([]dto.VideoSummary, 0, len(records))
	for i, rec := range records {
		if limit > 0 && len(videos) >= limit {
			break
		}
		var v serpAPIVideo
		if err := jsonx.Unmarshal(rec, &v); err != nil {
			logger.Debug("serpapi: skip malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		if v.Title == "" || v.Link == "" {
			logger.Debug("serpapi: skip record without title or link", zap.Int("index", i))
			continue
		}
		summary := dto.VideoSummary{
			Title:     v.Title,
			Link:      v.Link,
			Published: optional(v.PublishedDate),
			Views:     viewsText(v.Views),
		}
		if v.Channel != nil {
			summary.Channel = optional(v.Channel.Name)
		}
		videos = append(videos, summary)
	}
	return videos
}

// viewsText 观看数可能是数字或文本，统一为文本
func viewsText(raw jsonx.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := jsonx.Unmarshal(raw, &s); err == nil {
		return optional(s)
	}
	var n jsonx.Number
	if err := jsonx.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return optional(strconv.FormatInt(i, 10))
		}
		return optional(n.String())
	}
	return nil
}

func isNoResults(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "hasn't returned any results")
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return strings.TrimSpace(string(body))
}
