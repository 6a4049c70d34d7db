package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/config"
	"ytsearch-mcp/pkg/jsonx"
)

const (
	ytWatchURL     = "https://www.youtube.com/watch?v="
	ytVideosFilter = "EgIQAQ==" // 仅视频
)

var ytInitialDataMarkers = [][]byte{
	[]byte("var ytInitialData = "),
	[]byte(`window["ytInitialData"] = `),
}

var errNoInitialData = errors.New("ytInitialData not found in search page")

// YouTube 直接解析 YouTube 搜索页，无需凭证
type YouTube struct {
	baseURL  string
	language string
	client   *http.Client
}

// NewYouTube 创建 YouTube 搜索页提供方
func NewYouTube(cfg config.YouTubeConfig, client *http.Client) *YouTube {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://www.youtube.com"
	}
	return &YouTube{
		baseURL:  baseURL,
		language: cfg.Language,
		client:   client,
	}
}

func (p *YouTube) Name() string {
	return NameYouTube
}

func (p *YouTube) CheckConfig() error {
	return nil
}

type ytText struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t *ytText) String() string {
	if t == nil {
		return ""
	}
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

type ytVideoRenderer struct {
	VideoID           string  `json:"videoId"`
	Title             *ytText `json:"title"`
	OwnerText         *ytText `json:"ownerText"`
	LongBylineText    *ytText `json:"longBylineText"`
	PublishedTimeText *ytText `json:"publishedTimeText"`
	ViewCountText     *ytText `json:"viewCountText"`
}

type ytInitialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer *struct {
							Contents []struct {
								VideoRenderer *ytVideoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

// Search 抓取搜索结果页并按页面顺序提取 videoRenderer
func (p *YouTube) Search(ctx context.Context, query string, limit int) ([]dto.VideoSummary, error) {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("sp", ytVideosFilter)
	if p.language != "" {
		params.Set("hl", p.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/results?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if p.language != "" {
		req.Header.Set("Accept-Language", p.language+";q=0.9")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))
	}

	raw, err := extractInitialData(body)
	if err != nil {
		return nil, err
	}

	var data ytInitialData
	if err := jsonx.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode ytInitialData: %w", err)
	}
	return mapRenderers(&data, limit), nil
}

func mapRenderers(data *ytInitialData, limit int) []dto.VideoSummary {
	videos := make([]dto.VideoSummary, 0)
	for _, section := range data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		if section.ItemSectionRenderer == nil {
			continue
		}
		for _, item := range section.ItemSectionRenderer.Contents {
			vr := item.VideoRenderer
			if vr == nil || vr.VideoID == "" {
				continue
			}
			title := vr.Title.String()
			if title == "" {
				continue
			}
			channel := vr.OwnerText.String()
			if channel == "" {
				channel = vr.LongBylineText.String()
			}
			videos = append(videos, dto.VideoSummary{
				Title:     title,
				Link:      ytWatchURL + vr.VideoID,
				Channel:   optional(channel),
				Published: optional(vr.PublishedTimeText.String()),
				Views:     optional(vr.ViewCountText.String()),
			})
			if limit > 0 && len(videos) >= limit {
				return videos
			}
		}
	}
	return videos
}

// extractInitialData 定位 ytInitialData 并截取完整的 JSON 对象
func extractInitialData(page []byte) ([]byte, error) {
	for _, marker := range ytInitialDataMarkers {
		idx := bytes.Index(page, marker)
		if idx < 0 {
			continue
		}
		if obj := extractJSONObject(page[idx+len(marker):]); obj != nil {
			return obj, nil
		}
		return nil, errors.New("ytInitialData is not a complete JSON object")
	}
	return nil, errNoInitialData
}

// extractJSONObject 从 b[0] == '{' 开始按括号深度截取对象，忽略字符串内的括号
func extractJSONObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
