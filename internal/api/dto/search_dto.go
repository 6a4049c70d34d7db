package dto

import (
	"ytsearch-mcp/pkg/jsonx"
)

// SearchRequest 搜索请求参数
// 只校验 query 是否存在，空字符串原样交给提供方
type SearchRequest struct {
	Query      *string `json:"query" binding:"required" jsonschema:"search term, e.g. lofi hip hop"`
	MaxResults *int    `json:"max_results,omitempty" binding:"omitempty,min=1" jsonschema:"maximum number of videos to return (default 5)"`
}

// QueryText 返回查询词，未提供时为空字符串
func (r *SearchRequest) QueryText() string {
	if r.Query == nil {
		return ""
	}
	return *r.Query
}

// Limit 返回有效的结果数上限，未指定时使用 def
func (r *SearchRequest) Limit(def int) int {
	if r.MaxResults == nil {
		return def
	}
	return *r.MaxResults
}

// VideoSummary 单条视频摘要，可选字段缺失时为 null
type VideoSummary struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Channel   *string `json:"channel"`
	Published *string `json:"published"`
	Views     *string `json:"views"`
}

// SearchResponse 搜索结果，成功与失败二选一
// 序列化由 MarshalJSON 决定，tag 仅用于文档生成
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []VideoSummary `json:"results"`
	Error   string         `json:"error"`
}

// SearchOK 构造成功结果
func SearchOK(query string, results []VideoSummary) SearchResponse {
	if results == nil {
		results = []VideoSummary{}
	}
	return SearchResponse{Query: query, Results: results}
}

// SearchFailed 构造失败结果
func SearchFailed(err error) SearchResponse {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return SearchResponse{Error: msg}
}

// Failed 是否为失败结果
func (r SearchResponse) Failed() bool {
	return r.Error != ""
}

type searchSuccessBody struct {
	Query   string         `json:"query"`
	Results []VideoSummary `json:"results"`
}

type searchErrorBody struct {
	Error string `json:"error"`
}

func (r SearchResponse) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return jsonx.Marshal(searchErrorBody{Error: r.Error})
	}
	results := r.Results
	if results == nil {
		results = []VideoSummary{}
	}
	return jsonx.Marshal(searchSuccessBody{Query: r.Query, Results: results})
}

func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var body struct {
		Query   string         `json:"query"`
		Results []VideoSummary `json:"results"`
		Error   *string        `json:"error"`
	}
	if err := jsonx.Unmarshal(data, &body); err != nil {
		return err
	}
	if body.Error != nil {
		*r = SearchResponse{Error: *body.Error}
		return nil
	}
	*r = SearchOK(body.Query, body.Results)
	return nil
}
