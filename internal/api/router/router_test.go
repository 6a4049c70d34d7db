package router

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "ytsearch-mcp/api/openapi"
	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/api/handler"
	"ytsearch-mcp/internal/config"
	"ytsearch-mcp/internal/provider"
	"ytsearch-mcp/internal/service"
	"ytsearch-mcp/internal/tool"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeSerpAPI 返回 n 条视频的 SerpAPI 假服务
func fakeSerpAPI(t *testing.T, n int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var buf bytes.Buffer
		buf.WriteString(`{"video_results":[`)
		for i := 1; i <= n; i++ {
			if i > 1 {
				buf.WriteString(",")
			}
			fmt.Fprintf(&buf, `{"title":"video %d","link":"https://www.youtube.com/watch?v=id%09d","channel":{"name":"channel %d"},"published_date":"%d days ago","views":%d}`, i, i, i, i, i*1000)
		}
		buf.WriteString(`]}`)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestRouter(t *testing.T, baseURL, apiKey string) *gin.Engine {
	t.Helper()
	cfg := config.SearchConfig{
		Provider:          provider.NameSerpAPI,
		TimeoutSeconds:    5,
		DefaultMaxResults: 5,
		MaxResultsCeiling: 50,
		SerpAPI:           config.SerpAPIConfig{APIKey: apiKey, BaseURL: baseURL},
	}
	p, err := provider.New(cfg, provider.NewHTTPClient(cfg.Timeout()))
	require.NoError(t, err)

	svc := service.NewSearchService(p, cfg.Timeout(), cfg.DefaultMaxResults)
	searchTool := tool.NewSearchTool(svc, cfg.MaxResultsCeiling)
	registry := tool.NewRegistry()
	require.NoError(t, registry.Register(searchTool))

	app := config.AppConfig{Name: "youtube-mcp-server", Version: "test"}
	return New(
		handler.NewHealthHandler(app, p.Name(), registry),
		handler.NewToolHandler(searchTool, registry),
		tool.NewMCPHandler(tool.NewMCPServer(searchTool, app.Name, app.Version)),
	)
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatusNeverCallsProvider(t *testing.T) {
	srv, calls := fakeSerpAPI(t, 5)
	r := newTestRouter(t, srv.URL, "")

	for _, path := range []string{"/", "/healthz"} {
		w := do(r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"status": "running",
			"service": "youtube-mcp-server",
			"version": "test",
			"provider": "serpapi",
			"tools": ["youtube_search_tool"],
			"endpoints": ["GET /", "POST /mcp/youtube_search", "POST /mcp/youtube_search_tool", "POST /mcp/run_tool", "POST /mcp"]
		}`, w.Body.String())
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestAlive(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1", "key")

	w := do(r, http.MethodPost, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"MCP Server is alive..."}`, w.Body.String())
}

func TestRunToolUnknown(t *testing.T) {
	srv, calls := fakeSerpAPI(t, 5)
	r := newTestRouter(t, srv.URL, "key")

	w := do(r, http.MethodPost, "/mcp/run_tool", `{"tool":"unknown_tool","args":{}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"Unknown tool 'unknown_tool'"}`, w.Body.String())
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestRunToolSearch(t *testing.T) {
	srv, calls := fakeSerpAPI(t, 5)
	r := newTestRouter(t, srv.URL, "key")

	w := do(r, http.MethodPost, "/mcp/run_tool", `{"tool":"youtube_search_tool","args":{"query":"lofi","max_results":2}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"query": "lofi",
		"results": [
			{"title":"video 1","link":"https://www.youtube.com/watch?v=id000000001","channel":"channel 1","published":"1 days ago","views":"1000"},
			{"title":"video 2","link":"https://www.youtube.com/watch?v=id000000002","channel":"channel 2","published":"2 days ago","views":"2000"}
		]
	}`, w.Body.String())
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestYouTubeSearchRoutes(t *testing.T) {
	srv, _ := fakeSerpAPI(t, 8)
	r := newTestRouter(t, srv.URL, "key")

	for _, path := range []string{"/mcp/youtube_search", "/mcp/youtube_search_tool"} {
		t.Run(path, func(t *testing.T) {
			w := do(r, http.MethodPost, path, `{"query":"lofi"}`)
			require.Equal(t, http.StatusOK, w.Code)

			var resp dto.SearchResponse
			require.NoError(t, resp.UnmarshalJSON(w.Body.Bytes()))
			require.False(t, resp.Failed())
			assert.Equal(t, "lofi", resp.Query)
			require.Len(t, resp.Results, 5)
			for i, v := range resp.Results {
				assert.Equal(t, fmt.Sprintf("video %d", i+1), v.Title)
			}
		})
	}
}

func TestYouTubeSearchZeroResults(t *testing.T) {
	srv, _ := fakeSerpAPI(t, 0)
	r := newTestRouter(t, srv.URL, "key")

	w := do(r, http.MethodPost, "/mcp/youtube_search", `{"query":"zzzz","max_results":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"query":"zzzz","results":[]}`, w.Body.String())
}

func TestYouTubeSearchMissingKey(t *testing.T) {
	srv, calls := fakeSerpAPI(t, 5)
	r := newTestRouter(t, srv.URL, "")

	w := do(r, http.MethodPost, "/mcp/youtube_search", `{"query":"lofi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"Missing SERPAPI_API_KEY"}`, w.Body.String())
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestYouTubeSearchProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	r := newTestRouter(t, srv.URL, "key")

	w := do(r, http.MethodPost, "/mcp/youtube_search", `{"query":"lofi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SearchResponse
	require.NoError(t, resp.UnmarshalJSON(w.Body.Bytes()))
	require.True(t, resp.Failed())
	assert.Contains(t, resp.Error, "status 502")
}

func TestYouTubeSearchSlowProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	p := provider.NewSerpAPI(config.SerpAPIConfig{APIKey: "key", BaseURL: srv.URL}, http.DefaultClient)
	svc := service.NewSearchService(p, 50*time.Millisecond, 5)
	searchTool := tool.NewSearchTool(svc, 0)
	registry := tool.NewRegistry()
	require.NoError(t, registry.Register(searchTool))
	r := New(
		handler.NewHealthHandler(config.AppConfig{}, p.Name(), registry),
		handler.NewToolHandler(searchTool, registry),
		nil,
	)

	w := do(r, http.MethodPost, "/mcp/youtube_search", `{"query":"lofi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
	assert.Contains(t, w.Body.String(), "timed out")
}

func TestYouTubeSearchEmptyQueryPassesThrough(t *testing.T) {
	srv, calls := fakeSerpAPI(t, 2)
	r := newTestRouter(t, srv.URL, "key")

	w := do(r, http.MethodPost, "/mcp/youtube_search", `{"query":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.SearchResponse
	require.NoError(t, resp.UnmarshalJSON(w.Body.Bytes()))
	assert.False(t, resp.Failed())
	assert.Equal(t, "", resp.Query)
	assert.Len(t, resp.Results, 2)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestValidationErrors(t *testing.T) {
	srv, calls := fakeSerpAPI(t, 5)
	r := newTestRouter(t, srv.URL, "key")

	tests := []struct {
		name string
		path string
		body string
	}{
		{"search missing query", "/mcp/youtube_search", `{"max_results":2}`},
		{"search null query", "/mcp/youtube_search", `{"query":null}`},
		{"search zero max_results", "/mcp/youtube_search", `{"query":"lofi","max_results":0}`},
		{"search above ceiling", "/mcp/youtube_search", `{"query":"lofi","max_results":500}`},
		{"search wrong type", "/mcp/youtube_search", `{"query":"lofi","max_results":"two"}`},
		{"search malformed json", "/mcp/youtube_search", `{"query":`},
		{"run_tool missing tool", "/mcp/run_tool", `{"args":{"query":"lofi"}}`},
		{"run_tool bad args", "/mcp/run_tool", `{"tool":"youtube_search_tool","args":{"max_results":2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"type":"BadRequest"`)
		})
	}
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestIdenticalRequestsAreByteIdentical(t *testing.T) {
	srv, _ := fakeSerpAPI(t, 6)
	r := newTestRouter(t, srv.URL, "key")

	body := `{"tool":"youtube_search_tool","args":{"query":"lofi","max_results":4}}`
	first := do(r, http.MethodPost, "/mcp/run_tool", body).Body.Bytes()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, do(r, http.MethodPost, "/mcp/run_tool", body).Body.Bytes())
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1", "key")

	w := do(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerDocs(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:1", "key")

	w := do(r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/mcp/run_tool")
}
