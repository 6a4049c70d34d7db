package tool

import (
	"context"
	"net/http"

	"ytsearch-mcp/internal/api/dto"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer 将搜索工具注册到 MCP 服务端
func NewMCPServer(st *SearchTool, name, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        st.Name(),
		Description: st.Description(),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input dto.SearchRequest) (*mcp.CallToolResult, any, error) {
		resp, err := st.Call(ctx, &input)
		if err != nil {
			return nil, nil, err
		}
		return nil, resp, nil
	})

	return server
}

// NewMCPHandler Streamable HTTP 传输
func NewMCPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
