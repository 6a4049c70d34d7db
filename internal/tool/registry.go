// Package tool 按名称注册和调用 MCP 工具
package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"ytsearch-mcp/internal/api/dto"
	"ytsearch-mcp/internal/apperr"
	"ytsearch-mcp/pkg/jsonx"
)

// Tool 可按名称调用的工具
type Tool interface {
	Name() string
	Aliases() []string
	Description() string
	// Invoke 解析 args 并执行，仅参数错误时返回 error
	Invoke(ctx context.Context, args jsonx.RawMessage) (dto.SearchResponse, error)
}

// Registry 工具注册表，注册在启动时完成，之后只读
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	names []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register 注册工具及其别名，名称冲突时报错
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{t.Name()}, t.Aliases()...)
	for _, k := range keys {
		if _, exists := r.tools[k]; exists {
			return fmt.Errorf("tool %q already registered", k)
		}
	}
	for _, k := range keys {
		r.tools[k] = t
	}
	r.names = append(r.names, t.Name())
	return nil
}

// Lookup 按名称或别名查找工具
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names 已注册工具的正式名称
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	sort.Strings(names)
	return names
}

// Run 按名称分发调用，未知工具返回 {error: "Unknown tool '<name>'"}
func (r *Registry) Run(ctx context.Context, name string, args jsonx.RawMessage) (dto.SearchResponse, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return dto.SearchFailed(&apperr.UnknownToolError{Name: name}), nil
	}
	return t.Invoke(ctx, args)
}
