package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ytsearch-mcp/internal/api/handler"
	"ytsearch-mcp/internal/api/router"
	"ytsearch-mcp/internal/config"
	"ytsearch-mcp/internal/provider"
	"ytsearch-mcp/internal/service"
	"ytsearch-mcp/internal/tool"
	"ytsearch-mcp/pkg/logger"

	_ "ytsearch-mcp/api/openapi"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title YouTube MCP Server
// @version 1.0
// @description 以 MCP 工具形式提供 YouTube 视频搜索

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /

func main() {
	configPath := flag.String("config", "", "path to config file (default $CONFIG_PATH or configs/config.yaml)")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化搜索提供方
	searchProvider, err := provider.New(cfg.Search, provider.NewHTTPClient(cfg.Search.Timeout()))
	if err != nil {
		logger.Fatal("Failed to init search provider", zap.Error(err))
	}
	if err := searchProvider.CheckConfig(); err != nil {
		// 不阻止启动，每次调用都会返回配置错误
		logger.Warn("Search provider is not fully configured", zap.String("provider", searchProvider.Name()), zap.Error(err))
	}

	// 初始化依赖（Provider -> Service -> Tool -> Handler）
	searchService := service.NewSearchService(searchProvider, cfg.Search.Timeout(), cfg.Search.DefaultMaxResults)
	searchTool := tool.NewSearchTool(searchService, cfg.Search.MaxResultsCeiling)

	registry := tool.NewRegistry()
	if err := registry.Register(searchTool); err != nil {
		logger.Fatal("Failed to register tool", zap.Error(err))
	}
	mcpServer := tool.NewMCPServer(searchTool, cfg.App.Name, cfg.App.Version)

	healthHandler := handler.NewHealthHandler(cfg.App, searchProvider.Name(), registry)
	toolHandler := handler.NewToolHandler(searchTool, registry)

	gin.SetMode(cfg.App.Mode)
	r := router.New(healthHandler, toolHandler, tool.NewMCPHandler(mcpServer))

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", srv.Addr),
		zap.String("provider", searchProvider.Name()),
		zap.Strings("tools", registry.Names()),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.Timeout()+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
