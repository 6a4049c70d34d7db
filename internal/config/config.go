package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvSerpAPIKey SerpAPI 凭证所在的环境变量
	EnvSerpAPIKey = "SERPAPI_API_KEY"
	// EnvPort 监听端口所在的环境变量
	EnvPort = "PORT"
	// EnvConfigPath 配置文件路径所在的环境变量
	EnvConfigPath = "CONFIG_PATH"

	DefaultConfigPath = "configs/config.yaml"

	DefaultPort       = 8080
	DefaultMaxResults = 5
)

// Config 全局配置结构体
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Log    LogConfig    `mapstructure:"log"`
	Search SearchConfig `mapstructure:"search"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
	Port    int    `mapstructure:"port"`
}

// Addr 返回监听地址
func (a *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

// SearchConfig 搜索提供方配置
type SearchConfig struct {
	Provider          string        `mapstructure:"provider"`
	TimeoutSeconds    int           `mapstructure:"timeout_seconds"`
	DefaultMaxResults int           `mapstructure:"default_max_results"`
	MaxResultsCeiling int           `mapstructure:"max_results_ceiling"` // 0 表示不限制
	SerpAPI           SerpAPIConfig `mapstructure:"serpapi"`
	YouTube           YouTubeConfig `mapstructure:"youtube"`
}

// Timeout 返回单次提供方调用的超时时间
func (s *SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// SerpAPIConfig 搜索聚合 API 配置
type SerpAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Engine  string `mapstructure:"engine"`
}

// YouTubeConfig 直连 YouTube 搜索页配置
type YouTubeConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "youtube-mcp-server")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.port", DefaultPort)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/app.log")

	v.SetDefault("search.provider", "serpapi")
	v.SetDefault("search.timeout_seconds", 15)
	v.SetDefault("search.default_max_results", DefaultMaxResults)
	v.SetDefault("search.max_results_ceiling", 50)
	v.SetDefault("search.serpapi.api_key", "")
	v.SetDefault("search.serpapi.base_url", "https://serpapi.com")
	v.SetDefault("search.serpapi.engine", "youtube")
	v.SetDefault("search.youtube.base_url", "https://www.youtube.com")
	v.SetDefault("search.youtube.language", "en-US")
}

// Load 加载配置
// configPath 为空时依次使用 CONFIG_PATH 与 DefaultConfigPath，文件不存在时只使用默认值与环境变量
func Load(configPath string) (*Config, error) {
	// 加载 .env（文件不存在时忽略）
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// 读取环境变量，search.serpapi.base_url -> SEARCH_SERPAPI_BASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 约定俗成的环境变量名
	if err := v.BindEnv("search.serpapi.api_key", EnvSerpAPIKey); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvSerpAPIKey, err)
	}
	if err := v.BindEnv("app.port", EnvPort); err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", EnvPort, err)
	}

	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
// 缺少 SERPAPI_API_KEY 不算启动错误，由每次搜索调用时报告
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.App.Port)
	}
	if c.Search.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid search.timeout_seconds: %d", c.Search.TimeoutSeconds)
	}
	if c.Search.DefaultMaxResults < 1 {
		return fmt.Errorf("invalid search.default_max_results: %d", c.Search.DefaultMaxResults)
	}
	if c.Search.MaxResultsCeiling < 0 {
		return fmt.Errorf("invalid search.max_results_ceiling: %d", c.Search.MaxResultsCeiling)
	}
	return nil
}
