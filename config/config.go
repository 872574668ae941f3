// Package config loads runtime settings from a .env file and the
// environment. Every provider credential is optional; missing keys just
// shorten the data source cascade.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`
	DatabasePath string `json:"database_path"`

	ServerAddr  string   `json:"server_addr"`
	CORSOrigins []string `json:"cors_origins"`

	CacheEnabled    bool `json:"cache_enabled"`
	CacheTTLMinutes int  `json:"cache_ttl_minutes"`

	// Longport brokerage credentials
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`

	AlphaVantageAPIKey string `json:"alphavantage_api_key"`

	// Advice backend: gemini, deepseek, openai or empty for rules only
	AdviceProvider string `json:"advice_provider"`
	GeminiAPIKey   string `json:"gemini_api_key"`
	GeminiModel    string `json:"gemini_model"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`
	DeepSeekModel  string `json:"deepseek_model"`
	OpenAIBaseURL  string `json:"openai_base_url"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	OpenAIModel    string `json:"openai_model"`

	RefreshEnabled bool   `json:"refresh_enabled"`
	RefreshSpec    string `json:"refresh_spec"`

	LogLevel  string `json:"log_level"`
	LogPretty bool   `json:"log_pretty"`

	EinoDebugEnabled bool `json:"eino_debug_enabled"`
}

// DefaultConfig builds the configuration: defaults, then .env, then the
// process environment.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	dataDir := filepath.Join(currentDir, "data")

	cfg := &Config{
		DataDir:      dataDir,
		DataCacheDir: filepath.Join(dataDir, "cache"),
		DatabasePath: filepath.Join(dataDir, "stockmitra.db"),

		ServerAddr:  ":8080",
		CORSOrigins: []string{"*"},

		CacheEnabled:    true,
		CacheTTLMinutes: 5,

		AdviceProvider: "",
		GeminiModel:    "gemini-1.5-flash",
		DeepSeekModel:  "deepseek-chat",
		OpenAIModel:    "gpt-4o-mini",

		RefreshEnabled: false,
		RefreshSpec:    "*/5 * * * *",

		LogLevel:  "info",
		LogPretty: true,

		EinoDebugEnabled: false,
	}

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
		c.DataCacheDir = filepath.Join(val, "cache")
		c.DatabasePath = filepath.Join(val, "stockmitra.db")
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("DATABASE_PATH"); val != "" {
		c.DatabasePath = val
	}

	if val := os.Getenv("SERVER_ADDR"); val != "" {
		c.ServerAddr = val
	}
	if val := os.Getenv("CORS_ORIGINS"); val != "" {
		var origins []string
		for _, o := range strings.Split(val, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.CORSOrigins = origins
		}
	}

	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}
	if val := os.Getenv("CACHE_TTL_MINUTES"); val != "" {
		if ttl, err := strconv.Atoi(val); err == nil && ttl > 0 {
			c.CacheTTLMinutes = ttl
		}
	}

	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}
	if val := os.Getenv("ALPHAVANTAGE_API_KEY"); val != "" {
		c.AlphaVantageAPIKey = val
	}

	if val := os.Getenv("ADVICE_PROVIDER"); val != "" {
		c.AdviceProvider = strings.ToLower(strings.TrimSpace(val))
	}
	if val := os.Getenv("GEMINI_API_KEY"); val != "" {
		c.GeminiAPIKey = val
	}
	if val := os.Getenv("GEMINI_MODEL"); val != "" {
		c.GeminiModel = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_MODEL"); val != "" {
		c.DeepSeekModel = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		c.OpenAIBaseURL = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("OPENAI_MODEL"); val != "" {
		c.OpenAIModel = val
	}

	if val := os.Getenv("REFRESH_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.RefreshEnabled = enabled
		}
	}
	if val := os.Getenv("REFRESH_SPEC"); val != "" {
		c.RefreshSpec = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_PRETTY"); val != "" {
		if pretty, err := strconv.ParseBool(val); err == nil {
			c.LogPretty = pretty
		}
	}

	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.EinoDebugEnabled = enabled
		}
	}
}

// CacheTTL returns the quote cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Validate reports configuration that cannot work at all. Missing
// credentials are not errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir is required")
	}
	if strings.TrimSpace(c.ServerAddr) == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.CacheTTLMinutes <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %d", c.CacheTTLMinutes)
	}
	switch c.AdviceProvider {
	case "", "none", "rules", "gemini", "deepseek", "openai":
	default:
		return fmt.Errorf("unknown advice provider %q", c.AdviceProvider)
	}
	return nil
}

// EnsureDirectories creates the data and cache directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir, c.DataCacheDir, filepath.Dir(c.DatabasePath)}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
