package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisDB             int    `mapstructure:"REDIS_DB"`
	TripCacheTTLMinutes int    `mapstructure:"TRIP_CACHE_TTL_MINUTES"`

	DealsURL           string `mapstructure:"DEALS_URL"`
	DealDetailDelayMS  int    `mapstructure:"DEAL_DETAIL_DELAY_MS"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	AntiBotTransport   bool   `mapstructure:"ANTI_BOT_TRANSPORT"`
	UserAgent          string `mapstructure:"USER_AGENT"`

	BrowserHeadless        bool   `mapstructure:"BROWSER_HEADLESS"`
	PageLoadTimeoutSeconds int    `mapstructure:"PAGE_LOAD_TIMEOUT_SECONDS"`
	ToggleWaitSeconds      int    `mapstructure:"TOGGLE_WAIT_SECONDS"`
	PriceMaxRetries        int    `mapstructure:"PRICE_MAX_RETRIES"`
	DebugHTMLPath          string `mapstructure:"DEBUG_HTML_PATH"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`
	SerpAPIKey   string `mapstructure:"SERPAPI_KEY"`

	OriginAirport      string `mapstructure:"ORIGIN_AIRPORT"`
	DealOriginKeywords string `mapstructure:"DEAL_ORIGIN_KEYWORDS"`
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var defaults = map[string]any{
	"SERVER_PORT":               "8080",
	"LOG_LEVEL":                 "info",
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"TRIP_CACHE_TTL_MINUTES":    60,
	"DEALS_URL":                 "https://www.theflightdeal.com/category/flight-deals/dallas/",
	"DEAL_DETAIL_DELAY_MS":      2000,
	"HTTP_TIMEOUT_SECONDS":      30,
	"ANTI_BOT_TRANSPORT":        true,
	"USER_AGENT":                DefaultUserAgent,
	"BROWSER_HEADLESS":          true,
	"PAGE_LOAD_TIMEOUT_SECONDS": 90,
	"TOGGLE_WAIT_SECONDS":       20,
	"PRICE_MAX_RETRIES":         3,
	"DEBUG_HTML_PATH":           "price_grid_response.html",
	"GEMINI_API_KEY":            "",
	"GEMINI_MODEL":              "gemini-2.5-flash",
	"SERPAPI_KEY":               "",
	"ORIGIN_AIRPORT":            "DFW",
	"DEAL_ORIGIN_KEYWORDS":      "Dallas,DFW",
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path. A missing file is not an error,
// so production can be configured purely through environment variables.
func LoadFrom(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}

func (c *Config) TripCacheTTL() time.Duration {
	return time.Duration(c.TripCacheTTLMinutes) * time.Minute
}

func (c *Config) DealDetailDelay() time.Duration {
	return time.Duration(c.DealDetailDelayMS) * time.Millisecond
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) PageLoadTimeout() time.Duration {
	return time.Duration(c.PageLoadTimeoutSeconds) * time.Second
}

func (c *Config) ToggleWait() time.Duration {
	return time.Duration(c.ToggleWaitSeconds) * time.Second
}

// OriginKeywords splits DEAL_ORIGIN_KEYWORDS on commas, dropping blanks.
func (c *Config) OriginKeywords() []string {
	var keywords []string
	for _, k := range strings.Split(c.DealOriginKeywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
