package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "VABENEFITS"

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type Config struct {
	ServerPort         string        `mapstructure:"server_port" yaml:"server_port"`
	TesseractDataPath  string        `mapstructure:"tessdata_prefix" yaml:"tessdata_prefix"`
	TesseractLanguage  string        `mapstructure:"tesseract_language" yaml:"tesseract_language"`
	MaxFileSize        int64         `mapstructure:"max_file_size" yaml:"max_file_size"`
	OCRConcurrency     int           `mapstructure:"ocr_concurrency" yaml:"ocr_concurrency"`
	MinTextLayerChars  int           `mapstructure:"min_text_layer_chars" yaml:"min_text_layer_chars"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	CacheCleanup       time.Duration `mapstructure:"cache_cleanup" yaml:"cache_cleanup"`
	RateLimitPerSecond float64       `mapstructure:"rate_limit_per_second" yaml:"rate_limit_per_second"`
	RateLimitBurst     int           `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
	RatesFile          string        `mapstructure:"rates_file" yaml:"rates_file"`
	Log                LogConfig     `mapstructure:"log" yaml:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("tessdata_prefix", "/usr/share/tesseract-ocr/5/tessdata")
	v.SetDefault("tesseract_language", "eng")
	v.SetDefault("max_file_size", 10*1024*1024) // 10 MB
	v.SetDefault("ocr_concurrency", 4)
	v.SetDefault("min_text_layer_chars", 20)
	v.SetDefault("cache_ttl", 30*time.Minute)
	v.SetDefault("cache_cleanup", 10*time.Minute)
	v.SetDefault("rate_limit_per_second", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("rates_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names the service has always honored.
	_ = v.BindEnv("server_port", envPrefix+"_SERVER_PORT", "SERVER_PORT")
	_ = v.BindEnv("tessdata_prefix", envPrefix+"_TESSDATA_PREFIX", "TESSDATA_PREFIX")
	setDefaults(v)
	return v
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing priority. With an empty path it looks for
// config.yaml in $HOME/.vabenefits and the working directory; a missing file
// is not an error there. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".vabenefits"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ServerPort == "":
		return errors.New("server_port is required")
	case c.MaxFileSize <= 0:
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	case c.OCRConcurrency < 1:
		return fmt.Errorf("ocr_concurrency must be at least 1, got %d", c.OCRConcurrency)
	case c.MinTextLayerChars < 0:
		return fmt.Errorf("min_text_layer_chars must not be negative, got %d", c.MinTextLayerChars)
	case c.RateLimitPerSecond <= 0:
		return fmt.Errorf("rate_limit_per_second must be positive, got %v", c.RateLimitPerSecond)
	case c.RateLimitBurst < 1:
		return fmt.Errorf("rate_limit_burst must be at least 1, got %d", c.RateLimitBurst)
	}
	return nil
}
