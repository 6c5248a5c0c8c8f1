package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName       = "instagen"
	defaultServiceVersion    = "1.0.0"
	defaultLLMProvider       = "anthropic"
	defaultLLMModel          = "claude-sonnet-4-20250514"
	defaultTemperature       = 0.7
	defaultMaxTokens         = 2048
	defaultImageProvider     = "pollinations"
	defaultImageCount        = 3
	defaultImageWidth        = 1024
	defaultImageHeight       = 1024
	defaultImageTimeoutSec   = 60
	defaultImageMaxRetries   = 2
	defaultImageOutputDir    = "generated_images"
	defaultResultsDir        = "results"
	defaultHashtagLimit      = 30
	defaultShortCaptionLimit = 150
	defaultLongCaptionLimit  = 2200
	defaultServerPort        = 8090
	defaultServerTimeoutSec  = 30
)

// Known provider names.
const (
	LLMProviderAnthropic = "anthropic"
	LLMProviderOpenAI    = "openai"

	ImageProviderPollinations = "pollinations"
	ImageProviderSegmind      = "segmind"
	ImageProviderStability    = "stability"
)

// Config holds all configuration for the instagen service.
// It is read-only after Load; the pipeline and clients never mutate it.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	LLM     LLMConfig     `yaml:"llm"`
	Images  ImageConfig   `yaml:"images"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// ServiceConfig holds service identity.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LLMConfig holds settings for the language model boundary.
type LLMConfig struct {
	Provider    string  `env:"LLM_PROVIDER" yaml:"provider"`
	Model       string  `env:"LLM_MODEL"    yaml:"model"`
	APIKey      string  `env:"LLM_API_KEY"  yaml:"api_key"`
	BaseURL     string  `env:"LLM_BASE_URL" yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// ImageConfig holds settings for the image generation boundary.
type ImageConfig struct {
	Provider   string        `env:"IMAGE_PROVIDER" yaml:"provider"`
	APIKey     string        `env:"IMAGE_API_KEY"  yaml:"api_key"`
	Count      int           `yaml:"count"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	OutputDir  string        `env:"IMAGE_OUTPUT_DIR" yaml:"output_dir"`
}

// ContentConfig holds the soft limits the review stage is asked to honor.
type ContentConfig struct {
	HashtagLimit      int `yaml:"hashtag_limit"`
	ShortCaptionLimit int `yaml:"short_caption_limit"`
	LongCaptionLimit  int `yaml:"long_caption_limit"`
}

// OutputConfig holds result persistence settings.
type OutputConfig struct {
	ResultsDir string `env:"RESULTS_DIR" yaml:"results_dir"`
	SaveImages bool   `yaml:"save_images"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" yaml:"level"`
	Development bool   `env:"APP_DEBUG" yaml:"development"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `env:"INSTAGEN_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Debug        bool          `env:"APP_DEBUG" yaml:"debug"`
}

// Address returns the server listen address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = defaultTemperature
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaultMaxTokens
	}
	if c.Images.Provider == "" {
		c.Images.Provider = defaultImageProvider
	}
	if c.Images.Count == 0 {
		c.Images.Count = defaultImageCount
	}
	if c.Images.Width == 0 {
		c.Images.Width = defaultImageWidth
	}
	if c.Images.Height == 0 {
		c.Images.Height = defaultImageHeight
	}
	if c.Images.Timeout == 0 {
		c.Images.Timeout = defaultImageTimeoutSec * time.Second
	}
	if c.Images.MaxRetries == 0 {
		c.Images.MaxRetries = defaultImageMaxRetries
	}
	if c.Images.OutputDir == "" {
		c.Images.OutputDir = defaultImageOutputDir
	}
	if c.Content.HashtagLimit == 0 {
		c.Content.HashtagLimit = defaultHashtagLimit
	}
	if c.Content.ShortCaptionLimit == 0 {
		c.Content.ShortCaptionLimit = defaultShortCaptionLimit
	}
	if c.Content.LongCaptionLimit == 0 {
		c.Content.LongCaptionLimit = defaultLongCaptionLimit
	}
	if c.Output.ResultsDir == "" {
		c.Output.ResultsDir = defaultResultsDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaultServerTimeoutSec * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaultServerTimeoutSec * time.Second
	}
}

// Validate checks that provider selections and required credentials are sane.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case LLMProviderAnthropic, LLMProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}

	switch c.Images.Provider {
	case ImageProviderPollinations:
		// Keyless service, nothing to check.
	case ImageProviderSegmind, ImageProviderStability:
		if c.Images.APIKey == "" {
			return fmt.Errorf("image provider %q requires an api key", c.Images.Provider)
		}
	default:
		return fmt.Errorf("unsupported image provider %q", c.Images.Provider)
	}

	if c.Images.Count < 1 {
		return fmt.Errorf("image count must be at least 1, got %d", c.Images.Count)
	}
	return nil
}
