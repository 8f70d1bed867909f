package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported crawler implementations
const (
	ImplementationParallel   = "parallel"
	ImplementationSequential = "sequential"
)

// Config holds all application configuration
type Config struct {
	// Crawl configuration
	StartPages             []string `mapstructure:"startPages"`
	IgnoredURLs            []string `mapstructure:"ignoredUrls"`
	IgnoredWords           []string `mapstructure:"ignoredWords"`
	Parallelism            int      `mapstructure:"parallelism"`
	ImplementationOverride string   `mapstructure:"implementationOverride"`
	MaxDepth               int      `mapstructure:"maxDepth"`
	TimeoutSeconds         int      `mapstructure:"timeoutSeconds"`
	PopularWordCount       int      `mapstructure:"popularWordCount"`

	// Output configuration
	ResultPath        string `mapstructure:"resultPath"`
	ResultFormat      string `mapstructure:"resultFormat"`
	ProfileOutputPath string `mapstructure:"profileOutputPath"`

	// Page parser configuration
	ExtractMainContent    bool   `mapstructure:"extractMainContent"`
	SkipStopWords         bool   `mapstructure:"skipStopWords"`
	UserAgent             string `mapstructure:"userAgent"`
	RequestTimeoutSeconds int    `mapstructure:"requestTimeoutSeconds"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"start":           "startPages",
	"max-depth":       "maxDepth",
	"timeout":         "timeoutSeconds",
	"popular-words":   "popularWordCount",
	"parallelism":     "parallelism",
	"implementation":  "implementationOverride",
	"output":          "resultPath",
	"format":          "resultFormat",
	"profile-output":  "profileOutputPath",
	"main-content":    "extractMainContent",
	"skip-stop-words": "skipStopWords",
	"user-agent":      "userAgent",
	"log-level":       "logging.level",
	"log-format":      "logging.format",
}

// Load loads configuration from file, environment and flags, in increasing
// order of precedence. With an empty configPath the usual locations are
// searched and a missing file is not an error. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wordcrawler")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wordcrawler"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}
	return decode(v)
}

// Read parses a configuration document of the given type ("json", "yaml", ...)
// from r. Environment variables still apply.
func Read(r io.Reader, configType string) (*Config, error) {
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("WORDCRAWLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("startPages", []string{})
	v.SetDefault("ignoredUrls", []string{})
	v.SetDefault("ignoredWords", []string{})
	v.SetDefault("parallelism", 0)
	v.SetDefault("implementationOverride", "")
	v.SetDefault("maxDepth", 0)
	v.SetDefault("timeoutSeconds", 1)
	v.SetDefault("popularWordCount", 0)

	v.SetDefault("resultPath", "")
	v.SetDefault("resultFormat", "json")
	v.SetDefault("profileOutputPath", "")

	v.SetDefault("extractMainContent", false)
	v.SetDefault("skipStopWords", false)
	v.SetDefault("userAgent", "wordcrawler/1.0")
	v.SetDefault("requestTimeoutSeconds", 15)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("maxDepth: %w, got %d", ErrNegativeValue, c.MaxDepth)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeoutSeconds: %w, got %d", ErrNegativeValue, c.TimeoutSeconds)
	}
	if c.PopularWordCount < 0 {
		return fmt.Errorf("popularWordCount: %w, got %d", ErrNegativeValue, c.PopularWordCount)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism: %w, got %d", ErrNegativeValue, c.Parallelism)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("requestTimeoutSeconds must be positive, got %d", c.RequestTimeoutSeconds)
	}

	if _, err := c.IgnoredURLPatterns(); err != nil {
		return err
	}
	if _, err := c.IgnoredWordPatterns(); err != nil {
		return err
	}

	switch strings.ToLower(c.ImplementationOverride) {
	case "", ImplementationParallel, ImplementationSequential:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImplementation, c.ImplementationOverride)
	}

	switch strings.ToLower(c.ResultFormat) {
	case "json", "yaml", "markdown":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.ResultFormat)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: level %q", ErrInvalidLogging, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidLogging, c.Logging.Format)
	}

	return nil
}

// Timeout returns the crawl timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RequestTimeout returns the per-page request timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Implementation returns the crawler implementation to use
func (c *Config) Implementation() string {
	if c.ImplementationOverride == "" {
		return ImplementationParallel
	}
	return strings.ToLower(c.ImplementationOverride)
}

// IgnoredURLPatterns compiles ignoredUrls. Consumers match them against whole URLs.
func (c *Config) IgnoredURLPatterns() ([]*regexp.Regexp, error) {
	return compileAll("ignoredUrls", c.IgnoredURLs)
}

// IgnoredWordPatterns compiles ignoredWords. Consumers match them against whole words.
func (c *Config) IgnoredWordPatterns() ([]*regexp.Regexp, error) {
	return compileAll("ignoredWords", c.IgnoredWords)
}

func compileAll(key string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w %q: %v", key, ErrInvalidPattern, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
