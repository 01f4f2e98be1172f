package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/nikogura/reviewrank/pkg/recommend"
)

// Environment variables that override the config file.
const (
	EnvCatalog  = "REVIEWRANK_CATALOG"
	EnvLogLevel = "REVIEWRANK_LOG_LEVEL"
)

// Config represents the application configuration.
type Config struct {
	CatalogLocation string          `json:"catalog_location"`
	QuestionsPath   string          `json:"questions_path,omitempty"`
	WeightsPath     string          `json:"weights_path,omitempty"`
	Recommend       RecommendConfig `json:"recommend"`
	Logging         LoggingConfig   `json:"logging"`
}

// RecommendConfig holds defaults for the recommend command.
type RecommendConfig struct {
	Sort            string `json:"sort"`
	Parallelism     int    `json:"parallelism"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds,omitempty"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// DefaultPath returns ~/.reviewrank/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".reviewrank", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'reviewrank init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	if catalog := os.Getenv(EnvCatalog); catalog != "" {
		cfg.CatalogLocation = catalog
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks required configuration and fills defaults.
func (c *Config) Validate() (err error) {
	if c.CatalogLocation == "" {
		err = errors.Errorf("catalog_location is required (set in config or %s env var)", EnvCatalog)
		return err
	}

	files := []struct{ name, path string }{
		{"questions_path", c.QuestionsPath},
		{"weights_path", c.WeightsPath},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, statErr := os.Stat(f.path); os.IsNotExist(statErr) {
			err = errors.Errorf("%s file not found: %s", f.name, f.path)
			return err
		}
	}

	var strategy recommend.SortStrategy
	strategy, err = recommend.ParseSort(c.Recommend.Sort)
	if err != nil {
		err = errors.Wrap(err, "invalid recommend.sort")
		return err
	}
	c.Recommend.Sort = string(strategy)

	if c.Recommend.Parallelism < 1 {
		c.Recommend.Parallelism = 1
	}

	if c.Recommend.CacheTTLSeconds < 0 {
		err = errors.New("recommend.cache_ttl_seconds must not be negative")
		return err
	}

	if c.Logging.Level == "" {
		c.Logging.Level = zerolog.InfoLevel.String()
	}
	_, err = zerolog.ParseLevel(strings.ToLower(c.Logging.Level))
	if err != nil {
		err = errors.Wrapf(err, "invalid logging.level %q", c.Logging.Level)
		return err
	}

	switch c.Logging.Format {
	case "":
		c.Logging.Format = "console"
	case "console", "json":
	default:
		err = errors.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
		return err
	}

	return err
}

// InitConfig creates a default configuration file. The questions and weights
// paths it references sit next to it.
func InitConfig(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return cfg, err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return cfg, err
	}

	cfg = Config{
		CatalogLocation: filepath.Join(dir, "catalog.json"),
		QuestionsPath:   filepath.Join(dir, "questions.yaml"),
		WeightsPath:     filepath.Join(dir, "weights.yaml"),
		Recommend: RecommendConfig{
			Sort:        "relevance",
			Parallelism: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}

	var data []byte
	data, err = json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return cfg, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return cfg, err
	}

	return cfg, err
}
