package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	questionsPath := filepath.Join(tmpDir, "questions.yaml")

	err := os.WriteFile(questionsPath, []byte("questions: []\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write questions file: %v", err)
	}

	testConfig := Config{
		CatalogLocation: "https://example.com/catalog.json",
		QuestionsPath:   questionsPath,
		Recommend: RecommendConfig{
			Sort:        "price_asc",
			Parallelism: 4,
		},
		Logging: LoggingConfig{Level: "debug", Format: "json"},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(configPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.CatalogLocation != testConfig.CatalogLocation {
		t.Errorf("Expected catalog %s, got %s", testConfig.CatalogLocation, cfg.CatalogLocation)
	}

	if cfg.Recommend.Parallelism != 4 {
		t.Errorf("Expected parallelism 4, got %d", cfg.Recommend.Parallelism)
	}

	if cfg.Logging.Format != "json" {
		t.Errorf("Expected json log format, got %s", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := os.WriteFile(configPath, []byte(`{"catalog_location": "from-file.json"}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	t.Setenv(EnvCatalog, "from-env.json")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.CatalogLocation != "from-env.json" {
		t.Errorf("Expected env catalog override, got %s", cfg.CatalogLocation)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected env log level override, got %s", cfg.Logging.Level)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:      "minimal config",
			config:    Config{CatalogLocation: "catalog.json"},
			wantError: false,
		},
		{
			name:      "missing catalog",
			config:    Config{},
			wantError: true,
		},
		{
			name:      "nonexistent questions file",
			config:    Config{CatalogLocation: "catalog.json", QuestionsPath: "/nonexistent/questions.yaml"},
			wantError: true,
		},
		{
			name:      "nonexistent weights file",
			config:    Config{CatalogLocation: "catalog.json", WeightsPath: "/nonexistent/weights.yaml"},
			wantError: true,
		},
		{
			name:      "unknown sort",
			config:    Config{CatalogLocation: "catalog.json", Recommend: RecommendConfig{Sort: "popularity"}},
			wantError: true,
		},
		{
			name:      "negative cache ttl",
			config:    Config{CatalogLocation: "catalog.json", Recommend: RecommendConfig{CacheTTLSeconds: -1}},
			wantError: true,
		},
		{
			name:      "bad log level",
			config:    Config{CatalogLocation: "catalog.json", Logging: LoggingConfig{Level: "loud"}},
			wantError: true,
		},
		{
			name:      "bad log format",
			config:    Config{CatalogLocation: "catalog.json", Logging: LoggingConfig{Format: "xml"}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{CatalogLocation: "catalog.json"}

	err := cfg.Validate()
	if err != nil {
		t.Fatalf("Unexpected validation error: %v", err)
	}

	if cfg.Recommend.Sort != "relevance" {
		t.Errorf("Expected default sort relevance, got %s", cfg.Recommend.Sort)
	}

	if cfg.Recommend.Parallelism != 1 {
		t.Errorf("Expected default parallelism 1, got %d", cfg.Recommend.Parallelism)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Expected info/console logging, got %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	created, err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	// Verify file was created.
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if cfg != created {
		t.Errorf("Expected written config %+v, got %+v", created, cfg)
	}

	if cfg.QuestionsPath != filepath.Join(tmpDir, "questions.yaml") {
		t.Errorf("Expected questions path next to config, got %s", cfg.QuestionsPath)
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	_, err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
