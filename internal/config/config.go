package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the actdex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	Explainer ExplainerConfig `yaml:"explainer"`
	Auth      AuthConfig      `yaml:"auth"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds corpus store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, bolt (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // bolt database file
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds the retrieval budgets. These are operational limits of
// the service, not caller knobs: callers may only lower the result count.
type SearchConfig struct {
	ScanBudget   int `yaml:"scan_budget"`   // max pages visited per query
	ResultBudget int `yaml:"result_budget"` // max results returned per query
	SnippetChars int `yaml:"snippet_chars"` // snippet length in characters
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
	Corpus    string `yaml:"corpus"` // corpus name within the key namespace
}

// ExplainerConfig holds explanation provider settings.
type ExplainerConfig struct {
	Provider string       `yaml:"provider"` // openai, template (default: by api_key presence)
	APIKey   string       `yaml:"api_key"`
	BaseURL  string       `yaml:"base_url"`
	Model    string       `yaml:"model"`
	Budget   BudgetConfig `yaml:"budget"`
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit      int64   `yaml:"daily_token_limit"`       // 0 = unlimited
	MonthlyTokenLimit    int64   `yaml:"monthly_token_limit"`     // 0 = unlimited
	CostPerMillionTokens float64 `yaml:"cost_per_million_tokens"` // for the usage report
	Action               string  `yaml:"action"`                  // "reject" | "warn" (default)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.ScanBudget <= 0 {
		c.Search.ScanBudget = 2000
	}
	if c.Search.ResultBudget <= 0 {
		c.Search.ResultBudget = 20
	}
	if c.Search.SnippetChars <= 0 {
		c.Search.SnippetChars = 400
	}
	if c.Explainer.Model == "" {
		c.Explainer.Model = "gemini-1.5-flash"
	}
	if c.Explainer.Provider == "" {
		// An API key means the operator wants the real model; without one
		// the deterministic template explainer keeps the service usable.
		if c.Explainer.APIKey != "" {
			c.Explainer.Provider = "openai"
		} else {
			c.Explainer.Provider = "template"
		}
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "actdex:"
	}
	if c.Storage.Corpus == "" {
		c.Storage.Corpus = "acts"
	}

	// Blank api_keys entries come from unset env substitutions; a "" key
	// must not become an accepted bearer token.
	keys := c.Auth.APIKeys[:0]
	for _, k := range c.Auth.APIKeys {
		if k != "" {
			keys = append(keys, k)
		}
	}
	c.Auth.APIKeys = keys
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "", "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis driver")
		}
	case "bolt":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the bolt driver")
		}
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"bolt\", got %q", c.Database.Driver)
	}
	switch c.Explainer.Provider {
	case "", "template":
		// ok
	case "openai":
		if c.Explainer.APIKey == "" {
			return fmt.Errorf("explainer.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("explainer.provider must be \"openai\" or \"template\", got %q", c.Explainer.Provider)
	}
	switch c.Explainer.Budget.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf(
			"explainer.budget.action must be \"warn\" or \"reject\", got %q",
			c.Explainer.Budget.Action,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
