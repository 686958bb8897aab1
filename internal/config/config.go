// Package config loads the service configuration from config/<env>.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the cinedex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Search    SearchConfig    `yaml:"search"`
	Auth      AuthConfig      `yaml:"auth"`
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

// DatabaseConfig holds the MongoDB connection and collection names.
type DatabaseConfig struct {
	URI                 string            `yaml:"uri"`
	Name                string            `yaml:"name"`
	Collections         CollectionsConfig `yaml:"collections"`
	ReadinessTimeoutSec int               `yaml:"readiness_timeout_sec"`
	OperationTimeoutSec int               `yaml:"operation_timeout_sec"`
	VerifyOnStartup     bool              `yaml:"verify_on_startup"`
}

// CollectionsConfig names the collections of the movie database.
type CollectionsConfig struct {
	Movies         string `yaml:"movies"`
	Comments       string `yaml:"comments"`
	EmbeddedMovies string `yaml:"embedded_movies"`
}

// EmbeddingConfig holds the query embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	InputType  string `yaml:"input_type"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// CacheConfig holds the embedding cache settings.
type CacheConfig struct {
	Driver   string   `yaml:"driver"` // none, memory, redis (default: memory)
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	Size     int      `yaml:"size"`
	TTLSec   int      `yaml:"ttl_sec"`
}

// SearchConfig names the search indexes and the embedding paths they cover.
type SearchConfig struct {
	KeywordIndex string `yaml:"keyword_index"`
	VectorIndex  string `yaml:"vector_index"`
	VectorPath   string `yaml:"vector_path"`
	SimilarIndex string `yaml:"similar_index"`
	SimilarPath  string `yaml:"similar_path"`
}

// OperationTimeout is the per-request deadline applied to storage calls.
func (c DatabaseConfig) OperationTimeout() time.Duration {
	return time.Duration(c.OperationTimeoutSec) * time.Second
}

// ReadinessTimeout bounds the startup wait for the database.
func (c DatabaseConfig) ReadinessTimeout() time.Duration {
	return time.Duration(c.ReadinessTimeoutSec) * time.Second
}

// Timeout bounds a single embedding request.
func (c EmbeddingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// TTL is the cache entry lifetime; zero keeps entries until evicted.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file, when present, is loaded first and never overrides the process environment.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands environment references in data, decodes it and applies defaults.
func Parse(data []byte) (Config, error) {
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
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	d := &c.Database
	if d.Name == "" {
		d.Name = "sample_mflix"
	}
	if d.Collections.Movies == "" {
		d.Collections.Movies = "movies"
	}
	if d.Collections.Comments == "" {
		d.Collections.Comments = "comments"
	}
	if d.Collections.EmbeddedMovies == "" {
		d.Collections.EmbeddedMovies = "embedded_movies"
	}
	if d.ReadinessTimeoutSec <= 0 {
		d.ReadinessTimeoutSec = 10
	}
	if d.OperationTimeoutSec <= 0 {
		d.OperationTimeoutSec = 15
	}

	e := &c.Embedding
	if e.BaseURL == "" {
		e.BaseURL = "https://api.voyageai.com/v1"
	}
	if e.Model == "" {
		e.Model = "voyage-3-large"
	}
	if e.Dimensions <= 0 {
		e.Dimensions = 2048
	}
	if e.InputType == "" {
		e.InputType = "query"
	}
	if e.TimeoutSec <= 0 {
		e.TimeoutSec = 10
	}

	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheMemory
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 1024
	}

	s := &c.Search
	if s.KeywordIndex == "" {
		s.KeywordIndex = "movieSearchIndex"
	}
	if s.VectorIndex == "" {
		s.VectorIndex = "vector_index"
	}
	if s.VectorPath == "" {
		s.VectorPath = "plot_embedding_voyage_3_large"
	}
	if s.SimilarIndex == "" {
		s.SimilarIndex = "plotEmbeddingIndex"
	}
	if s.SimilarPath == "" {
		s.SimilarPath = "plot_embedding"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if strings.TrimSpace(c.Database.URI) == "" {
		return fmt.Errorf("database.uri is required")
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("cache.driver must be one of none, memory, redis, got %q", c.Cache.Driver)
	}
	if c.Cache.TTLSec < 0 {
		return fmt.Errorf("cache.ttl_sec must not be negative, got %d", c.Cache.TTLSec)
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

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
