// Package config loads the settings of the kmedoids command.
//
// Configuration can be loaded from:
//   - YAML configuration file
//   - Environment variables
//   - Programmatic defaults
//
// Command-line flags override environment variables, which override the
// file, which overrides the defaults.
//
// Environment Variables:
//
//	KMEDOIDS_INPUT              - Distance matrix location (path, s3://, minio://)
//	KMEDOIDS_DIST_TYPE          - Matrix form: sym, triu or tril (default: sym)
//	KMEDOIDS_INPUT_SEP          - Value delimiter (default: any whitespace)
//	KMEDOIDS_OUTPUT_MEDOIDS     - Where to write medoids
//	KMEDOIDS_OUTPUT_LABELS      - Where to write labels
//	KMEDOIDS_OUTPUT_SUMMARY     - Where to write the JSON run summary
//	KMEDOIDS_NUM_CLUSTERS       - Number of clusters k
//	KMEDOIDS_MAX_ITER           - Iteration budget (default: 100)
//	KMEDOIDS_NUM_THREADS        - Worker count, 0 for all CPUs (default: 0)
//	KMEDOIDS_SEED               - Random seed (default: 0)
//	KMEDOIDS_INIT               - farthest or random (default: farthest)
//	KMEDOIDS_EMPTY_CLUSTER      - retain, reseed or fail (default: retain)
//	KMEDOIDS_LOG_LEVEL          - debug, info, warn, error (default: warn)
//	KMEDOIDS_LOG_FORMAT         - text or json (default: text)
//	KMEDOIDS_VERBOSE            - Log progress (default: false)
//	KMEDOIDS_MINIO_ENDPOINT     - MinIO endpoint for minio:// locations
//	KMEDOIDS_MINIO_ACCESS_KEY   - MinIO access key
//	KMEDOIDS_MINIO_SECRET_KEY   - MinIO secret key
//	KMEDOIDS_MINIO_SECURE       - Use HTTPS for MinIO (default: false)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full command configuration.
//
// Example:
//
//	cfg, err := config.LoadConfigOrDefault("./kmedoids.yaml")
//	if err != nil { ... }
//	if err := cfg.ApplyEnv(); err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Logging    LoggingConfig    `yaml:"logging"`
	MinIO      MinIOConfig      `yaml:"minio"`
}

// InputConfig locates and describes the distance matrix.
type InputConfig struct {
	// Path is a local path, s3://bucket/key or minio://bucket/key.
	Path string `yaml:"path"`
	// Form is sym, triu or tril.
	Form string `yaml:"form"`
	// Delimiter separates values; empty means any whitespace.
	Delimiter string `yaml:"delimiter"`
}

// OutputConfig lists the result destinations. Empty entries are skipped;
// "-" means standard output.
type OutputConfig struct {
	Medoids string `yaml:"medoids"`
	Labels  string `yaml:"labels"`
	Summary string `yaml:"summary"`
	// SummaryLabels includes the label array in the summary.
	SummaryLabels bool `yaml:"summary_labels"`
	// Codec is json or go-json.
	Codec string `yaml:"codec"`
}

// ClusteringConfig holds the algorithm parameters.
type ClusteringConfig struct {
	K              int    `yaml:"k"`
	MaxIter        int    `yaml:"max_iter"`
	Workers        int    `yaml:"workers"`
	Seed           uint64 `yaml:"seed"`
	Init           string `yaml:"init"`
	EmptyCluster   string `yaml:"empty_cluster"`
	SkipValidation bool   `yaml:"skip_validation"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Verbose logs per-iteration progress.
	Verbose bool `yaml:"verbose"`
	// ProgressInterval throttles info-level progress lines.
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// MinIOConfig holds the connection settings for minio:// locations.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Form: "sym",
		},
		Output: OutputConfig{
			Codec: "go-json",
		},
		Clustering: ClusteringConfig{
			MaxIter:      100,
			Init:         "farthest",
			EmptyCluster: "retain",
		},
		Logging: LoggingConfig{
			Level:            "warn",
			Format:           "text",
			ProgressInterval: time.Second,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads config from file, or returns the defaults if
// path is empty or the file doesn't exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFromEnv returns the defaults overridden by KMEDOIDS_* variables.
func LoadFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides c with every KMEDOIDS_* variable that is set.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"KMEDOIDS_INPUT":            &c.Input.Path,
		"KMEDOIDS_DIST_TYPE":        &c.Input.Form,
		"KMEDOIDS_INPUT_SEP":        &c.Input.Delimiter,
		"KMEDOIDS_OUTPUT_MEDOIDS":   &c.Output.Medoids,
		"KMEDOIDS_OUTPUT_LABELS":    &c.Output.Labels,
		"KMEDOIDS_OUTPUT_SUMMARY":   &c.Output.Summary,
		"KMEDOIDS_INIT":             &c.Clustering.Init,
		"KMEDOIDS_EMPTY_CLUSTER":    &c.Clustering.EmptyCluster,
		"KMEDOIDS_LOG_LEVEL":        &c.Logging.Level,
		"KMEDOIDS_LOG_FORMAT":       &c.Logging.Format,
		"KMEDOIDS_MINIO_ENDPOINT":   &c.MinIO.Endpoint,
		"KMEDOIDS_MINIO_ACCESS_KEY": &c.MinIO.AccessKey,
		"KMEDOIDS_MINIO_SECRET_KEY": &c.MinIO.SecretKey,
	}
	for key, dst := range strs {
		if val, ok := os.LookupEnv(key); ok {
			*dst = val
		}
	}

	ints := map[string]*int{
		"KMEDOIDS_NUM_CLUSTERS": &c.Clustering.K,
		"KMEDOIDS_MAX_ITER":     &c.Clustering.MaxIter,
		"KMEDOIDS_NUM_THREADS":  &c.Clustering.Workers,
	}
	for key, dst := range ints {
		if val := os.Getenv(key); val != "" {
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = n
		}
	}

	if val := os.Getenv("KMEDOIDS_SEED"); val != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return fmt.Errorf("config: KMEDOIDS_SEED: %w", err)
		}
		c.Clustering.Seed = seed
	}
	if val := os.Getenv("KMEDOIDS_VERBOSE"); val != "" {
		c.Logging.Verbose = parseBool(val, c.Logging.Verbose)
	}
	if val := os.Getenv("KMEDOIDS_MINIO_SECURE"); val != "" {
		c.MinIO.Secure = parseBool(val, c.MinIO.Secure)
	}
	return nil
}

// parseBool parses a boolean from string with a default value.
func parseBool(s string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultVal
	}
}

// Validate checks the settings that do not depend on the input matrix.
// Enumerated values are checked by their parsers in the command.
func (c *Config) Validate() error {
	var errs []error
	if c.Input.Path == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if c.Clustering.K < 1 {
		errs = append(errs, fmt.Errorf("k must be at least 1, got %d", c.Clustering.K))
	}
	if c.Clustering.MaxIter < 1 {
		errs = append(errs, fmt.Errorf("max_iter must be at least 1, got %d", c.Clustering.MaxIter))
	}
	if c.Clustering.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Clustering.Workers))
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	if c.Output.Medoids == "" && c.Output.Labels == "" && c.Output.Summary == "" {
		errs = append(errs, errors.New("at least one output is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
