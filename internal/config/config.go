package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInputRoot  = "s3a://udacity-dend/"
	DefaultOutputRoot = "s3a://datalakeproject2022/"
	DefaultRegion     = "us-west-2"
	DefaultLogLevel   = "info"
)

// ErrMissingCredentials is returned when an S3 root is configured without an access key pair.
var ErrMissingCredentials = errors.New("missing AWS credentials")

// AWS holds the access key pair handed to the storage layer.
type AWS struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// Config is the job configuration read from dl.yaml.
type Config struct {
	AWS      AWS    `yaml:"aws"`
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Input == "" {
		c.Input = DefaultInputRoot
	}
	if c.Output == "" {
		c.Output = DefaultOutputRoot
	}
	if c.AWS.Region == "" {
		c.AWS.Region = DefaultRegion
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() * 2
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks that credentials are present whenever a root lives on S3.
func (c *Config) Validate() error {
	if !IsS3(c.Input) && !IsS3(c.Output) {
		return nil
	}
	if c.AWS.AccessKeyID == "" || c.AWS.SecretAccessKey == "" {
		return fmt.Errorf("%w: aws.access_key_id and aws.secret_access_key are required for S3 roots", ErrMissingCredentials)
	}
	return nil
}

// IsS3 reports whether root uses an S3 scheme.
func IsS3(root string) bool {
	return strings.HasPrefix(root, "s3://") || strings.HasPrefix(root, "s3a://")
}
