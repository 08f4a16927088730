package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tci-platform/trinity/internal/domain/trinity"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		// mysql | postgres
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Trinity struct {
		Weights           trinity.Weights `yaml:"weights"`
		FlagBelowScore    float64         `yaml:"flagBelowScore"`
		CoverageThreshold float64         `yaml:"coverageThreshold"`
		CheckTimeout      Duration        `yaml:"checkTimeout"`
		Parallelism       int             `yaml:"parallelism"`
		CacheTTL          Duration        `yaml:"cacheTTL"`
	} `yaml:"trinity"`

	// tenant → api key
	APIKeys map[string]string `yaml:"apiKeys"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`
}

// Duration accepts Go duration strings in YAML, e.g. "500ms", "10m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load baca file config.yaml
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Trinity.Weights == (trinity.Weights{}) {
		c.Trinity.Weights = trinity.DefaultWeights()
	}
	if c.Trinity.FlagBelowScore == 0 {
		c.Trinity.FlagBelowScore = 80
	}
	if c.Trinity.CoverageThreshold == 0 {
		c.Trinity.CoverageThreshold = 0.5
	}
	if c.Trinity.CheckTimeout == 0 {
		c.Trinity.CheckTimeout = Duration(500 * time.Millisecond)
	}
	if c.Trinity.CacheTTL == 0 {
		c.Trinity.CacheTTL = Duration(10 * time.Minute)
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 30
	}
	if c.RateLimit.RefillRate == 0 {
		c.RateLimit.RefillRate = 5
	}
}

// EngineOptions maps the trinity section onto engine options.
func (c *Config) EngineOptions() trinity.Options {
	return trinity.Options{
		Weights:           c.Trinity.Weights,
		FlagBelowScore:    c.Trinity.FlagBelowScore,
		CoverageThreshold: c.Trinity.CoverageThreshold,
		CheckTimeout:      time.Duration(c.Trinity.CheckTimeout),
		Parallelism:       c.Trinity.Parallelism,
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper untuk build DSN Postgres
func (c *Config) PostgresDSN() string {
	sslmode := c.Database.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		sslmode,
	)
}
