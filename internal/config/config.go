package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("5s", "250ms") in YAML.
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

type Config struct {
	HTTPAddr    string      `yaml:"http_addr"`
	MySQLDSN    string      `yaml:"mysql_dsn"`
	RedisAddr   string      `yaml:"redis_addr"`
	Fulfillment Fulfillment `yaml:"fulfillment"`
}

type Fulfillment struct {
	ScanInterval    Duration `yaml:"scan_interval"`
	ProcessingDelay Duration `yaml:"processing_delay"`
	MaxAttempts     int      `yaml:"max_attempts"`
	RetryDelay      Duration `yaml:"retry_delay"`
	// FailureRate is the probability in [0,1] that one simulated
	// notification attempt fails.
	FailureRate float64 `yaml:"failure_rate"`
}

func Default() Config {
	return Config{
		HTTPAddr:  ":8080",
		MySQLDSN:  "root:root@tcp(localhost:3306)/orders?parseTime=true",
		RedisAddr: "localhost:6379",
		Fulfillment: Fulfillment{
			ScanInterval:    Duration(5 * time.Second),
			ProcessingDelay: Duration(2 * time.Second),
			MaxAttempts:     3,
			RetryDelay:      Duration(1 * time.Second),
			FailureRate:     0.3,
		},
	}
}

// Load reads the optional YAML file at path (empty path skips the file) and
// then applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.MySQLDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
}
