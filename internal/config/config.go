package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type DeletionCfg struct {
	Workers   int `yaml:"workers" json:"workers"`       // Background delete workers (default: 4)
	QueueSize int `yaml:"queue_size" json:"queue_size"` // Buffered task slots before Submit blocks (default: 1024)
}

type PrometheusCfg struct {
	Port int `yaml:"port" json:"port"`
}

type LoggingCfg struct {
	RotationDays int `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type ScanCfg struct {
	Parallel bool `yaml:"parallel" json:"parallel"` // Scan data dirs concurrently
}

type Config struct {
	DataDirs        []string      `yaml:"data_dirs" json:"data_dirs"` // Ordered data-directory roots
	Deletion        DeletionCfg   `yaml:"deletion" json:"deletion"`
	Prometheus      PrometheusCfg `yaml:"prometheus" json:"prometheus"`
	Logging         LoggingCfg    `yaml:"logging" json:"logging"`
	Scan            ScanCfg       `yaml:"scan" json:"scan"`
	IntervalMinutes int           `yaml:"interval_minutes" json:"interval_minutes"` // Rescan interval in serve mode
	DatabasePath    string        `yaml:"database_path" json:"database_path"`       // SQLite deletion ledger ("" disables it)
}

var (
	errNoDataDirs  = errors.New("configuration must specify data_dirs")
	errInvalidPath = errors.New("path must be absolute")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if len(c.DataDirs) == 0 {
		return errNoDataDirs
	}

	cleaned := make([]string, 0, len(c.DataDirs))
	for _, p := range c.DataDirs {
		cp, err := cleanAbsolute(p)
		if err != nil {
			return err
		}
		cleaned = append(cleaned, cp)
	}
	c.DataDirs = cleaned

	if c.Deletion.Workers <= 0 {
		c.Deletion.Workers = 4
	}
	if c.Deletion.QueueSize <= 0 {
		c.Deletion.QueueSize = 1024
	}

	if c.Prometheus.Port == 0 {
		c.Prometheus.Port = 9090
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30
	}

	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = 15
	}

	return nil
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c *Config) PrometheusAddress() string {
	return fmt.Sprintf(":%d", c.Prometheus.Port)
}
