package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeAndDefaults(t *testing.T) {
	yaml := `
data_dirs:
  - /var/lib/engine/data1
  - /var/lib/engine/data2/
database_path: /var/lib/diskops/ledger.db
`
	cfg, err := decode(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if err := cfg.validateAndDefault(); err != nil {
		t.Fatalf("validateAndDefault failed: %v", err)
	}

	if len(cfg.DataDirs) != 2 {
		t.Fatalf("got %d data dirs, want 2", len(cfg.DataDirs))
	}
	if cfg.DataDirs[1] != "/var/lib/engine/data2" {
		t.Errorf("data dir not cleaned: %s", cfg.DataDirs[1])
	}
	if cfg.Deletion.Workers != 4 {
		t.Errorf("default workers = %d, want 4", cfg.Deletion.Workers)
	}
	if cfg.Deletion.QueueSize != 1024 {
		t.Errorf("default queue size = %d, want 1024", cfg.Deletion.QueueSize)
	}
	if cfg.Prometheus.Port != 9090 {
		t.Errorf("default prometheus port = %d, want 9090", cfg.Prometheus.Port)
	}
	if cfg.Logging.RotationDays != 30 {
		t.Errorf("default rotation days = %d, want 30", cfg.Logging.RotationDays)
	}
	if cfg.PrometheusAddress() != ":9090" {
		t.Errorf("PrometheusAddress = %s", cfg.PrometheusAddress())
	}
}

func TestValidateRejectsEmptyDataDirs(t *testing.T) {
	cfg := &Config{}
	if err := cfg.validateAndDefault(); !errors.Is(err, errNoDataDirs) {
		t.Errorf("expected errNoDataDirs, got %v", err)
	}
}

func TestValidateRejectsRelativePath(t *testing.T) {
	cfg := &Config{DataDirs: []string{"relative/path"}}
	if err := cfg.validateAndDefault(); !errors.Is(err, errInvalidPath) {
		t.Errorf("expected errInvalidPath, got %v", err)
	}
}
