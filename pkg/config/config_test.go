package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: test
server:
  port: 9090
  read_timeout: 5s
ephemeris:
  source: analytic
  step_days: 0.5
ratelimit:
  forecast_capacity: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Ephemeris.StepDays != 0.5 {
		t.Errorf("step days = %v", cfg.Ephemeris.StepDays)
	}
	if cfg.RateLimit.ForecastCapacity != 2 {
		t.Errorf("forecast capacity = %v", cfg.RateLimit.ForecastCapacity)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing environment", "ephemeris:\n  source: analytic\n"},
		{"missing ephemeris source", "environment: test\n"},
		{"bad ephemeris source", "environment: test\nephemeris:\n  source: swiss\n"},
		{"file source without table", "environment: test\nephemeris:\n  source: file\n"},
		{"archive without host", "environment: test\nephemeris:\n  source: analytic\narchive:\n  enabled: true\n"},
		{"events without brokers", "environment: test\nephemeris:\n  source: analytic\nevents:\n  enabled: true\n  topic: t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadWithEnv(t *testing.T) {
	path := writeConfig(t, `
environment: test
ephemeris:
  source: analytic
`)
	t.Setenv("EPHEMERIS_SOURCE", "file")
	t.Setenv("EPHEMERIS_TABLE", "/tmp/table.yaml")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.Ephemeris.Source != "file" || cfg.Ephemeris.TablePath != "/tmp/table.yaml" {
		t.Errorf("ephemeris override not applied: %+v", cfg.Ephemeris)
	}
	if len(cfg.Events.Brokers) != 2 || cfg.Events.Brokers[1] != "b:9092" {
		t.Errorf("brokers = %v", cfg.Events.Brokers)
	}
}
