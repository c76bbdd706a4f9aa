package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a directory with no config.yaml so only defaults apply.
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("PORT", "")
	t.Setenv("CHECK_LIMIT", "")
	t.Setenv("REPORT_QUEUE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.CheckLimit != 5 {
		t.Errorf("CheckLimit = %d", cfg.CheckLimit)
	}
	if cfg.DNSTimeout != 5*time.Second {
		t.Errorf("DNSTimeout = %v", cfg.DNSTimeout)
	}
	if cfg.MaxInFlight != 32 {
		t.Errorf("MaxInFlight = %d", cfg.MaxInFlight)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.ReportQueue != "report_tasks" {
		t.Errorf("ReportQueue = %q", cfg.ReportQueue)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
port: 9090
db_url: postgres://yaml/db
redis:
  addr: yaml-redis:6379
  queues:
    reports: yaml_reports
dns:
  nameservers: ["9.9.9.9:53"]
  timeout: 2s
check_limit: 10
dkim_selectors: ["s1", "s2"]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "")
	t.Setenv("DB_URL", "")
	t.Setenv("REPORT_QUEUE", "")
	t.Setenv("REDIS_ADDR", "env-redis:6379") // env wins over YAML

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DBURL != "postgres://yaml/db" {
		t.Errorf("DBURL = %q", cfg.DBURL)
	}
	if cfg.RedisAddr != "env-redis:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.ReportQueue != "yaml_reports" {
		t.Errorf("ReportQueue = %q", cfg.ReportQueue)
	}
	if cfg.DNSTimeout != 2*time.Second {
		t.Errorf("DNSTimeout = %v", cfg.DNSTimeout)
	}
	if cfg.CheckLimit != 10 {
		t.Errorf("CheckLimit = %d", cfg.CheckLimit)
	}
	if len(cfg.DKIMSelectors) != 2 || cfg.DKIMSelectors[0] != "s1" {
		t.Errorf("DKIMSelectors = %v", cfg.DKIMSelectors)
	}
	if len(cfg.Nameservers) != 1 || cfg.Nameservers[0] != "9.9.9.9:53" {
		t.Errorf("Nameservers = %v", cfg.Nameservers)
	}
}
