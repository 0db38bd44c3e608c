package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/martinnjensen/MetalWatch/internal/event"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metalwatch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - id: hm
    scraper: heavymetal
    url: https://www.heavymetal.dk/koncerter/
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "~/.local/share/metalwatch" {
		t.Errorf("unexpected default data dir: %s", cfg.DataDir)
	}
	if cfg.Notify.Channel != "console" {
		t.Errorf("unexpected default channel: %s", cfg.Notify.Channel)
	}
	if cfg.Serve.CheckInterval != "1h" || cfg.CheckInterval() != time.Hour {
		t.Errorf("unexpected default check interval: %s", cfg.Serve.CheckInterval)
	}
	if cfg.Serve.MetricsAddr != ":9464" {
		t.Errorf("unexpected default metrics addr: %s", cfg.Serve.MetricsAddr)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
data_dir: /var/lib/metalwatch
passphrase: hunter2
notify:
  channel: email
  email:
    host: smtp.example.com
    port: 587
    from: metalwatch@example.com
    to: fan@example.com
serve:
  check_interval: 30m
  metrics_addr: ":9000"
sources:
  - id: hm
    name: Heavymetal.dk
    scraper: heavymetal
    url: https://www.heavymetal.dk/koncerter/
    interval: 12h
  - id: other
    scraper: heavymetal
    url: https://other.example/calendar
    enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Notify.Channel != "email" || cfg.Notify.Email.Host != "smtp.example.com" {
		t.Errorf("email config not parsed: %+v", cfg.Notify)
	}
	if cfg.CheckInterval() != 30*time.Minute {
		t.Errorf("unexpected check interval: %v", cfg.CheckInterval())
	}

	sources := cfg.SourceList()
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}

	first := sources[0]
	if first.Name != "Heavymetal.dk" || first.ScraperKey != "heavymetal" || first.Interval != 12*time.Hour {
		t.Errorf("unexpected first source: %+v", first)
	}
	if !first.Enabled {
		t.Error("enabled should default to true")
	}

	second := sources[1]
	if second.Name != "other" {
		t.Errorf("name should fall back to id, got %s", second.Name)
	}
	if second.Interval != event.DefaultScrapeInterval {
		t.Errorf("interval should default to %v, got %v", event.DefaultScrapeInterval, second.Interval)
	}
	if second.Enabled {
		t.Error("explicit enabled: false should stick")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing source id",
			content: `
sources:
  - scraper: heavymetal
    url: https://a.example
`,
			wantErr: "missing id",
		},
		{
			name: "duplicate source id",
			content: `
sources:
  - id: hm
    scraper: heavymetal
    url: https://a.example
  - id: hm
    scraper: heavymetal
    url: https://b.example
`,
			wantErr: "duplicate source id",
		},
		{
			name: "missing url",
			content: `
sources:
  - id: hm
    scraper: heavymetal
`,
			wantErr: "missing url",
		},
		{
			name: "missing scraper",
			content: `
sources:
  - id: hm
    url: https://a.example
`,
			wantErr: "missing scraper",
		},
		{
			name: "bad interval",
			content: `
sources:
  - id: hm
    scraper: heavymetal
    url: https://a.example
    interval: soon
`,
			wantErr: "invalid interval",
		},
		{
			name: "unknown channel",
			content: `
notify:
  channel: pigeon
`,
			wantErr: "unknown notify channel",
		},
		{
			name: "bad check interval",
			content: `
serve:
  check_interval: often
`,
			wantErr: "invalid check_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}
