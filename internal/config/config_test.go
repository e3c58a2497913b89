package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Run.NCores != "1" {
		t.Errorf("expected ncores 1, got %s", cfg.Run.NCores)
	}
	if !cfg.Run.Shell {
		t.Error("expected shell=true by default")
	}
	if !cfg.Run.Grouped {
		t.Error("expected grouped=true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format text, got %s", cfg.Logging.Format)
	}
}

func TestLoadConfigFromTOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "valid-config.toml"))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Run.NCores != "8" {
		t.Errorf("expected ncores 8, got %s", cfg.Run.NCores)
	}
	if cfg.Run.Delay != 0.25 {
		t.Errorf("expected delay 0.25, got %v", cfg.Run.Delay)
	}
	if cfg.Run.MemoryThreshold != "500M" {
		t.Errorf("expected memory_threshold 500M, got %s", cfg.Run.MemoryThreshold)
	}
	if !cfg.Run.ETA {
		t.Error("expected eta=true")
	}
	if cfg.Run.JobLogPath != "./job.log" {
		t.Errorf("expected joblog ./job.log, got %s", cfg.Run.JobLogPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format json, got %s", cfg.Logging.Format)
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "nonexistent.toml"))
	if err != nil {
		t.Fatalf("loading nonexistent config should use defaults, got error: %v", err)
	}
	if cfg.Run.NCores != "1" {
		t.Errorf("expected default ncores 1, got %s", cfg.Run.NCores)
	}
}

func TestResolveCoresPlain(t *testing.T) {
	r := RunConfig{NCores: "4"}
	n, err := r.ResolveCores()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("ResolveCores() = %d, want 4", n)
	}
}

func TestResolveCoresPercentage(t *testing.T) {
	r := RunConfig{NCores: "100%"}
	n, err := r.ResolveCores()
	if err != nil {
		t.Fatal(err)
	}
	if n < 1 {
		t.Errorf("ResolveCores() = %d, want >= 1", n)
	}
}

func TestResolveCoresRejectsZero(t *testing.T) {
	r := RunConfig{NCores: "0"}
	if _, err := r.ResolveCores(); err == nil {
		t.Fatal("expected an error for ncores=0")
	}
}

func TestParseByteSize(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1024", 1024},
		{"500K", 500 * 1024},
		{"2M", 2 * 1024 * 1024},
		{"1G", 1 << 30},
	}
	for _, tc := range cases {
		got, err := ParseByteSize(tc.in)
		if err != nil {
			t.Errorf("ParseByteSize(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseByteSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
