package config

import (
	"path/filepath"
	"testing"
)

func TestValidationRejectsNegativeDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.Delay = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative delay")
	}
}

func TestValidationRejectsNegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.Timeout = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative timeout")
	}
}

func TestValidationRejectsBadMemoryThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.MemoryThreshold = "not-a-size"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for malformed memory_threshold")
	}
}

func TestValidationInvalidNCoresFromFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid-ncores.toml"))
	if err == nil {
		t.Fatal("expected validation error for ncores=0")
	}
}

func TestValidationInvalidLogLevelFromFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "invalid-log-level.toml"))
	if err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

func TestValidationAllLogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run(level, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				t.Errorf("log level %s should be valid, got error: %v", level, err)
			}
		})
	}
}

func TestValidateCompleteConfig(t *testing.T) {
	cfg := Config{
		Run: RunConfig{
			NCores:          "4",
			Delay:           0.1,
			Timeout:         10,
			MemoryThreshold: "1G",
			Shell:           true,
			Grouped:         true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config should pass validation, got error: %v", err)
	}
}
