// Package config loads this tool's configuration with a
// TOML-then-environment-then-flags cascade.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration structure.
type Config struct {
	Run     RunConfig     `toml:"run"`
	Logging LoggingConfig `toml:"logging"`
}

// RunConfig configures how jobs are scheduled and executed.
type RunConfig struct {
	NCores          string  `toml:"ncores"` // integer, or a trailing "%" for a fraction of NumCPU
	Delay           float64 `toml:"delay"`  // seconds between job launches
	Timeout         float64 `toml:"timeout"`
	MemoryThreshold string  `toml:"memory_threshold"` // e.g. "500M", "2G"; "" disables the gate
	Shell           bool    `toml:"shell"`
	ShellPath       string  `toml:"shell_path"`
	Pipe            bool    `toml:"pipe"`
	Verbose         bool    `toml:"verbose"`
	Quiet           bool    `toml:"quiet"`
	Grouped         bool    `toml:"grouped"`
	ETA             bool    `toml:"eta"`
	DryRun          bool    `toml:"dry_run"`
	JobLogPath      string  `toml:"joblog"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads configPath if present, applies environment overrides,
// then validates. CLI flags are applied by the caller afterward,
// overwriting whatever fields they set explicitly.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the tool's out-of-the-box defaults: one job
// at a time, no delay, no timeout, shell spawning, grouped ordering.
func DefaultConfig() Config {
	return Config{
		Run: RunConfig{
			NCores:  "1",
			Shell:   true,
			Grouped: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks config constraints and resolves NCores into a
// resident slot count.
func (c *Config) Validate() error {
	if _, err := c.Run.ResolveCores(); err != nil {
		return err
	}
	if c.Run.Delay < 0 {
		return fmt.Errorf("run.delay must be >= 0")
	}
	if c.Run.Timeout < 0 {
		return fmt.Errorf("run.timeout must be >= 0")
	}
	if c.Run.MemoryThreshold != "" {
		if _, err := ParseByteSize(c.Run.MemoryThreshold); err != nil {
			return fmt.Errorf("run.memory_threshold: %w", err)
		}
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s (must be: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}

// ResolveCores turns NCores ("4", "150%", "") into a worker count of
// at least 1. A trailing "%" scales runtime.NumCPU(); "200%" on an
// 4-core machine yields 8.
func (r *RunConfig) ResolveCores() (int, error) {
	s := strings.TrimSpace(r.NCores)
	if s == "" {
		return 1, nil
	}
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid run.ncores percentage: %q", s)
		}
		n := int(pct / 100 * float64(runtime.NumCPU()))
		if n < 1 {
			n = 1
		}
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid run.ncores: %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("run.ncores must be >= 1, got %d", n)
	}
	return n, nil
}

// ParseByteSize parses sizes like "500K", "2G", "1048576" into bytes.
func ParseByteSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	mult := uint64(1)
	suffix := s[len(s)-1]
	switch suffix {
	case 'k', 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}
	return n * mult, nil
}

// applyEnvVars overrides Config fields from environment variables.
func applyEnvVars(cfg *Config) {
	if v := os.Getenv("PARALLEL_NCORES"); v != "" {
		cfg.Run.NCores = v
	}
	if v := os.Getenv("PARALLEL_DELAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Run.Delay = f
		}
	}
	if v := os.Getenv("PARALLEL_TIMEOUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Run.Timeout = f
		}
	}
	if v := os.Getenv("PARALLEL_MEMORY_THRESHOLD"); v != "" {
		cfg.Run.MemoryThreshold = v
	}
	if v := os.Getenv("PARALLEL_JOBLOG"); v != "" {
		cfg.Run.JobLogPath = v
	}
	if v := os.Getenv("PARALLEL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PARALLEL_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
