// Package config loads configuration with a cascading priority order:
// TOML < environment variables < CLI flags.
//
// # Configuration sources
//
// Configuration is loaded in the following priority (later overrides
// earlier):
//
//  1. Hardcoded defaults
//  2. TOML configuration file
//  3. Environment variables
//  4. CLI flags (applied externally by cmd/parallel)
//
// # Basic usage
//
// Load configuration from a TOML file:
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Default configuration
//
// Get a configuration with sensible defaults:
//
//	cfg := config.DefaultConfig()
//	// cfg has ncores=1, shell=true, grouped=true, log level=info
//
// # Configuration structure
//
// The top-level configuration is split into logical sections:
//
//   - Run: worker count, delay, timeout, memory threshold, shell/pipe mode,
//     output verbosity, job log path
//   - Logging: log level, output format
//
// # TOML example
//
//	[run]
//	ncores = "150%"
//	delay = 0.1
//	timeout = 30
//	memory_threshold = "500M"
//	shell = true
//	eta = true
//
//	[logging]
//	level = "info"
//	format = "text"
//
// # Environment variables
//
// The following environment variables are supported:
//
//   - PARALLEL_NCORES: overrides run.ncores
//   - PARALLEL_DELAY: overrides run.delay
//   - PARALLEL_TIMEOUT: overrides run.timeout
//   - PARALLEL_MEMORY_THRESHOLD: overrides run.memory_threshold
//   - PARALLEL_JOBLOG: overrides run.joblog
//   - PARALLEL_LOG_LEVEL: overrides logging.level
//   - PARALLEL_LOG_FORMAT: overrides logging.format
//
// # Validation
//
// Configuration is validated automatically on load:
//
//	cfg, err := config.Load("config.toml")
//	// err != nil if validation fails
//
// Validation rules:
//
//   - run.ncores must resolve to a positive integer; a trailing "%"
//     scales runtime.NumCPU()
//   - run.delay, run.timeout must be >= 0
//   - run.memory_threshold, if set, must parse as a byte size (K/M/G suffix)
//   - logging.level: debug, info, warn, error
//
// A missing TOML file is not an error; defaults are used instead.
package config
