package config_test

import (
	"fmt"
	"os"

	"github.com/gorun/parallel/internal/config"
)

// ExampleDefaultConfig demonstrates getting default configuration.
func ExampleDefaultConfig() {
	cfg := config.DefaultConfig()

	fmt.Printf("NCores: %s\n", cfg.Run.NCores)
	fmt.Printf("Grouped: %v\n", cfg.Run.Grouped)
	fmt.Printf("Log Level: %s\n", cfg.Logging.Level)
	// Output:
	// NCores: 1
	// Grouped: true
	// Log Level: info
}

// ExampleLoad demonstrates loading configuration from a TOML file.
func ExampleLoad() {
	tmpfile, _ := os.CreateTemp("", "config-*.toml")
	defer os.Remove(tmpfile.Name())

	content := `[run]
ncores = "4"
delay = 0.1
eta = true

[logging]
level = "debug"
format = "json"
`
	tmpfile.WriteString(content)
	tmpfile.Close()

	cfg, err := config.Load(tmpfile.Name())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("NCores: %s\n", cfg.Run.NCores)
	fmt.Printf("ETA: %v\n", cfg.Run.ETA)
	fmt.Printf("Log Level: %s\n", cfg.Logging.Level)
	// Output:
	// NCores: 4
	// ETA: true
	// Log Level: debug
}

// ExampleLoad_nonexistent demonstrates that a missing config file uses defaults.
func ExampleLoad_nonexistent() {
	cfg, err := config.Load("/nonexistent/config.toml")
	if err == nil {
		fmt.Printf("NCores: %s\n", cfg.Run.NCores)
	}
	// Output:
	// NCores: 1
}

// ExampleRunConfig_ResolveCores demonstrates the ncores percentage grammar.
func ExampleRunConfig_ResolveCores() {
	r := config.RunConfig{NCores: "4"}
	n, _ := r.ResolveCores()
	fmt.Printf("Cores: %d\n", n)
	// Output:
	// Cores: 4
}

// Example_envOverride demonstrates environment variable override.
func Example_envOverride() {
	os.Setenv("PARALLEL_NCORES", "12")
	defer os.Unsetenv("PARALLEL_NCORES")

	cfg, err := config.Load("/nonexistent/config.toml")
	if err == nil {
		fmt.Printf("NCores: %s\n", cfg.Run.NCores)
	}
	// Output:
	// NCores: 12
}
