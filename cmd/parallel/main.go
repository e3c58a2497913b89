// Package main is the entry point for the parallel CLI tool.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorun/parallel/internal/cli"
	"github.com/gorun/parallel/internal/config"
	"github.com/gorun/parallel/internal/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	verbose    bool
	noColor    bool

	flagJobs            string
	flagETA             bool
	flagDryRun          bool
	flagTimeout         float64
	flagDelay           float64
	flagMemoryThreshold string
	flagJobLog          string
	flagNoShell         bool
	flagUngroup         bool
	flagQuiet           bool
	flagPipe            bool
)

func main() {
	log := logger.NewLogger("info", "text")
	logger.SetGlobalLogger(log)
	logger.LogAppStart(version, commit)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.LogAppShutdown(fmt.Sprintf("received signal: %v", sig))
	}()

	rootCmd := &cobra.Command{
		Use:   "parallel [flags] command {} ::: arguments...",
		Short: "Run a command against many inputs in parallel",
		Long: `parallel runs a command once per input, substituting {}-style
placeholders, spreading the work across a bounded worker pool, and
reconstructing output on the real stdout/stderr in input order
regardless of which job actually finished first.

Inputs come from literal arguments after a ::: marker, from files
named after a :::: marker (one input per line), or from stdin when
no marker is given at all.`,
		Example: `  # one input list
  parallel echo {} ::: a b c

  # command inferred from the input when no placeholder is used
  parallel ::: a b c

  # cartesian product over two lists
  parallel echo {1} {2} ::: a b ::: x y

  # reading inputs from stdin
  find . -name '*.txt' | parallel gzip {}`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetGlobalLogger(logger.NewLogger("debug", "text"))
			}
			if noColor {
				cli.SetColorMode(cli.ColorNever)
			} else {
				cli.SetColorMode(cli.ColorAuto)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParallel(args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized terminal output")

	rootCmd.Flags().StringVarP(&flagJobs, "jobs", "j", "", "number of worker slots, or N% of detected CPUs")
	rootCmd.Flags().BoolVar(&flagETA, "eta", false, "show a live progress bar with estimated time remaining")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the commands that would run instead of running them")
	rootCmd.Flags().Float64Var(&flagTimeout, "timeout", 0, "per-job timeout in seconds (0 disables)")
	rootCmd.Flags().Float64Var(&flagDelay, "delay", 0, "seconds to wait between successive job launches")
	rootCmd.Flags().StringVar(&flagMemoryThreshold, "memory-threshold", "", "pause dispatch until at least this much memory is free (e.g. 500M, 2G)")
	rootCmd.Flags().StringVar(&flagJobLog, "joblog", "", "write a per-job record (start, runtime, exit code, command) to this file")
	rootCmd.Flags().BoolVar(&flagNoShell, "no-shell", false, "spawn commands directly instead of through a shell")
	rootCmd.Flags().BoolVar(&flagUngroup, "ungroup", false, "accepted for compatibility; output is still grouped per job and printed in job order")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "discard each job's stdout, keeping only stderr")
	rootCmd.Flags().BoolVar(&flagPipe, "pipe", false, "write each job's input to its stdin instead of substituting it into the command")

	if err := rootCmd.Execute(); err != nil {
		logger.LogAppShutdown(fmt.Sprintf("error: %v", err))
		cli.Error("%v", err)
		os.Exit(1)
	}

	logger.LogAppShutdown("normal exit")
}

// loadConfig resolves the TOML-then-environment config cascade from
// configPath, which may be empty.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// applyFlagOverrides layers explicitly-set CLI flags on top of the
// loaded config, the last stage of the cascade.
func applyFlagOverrides(cfg *config.Config) {
	if flagJobs != "" {
		cfg.Run.NCores = flagJobs
	}
	if flagETA {
		cfg.Run.ETA = true
	}
	if flagDryRun {
		cfg.Run.DryRun = true
	}
	if flagTimeout > 0 {
		cfg.Run.Timeout = flagTimeout
	}
	if flagDelay > 0 {
		cfg.Run.Delay = flagDelay
	}
	if flagMemoryThreshold != "" {
		cfg.Run.MemoryThreshold = flagMemoryThreshold
	}
	if flagJobLog != "" {
		cfg.Run.JobLogPath = flagJobLog
	}
	if flagNoShell {
		cfg.Run.Shell = false
	}
	if flagUngroup {
		cfg.Run.Grouped = false
	}
	if flagQuiet {
		cfg.Run.Quiet = true
	}
	if flagPipe {
		cfg.Run.Pipe = true
	}
}

// installSignalHandler calls cancel on SIGINT/SIGTERM: workers stop
// taking new jobs, children still running are killed, and the Receiver
// stops waiting for output.
func installSignalHandler(cancel func(), log *logger.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Warn("received interrupt, stopping dispatch and killing running jobs", logger.Field{Key: "signal", Value: sig.String()})
		cancel()
	}()
}
