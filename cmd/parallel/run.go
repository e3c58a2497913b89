package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gorun/parallel/internal/cli"
	"github.com/gorun/parallel/internal/config"
	"github.com/gorun/parallel/internal/dispatch"
	apperrors "github.com/gorun/parallel/internal/errors"
	"github.com/gorun/parallel/internal/iterator"
	"github.com/gorun/parallel/internal/jobpaths"
	"github.com/gorun/parallel/internal/joblog"
	"github.com/gorun/parallel/internal/logger"
	"github.com/gorun/parallel/internal/orderer"
	"github.com/gorun/parallel/internal/permutate"
	"github.com/gorun/parallel/internal/stage"
	"github.com/gorun/parallel/internal/template"
	"github.com/mattn/go-isatty"
)

// runParallel drives one invocation end to end: resolve config, parse
// the trailing positional arguments into a template and input lists,
// stage every job's input, then run the worker pool and drain its
// output through the Receiver.
func runParallel(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return apperrors.NewFatal("loading configuration", err)
	}
	applyFlagOverrides(cfg)

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	logger.SetGlobalLogger(log)

	templateStr, lists, err := parsePositionalArgs(args)
	if err != nil {
		return apperrors.NewFatal("parsing arguments", err)
	}
	if templateStr == "" {
		templateStr = "{}"
	}
	if len(lists) == 0 {
		items, err := readStdinList()
		if err != nil {
			return apperrors.NewFatal("reading stdin input list", err)
		}
		lists = [][]string{items}
	}

	tokens := template.Parse(templateStr)

	cores, err := cfg.Run.ResolveCores()
	if err != nil {
		return apperrors.NewFatal("resolving run.ncores", err)
	}

	var memoryThreshold uint64
	if cfg.Run.MemoryThreshold != "" {
		memoryThreshold, err = config.ParseByteSize(cfg.Run.MemoryThreshold)
		if err != nil {
			return apperrors.NewFatal("parsing run.memory_threshold", err)
		}
	}

	runDir, err := jobpaths.NewRunDir(os.TempDir())
	if err != nil {
		return apperrors.NewFatal("creating run directory", err)
	}
	defer os.RemoveAll(runDir)

	perm := permutate.New(lists)
	total := perm.MaxIterations()
	tokens = template.ResolveJobTotalComputed(tokens, total)

	staged, err := stage.Create(jobpaths.Unprocessed(runDir))
	if err != nil {
		return apperrors.NewFatal("creating staged input file", err)
	}
	for {
		tuple, ok := perm.Next()
		if !ok {
			break
		}
		if err := staged.Stage(template.EncodeTuple(tuple)); err != nil {
			return apperrors.NewFatal("staging input", err)
		}
	}
	if err := staged.Close(); err != nil {
		return apperrors.NewFatal("flushing staged input file", err)
	}
	if total == 0 {
		log.LogAppShutdown("no inputs to process")
		return nil
	}

	it, err := iterator.Open(jobpaths.Unprocessed(runDir), total)
	if err != nil {
		return apperrors.NewFatal("opening input iterator", err)
	}
	defer it.Close()

	var jl *joblog.Writer
	if cfg.Run.JobLogPath != "" {
		jl, err = joblog.Create(cfg.Run.JobLogPath)
		if err != nil {
			return apperrors.NewFatal("creating job log", err)
		}
		defer jl.Close()
	}

	receiver, err := orderer.New(runDir, total, os.Stdout, os.Stderr, jl)
	if err != nil {
		return apperrors.NewFatal("creating receiver", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	installSignalHandler(cancel, log)

	useProgressBar := cfg.Run.ETA && isatty.IsTerminal(os.Stdout.Fd()) && !cfg.Run.Quiet

	lock := iterator.New(it, iterator.Config{
		Delay:           time.Duration(cfg.Run.Delay * float64(time.Second)),
		MemoryThreshold: memoryThreshold,
		ETA:             cfg.Run.ETA && !useProgressBar,
		ETAOutput:       os.Stderr,
	})

	msgs := make(chan orderer.Message, cores)

	if useProgressBar {
		progressCtx, progressCancel := context.WithCancel(ctx)
		defer progressCancel()
		pb := cli.NewProgressBar(cli.ProgressBarConfig{
			Total:       total,
			Description: "Running",
			Width:       40,
			UpdateRate:  100 * time.Millisecond,
		})
		done := make(chan struct{})
		go func() {
			dispatch.Run(ctx, lock, tokens, dispatch.Options{
				NCores:    cores,
				UseShell:  cfg.Run.Shell,
				ShellPath: cfg.Run.ShellPath,
				Quiet:     cfg.Run.Quiet,
				PipeInput: cfg.Run.Pipe,
				Timeout:   time.Duration(cfg.Run.Timeout * float64(time.Second)),
				RunDir:    runDir,
				DryRun:    cfg.Run.DryRun,
				Total:     total,
			}, msgs, os.Stdout, log)
			close(done)
		}()
		go func() {
			<-done
			progressCancel()
		}()
		pb.Start(progressCtx, total, lock)
		pb.Finish()
	} else {
		go dispatch.Run(ctx, lock, tokens, dispatch.Options{
			NCores:    cores,
			UseShell:  cfg.Run.Shell,
			ShellPath: cfg.Run.ShellPath,
			Quiet:     cfg.Run.Quiet,
			PipeInput: cfg.Run.Pipe,
			Timeout:   time.Duration(cfg.Run.Timeout * float64(time.Second)),
			RunDir:    runDir,
			DryRun:    cfg.Run.DryRun,
			Total:     total,
		}, msgs, os.Stdout, log)
	}

	if err := receiver.Run(ctx, msgs); err != nil {
		if ctx.Err() != nil {
			log.LogAppShutdown("run cancelled")
			return nil
		}
		return apperrors.NewFatal("receiving job output", err)
	}

	return nil
}

func readStdinList() ([]string, error) {
	var items []string
	err := stage.ReadLines(os.Stdin, func(line string) error {
		items = append(items, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no input arguments given and stdin is empty")
	}
	return items, nil
}
