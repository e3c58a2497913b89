// Package dispatch wires the Input Iterator's Inputs Lock, the
// Command Builder, and the Child Supervisor together into the worker
// pool that drives a run: N goroutines pulling jobs until the input
// stream is exhausted, each handing its outcome to the Orderer.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorun/parallel/internal/iterator"
	"github.com/gorun/parallel/internal/logger"
	"github.com/gorun/parallel/internal/orderer"
	"github.com/gorun/parallel/internal/supervisor"
	"github.com/gorun/parallel/internal/template"
)

// Options configures how a run's worker pool spawns and captures each
// job.
type Options struct {
	NCores    int
	UseShell  bool
	ShellPath string
	Quiet     bool
	PipeInput bool
	Timeout   time.Duration
	RunDir    string
	DryRun    bool
	Total     int
}

// Run spawns opts.NCores worker goroutines, each pulling jobs from
// lock until the input stream is exhausted, materializing a command
// from tokens for every job, running it (or, in dry-run mode, writing
// the materialized command to dryRun instead of spawning it), and
// sending the outcome to msgs. Run closes msgs and returns once every
// worker has exited; ctx cancellation propagates to running children
// but never abandons a job already in flight.
func Run(ctx context.Context, lock *iterator.Lock, tokens []template.Token, opts Options, msgs chan<- orderer.Message, dryRun io.Writer, log *logger.Logger) {
	var wg sync.WaitGroup

	for slot := 1; slot <= opts.NCores; slot++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			runWorker(ctx, slot, lock, tokens, opts, msgs, dryRun, log)
		}(slot)
	}

	wg.Wait()
	close(msgs)
}

func runWorker(ctx context.Context, slot int, lock *iterator.Lock, tokens []template.Token, opts Options, msgs chan<- orderer.Message, dryRun io.Writer, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		jobID, line, ok, err := lock.TryNext()
		if err != nil {
			log.LogError(err, map[string]interface{}{"component": "dispatch"})
			return
		}
		if !ok {
			return
		}

		tuple := template.DecodeTuple(line)
		cmd, err := template.Materialize(tokens, tuple, jobID+1, opts.Total, slot)
		if err != nil {
			lock.MarkCompleted()
			log.LogJobSkipped(jobID, err.Error())
			msgs <- orderer.Message{JobID: jobID, Input: line, SpawnErr: err}
			continue
		}

		if opts.DryRun {
			fmt.Fprintln(dryRun, cmd)
			lock.MarkCompleted()
			msgs <- orderer.Message{
				JobID:  jobID,
				Input:  line,
				Quiet:  true,
				Result: supervisor.Result{JobID: jobID, Input: line, Command: cmd, Start: time.Now()},
			}
			continue
		}

		log.LogJobStart(jobID, cmd)
		res := supervisor.Run(ctx, jobID, cmd, tuple[0], supervisor.Options{
			UseShell:  opts.UseShell,
			ShellPath: opts.ShellPath,
			Quiet:     opts.Quiet,
			PipeInput: opts.PipeInput,
			Timeout:   opts.Timeout,
			RunDir:    opts.RunDir,
		})
		lock.MarkCompleted()

		if res.SpawnErr != nil {
			log.LogJobSkipped(jobID, res.SpawnErr.Error())
			msgs <- orderer.Message{JobID: jobID, Input: line, SpawnErr: res.SpawnErr, Result: res}
			continue
		}

		log.LogJobComplete(jobID, res.ExitCode, res.Runtime)
		msgs <- orderer.Message{JobID: jobID, Input: line, Quiet: opts.Quiet, Result: res}
	}
}
