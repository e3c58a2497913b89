// Package orderer re-sequences job completions by job id so that,
// despite the worker pool finishing jobs out of order, the user's
// terminal sees stdout/stderr in the exact order the Input Iterator
// yielded them.
package orderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gorun/parallel/internal/buffer"
	apperrors "github.com/gorun/parallel/internal/errors"
	"github.com/gorun/parallel/internal/jobpaths"
	"github.com/gorun/parallel/internal/joblog"
	"github.com/gorun/parallel/internal/retry"
	"github.com/gorun/parallel/internal/supervisor"
)

// copyAndRemovePolicy bounds the wait for a job's capture file to
// become visible after the Supervisor closes it. Up to eight retries,
// with delays doubling from 1ms to 128ms (about 255ms in all), absorb
// ordinary filesystem latency without masking a genuinely missing file
// for long.
func copyAndRemovePolicy() *retry.Policy {
	return retry.NewPolicyBuilder().
		WithMaxRetries(8).
		WithInitialDelay(time.Millisecond).
		WithMaxDelay(200 * time.Millisecond).
		WithJitter(false).
		Build()
}

// Message is what the dispatcher sends for every finished job,
// whether it ran to completion or failed to spawn.
type Message struct {
	JobID    int
	Input    string
	Quiet    bool // true if the Supervisor discarded this job's stdout
	SpawnErr error
	Result   supervisor.Result
}

// Receiver is the single consumer of job completions. It owns the
// run's temp directory (sole deleter of per-job capture files), the
// processed/errors journals, and the optional job log.
type Receiver struct {
	next   int
	total  int
	runDir string

	stdout io.Writer
	stderr io.Writer

	processed *buffer.Writer
	errors    *buffer.Writer
	joblog    *joblog.Writer
}

// New opens the processed/errors journals under runDir and returns a
// Receiver ready to drain total jobs. jl may be nil when --joblog was
// not requested.
func New(runDir string, total int, stdout, stderr io.Writer, jl *joblog.Writer) (*Receiver, error) {
	processed, err := buffer.Create(jobpaths.Processed(runDir))
	if err != nil {
		return nil, err
	}
	errorsFile, err := buffer.Create(jobpaths.Errors(runDir))
	if err != nil {
		_ = processed.Close()
		return nil, err
	}
	return &Receiver{
		total:     total,
		runDir:    runDir,
		stdout:    stdout,
		stderr:    stderr,
		processed: processed,
		errors:    errorsFile,
		joblog:    jl,
	}, nil
}

// Run consumes messages until every job from 0 to total-1 has been
// flushed, in order, or ctx is cancelled. Out-of-order arrivals are
// held in a pending buffer and drained as soon as their turn comes.
func (r *Receiver) Run(ctx context.Context, msgs <-chan Message) error {
	pending := make(map[int]Message)

	for r.next < r.total {
		var msg Message
		select {
		case msg = <-msgs:
		case <-ctx.Done():
			return ctx.Err()
		}

		if msg.JobID != r.next {
			pending[msg.JobID] = msg
			continue
		}

		if err := r.flush(msg); err != nil {
			return err
		}
		r.next++

		for {
			m, ok := pending[r.next]
			if !ok {
				break
			}
			delete(pending, r.next)
			if err := r.flush(m); err != nil {
				return err
			}
			r.next++
		}
	}

	return r.close()
}

func (r *Receiver) flush(msg Message) error {
	if msg.SpawnErr != nil {
		return r.appendError(msg)
	}
	return r.flushCompleted(msg)
}

// flushCompleted copies a job's captured stdout then stderr to the
// real terminal in that order, appends its input to the processed
// journal, records a job log entry if enabled, and unlinks the
// per-job capture files.
func (r *Receiver) flushCompleted(msg Message) error {
	stderrPath := jobpaths.Stderr(r.runDir, msg.JobID)

	if !msg.Quiet {
		stdoutPath := jobpaths.Stdout(r.runDir, msg.JobID)
		if err := copyAndRemove(stdoutPath, r.stdout); err != nil {
			fmt.Fprintf(r.stderr, "parallel: I/O error: unable to flush job %d stdout: %v\n", msg.JobID, err)
		}
	}
	if err := copyAndRemove(stderrPath, r.stderr); err != nil {
		fmt.Fprintf(r.stderr, "parallel: I/O error: unable to flush job %d stderr: %v\n", msg.JobID, err)
	}

	if _, err := r.processed.Write([]byte(msg.Input + "\n")); err != nil {
		fmt.Fprintf(r.stderr, "parallel: I/O error: unable to append to processed: %v\n", err)
	}

	if r.joblog != nil {
		entry := joblog.Entry{
			JobID:    msg.JobID,
			Start:    msg.Result.Start,
			Runtime:  msg.Result.Runtime,
			ExitCode: msg.Result.ExitCode,
			Signal:   msg.Result.Signal,
			Command:  msg.Result.Command,
		}
		if err := r.joblog.Write(entry); err != nil {
			fmt.Fprintf(r.stderr, "parallel: I/O error: unable to write job log entry: %v\n", err)
		}
	}

	return nil
}

func (r *Receiver) appendError(msg Message) error {
	line := fmt.Sprintf("%s: %v\n", msg.Input, msg.SpawnErr)
	if _, err := r.errors.Write([]byte(line)); err != nil {
		fmt.Fprintf(r.stderr, "parallel: I/O error: %v\n", err)
	}
	return nil
}

func (r *Receiver) close() error {
	if err := r.processed.Flush(); err != nil {
		fmt.Fprintf(r.stderr, "parallel: I/O error: %v\n", err)
	}
	if err := r.errors.Flush(); err != nil {
		fmt.Fprintf(r.stderr, "parallel: I/O error: %v\n", err)
	}
	return nil
}

// copyAndRemove drains path to dst and unlinks it. The Supervisor
// closes a job's capture files before sending its completion message,
// but the retry policy guards against any OS-level delay in the file
// becoming visible.
func copyAndRemove(path string, dst io.Writer) error {
	var f *os.File
	policy := copyAndRemovePolicy()
	err := policy.Do(context.Background(), func() error {
		var openErr error
		f, openErr = os.Open(path)
		if openErr != nil {
			return apperrors.NewRetryable("opening job capture file", openErr)
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(dst, f); err != nil {
		return err
	}
	return os.Remove(path)
}
