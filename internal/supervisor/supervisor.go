// Package supervisor spawns a job's child process, waits for it with
// an optional timeout, and drains its stdout/stderr into the run's
// temp directory so the Receiver can flush them in job-id order later.
package supervisor

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gorun/parallel/internal/jobpaths"
	"github.com/gorun/parallel/internal/template"
)

// Options configures how a single job's child process is spawned.
type Options struct {
	UseShell  bool   // run the command through ShellPath -c "<command>"
	ShellPath string // defaults to /bin/sh
	Quiet     bool   // discard stdout entirely, capture stderr only
	PipeInput bool   // write Input followed by "\n" to the child's stdin
	Timeout   time.Duration
	RunDir    string // base directory for stdout_<id>/stderr_<id>
}

// Result is what the Receiver needs to flush output, update the job
// log, and decide whether the job counts as failed.
type Result struct {
	JobID     int
	Input     string
	Command   string
	Start     time.Time
	Runtime   time.Duration
	ExitCode  int
	Signal    int
	StdoutLen int64 // 0 when Quiet, since no stdout capture file is written
	SpawnErr  error
}

// Run spawns command, waits for it (killing it on Timeout if set), and
// returns its outcome. ctx cancellation kills the child early with
// the same exit=-1/signal=15 bookkeeping as a timeout.
func Run(ctx context.Context, jobID int, command, input string, opts Options) Result {
	start := time.Now()
	res := Result{JobID: jobID, Input: input, Command: command, Start: start}

	cmd := buildCmd(opts, command)

	stdoutPath := jobpaths.Stdout(opts.RunDir, jobID)
	stderrPath := jobpaths.Stderr(opts.RunDir, jobID)

	stderrFile, err := os.Create(stderrPath)
	if err != nil {
		res.SpawnErr = err
		return res
	}
	defer stderrFile.Close()
	cmd.Stderr = stderrFile

	var stdoutFile *os.File
	if !opts.Quiet {
		stdoutFile, err = os.Create(stdoutPath)
		if err != nil {
			res.SpawnErr = err
			return res
		}
		defer stdoutFile.Close()
		cmd.Stdout = stdoutFile
	}

	if opts.PipeInput {
		cmd.Stdin = strings.NewReader(input + "\n")
	}

	if err := cmd.Start(); err != nil {
		res.SpawnErr = err
		res.Runtime = time.Since(start)
		return res
	}

	exitCode, signal := wait(ctx, cmd, opts.Timeout)
	res.Runtime = time.Since(start)
	res.ExitCode = exitCode
	res.Signal = signal

	if stdoutFile != nil {
		if info, err := stdoutFile.Stat(); err == nil {
			res.StdoutLen = info.Size()
		}
	}
	return res
}

func buildCmd(opts Options, command string) *exec.Cmd {
	if opts.UseShell {
		shell := opts.ShellPath
		if shell == "" {
			shell = "/bin/sh"
		}
		return exec.Command(shell, "-c", command)
	}
	args := template.SplitArgs(command)
	if len(args) == 0 {
		return exec.Command("true")
	}
	return exec.Command(args[0], args[1:]...)
}

// wait blocks until cmd exits, times out, or ctx is cancelled,
// killing the child in the latter two cases. It returns the exit code
// and signal the way the job log records them: a clean exit yields
// (code, 0); a kill due to timeout or cancellation yields (-1, 15);
// death by an external signal yields (-1, signal-number).
func wait(ctx context.Context, cmd *exec.Cmd, timeout time.Duration) (int, int) {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case err := <-done:
		return exitStatus(cmd, err)
	case <-timeoutCh:
		_ = cmd.Process.Kill()
		<-done
		return -1, 15
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return -1, 15
	}
}

func exitStatus(cmd *exec.Cmd, waitErr error) (int, int) {
	state := cmd.ProcessState
	if waitErr == nil || state == nil {
		if state == nil {
			return -1, 0
		}
		return state.ExitCode(), 0
	}
	if sig, ok := killSignal(state); ok {
		return -1, sig
	}
	if code := state.ExitCode(); code >= 0 {
		return code, 0
	}
	return -1, 0
}
