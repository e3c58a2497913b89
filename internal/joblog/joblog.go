// Package joblog writes the optional per-job fixed-width job log: one
// line per completed job recording its sequence number, start time,
// runtime, exit status, and the command that was run.
package joblog

import (
	"fmt"
	"os"
	"time"
)

const header = "Sequence  StartTime(s)    Runtime(s)  ExitVal  Signal  Command\n"

// Entry is one job's record.
type Entry struct {
	JobID    int // 0-based; written as JobID+1
	Start    time.Time
	Runtime  time.Duration
	ExitCode int
	Signal   int
	Command  string
}

// Writer appends Entry records to a fixed-width text file, writing the
// column header once at creation.
type Writer struct {
	file *os.File
}

// Create truncates (or creates) path, writes the header, and returns a
// Writer ready to accept entries.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.WriteString(header); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{file: f}, nil
}

// Write appends one fixed-width entry line. Entries must be written in
// job-id order; the Receiver is the sole caller and guarantees this.
func (w *Writer) Write(e Entry) error {
	startSec := e.Start.Unix()
	startMs := e.Start.Nanosecond() / int(time.Millisecond)

	runtimeSec := int64(e.Runtime / time.Second)
	runtimeMs := int64(e.Runtime%time.Second) / int64(time.Millisecond)

	line := fmt.Sprintf("%-10d%-16s%6d.%03d  %-9d%-8d%s\n",
		e.JobID+1,
		fmt.Sprintf("%d.%03d", startSec, startMs),
		runtimeSec, runtimeMs,
		e.ExitCode,
		e.Signal,
		e.Command,
	)
	_, err := w.file.WriteString(line)
	return err
}

// Close closes the underlying file.
func (w *Writer) Close() error { return w.file.Close() }
