// Package jobpaths names the files a run creates under its temp
// directory. Unlike the upstream tool's fixed, shared "/tmp/parallel"
// location, every run gets its own UUID-named subdirectory so
// concurrent runs never race over the same journals or per-job files,
// and so a run's cleanup can never clobber another run's in-flight
// state.
package jobpaths

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "github.com/gorun/parallel/internal/errors"
	"github.com/gorun/parallel/internal/retry"
)

// NewRunDir creates and returns a fresh, uniquely named directory
// under root (typically os.TempDir()) to hold one run's journals and
// per-job capture files. The mkdir is retried under FileIOPolicy since
// root may be a network-backed temp mount where a create can fail
// transiently under concurrent load.
func NewRunDir(root string) (string, error) {
	dir := filepath.Join(root, "parallel-"+uuid.NewString())
	policy := retry.FileIOPolicy()
	err := policy.Do(context.Background(), func() error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewRetryable("creating run directory", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// Unprocessed is the path of the staged input file.
func Unprocessed(runDir string) string { return filepath.Join(runDir, "unprocessed") }

// Processed is the path of the completed-inputs journal.
func Processed(runDir string) string { return filepath.Join(runDir, "processed") }

// Errors is the path of the errors journal.
func Errors(runDir string) string { return filepath.Join(runDir, "errors") }

// JobLog is the path of the optional job log.
func JobLog(runDir string) string { return filepath.Join(runDir, "job.log") }

// Stdout is the path of job jobID's transient stdout capture.
func Stdout(runDir string, jobID int) string {
	return filepath.Join(runDir, fmt.Sprintf("stdout_%d", jobID))
}

// Stderr is the path of job jobID's transient stderr capture.
func Stderr(runDir string, jobID int) string {
	return filepath.Join(runDir, fmt.Sprintf("stderr_%d", jobID))
}
