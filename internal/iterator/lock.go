package iterator

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gorun/parallel/internal/memgate"
)

// Lock serializes worker access to an Iterator. Every call to TryNext
// captures and advances the cursor under a single short critical
// section; the per-job delay and memory-threshold wait happen after
// the lock is released so one slow worker never blocks its peers from
// claiming their next input.
type Lock struct {
	mu sync.Mutex
	it *Iterator

	delay           time.Duration
	memoryThreshold uint64

	eta       bool
	etaOutput io.Writer
}

// Config controls the optional gating behaviors of a Lock.
type Config struct {
	Delay           time.Duration
	MemoryThreshold uint64
	ETA             bool
	ETAOutput       io.Writer
}

// New wraps it with the gating behavior described by cfg.
func New(it *Iterator, cfg Config) *Lock {
	return &Lock{
		it:              it,
		delay:           cfg.Delay,
		memoryThreshold: cfg.MemoryThreshold,
		eta:             cfg.ETA,
		etaOutput:       cfg.ETAOutput,
	}
}

// TryNext returns the next (jobID, input) pair, or ok=false once the
// Iterator is exhausted.
func (l *Lock) TryNext() (jobID int, input string, ok bool, err error) {
	l.mu.Lock()
	jobID, input, ok, err = l.it.Next()
	if ok && l.eta && l.etaOutput != nil {
		eta := l.it.Eta()
		fmt.Fprintf(l.etaOutput, "ETA: %d left, %s remaining (%s avg/job)\n",
			eta.Left, eta.Time.Round(time.Second), eta.Average.Round(time.Millisecond))
	}
	l.mu.Unlock()

	if !ok || err != nil {
		return jobID, input, ok, err
	}

	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.memoryThreshold > 0 {
		memgate.WaitUntilAvailable(l.memoryThreshold)
	}

	return jobID, input, ok, nil
}

// MarkCompleted records that one dispatched job has finished, for ETA
// accounting. Called exactly once per job, from the dispatch worker
// after the Child Supervisor returns, regardless of whether the job succeeded, failed, or was skipped.
func (l *Lock) MarkCompleted() {
	l.mu.Lock()
	l.it.MarkCompleted()
	l.mu.Unlock()
}

// Eta returns the current ETA estimate, taken under the same mutex
// that guards worker access, so a concurrent progress display never
// races with TryNext/MarkCompleted.
func (l *Lock) Eta() ETA {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.it.Eta()
}

// Close closes the underlying Iterator.
func (l *Lock) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.it.Close()
}
