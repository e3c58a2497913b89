// Package memgate polls actual available system memory for the Inputs
// Lock's memory-threshold gate.
package memgate

import (
	"time"

	"github.com/pbnjay/memory"
)

// pollInterval is how often Available is re-sampled while waiting for
// memory to free up.
const pollInterval = 100 * time.Millisecond

// Available returns the amount of free system memory, in bytes, as
// reported by the host OS. It is a variable (not a plain function) so
// tests can stub it without touching real system state.
var Available = func() uint64 {
	return memory.FreeMemory()
}

// WaitUntilAvailable blocks, sleeping in pollInterval increments, until
// Available() reports at least threshold bytes free. A threshold of
// zero returns immediately without sampling memory at all.
func WaitUntilAvailable(threshold uint64) {
	if threshold == 0 {
		return
	}
	for Available() < threshold {
		time.Sleep(pollInterval)
	}
}
