// Package iterator implements the Input Iterator (reading staged input
// lines back off disk through a buffer.Reader, with ETA accounting)
// and the Inputs Lock that serializes access to it across workers.
package iterator

import (
	"fmt"
	"io"
	"time"

	"github.com/gorun/parallel/internal/buffer"
)

// ReadErr wraps an I/O error encountered while streaming the
// unprocessed file, carrying the path for diagnostics.
type ReadErr struct {
	Path string
	Err  error
}

func (e *ReadErr) Error() string {
	return fmt.Sprintf("input file read error: %s: %v", e.Path, e.Err)
}

func (e *ReadErr) Unwrap() error { return e.Err }

// Iterator streams input lines from a staged file through a
// buffer.Reader, assigning each a monotone 0-based job id and
// tracking average per-job runtime for ETA estimation.
type Iterator struct {
	total     int
	curr      int
	completed int

	startTime   time.Time
	averageTime time.Duration

	reader *buffer.Reader

	indices  []int
	index    int
	start    int
	end      int
	capacity int
}

// Open opens path (the staged "unprocessed" file) and returns an
// Iterator that will yield exactly total inputs.
func Open(path string, total int) (*Iterator, error) {
	reader, err := buffer.Open(path)
	if err != nil {
		return nil, err
	}

	it := &Iterator{
		total:     total,
		reader:    reader,
		startTime: time.Now(),
		indices:   make([]int, 1, 1024),
	}

	if err := reader.Refill(0); err != nil {
		return nil, &ReadErr{Path: path, Err: err}
	}
	it.countArguments(reader.Capacity())

	return it, nil
}

// Close closes the underlying file.
func (it *Iterator) Close() error { return it.reader.Close() }

// countArguments scans the current window for newline offsets,
// recording them into indices (indices[0] is always the implicit
// left boundary 0) and updating capacity to the offset of the last
// complete record, and end to the new total line count buffered.
func (it *Iterator) countArguments(bytesRead int) {
	data := it.reader.View()
	it.indices = it.indices[:1]
	it.indices[0] = 0

	newlines := 0
	for i := 0; i < bytesRead; i++ {
		if data[i] == '\n' {
			it.indices = append(it.indices, i)
			newlines++
		}
	}

	if newlines == 0 {
		it.capacity = 0
	} else {
		it.capacity = it.indices[newlines]
	}
	it.end += newlines
}

// refill advances the window, shifting any unconsumed partial record
// left, then recounts newline offsets for the new window.
func (it *Iterator) refill() error {
	if err := it.reader.Refill(it.capacity); err != nil {
		return &ReadErr{Path: it.reader.Path(), Err: err}
	}
	bytesRead := it.reader.Capacity()
	it.start = it.end + 1
	it.countArguments(bytesRead)
	it.index = 0
	return nil
}

// Next returns the next (jobID, input) pair, or ok=false once total
// inputs have been yielded. jobID is the 0-based position of input in
// the overall staged sequence.
func (it *Iterator) Next() (jobID int, input string, ok bool, err error) {
	if it.curr == it.total {
		return 0, "", false, nil
	}
	if it.curr == it.end {
		if err := it.refill(); err != nil {
			return 0, "", false, err
		}
	}

	end := it.indices[it.index+1]
	var start int
	if it.index == 0 {
		start = it.indices[it.index]
	} else {
		start = it.indices[it.index] + 1
	}

	// Average runtime must be computed from the completion count as it
	// stood before this call, matching the invariant that it reflects
	// jobs finished so far, not jobs dispatched so far.
	switch it.completed {
	case 0:
	case 1:
		it.averageTime = time.Since(it.startTime)
	default:
		it.averageTime = time.Since(it.startTime) / time.Duration(it.completed)
	}

	jobID = it.curr
	it.curr++
	it.index++

	return jobID, string(it.reader.View()[start:end]), true, nil
}

// MarkCompleted records that one more dispatched job has finished,
// exactly once per job — the fix for the upstream off-by-one ETA
// accounting the Inputs Lock used to apply conditionally.
func (it *Iterator) MarkCompleted() {
	it.completed++
}

// ETA is the estimated time remaining, computed from the average
// per-job runtime observed so far.
type ETA struct {
	Left    int
	Time    time.Duration
	Average time.Duration
}

// Eta returns the current estimate.
func (it *Iterator) Eta() ETA {
	left := it.total - it.completed
	return ETA{
		Left:    left,
		Time:    time.Duration(left) * it.averageTime,
		Average: it.averageTime,
	}
}

var _ io.Closer = (*Iterator)(nil)
