// Package permutate implements a lazy Cartesian-product iterator over k
// lists of strings, yielding tuples in mixed-radix lexicographic order.
package permutate

// Permutator yields the Cartesian product of a set of string lists, one
// tuple per call to Next, in lexicographic (mixed-radix) order.
//
// A lone list is treated specially: it is permuted against itself as
// many times as it has elements, reproducing the self-Cartesian
// behavior a three-element single list exhibits (27 tuples, not 3).
type Permutator struct {
	lists      [][]string
	singleList bool
	nlists     int

	counter []int
	max     []int

	currIteration int
	maxIterations int
}

// New builds a Permutator over lists. lists must be non-empty and each
// inner list must be non-empty.
func New(lists [][]string) *Permutator {
	p := &Permutator{lists: lists}

	p.singleList = len(lists) == 1
	if p.singleList {
		p.nlists = len(lists[0])
	} else {
		p.nlists = len(lists)
	}

	p.counter = make([]int, p.nlists)
	p.max = make([]int, p.nlists)

	if p.singleList {
		n := len(lists[0])
		for i := 0; i < p.nlists; i++ {
			p.max[i] = n - 1
		}
	} else {
		for i, l := range lists {
			p.max[i] = len(l) - 1
		}
	}

	p.maxIterations = 1
	for _, m := range p.max {
		p.maxIterations *= m + 1
	}

	return p
}

// MaxIterations returns the total number of tuples this Permutator will
// yield: the product of each list's length (for a lone list of n
// items, n raised to the power n).
func (p *Permutator) MaxIterations() int { return p.maxIterations }

// Reset restores the Permutator to its initial state, so a subsequent
// run of Next reproduces the identical sequence already observed.
func (p *Permutator) Reset() {
	for i := range p.counter {
		p.counter[i] = 0
	}
	p.currIteration = 0
}

// Next returns the next tuple, or ok=false once every tuple has been
// emitted.
func (p *Permutator) Next() (tuple []string, ok bool) {
	if p.currIteration == p.maxIterations {
		return nil, false
	}
	p.currIteration++

	tuple = make([]string, p.nlists)
	for i, value := range p.counter {
		if p.singleList {
			tuple[i] = p.lists[0][value]
		} else {
			tuple[i] = p.lists[i][value]
		}
	}

	p.increment(p.nlists - 1)
	return tuple, true
}

// increment performs a ripple-carry increment starting at index i: if
// the counter at i is already at its max it resets to zero and carries
// into i-1, stopping at index 0.
func (p *Permutator) increment(i int) {
	if p.counter[i] == p.max[i] {
		p.counter[i] = 0
		if i > 0 {
			p.increment(i - 1)
		}
		return
	}
	p.counter[i]++
}
