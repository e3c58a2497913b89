// Package template implements the pre-parsed command template model and
// the command builder that materializes a token sequence against one
// input tuple into a flat argument string.
package template

import "strconv"

// Kind identifies the role a Token plays during materialization.
type Kind int

const (
	// Literal is a raw fragment of the template, copied verbatim.
	Literal Kind = iota
	// Placeholder is the whole input, unmodified.
	Placeholder
	// RemoveExtension is the input with its extension stripped.
	RemoveExtension
	// Basename is the input with its directory prefix stripped.
	Basename
	// Dirname is the input with its basename stripped.
	Dirname
	// BaseAndExt is the basename with its extension stripped.
	BaseAndExt
	// Slot is the 1-based worker slot number.
	Slot
	// Job is the 1-based job id of the current input.
	Job
	// JobTotal is the total number of inputs across the run.
	JobTotal
	// JobTotalComputed is JobTotal's value inlined as a Literal once the
	// total input count is known. Parse emits it as a placeholder kind;
	// ResolveJobTotalComputed replaces it with a Literal before the
	// first Materialize call, since unlike JobTotal it is resolved once
	// per run rather than per job.
	JobTotalComputed
	// Indexed selects the N-th input list's value (1-based) within the
	// current permutation tuple, then applies Inner to it.
	Indexed
)

// Token is one element of a pre-parsed command template.
type Token struct {
	Kind    Kind
	Literal string // valid when Kind == Literal
	N       int    // valid when Kind == Indexed; 1-based list index
	Inner   Kind   // valid when Kind == Indexed; one of the input-derived kinds
}

// NewLiteral builds a Literal token.
func NewLiteral(s string) Token { return Token{Kind: Literal, Literal: s} }

// NewIndexed builds an Indexed token selecting list n (1-based) and
// applying inner to its value.
func NewIndexed(n int, inner Kind) Token { return Token{Kind: Indexed, N: n, Inner: inner} }

// referencesInput reports whether the token kind consumes the current
// input tuple. Slot, Job, and JobTotal do not count — they are
// independent of which input is being processed, matching the
// inference rule's exclusion set.
func (k Kind) referencesInput() bool {
	switch k {
	case Placeholder, RemoveExtension, Basename, Dirname, BaseAndExt, Indexed:
		return true
	default:
		return false
	}
}

// ResolveJobTotalComputed replaces every JobTotalComputed token with a
// Literal holding total, matching the original tokenizer's eager
// inlining of {#^} (distinct from {##}'s JobTotal, which stays
// per-materialization since Materialize already carries total).
func ResolveJobTotalComputed(tokens []Token, total int) []Token {
	out := make([]Token, len(tokens))
	lit := strconv.Itoa(total)
	for i, t := range tokens {
		if t.Kind == JobTotalComputed {
			out[i] = NewLiteral(lit)
			continue
		}
		out[i] = t
	}
	return out
}

// ReferencesInput reports whether any token in the sequence refers to
// the current input. When false, the Command Builder appends the
// literal input at the end (the inference rule).
func ReferencesInput(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind.referencesInput() {
			return true
		}
	}
	return false
}
