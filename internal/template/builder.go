package template

import (
	"fmt"
	"strconv"
	"strings"
)

// TupleSeparator joins the elements of a Permutator tuple into the
// single newline-free string staged as one input line. It is a control
// character outside the range of ordinary shell arguments, chosen so a
// tuple can be losslessly recovered from its staged line.
const TupleSeparator = "\x1f"

// EncodeTuple joins a permutation tuple into the line staged for a
// single job. A tuple of one element stages as that element unchanged.
func EncodeTuple(tuple []string) string {
	return strings.Join(tuple, TupleSeparator)
}

// DecodeTuple splits a staged input line back into its tuple elements.
func DecodeTuple(line string) []string {
	return strings.Split(line, TupleSeparator)
}

// Materialize walks tokens once and writes the resulting command
// string for the given job. tuple is the current input tuple as
// produced by the Permutator (for a lone input list, one element per
// item of that list); jobID and total are 1-based/absolute counts,
// slot is the 1-based worker slot number.
//
// If no token in the sequence references the input (the inference
// rule), a single space followed by the literal tuple[0] is appended
// at the end.
func Materialize(tokens []Token, tuple []string, jobID, total, slot int) (string, error) {
	var b strings.Builder

	for _, tok := range tokens {
		switch tok.Kind {
		case Literal:
			b.WriteString(tok.Literal)
		case Placeholder, RemoveExtension, Basename, Dirname, BaseAndExt:
			s, err := applyPathFunc(tok.Kind, tuple[0])
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case Slot:
			b.WriteString(strconv.Itoa(slot))
		case Job:
			b.WriteString(strconv.Itoa(jobID))
		case JobTotal:
			b.WriteString(strconv.Itoa(total))
		case Indexed:
			if tok.N < 1 || tok.N > len(tuple) {
				return "", fmt.Errorf("template: index {%d} out of range for a %d-element tuple", tok.N, len(tuple))
			}
			s, err := applyPathFunc(tok.Inner, tuple[tok.N-1])
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		default:
			return "", fmt.Errorf("template: unknown token kind %d", tok.Kind)
		}
	}

	if !ReferencesInput(tokens) {
		b.WriteString(" ")
		b.WriteString(tuple[0])
	}

	return b.String(), nil
}

func applyPathFunc(kind Kind, value string) (string, error) {
	switch kind {
	case Placeholder:
		return value, nil
	case RemoveExtension:
		return RemoveExtensionOf(value), nil
	case Basename:
		return BasenameOf(value), nil
	case Dirname:
		return DirnameOf(value), nil
	case BaseAndExt:
		return BaseAndExtOf(value), nil
	default:
		return "", fmt.Errorf("template: %d is not a path-derivation token", kind)
	}
}
