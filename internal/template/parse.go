package template

import (
	"strconv"
	"strings"
)

// Parse tokenizes a raw command template into a Token sequence,
// coalescing runs of literal bytes into a single Literal token instead
// of emitting one token per character.
//
// Recognized placeholders: {}, {.}, {/}, {//}, {/.}, {#}, {##}, {#^},
// {%}, and their indexed forms {N}, {N.}, {N/}, {N//}, {N/.} selecting
// the N-th (1-based) list in a permutation tuple. Anything between
// braces that doesn't match one of these forms is treated as literal
// text, braces included.
//
// {#^} is left as a JobTotalComputed token; call
// ResolveJobTotalComputed once the run's total input count is known,
// before the first Materialize call.
func Parse(s string) []Token {
	var tokens []Token
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, NewLiteral(literal.String()))
			literal.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if s[i] != '{' {
			literal.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], '}')
		if end < 0 {
			literal.WriteByte(s[i])
			i++
			continue
		}
		end += i + 1
		body := s[i+1 : end]
		if tok, ok := parsePlaceholder(body); ok {
			flushLiteral()
			tokens = append(tokens, tok)
		} else {
			literal.WriteString(s[i : end+1])
		}
		i = end + 1
	}
	flushLiteral()

	return tokens
}

// parsePlaceholder interprets the text between a matched pair of
// braces, returning the corresponding Token and true, or false if body
// isn't a recognized placeholder form.
func parsePlaceholder(body string) (Token, bool) {
	switch body {
	case "":
		return Token{Kind: Placeholder}, true
	case ".":
		return Token{Kind: RemoveExtension}, true
	case "/":
		return Token{Kind: Basename}, true
	case "//":
		return Token{Kind: Dirname}, true
	case "/.":
		return Token{Kind: BaseAndExt}, true
	case "#":
		return Token{Kind: Job}, true
	case "##":
		return Token{Kind: JobTotal}, true
	case "#^":
		return Token{Kind: JobTotalComputed}, true
	case "%":
		return Token{Kind: Slot}, true
	}

	// Indexed forms: a leading run of digits followed by one of the
	// path-derivation suffixes above (or nothing, for the plain value).
	digits := 0
	for digits < len(body) && body[digits] >= '0' && body[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return Token{}, false
	}
	n, err := strconv.Atoi(body[:digits])
	if err != nil || n < 1 {
		return Token{}, false
	}

	switch body[digits:] {
	case "":
		return NewIndexed(n, Placeholder), true
	case ".":
		return NewIndexed(n, RemoveExtension), true
	case "/":
		return NewIndexed(n, Basename), true
	case "//":
		return NewIndexed(n, Dirname), true
	case "/.":
		return NewIndexed(n, BaseAndExt), true
	default:
		return Token{}, false
	}
}
