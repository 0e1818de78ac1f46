// Package gqlerrors provides source locations and the typed error taxonomy
// shared by every other package in this module: lexer, parser, schema
// builder, validator, coercion and executor all raise *Error values from
// here instead of bare errors.
package gqlerrors

import "strings"

// Source is a named chunk of GraphQL text (an executable document or an SDL
// document). Name is used purely for error reporting, e.g. "GraphQL request"
// or a file path.
type Source struct {
	Name string
	Body string
}

// SourceLocation is a byte-offset span into a Source. Offsets are measured
// in bytes, not runes, to match the lexer's cursor.
type SourceLocation struct {
	Source     *Source
	Start, End int
}

// Position is a human-facing line/column pair, 1-indexed, computed on demand
// from a SourceLocation. Never stored on an AST node directly.
type Position struct {
	Line, Column int
}

// Position computes the 1-indexed line/column of the start offset. It walks
// the source body once; callers needing many positions from one source
// should reuse a LineIndex instead.
func (l SourceLocation) Position() Position {
	if l.Source == nil {
		return Position{}
	}
	return NewLineIndex(l.Source.Body).Position(l.Start)
}

// LineIndex memoizes newline offsets within a source body so repeated
// Position lookups (one per error, one per AST node touched by an error)
// don't each re-scan the whole document.
type LineIndex struct {
	lineStarts []int
}

// NewLineIndex scans body once for line-start offsets.
func NewLineIndex(body string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(body); i++ {
		if body[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{lineStarts: starts}
}

// Position returns the 1-indexed line/column for a byte offset.
func (idx *LineIndex) Position(offset int) Position {
	// binary search for the last line start <= offset
	lo, hi := 0, len(idx.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo + 1
	column := offset - idx.lineStarts[lo] + 1
	return Position{Line: line, Column: column}
}

// PathSegment is one element of a response path: either a field/response key
// (StringKey) or a list index (IntKey).
type PathSegment interface {
	isPathSegment()
	String() string
}

// StringKey is a response-key path segment.
type StringKey string

func (StringKey) isPathSegment()  {}
func (k StringKey) String() string { return string(k) }

// IntKey is a list-index path segment.
type IntKey int

func (IntKey) isPathSegment()  {}
func (k IntKey) String() string {
	return intToString(int(k))
}

func intToString(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// PathString renders a path the way error messages do: "a.b[2].c".
func PathString(path []PathSegment) string {
	var sb strings.Builder
	for i, seg := range path {
		switch seg.(type) {
		case IntKey:
			sb.WriteString("[")
			sb.WriteString(seg.String())
			sb.WriteString("]")
		default:
			if i > 0 {
				sb.WriteString(".")
			}
			sb.WriteString(seg.String())
		}
	}
	return sb.String()
}
