package gqlerrors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies an Error per spec.md §7's taxonomy. It never changes the
// wire shape of the error (that's always {message, locations, path,
// extensions}); it only governs propagation policy inside this module.
type Kind int

const (
	// SyntaxError: lexing or parsing failed. Short-circuits with empty data.
	SyntaxError Kind = iota
	// InvalidDocument: a validation rule rejected the document. Zero or more
	// per document; execution is refused if any are present.
	InvalidDocument
	// VariablesCoercionError: the supplied variables don't coerce against
	// their declared types. Execution is refused.
	VariablesCoercionError
	// ResolverError: a user resolver failed. Contained to one field path,
	// null-propagated.
	ResolverError
	// ExecutionError: schema misuse or cancellation at run time. Replaces
	// the whole result.
	ExecutionError
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case InvalidDocument:
		return "InvalidDocument"
	case VariablesCoercionError:
		return "VariablesCoercionError"
	case ResolverError:
		return "ResolverError"
	case ExecutionError:
		return "ExecutionError"
	default:
		return "UnknownError"
	}
}

// Node is satisfied by any AST node (language/ast.Node); kept minimal here
// to avoid gqlerrors depending on language/ast.
type Node interface {
	Location() SourceLocation
}

// Error is the one error type every package in this module raises. It never
// carries mutable state: once constructed it is safe to share across
// goroutines and across repeated validation runs (spec.md §8 invariant 4).
type Error struct {
	Message    string
	Kind       Kind
	Nodes      []Node
	Path       []PathSegment
	Extensions map[string]interface{}
	Wrapped    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As and for
// github.com/pkg/errors.Cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

// Locations renders one Position per implicated node, deduplicating
// identical source/offset pairs produced by nodes that share a location.
func (e *Error) Locations() []Position {
	if e == nil || len(e.Nodes) == 0 {
		return nil
	}
	var out []Position
	seen := map[SourceLocation]bool{}
	for _, n := range e.Nodes {
		loc := n.Location()
		if seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc.Position())
	}
	return out
}

// New builds a bare Error with no nodes/path/extensions.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithNodes returns a copy of e with the given implicated nodes attached.
func (e *Error) WithNodes(nodes ...Node) *Error {
	cp := *e
	cp.Nodes = append(append([]Node{}, e.Nodes...), nodes...)
	return &cp
}

// WithPath returns a copy of e with the response path attached.
func (e *Error) WithPath(path []PathSegment) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// Wrap attaches a cause, using pkg/errors so the cause keeps its stack trace
// for build-time schema errors surfaced to a developer, not to an API
// consumer.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Wrapped: errors.Wrap(cause, fmt.Sprintf(format, args...)),
	}
}

// List is a flat, ordered collection of errors, e.g. every validation
// failure found in one pass, or every field error raised during execution.
type List []*Error

// Error joins every message, one per line, so a List also satisfies `error`
// for callers that want to treat "one or more problems" uniformly.
func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// HasErrors reports whether the list is non-empty; reads better than len(l)>0
// at validation/coercion call sites.
func (l List) HasErrors() bool {
	return len(l) > 0
}
