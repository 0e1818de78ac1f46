package graphql

import "github.com/pkg/errors"

// LazyRef is a forward reference to a named type that hasn't been built yet
// — the mechanism that lets `type A { b: B } type B { a: A }` build at all,
// since Go can't construct two structs that point at each other in one
// literal. The schema builder registers a resolve func once it has finished
// building every named type; Resolved memoizes the result so later callers
// (executor, introspection) pay the indirection once.
type LazyRef struct {
	name    string
	resolve func() (Type, error)

	resolved  Type
	resolveErr error
	done      bool
}

// NewLazyRef creates an unresolved reference to the named type. Bind must be
// called (by the schema builder) before Resolved is ever called.
func NewLazyRef(name string) *LazyRef {
	return &LazyRef{name: name}
}

// Bind attaches the resolver function. Calling Bind twice panics: it is a
// schema-construction bug, the same class of error teacher's duplicate
// method-registration panics guard against.
func (r *LazyRef) Bind(resolve func() (Type, error)) {
	if r.resolve != nil {
		panic("graphql: LazyRef " + r.name + " bound twice")
	}
	r.resolve = resolve
}

func (r *LazyRef) Name() string { return r.name }

func (r *LazyRef) isType() {}

func (r *LazyRef) String() string {
	if r.done && r.resolveErr == nil {
		return r.resolved.String()
	}
	return r.name
}

// Resolved returns the referenced Type, resolving and memoizing on first
// call. Returns an error if Bind was never called or the resolver failed.
func (r *LazyRef) Resolved() (Type, error) {
	if r.done {
		return r.resolved, r.resolveErr
	}
	if r.resolve == nil {
		r.done = true
		r.resolveErr = errors.Errorf("graphql: unresolved type reference %q", r.name)
		return nil, r.resolveErr
	}
	r.resolved, r.resolveErr = r.resolve()
	r.done = true
	return r.resolved, r.resolveErr
}
