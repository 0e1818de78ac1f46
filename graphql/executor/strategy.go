package executor

import (
	"context"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/gqlerrors"
	"golang.org/x/sync/errgroup"
)

// Strategy executes one already-collected selection set against a concrete
// object type and source value, returning the response map for that level
// plus every error raised underneath it. spec.md §4.J asks for two: mutation
// root fields must run one at a time in document order (SequentialExecutor),
// everything else may run its sibling fields concurrently
// (CooperativeExecutor).
type Strategy interface {
	ExecuteFields(ctx context.Context, ec *execContext, objectType *graphql.Object, source interface{}, groups []fieldGroup, path []gqlerrors.PathSegment) (map[string]interface{}, gqlerrors.List)
}

// SequentialExecutor runs each field group to completion before starting
// the next, preserving document order. Required for mutation root fields
// (spec.md §4.J invariant), and used internally as the plain fallback when
// a selection set has a single field (no concurrency to gain).
type SequentialExecutor struct{}

func (SequentialExecutor) ExecuteFields(ctx context.Context, ec *execContext, objectType *graphql.Object, source interface{}, groups []fieldGroup, path []gqlerrors.PathSegment) (map[string]interface{}, gqlerrors.List) {
	data := make(map[string]interface{}, len(groups))
	var errs gqlerrors.List
	for _, g := range groups {
		v, fieldErrs := executeOneField(ctx, ec, objectType, source, g, path)
		data[g.Key] = v
		errs = append(errs, fieldErrs...)
	}
	return data, errs
}

// CooperativeExecutor runs every field group in the selection set
// concurrently via an errgroup, the default strategy for queries and for
// every nested object selection regardless of the root operation. Siblings
// run under the errgroup's derived context, so cancellation of the request
// context reaches every one of them; resolver panics are not recovered.
// Per-field resolver errors are collected rather than treated as group
// failures: a failing field null-propagates (or fails its parent, for a
// NonNull field) without aborting its siblings.
type CooperativeExecutor struct{}

func (CooperativeExecutor) ExecuteFields(ctx context.Context, ec *execContext, objectType *graphql.Object, source interface{}, groups []fieldGroup, path []gqlerrors.PathSegment) (map[string]interface{}, gqlerrors.List) {
	if len(groups) <= 1 {
		return SequentialExecutor{}.ExecuteFields(ctx, ec, objectType, source, groups, path)
	}

	data := make(map[string]interface{}, len(groups))
	errLists := make(gqlerrors.List, 0)
	results := make([]interface{}, len(groups))
	allErrs := make([]gqlerrors.List, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		i, group := i, group
		g.Go(func() error {
			v, fieldErrs := executeOneField(gctx, ec, objectType, source, group, path)
			results[i] = v
			allErrs[i] = fieldErrs
			return nil
		})
	}
	// Resolver errors are carried out of band (allErrs) and every goroutine
	// returns nil, so Wait always returns nil; it only blocks until all
	// siblings have finished.
	_ = g.Wait()

	for i, group := range groups {
		data[group.Key] = results[i]
		errLists = append(errLists, allErrs[i]...)
	}
	return data, errLists
}
