package executor

import (
	"fmt"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/cespare/xxhash/v2"
)

// fieldGroup is one response key's collected fields: every Field node in
// the selection set (after fragment/@skip/@include resolution) that
// contributes to that key, in document order. More than one entry means
// the fields must be executed together and their sub-selections merged
// (graphql/validation.OverlappingFieldsCanBeMerged guarantees this is safe
// when validation has run; the executor itself only uses the first entry's
// arguments and field definition, per the spec's "any will do" note since a
// validated document guarantees they agree).
type fieldGroup struct {
	Key    string
	Fields []*ast.Field
}

type cacheKey uint64

// collectFields implements the spec's CollectFields algorithm: walk sel,
// skipping any selection whose @skip/@include directive says so, folding
// inline fragments and named-fragment spreads whose type condition can
// apply to objectType into the same flat list, grouped by response key in
// first-occurrence order.
func collectFields(ec *execContext, objectType *graphql.Object, sel *ast.SelectionSet, visiting map[string]bool) []fieldGroup {
	key := cacheKey(hashSelection(objectType, sel))
	if cached, ok := ec.cache[key]; ok {
		return cached
	}

	order := []string{}
	byKey := map[string][]*ast.Field{}
	collectInto(ec, objectType, sel, visiting, &order, byKey)

	groups := make([]fieldGroup, len(order))
	for i, k := range order {
		groups[i] = fieldGroup{Key: k, Fields: byKey[k]}
	}

	ec.cache[key] = groups
	return groups
}

func collectInto(ec *execContext, objectType *graphql.Object, sel *ast.SelectionSet, visiting map[string]bool, order *[]string, byKey map[string][]*ast.Field) {
	if sel == nil {
		return
	}
	for _, s := range sel.Selections {
		switch n := s.(type) {
		case *ast.Field:
			if skippedByDirectives(ec, n.Directives) {
				continue
			}
			key := n.ResponseKey()
			if _, ok := byKey[key]; !ok {
				*order = append(*order, key)
			}
			byKey[key] = append(byKey[key], n)

		case *ast.InlineFragment:
			if skippedByDirectives(ec, n.Directives) {
				continue
			}
			if n.TypeCondition != nil && !typeConditionApplies(ec.schema, objectType, n.TypeCondition.Name) {
				continue
			}
			collectInto(ec, objectType, n.SelectionSet, visiting, order, byKey)

		case *ast.FragmentSpread:
			if skippedByDirectives(ec, n.Directives) {
				continue
			}
			if visiting[n.Name] {
				continue
			}
			fd, ok := ec.fragments[n.Name]
			if !ok || !typeConditionApplies(ec.schema, objectType, fd.TypeCondition.Name) {
				continue
			}
			visiting[n.Name] = true
			collectInto(ec, objectType, fd.SelectionSet, visiting, order, byKey)
			delete(visiting, n.Name)
		}
	}
}

func typeConditionApplies(schema *graphql.Schema, objectType *graphql.Object, condName string) bool {
	if condName == objectType.Name {
		return true
	}
	return schema.IsPossibleType(condName, objectType)
}

// skippedByDirectives evaluates @skip/@include against the coerced request
// variables; a selection is skipped if @skip(if: true) or @include(if:
// false) applies. Both directives may appear (skip wins per the spec).
func skippedByDirectives(ec *execContext, directives []*ast.Directive) bool {
	for _, d := range directives {
		if d.Name != "skip" && d.Name != "include" {
			continue
		}
		var ifArg ast.Value
		for _, a := range d.Arguments {
			if a.Name == "if" {
				ifArg = a.Value
			}
		}
		v := boolArgValue(ec, ifArg)
		if d.Name == "skip" && v {
			return true
		}
		if d.Name == "include" && !v {
			return true
		}
	}
	return false
}

func boolArgValue(ec *execContext, val ast.Value) bool {
	switch v := val.(type) {
	case *ast.BooleanValue:
		return v.Value
	case *ast.Variable:
		b, _ := ec.vars[v.Name].(bool)
		return b
	default:
		return false
	}
}

func hashSelection(objectType *graphql.Object, sel *ast.SelectionSet) uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%p", objectType.Name, sel)
	return h.Sum64()
}
