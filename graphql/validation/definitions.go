package validation

import (
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// executableDefinitions rejects any top-level definition that isn't an
// operation or fragment — a document mixing in SDL definitions (only valid
// when parsed with allowTypeSystem, e.g. schema introspection tooling) is
// not an executable request.
type executableDefinitions struct{ baseRule }

func NewExecutableDefinitions(ctx *Context) Rule { return &executableDefinitions{baseRule{ctx: ctx}} }

func (r *executableDefinitions) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	doc, ok := node.(*ast.Document)
	if !ok {
		return visitor.Continue
	}
	for _, d := range doc.Definitions {
		switch d.(type) {
		case *ast.OperationDefinition, *ast.FragmentDefinition:
		default:
			r.report(invalid("%q is not an executable definition", defKind(d)).WithNodes(d))
		}
	}
	return visitor.Continue
}

func defKind(d ast.Definition) string {
	switch d.(type) {
	case *ast.SchemaDefinition:
		return "schema"
	default:
		return "type system"
	}
}

// uniqueOperationNames rejects two named operations sharing a name within
// one document.
type uniqueOperationNames struct {
	baseRule
	seen map[string]bool
}

func NewUniqueOperationNames(ctx *Context) Rule {
	return &uniqueOperationNames{baseRule: baseRule{ctx: ctx}, seen: map[string]bool{}}
}

func (r *uniqueOperationNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	op, ok := node.(*ast.OperationDefinition)
	if !ok || op.Name == "" {
		return visitor.Continue
	}
	if r.seen[op.Name] {
		r.report(invalid("there can be only one operation named %q", op.Name).WithNodes(op))
	}
	r.seen[op.Name] = true
	return visitor.Continue
}

// loneAnonymousOperation rejects an anonymous operation sharing a document
// with any other operation (named or anonymous) — an anonymous operation
// must be the only operation in the document.
type loneAnonymousOperation struct {
	baseRule
	count int
}

func NewLoneAnonymousOperation(ctx *Context) Rule {
	return &loneAnonymousOperation{baseRule: baseRule{ctx: ctx}}
}

func (r *loneAnonymousOperation) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	doc, ok := node.(*ast.Document)
	if !ok {
		return visitor.Continue
	}
	var anon *ast.OperationDefinition
	for _, d := range doc.Definitions {
		op, ok := d.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		r.count++
		if op.Name == "" {
			anon = op
		}
	}
	if anon != nil && r.count > 1 {
		r.report(invalid("this anonymous operation must be the only defined operation").WithNodes(anon))
	}
	return visitor.Continue
}

// singleFieldSubscriptions rejects a subscription operation selecting more
// than one root field (including implicit ones added via a spread
// fragment), per the GraphQL spec's rule that every subscription event
// resolves exactly one root field.
type singleFieldSubscriptions struct{ baseRule }

func NewSingleFieldSubscriptions(ctx *Context) Rule {
	return &singleFieldSubscriptions{baseRule{ctx: ctx}}
}

func (r *singleFieldSubscriptions) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	op, ok := node.(*ast.OperationDefinition)
	if !ok || op.Operation != ast.OperationSubscription {
		return visitor.Continue
	}
	if n := countRootFields(r.ctx, op.SelectionSet, map[string]bool{}); n > 1 {
		r.report(invalid("subscription %q must select only one top level field", opLabel(op)).WithNodes(op))
	}
	return visitor.Continue
}

func opLabel(op *ast.OperationDefinition) string {
	if op.Name != "" {
		return op.Name
	}
	return "<anonymous>"
}

// countRootFields flattens fragment spreads so a subscription with exactly
// one field spread through a fragment still counts as single-field.
func countRootFields(ctx *Context, sel *ast.SelectionSet, visiting map[string]bool) int {
	n := 0
	for _, s := range sel.Selections {
		switch v := s.(type) {
		case *ast.Field:
			n++
		case *ast.InlineFragment:
			n += countRootFields(ctx, v.SelectionSet, visiting)
		case *ast.FragmentSpread:
			if visiting[v.Name] {
				continue
			}
			fd := ctx.TypeInfo.FragmentDefinition(v.Name)
			if fd == nil {
				continue
			}
			visiting[v.Name] = true
			n += countRootFields(ctx, fd.SelectionSet, visiting)
			delete(visiting, v.Name)
		}
	}
	return n
}
