package validation

import (
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// uniqueFragmentNames rejects two fragment definitions sharing a name.
type uniqueFragmentNames struct {
	baseRule
	seen map[string]bool
}

func NewUniqueFragmentNames(ctx *Context) Rule {
	return &uniqueFragmentNames{baseRule: baseRule{ctx: ctx}, seen: map[string]bool{}}
}

func (r *uniqueFragmentNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	fd, ok := node.(*ast.FragmentDefinition)
	if !ok {
		return visitor.Continue
	}
	if r.seen[fd.Name] {
		r.report(invalid("there can be only one fragment named %q", fd.Name).WithNodes(fd))
	}
	r.seen[fd.Name] = true
	return visitor.Continue
}

// knownFragmentNames rejects a fragment spread naming a fragment this
// document never defines.
type knownFragmentNames struct{ baseRule }

func NewKnownFragmentNames(ctx *Context) Rule { return &knownFragmentNames{baseRule{ctx: ctx}} }

func (r *knownFragmentNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	fs, ok := node.(*ast.FragmentSpread)
	if !ok {
		return visitor.Continue
	}
	if r.ctx.TypeInfo.FragmentDefinition(fs.Name) == nil {
		r.report(invalid("unknown fragment %q", fs.Name).WithNodes(fs))
	}
	return visitor.Continue
}

// noUnusedFragments rejects a fragment definition that no operation in the
// document transitively spreads.
type noUnusedFragments struct {
	baseRule
	defined []*ast.FragmentDefinition
	used    map[string]bool
}

func NewNoUnusedFragments(ctx *Context) Rule {
	return &noUnusedFragments{baseRule: baseRule{ctx: ctx}, used: map[string]bool{}}
}

func (r *noUnusedFragments) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	switch n := node.(type) {
	case *ast.FragmentDefinition:
		r.defined = append(r.defined, n)
	case *ast.OperationDefinition:
		collectFragmentSpreads(r.ctx, n.SelectionSet, r.used, map[string]bool{})
	}
	return visitor.Continue
}

func (r *noUnusedFragments) Errors() gqlerrors.List {
	for _, fd := range r.defined {
		if !r.used[fd.Name] {
			r.report(invalid("fragment %q is never used", fd.Name).WithNodes(fd))
		}
	}
	return r.baseRule.Errors()
}

func collectFragmentSpreads(ctx *Context, sel *ast.SelectionSet, used map[string]bool, visiting map[string]bool) {
	if sel == nil {
		return
	}
	for _, s := range sel.Selections {
		switch v := s.(type) {
		case *ast.Field:
			collectFragmentSpreads(ctx, v.SelectionSet, used, visiting)
		case *ast.InlineFragment:
			collectFragmentSpreads(ctx, v.SelectionSet, used, visiting)
		case *ast.FragmentSpread:
			if used[v.Name] || visiting[v.Name] {
				continue
			}
			used[v.Name] = true
			fd := ctx.TypeInfo.FragmentDefinition(v.Name)
			if fd == nil {
				continue
			}
			visiting[v.Name] = true
			collectFragmentSpreads(ctx, fd.SelectionSet, used, visiting)
			delete(visiting, v.Name)
		}
	}
}

// possibleFragmentSpreads rejects a fragment spread (named or inline) whose
// type condition can never overlap with its placement's parent type — e.g.
// spreading a "Dog" fragment inside a "Cat" selection.
type possibleFragmentSpreads struct{ baseRule }

func NewPossibleFragmentSpreads(ctx *Context) Rule { return &possibleFragmentSpreads{baseRule{ctx: ctx}} }

func (r *possibleFragmentSpreads) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	parentType := r.ctx.TypeInfo.ParentType()
	if parentType == nil {
		return visitor.Continue
	}
	var fragName string
	var condName string
	var at ast.Node
	switch n := node.(type) {
	case *ast.InlineFragment:
		if n.TypeCondition == nil {
			return visitor.Continue
		}
		condName, at = n.TypeCondition.Name, n
	case *ast.FragmentSpread:
		fd := r.ctx.TypeInfo.FragmentDefinition(n.Name)
		if fd == nil || fd.TypeCondition == nil {
			return visitor.Continue
		}
		fragName, condName, at = n.Name, fd.TypeCondition.Name, n
	default:
		return visitor.Continue
	}
	condType, ok := r.ctx.Schema.Types[condName]
	if !ok {
		return visitor.Continue
	}
	if !typesOverlap(r.ctx.Schema, condType, graphql.NamedOf(parentType)) {
		if fragName != "" {
			r.report(invalid("fragment %q cannot be spread here as objects of type %q can never be of type %q", fragName, graphql.NamedOf(parentType), condName).WithNodes(at))
		} else {
			r.report(invalid("fragment cannot be spread here as objects of type %q can never be of type %q", graphql.NamedOf(parentType), condName).WithNodes(at))
		}
	}
	return visitor.Continue
}

func possibleObjectTypes(schema *graphql.Schema, t graphql.NamedType) map[string]bool {
	out := map[string]bool{}
	switch v := t.(type) {
	case *graphql.Object:
		out[v.Name] = true
	case *graphql.Interface:
		for _, o := range schema.PossibleTypes[v.Name] {
			out[o.Name] = true
		}
	case *graphql.Union:
		for name := range v.Types {
			out[name] = true
		}
	}
	return out
}

func typesOverlap(schema *graphql.Schema, a, b graphql.NamedType) bool {
	if a == nil || b == nil {
		return true
	}
	if a.TypeName() == b.TypeName() {
		return true
	}
	as, bs := possibleObjectTypes(schema, a), possibleObjectTypes(schema, b)
	for name := range as {
		if bs[name] {
			return true
		}
	}
	return false
}

// noFragmentCycles rejects a fragment that spreads itself, directly or
// through other fragments.
type noFragmentCycles struct {
	baseRule
	visited map[string]bool
}

func NewNoFragmentCycles(ctx *Context) Rule {
	return &noFragmentCycles{baseRule: baseRule{ctx: ctx}, visited: map[string]bool{}}
}

func (r *noFragmentCycles) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	fd, ok := node.(*ast.FragmentDefinition)
	if !ok || r.visited[fd.Name] {
		return visitor.Continue
	}
	r.detectCycle(fd, fd.Name, map[string]bool{fd.Name: true}, []string{fd.Name})
	return visitor.Continue
}

func (r *noFragmentCycles) detectCycle(fd *ast.FragmentDefinition, root string, onPath map[string]bool, chain []string) {
	r.visited[fd.Name] = true
	walkSpreads(fd.SelectionSet, func(spread *ast.FragmentSpread) {
		if spread.Name == root {
			r.report(invalid("fragment %q cannot spread itself, forming a cycle (%v)", root, append(chain, spread.Name)).WithNodes(spread))
			return
		}
		if onPath[spread.Name] {
			return
		}
		next := r.ctx.TypeInfo.FragmentDefinition(spread.Name)
		if next == nil {
			return
		}
		onPath[spread.Name] = true
		r.detectCycle(next, root, onPath, append(chain, spread.Name))
		delete(onPath, spread.Name)
	})
}

func walkSpreads(sel *ast.SelectionSet, fn func(*ast.FragmentSpread)) {
	if sel == nil {
		return
	}
	for _, s := range sel.Selections {
		switch v := s.(type) {
		case *ast.Field:
			walkSpreads(v.SelectionSet, fn)
		case *ast.InlineFragment:
			walkSpreads(v.SelectionSet, fn)
		case *ast.FragmentSpread:
			fn(v)
		}
	}
}
