package validation

import (
	"fmt"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// overlappingFieldsCanBeMerged rejects a selection set where two fields
// sharing a response key (alias or name) cannot be merged into one response
// entry: they must call the same underlying field with the same arguments
// and the same return type (compared by its printed form). The
// sub-selections of two such fields are not compared with each other; each
// selection set is checked on its own when the walk reaches it. The rule
// gathers a selection set's fields itself rather than node-by-node, since
// merge conflicts are a property of a whole selection set (and everything a
// fragment spread pulls into it), not of any single node.
type overlappingFieldsCanBeMerged struct{ baseRule }

func NewOverlappingFieldsCanBeMerged(ctx *Context) Rule {
	return &overlappingFieldsCanBeMerged{baseRule{ctx: ctx}}
}

type fieldEntry struct {
	field      *ast.Field
	parentType graphql.Type
}

func (r *overlappingFieldsCanBeMerged) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	sel, ok := node.(*ast.SelectionSet)
	if !ok {
		return visitor.Continue
	}
	groups := map[string][]fieldEntry{}
	r.collectFields(sel, r.ctx.TypeInfo.ParentType(), groups, map[string]bool{})
	for key, entries := range groups {
		for i := 1; i < len(entries); i++ {
			r.checkPair(key, entries[0], entries[i])
		}
	}
	return visitor.Continue
}

func (r *overlappingFieldsCanBeMerged) collectFields(sel *ast.SelectionSet, parentType graphql.Type, groups map[string][]fieldEntry, visiting map[string]bool) {
	for _, s := range sel.Selections {
		switch v := s.(type) {
		case *ast.Field:
			key := v.ResponseKey()
			groups[key] = append(groups[key], fieldEntry{field: v, parentType: parentType})
		case *ast.InlineFragment:
			cond := parentType
			if v.TypeCondition != nil {
				if t, ok := r.ctx.Schema.Types[v.TypeCondition.Name]; ok {
					cond = t
				}
			}
			r.collectFields(v.SelectionSet, cond, groups, visiting)
		case *ast.FragmentSpread:
			if visiting[v.Name] {
				continue
			}
			fd := r.ctx.TypeInfo.FragmentDefinition(v.Name)
			if fd == nil {
				continue
			}
			cond := parentType
			if t, ok := r.ctx.Schema.Types[fd.TypeCondition.Name]; ok {
				cond = t
			}
			visiting[v.Name] = true
			r.collectFields(fd.SelectionSet, cond, groups, visiting)
			delete(visiting, v.Name)
		}
	}
}

func (r *overlappingFieldsCanBeMerged) checkPair(key string, a, b fieldEntry) {
	if a.field.Name != b.field.Name {
		r.report(invalid("fields %q conflict because %q and %q are different fields", key, a.field.Name, b.field.Name).WithNodes(a.field, b.field))
		return
	}
	if !sameArguments(a.field.Arguments, b.field.Arguments) {
		r.report(invalid("fields %q conflict because they have differing arguments", key).WithNodes(a.field, b.field))
		return
	}
	aType := fieldReturnType(a)
	bType := fieldReturnType(b)
	if aType != nil && bType != nil && aType.String() != bType.String() {
		r.report(invalid("fields %q conflict because they return conflicting types %s and %s", key, aType, bType).WithNodes(a.field, b.field))
	}
}

func fieldReturnType(e fieldEntry) graphql.Type {
	fields := compositeFields(e.parentType)
	if fields == nil {
		return nil
	}
	f, ok := fields[e.field.Name]
	if !ok {
		return nil
	}
	return f.Type
}

func sameArguments(a, b []*ast.Argument) bool {
	if len(a) != len(b) {
		return false
	}
	byName := map[string]ast.Value{}
	for _, arg := range a {
		byName[arg.Name] = arg.Value
	}
	for _, arg := range b {
		other, ok := byName[arg.Name]
		if !ok || printValue(other) != printValue(arg.Value) {
			return false
		}
	}
	return true
}

// printValue renders a literal value node canonically enough to compare two
// arguments for equality; variable references compare by name only (their
// runtime values aren't known during validation).
func printValue(v ast.Value) string {
	switch n := v.(type) {
	case *ast.Variable:
		return "$" + n.Name
	case *ast.IntValue:
		return n.Value
	case *ast.FloatValue:
		return n.Value
	case *ast.StringValue:
		return n.Value
	case *ast.BooleanValue:
		return fmt.Sprintf("%v", n.Value)
	case *ast.NullValue:
		return "null"
	case *ast.EnumValue:
		return n.Value
	case *ast.ListValue:
		out := "["
		for i, e := range n.Values {
			if i > 0 {
				out += ","
			}
			out += printValue(e)
		}
		return out + "]"
	case *ast.ObjectValue:
		out := "{"
		for i, f := range n.Fields {
			if i > 0 {
				out += ","
			}
			out += f.Name + ":" + printValue(f.Value)
		}
		return out + "}"
	default:
		return ""
	}
}
