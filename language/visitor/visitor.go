// Package visitor implements a generic, document-order AST walk over
// language/ast trees, and a ParallelVisitor combinator that runs several
// visitors over a single traversal — the traversal graphql/validation's rule
// bank and graphql/typeinfo's TypeInfoVisitor both run under (spec.md §4.D).
// Grounded on teacher's implicit SelectionSet/Selection descent
// (graphql.ValidateQuery/Executor.Execute) generalized into an explicit
// walker, and on roderm-graphql-go-tools' plan.Visitor enter/leave pairing.
package visitor

import "github.com/appointy/gqlcore/language/ast"

// Action tells Walk what to do after a Visitor callback returns.
type Action int

const (
	// Continue descends into the node's children as usual.
	Continue Action = iota
	// SkipSubtree skips the node's children but still calls Leave on the node.
	SkipSubtree
	// Stop aborts the entire walk immediately.
	Stop
)

// Visitor is implemented by anything that wants to observe a Walk. key is
// the field name or slice index the node was reached through on its parent
// (nil for the root); path is the chain of keys from the root to node.
type Visitor interface {
	Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action
	Leave(node ast.Node, parent ast.Node, key interface{}, path []interface{})
}

// Walk performs a depth-first, document-order traversal of node, calling v's
// Enter/Leave around every child. It never mutates the tree.
func Walk(v Visitor, node ast.Node) {
	w := &walker{v: v}
	w.walk(node, nil, nil, nil)
}

type walker struct {
	v Visitor
}

func (w *walker) walk(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	if node == nil {
		return Continue
	}
	action := w.v.Enter(node, parent, key, path)
	if action == Stop {
		return Stop
	}
	if action != SkipSubtree {
		if w.walkChildren(node, path) == Stop {
			return Stop
		}
	}
	w.v.Leave(node, parent, key, path)
	return Continue
}

// ParallelVisitor runs several visitors over a single Walk, in the order
// given: every Enter runs member-by-member before the walk descends, and
// every Leave runs member-by-member (same order) before the walk ascends
// further. A member that returns SkipSubtree or Stop only affects that
// member's own descent bookkeeping — it does not stop sibling members or
// the shared traversal, since a rule skipping its own interest in a
// subtree must never suppress another rule's view of it. The first member
// is expected to be a type-info visitor whose state the rest read from
// (graphql/typeinfo.Info), so it is always entered before and left after
// every other member.
type ParallelVisitor struct {
	Visitors []Visitor
}

func NewParallelVisitor(visitors ...Visitor) *ParallelVisitor {
	return &ParallelVisitor{Visitors: visitors}
}

func (p *ParallelVisitor) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	for _, v := range p.Visitors {
		v.Enter(node, parent, key, path)
	}
	return Continue
}

func (p *ParallelVisitor) Leave(node ast.Node, parent ast.Node, key interface{}, path []interface{}) {
	for _, v := range p.Visitors {
		v.Leave(node, parent, key, path)
	}
}

func (w *walker) walkChild(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	return w.walk(node, parent, key, append(path, key))
}

func (w *walker) walkChildren(node ast.Node, path []interface{}) Action {
	switch n := node.(type) {
	case *ast.Document:
		for i, d := range n.Definitions {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.OperationDefinition:
		for i, v := range n.VariableDefinitions {
			if w.walkChild(v, n, i, path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		if w.walkChild(n.SelectionSet, n, "SelectionSet", path) == Stop {
			return Stop
		}
	case *ast.VariableDefinition:
		if w.walkChild(n.Variable, n, "Variable", path) == Stop {
			return Stop
		}
		if w.walkChild(n.Type, n, "Type", path) == Stop {
			return Stop
		}
		if n.DefaultValue != nil {
			if w.walkChild(n.DefaultValue, n, "DefaultValue", path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.SelectionSet:
		for i, s := range n.Selections {
			if w.walkChild(s, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.Field:
		for i, a := range n.Arguments {
			if w.walkChild(a, n, i, path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		if n.SelectionSet != nil {
			if w.walkChild(n.SelectionSet, n, "SelectionSet", path) == Stop {
				return Stop
			}
		}
	case *ast.FragmentSpread:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.InlineFragment:
		if n.TypeCondition != nil {
			if w.walkChild(n.TypeCondition, n, "TypeCondition", path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		if w.walkChild(n.SelectionSet, n, "SelectionSet", path) == Stop {
			return Stop
		}
	case *ast.FragmentDefinition:
		if w.walkChild(n.TypeCondition, n, "TypeCondition", path) == Stop {
			return Stop
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		if w.walkChild(n.SelectionSet, n, "SelectionSet", path) == Stop {
			return Stop
		}
	case *ast.Argument:
		if w.walkChild(n.Value, n, "Value", path) == Stop {
			return Stop
		}
	case *ast.Directive:
		for i, a := range n.Arguments {
			if w.walkChild(a, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.ListValue:
		for i, v := range n.Values {
			if w.walkChild(v, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.ObjectValue:
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.ObjectField:
		if w.walkChild(n.Value, n, "Value", path) == Stop {
			return Stop
		}
	case *ast.ListType:
		if w.walkChild(n.Type, n, "Type", path) == Stop {
			return Stop
		}
	case *ast.NonNullType:
		if w.walkChild(n.Type, n, "Type", path) == Stop {
			return Stop
		}

	// SDL nodes — walked so validation/typeinfo can run over schema
	// documents too.
	case *ast.SchemaDefinition:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, o := range n.OperationTypeDefs {
			if w.walkChild(o, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.OperationTypeDefinition:
		if w.walkChild(n.Type, n, "Type", path) == Stop {
			return Stop
		}
	case *ast.ScalarTypeDefinition:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.ScalarTypeExtension:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.ObjectTypeDefinition:
		for i, iface := range n.Interfaces {
			if w.walkChild(iface, n, i, path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.ObjectTypeExtension:
		for i, iface := range n.Interfaces {
			if w.walkChild(iface, n, i, path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.InterfaceTypeDefinition:
		for i, iface := range n.Interfaces {
			if w.walkChild(iface, n, i, path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.InterfaceTypeExtension:
		for i, iface := range n.Interfaces {
			if w.walkChild(iface, n, i, path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.UnionTypeDefinition:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, t := range n.Types {
			if w.walkChild(t, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.UnionTypeExtension:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, t := range n.Types {
			if w.walkChild(t, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.EnumTypeDefinition:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, v := range n.Values {
			if w.walkChild(v, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.EnumTypeExtension:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, v := range n.Values {
			if w.walkChild(v, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.EnumValueDefinition:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.InputObjectTypeDefinition:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.InputObjectTypeExtension:
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
		for i, f := range n.Fields {
			if w.walkChild(f, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.InputValueDefinition:
		if w.walkChild(n.Type, n, "Type", path) == Stop {
			return Stop
		}
		if n.DefaultValue != nil {
			if w.walkChild(n.DefaultValue, n, "DefaultValue", path) == Stop {
				return Stop
			}
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.FieldDefinition:
		for i, a := range n.Arguments {
			if w.walkChild(a, n, i, path) == Stop {
				return Stop
			}
		}
		if w.walkChild(n.Type, n, "Type", path) == Stop {
			return Stop
		}
		for i, d := range n.Directives {
			if w.walkChild(d, n, i, path) == Stop {
				return Stop
			}
		}
	case *ast.DirectiveDefinition:
		for i, a := range n.Arguments {
			if w.walkChild(a, n, i, path) == Stop {
				return Stop
			}
		}

	// Leaves: IntValue, FloatValue, StringValue, BooleanValue, NullValue,
	// EnumValue, Variable, NamedType have no children to descend into.
	default:
	}
	return Continue
}
