// Package typeinfo tracks, for every node a Walk visits, which schema types
// are in scope at that point in the document: the current type, the parent
// (enclosing composite) type, the field definition a Field node selects,
// the expected input type of a value position, and the directive/argument
// currently being visited. graphql/validation's rules read this state
// instead of re-deriving it themselves.
//
// Grounded on spec.md §4.G directly; no teacher analogue was retrieved, so
// the stack push/pop-even-on-nil discipline is modeled on the recursive
// descent pattern teacher's Executor/ValidateQuery never skip a frame on.
package typeinfo

import (
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// Info exposes the type-system state in scope at the node currently being
// visited. Every accessor returns the top of its stack, or the zero value if
// nothing is in scope (e.g. Type() returns nil before any selection set is
// entered).
type Info struct {
	schema *graphql.Schema

	typeStack       []graphql.Type
	parentTypeStack []graphql.Type
	fieldDefStack   []*graphql.Field
	inputTypeStack  []graphql.Type
	directiveStack  []*graphql.Directive
	argumentStack   []*graphql.InputValueDefinition
	enumValueStack  []string
	fragmentDefs    map[string]*ast.FragmentDefinition
}

func (info *Info) Type() graphql.Type {
	return top(info.typeStack)
}

func (info *Info) ParentType() graphql.Type {
	return top(info.parentTypeStack)
}

func (info *Info) FieldDef() *graphql.Field {
	if len(info.fieldDefStack) == 0 {
		return nil
	}
	return info.fieldDefStack[len(info.fieldDefStack)-1]
}

func (info *Info) InputType() graphql.Type {
	return top(info.inputTypeStack)
}

func (info *Info) Directive() *graphql.Directive {
	if len(info.directiveStack) == 0 {
		return nil
	}
	return info.directiveStack[len(info.directiveStack)-1]
}

func (info *Info) Argument() *graphql.InputValueDefinition {
	if len(info.argumentStack) == 0 {
		return nil
	}
	return info.argumentStack[len(info.argumentStack)-1]
}

func (info *Info) EnumValue() string {
	if len(info.enumValueStack) == 0 {
		return ""
	}
	return info.enumValueStack[len(info.enumValueStack)-1]
}

// FragmentDefinition looks up a named fragment in the document being
// visited; validation rules and the executor both need this to resolve
// fragment spreads.
func (info *Info) FragmentDefinition(name string) *ast.FragmentDefinition {
	return info.fragmentDefs[name]
}

func top(s []graphql.Type) graphql.Type {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// NewTypeInfoVisitor builds an Info and the visitor.Visitor that keeps it
// current. Run it first in a visitor.ParallelVisitor so later visitors
// observe Info already updated for the node they're looking at (Enter
// pushes before other visitors' Enter run; Leave pops after).
func NewTypeInfoVisitor(schema *graphql.Schema, doc *ast.Document) (*Info, visitor.Visitor) {
	info := &Info{schema: schema, fragmentDefs: map[string]*ast.FragmentDefinition{}}
	for _, d := range doc.Definitions {
		if fd, ok := d.(*ast.FragmentDefinition); ok {
			info.fragmentDefs[fd.Name] = fd
		}
	}
	return info, &infoVisitor{info: info}
}

type infoVisitor struct {
	info *Info
}

func (v *infoVisitor) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	info := v.info
	switch n := node.(type) {
	case *ast.OperationDefinition:
		var t graphql.Type
		switch n.Operation {
		case ast.OperationQuery:
			t = info.schema.Query
		case ast.OperationMutation:
			t = info.schema.Mutation
		case ast.OperationSubscription:
			t = info.schema.Subscription
		}
		info.typeStack = append(info.typeStack, t)

	case *ast.FragmentDefinition:
		info.typeStack = append(info.typeStack, lookupNamed(info.schema, n.TypeCondition))

	case *ast.InlineFragment:
		if n.TypeCondition != nil {
			info.typeStack = append(info.typeStack, lookupNamed(info.schema, n.TypeCondition))
		} else {
			info.typeStack = append(info.typeStack, info.Type())
		}

	case *ast.SelectionSet:
		info.parentTypeStack = append(info.parentTypeStack, info.Type())

	case *ast.Field:
		var fieldDef *graphql.Field
		parent := info.ParentType()
		if composite := fieldsOf(parent); composite != nil {
			fieldDef = composite[n.Name]
		}
		info.fieldDefStack = append(info.fieldDefStack, fieldDef)
		if fieldDef != nil {
			info.typeStack = append(info.typeStack, fieldDef.Type)
		} else {
			info.typeStack = append(info.typeStack, nil)
		}

	case *ast.Directive:
		info.directiveStack = append(info.directiveStack, info.schema.Directives[n.Name])

	case *ast.VariableDefinition:
		info.inputTypeStack = append(info.inputTypeStack, graphql.NamedOf(nil))

	case *ast.Argument:
		var argDef *graphql.InputValueDefinition
		if d := info.Directive(); d != nil {
			argDef = d.Args[n.Name]
		} else if fd := info.FieldDef(); fd != nil {
			argDef = fd.Args[n.Name]
		}
		info.argumentStack = append(info.argumentStack, argDef)
		if argDef != nil {
			info.inputTypeStack = append(info.inputTypeStack, argDef.Type)
		} else {
			info.inputTypeStack = append(info.inputTypeStack, nil)
		}

	case *ast.ListValue:
		var elem graphql.Type
		if lt, ok := graphql.Unwrap(info.InputType()).(*graphql.List); ok {
			elem = lt.Type
		}
		info.inputTypeStack = append(info.inputTypeStack, elem)

	case *ast.ObjectField:
		var fieldTyp graphql.Type
		if io, ok := graphql.NamedOf(info.InputType()).(*graphql.InputObject); ok {
			if f, ok := io.Fields[n.Name]; ok {
				fieldTyp = f.Type
			}
		}
		info.inputTypeStack = append(info.inputTypeStack, fieldTyp)

	case *ast.EnumValue:
		info.enumValueStack = append(info.enumValueStack, n.Value)
	}
	return visitor.Continue
}

func (v *infoVisitor) Leave(node ast.Node, parent ast.Node, key interface{}, path []interface{}) {
	info := v.info
	switch node.(type) {
	case *ast.OperationDefinition, *ast.FragmentDefinition, *ast.InlineFragment, *ast.Field:
		info.typeStack = info.typeStack[:len(info.typeStack)-1]
		if _, ok := node.(*ast.Field); ok {
			info.fieldDefStack = info.fieldDefStack[:len(info.fieldDefStack)-1]
		}
	case *ast.SelectionSet:
		info.parentTypeStack = info.parentTypeStack[:len(info.parentTypeStack)-1]
	case *ast.Directive:
		info.directiveStack = info.directiveStack[:len(info.directiveStack)-1]
	case *ast.VariableDefinition, *ast.ListValue, *ast.ObjectField:
		info.inputTypeStack = info.inputTypeStack[:len(info.inputTypeStack)-1]
	case *ast.Argument:
		info.argumentStack = info.argumentStack[:len(info.argumentStack)-1]
		info.inputTypeStack = info.inputTypeStack[:len(info.inputTypeStack)-1]
	case *ast.EnumValue:
		info.enumValueStack = info.enumValueStack[:len(info.enumValueStack)-1]
	}
}

func lookupNamed(schema *graphql.Schema, tc *ast.NamedType) graphql.Type {
	if tc == nil {
		return nil
	}
	if t, ok := schema.Types[tc.Name]; ok {
		return t
	}
	return nil
}

// fieldsOf returns the field map of t if it's a composite output type
// (Object or Interface), unwrapping List/NonNull/LazyRef first.
func fieldsOf(t graphql.Type) map[string]*graphql.Field {
	switch v := graphql.NamedOf(t).(type) {
	case *graphql.Object:
		return v.Fields
	case *graphql.Interface:
		return v.Fields
	default:
		return nil
	}
}
