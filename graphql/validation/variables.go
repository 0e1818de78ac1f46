package validation

import (
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// uniqueVariableNames rejects two variable definitions on the same
// operation sharing a name.
type uniqueVariableNames struct{ baseRule }

func NewUniqueVariableNames(ctx *Context) Rule { return &uniqueVariableNames{baseRule{ctx: ctx}} }

func (r *uniqueVariableNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	op, ok := node.(*ast.OperationDefinition)
	if !ok {
		return visitor.Continue
	}
	seen := map[string]bool{}
	for _, v := range op.VariableDefinitions {
		if seen[v.Variable.Name] {
			r.report(invalid("there can be only one variable named $%s", v.Variable.Name).WithNodes(v))
		}
		seen[v.Variable.Name] = true
	}
	return visitor.Continue
}

// noUndefinedVariables rejects a $variable reference within an operation
// that never declares it (including through a spread fragment).
type noUndefinedVariables struct{ baseRule }

func NewNoUndefinedVariables(ctx *Context) Rule { return &noUndefinedVariables{baseRule{ctx: ctx}} }

func (r *noUndefinedVariables) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	op, ok := node.(*ast.OperationDefinition)
	if !ok {
		return visitor.Continue
	}
	declared := map[string]bool{}
	for _, v := range op.VariableDefinitions {
		declared[v.Variable.Name] = true
	}
	walkValues(r.ctx, op.SelectionSet, map[string]bool{}, func(v *ast.Variable) {
		if !declared[v.Name] {
			r.report(invalid("variable $%s is not defined by operation %q", v.Name, opLabel(op)).WithNodes(v))
		}
	})
	return visitor.Continue
}

// noUnusedVariables rejects a variable declared on an operation that no
// field/argument/directive beneath it (including through fragments) ever
// references.
type noUnusedVariables struct{ baseRule }

func NewNoUnusedVariables(ctx *Context) Rule { return &noUnusedVariables{baseRule{ctx: ctx}} }

func (r *noUnusedVariables) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	op, ok := node.(*ast.OperationDefinition)
	if !ok {
		return visitor.Continue
	}
	used := map[string]bool{}
	walkValues(r.ctx, op.SelectionSet, map[string]bool{}, func(v *ast.Variable) { used[v.Name] = true })
	for _, v := range op.VariableDefinitions {
		if !used[v.Variable.Name] {
			r.report(invalid("variable $%s is never used in operation %q", v.Variable.Name, opLabel(op)).WithNodes(v))
		}
	}
	return visitor.Continue
}

// walkValues visits every Variable reference reachable from sel: field
// arguments, directive arguments, and (transitively) spread fragments.
func walkValues(ctx *Context, sel *ast.SelectionSet, visiting map[string]bool, fn func(*ast.Variable)) {
	if sel == nil {
		return
	}
	for _, s := range sel.Selections {
		switch v := s.(type) {
		case *ast.Field:
			for _, a := range v.Arguments {
				walkValue(a.Value, fn)
			}
			for _, d := range v.Directives {
				for _, a := range d.Arguments {
					walkValue(a.Value, fn)
				}
			}
			walkValues(ctx, v.SelectionSet, visiting, fn)
		case *ast.InlineFragment:
			for _, d := range v.Directives {
				for _, a := range d.Arguments {
					walkValue(a.Value, fn)
				}
			}
			walkValues(ctx, v.SelectionSet, visiting, fn)
		case *ast.FragmentSpread:
			for _, d := range v.Directives {
				for _, a := range d.Arguments {
					walkValue(a.Value, fn)
				}
			}
			if visiting[v.Name] {
				continue
			}
			fd := ctx.TypeInfo.FragmentDefinition(v.Name)
			if fd == nil {
				continue
			}
			visiting[v.Name] = true
			walkValues(ctx, fd.SelectionSet, visiting, fn)
			delete(visiting, v.Name)
		}
	}
}

func walkValue(val ast.Value, fn func(*ast.Variable)) {
	switch v := val.(type) {
	case *ast.Variable:
		fn(v)
	case *ast.ListValue:
		for _, e := range v.Values {
			walkValue(e, fn)
		}
	case *ast.ObjectValue:
		for _, f := range v.Fields {
			walkValue(f.Value, fn)
		}
	}
}

// variablesInAllowedPosition rejects a $variable used where its declared
// type isn't compatible with the position's expected type: a nullable
// variable can't fill a non-null position unless the variable's own
// definition declares a default value, and the variable's named type must match the
// position's named type.
type variablesInAllowedPosition struct {
	baseRule
	varTypes      map[string]ast.TypeNode
	varHasDefault map[string]bool
}

func NewVariablesInAllowedPosition(ctx *Context) Rule {
	return &variablesInAllowedPosition{baseRule: baseRule{ctx: ctx}}
}

// Enter relies on the shared Walk to reach every Variable reference itself
// (inside an Argument's value, or nested in a ListValue/ObjectValue), with
// ctx.TypeInfo.InputType() already holding the expected type for that exact
// value position — so this rule never re-derives field/argument lookup
// itself, unlike a rule written to recurse independently would have to.
func (r *variablesInAllowedPosition) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	switch n := node.(type) {
	case *ast.OperationDefinition:
		r.varTypes = map[string]ast.TypeNode{}
		r.varHasDefault = map[string]bool{}
		for _, v := range n.VariableDefinitions {
			r.varTypes[v.Variable.Name] = v.Type
			r.varHasDefault[v.Variable.Name] = v.HasDefault
		}
	case *ast.Variable:
		expected := r.ctx.TypeInfo.InputType()
		if expected == nil {
			return visitor.Continue
		}
		varType, declared := r.varTypes[n.Name]
		if !declared {
			return visitor.Continue
		}
		if !variableTypeSatisfies(varType, r.varHasDefault[n.Name], expected) {
			r.report(invalid("variable $%s of type %q cannot be used for expected type %q", n.Name, varType, expected).WithNodes(n))
		}
	}
	return visitor.Continue
}

func variableTypeSatisfies(varType ast.TypeNode, hasDefault bool, expected graphql.Type) bool {
	expNonNull, eok := expected.(*graphql.NonNull)
	varNonNull, vok := varType.(*ast.NonNullType)
	if eok {
		if !vok && !hasDefault {
			return false
		}
		inner := expected
		if eok {
			inner = expNonNull.Type
		}
		if vok {
			return typeNodeMatches(varNonNull.Type, inner)
		}
		return typeNodeMatches(varType, inner)
	}
	if vok {
		return typeNodeMatches(varNonNull.Type, expected)
	}
	return typeNodeMatches(varType, expected)
}

func typeNodeMatches(tn ast.TypeNode, t graphql.Type) bool {
	switch n := tn.(type) {
	case *ast.NamedType:
		named := graphql.NamedOf(t)
		return named != nil && named.TypeName() == n.Name
	case *ast.ListType:
		lt, ok := t.(*graphql.List)
		if !ok {
			nn, ok := t.(*graphql.NonNull)
			if !ok {
				return false
			}
			lt, ok = nn.Type.(*graphql.List)
			if !ok {
				return false
			}
		}
		return typeNodeMatches(n.Type, lt.Type)
	case *ast.NonNullType:
		nn, ok := t.(*graphql.NonNull)
		if !ok {
			return false
		}
		return typeNodeMatches(n.Type, nn.Type)
	default:
		return false
	}
}
