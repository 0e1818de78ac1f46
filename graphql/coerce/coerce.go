// Package coerce turns request-supplied JSON values into the values the
// executor passes resolvers: variables coerced against their declared
// type, field arguments coerced against the field's argument definitions
// (variable references substituted, defaults applied), and a narrow
// enum-literal helper shared by both paths.
//
// Grounded on teacher's schemabuilder arg-parser idiom (argParser.FromJSON,
// wrapPtrParser, generateSliceParser in reflect.go/input_object.go)
// generalized from "Go struct field" targets to "graphql.Type" targets,
// since this package coerces against the type system directly rather than
// through reflection onto Go structs.
package coerce

import (
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
)

// CoercedValue is JSON-shaped: nil, bool, int64, float64, string,
// []CoercedValue or map[string]CoercedValue. Kept as a distinct named type
// from ast.Value (an AST literal node) and from the raw map[string]interface{}
// a request arrives as, since all three have different invariants even
// though Go can't enforce the difference structurally.
type CoercedValue = interface{}

// CoerceVariableValues coerces raw request variables against the operation's
// variable declarations: every supplied variable, and every absent one that
// declares a default, ends up in the result; an absent nullable variable
// with no default is left out of it. Every coercion failure is reported
// against the VariableDefinition node rather than aborting on the first one.
func CoerceVariableValues(schema *graphql.Schema, defs []*ast.VariableDefinition, raw map[string]interface{}) (map[string]CoercedValue, gqlerrors.List) {
	out := map[string]CoercedValue{}
	var errs gqlerrors.List

	for _, def := range defs {
		name := def.Variable.Name
		typ, err := resolveTypeNode(schema, def.Type)
		if err != nil {
			errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "variable $%s: %s", name, err).WithNodes(def))
			continue
		}

		rawVal, supplied := raw[name]
		if !supplied {
			if def.HasDefault {
				v, err := coerceValueNode(def.DefaultValue, typ, nil)
				if err != nil {
					errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "variable $%s: %s", name, err).WithNodes(def))
					continue
				}
				out[name] = v
				continue
			}
			if graphql.IsNonNull(typ) {
				errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "variable $%s of required type %q was not provided", name, typ).WithNodes(def))
			}
			continue
		}

		if rawVal == nil {
			if graphql.IsNonNull(typ) {
				errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "variable $%s of non-null type %q must not be null", name, typ).WithNodes(def))
				continue
			}
			out[name] = nil
			continue
		}

		v, err := coerceRaw(rawVal, typ)
		if err != nil {
			errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "variable $%s: %s", name, err).WithNodes(def))
			continue
		}
		out[name] = v
	}

	return out, errs
}

// CoerceArgumentValues coerces one field or directive invocation's argument
// list against its definitions: a literal value is coerced directly, a
// $variable reference is substituted from vars (already-coerced by
// CoerceVariableValues), and any argument absent from argNodes falls back
// to its declared default.
func CoerceArgumentValues(argDefs map[string]*graphql.InputValueDefinition, argNodes []*ast.Argument, vars map[string]CoercedValue) (map[string]CoercedValue, gqlerrors.List) {
	out := map[string]CoercedValue{}
	var errs gqlerrors.List

	supplied := map[string]ast.Value{}
	for _, a := range argNodes {
		supplied[a.Name] = a.Value
	}

	for name, def := range argDefs {
		valNode, ok := supplied[name]
		if !ok {
			if def.HasDefault {
				out[name] = def.DefaultValue
			} else if graphql.IsNonNull(def.Type) {
				errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "argument %q of required type %q was not provided", name, def.Type))
			}
			continue
		}
		v, err := coerceValueNode(valNode, def.Type, vars)
		if err != nil {
			errs = append(errs, gqlerrors.New(gqlerrors.VariablesCoercionError, "argument %q: %s", name, err).WithNodes(valNode))
			continue
		}
		out[name] = v
	}

	return out, errs
}

// CoerceLiteral coerces a single AST literal (no variables in scope) against
// typ, producing the CoercedValue a graphql.InputValueDefinition.DefaultValue
// is expected to already hold. Schema builders use this once, at build time,
// to turn an SDL or argument default-value literal into its coerced form
// rather than re-coercing the literal on every request.
func CoerceLiteral(val ast.Value, typ graphql.Type) (CoercedValue, error) {
	return coerceValueNode(val, typ, nil)
}

// CoerceEnumLiteral maps an enum value's textual name to the Go value the
// schema registered for it, via the enum's reverse map inverse (its Map),
// mirroring teacher's Enum.Map/ReverseMap pairing.
func CoerceEnumLiteral(enum *graphql.Enum, name string) (interface{}, error) {
	v, ok := enum.Map[name]
	if !ok {
		return nil, &enumValueError{enum: enum.Name, value: name}
	}
	return v, nil
}

type enumValueError struct {
	enum  string
	value string
}

func (e *enumValueError) Error() string {
	return "value \"" + e.value + "\" does not exist in enum \"" + e.enum + "\""
}
