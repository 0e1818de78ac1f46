package coerce

import (
	"fmt"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
)

// resolveTypeNode translates a syntactic type reference (as written in a
// variable definition) into the graphql.Type it names, wrapping List/NonNull
// layers in the same nesting the syntax describes.
func resolveTypeNode(schema *graphql.Schema, tn ast.TypeNode) (graphql.Type, error) {
	switch t := tn.(type) {
	case *ast.NamedType:
		named, ok := schema.Types[t.Name]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", t.Name)
		}
		return named, nil
	case *ast.ListType:
		inner, err := resolveTypeNode(schema, t.Type)
		if err != nil {
			return nil, err
		}
		return &graphql.List{Type: inner}, nil
	case *ast.NonNullType:
		inner, err := resolveTypeNode(schema, t.Type)
		if err != nil {
			return nil, err
		}
		return graphql.NewNonNull(inner), nil
	default:
		return nil, fmt.Errorf("unrecognized type syntax %T", tn)
	}
}

// coerceRaw coerces a raw JSON-shaped Go value (as decoded by
// encoding/json: map[string]interface{}, []interface{}, string, float64,
// bool, nil) against typ.
func coerceRaw(raw interface{}, typ graphql.Type) (CoercedValue, error) {
	if nn, ok := typ.(*graphql.NonNull); ok {
		if raw == nil {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceRaw(raw, nn.Type)
	}
	if raw == nil {
		return nil, nil
	}

	switch t := typ.(type) {
	case *graphql.List:
		items, ok := raw.([]interface{})
		if !ok {
			// a bare value coerces to a single-element list.
			items = []interface{}{raw}
		}
		out := make([]CoercedValue, len(items))
		for i, item := range items {
			v, err := coerceRaw(item, t.Type)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	case *graphql.Scalar:
		return scalarCoerce(t)(raw)

	case *graphql.Enum:
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("enum %q value must be a string", t.Name)
		}
		return CoerceEnumLiteral(t, name)

	case *graphql.InputObject:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("input object %q must be a JSON object", t.Name)
		}
		return coerceInputObjectRaw(t, obj)

	default:
		return nil, fmt.Errorf("%s is not a valid input type", typ)
	}
}

func coerceInputObjectRaw(io *graphql.InputObject, obj map[string]interface{}) (map[string]CoercedValue, error) {
	out := map[string]CoercedValue{}
	known := map[string]bool{}
	nonNullSeen := 0
	for name, field := range io.Fields {
		known[name] = true
		raw, present := obj[name]
		if !present {
			if field.HasDefault {
				out[name] = field.DefaultValue
			} else if graphql.IsNonNull(field.Type) {
				return nil, fmt.Errorf("field %q of required type %q was not provided", name, field.Type)
			}
			continue
		}
		if raw != nil {
			nonNullSeen++
		}
		v, err := coerceRaw(raw, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = v
	}
	for name := range obj {
		if !known[name] {
			return nil, fmt.Errorf("unknown field %q", name)
		}
	}
	if io.OneOf && nonNullSeen != 1 {
		return nil, fmt.Errorf("input object %q annotated @oneOf must have exactly one non-null field set, got %d", io.Name, nonNullSeen)
	}
	return out, nil
}

// coerceValueNode coerces an AST literal (or variable reference) against
// typ. A *ast.Variable substitutes the already-coerced value from vars;
// everything else is coerced the way a corresponding JSON value would be,
// reusing coerceRaw after translating the literal node into its plain Go
// form.
func coerceValueNode(val ast.Value, typ graphql.Type, vars map[string]CoercedValue) (CoercedValue, error) {
	if v, ok := val.(*ast.Variable); ok {
		coerced, ok := vars[v.Name]
		if !ok {
			return nil, nil
		}
		return coerced, nil
	}

	if nn, ok := typ.(*graphql.NonNull); ok {
		if _, isNull := val.(*ast.NullValue); isNull {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceValueNode(val, nn.Type, vars)
	}
	if _, isNull := val.(*ast.NullValue); isNull {
		return nil, nil
	}

	switch t := typ.(type) {
	case *graphql.List:
		lv, ok := val.(*ast.ListValue)
		if !ok {
			v, err := coerceValueNode(val, t.Type, vars)
			if err != nil {
				return nil, err
			}
			return []CoercedValue{v}, nil
		}
		out := make([]CoercedValue, len(lv.Values))
		for i, e := range lv.Values {
			v, err := coerceValueNode(e, t.Type, vars)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	case *graphql.Scalar:
		return scalarCoerce(t)(literalGoValue(val))

	case *graphql.Enum:
		ev, ok := val.(*ast.EnumValue)
		if !ok {
			return nil, fmt.Errorf("enum %q requires an enum literal", t.Name)
		}
		return CoerceEnumLiteral(t, ev.Value)

	case *graphql.InputObject:
		ov, ok := val.(*ast.ObjectValue)
		if !ok {
			return nil, fmt.Errorf("input object %q requires an object literal", t.Name)
		}
		return coerceInputObjectLiteral(t, ov, vars)

	default:
		return nil, fmt.Errorf("%s is not a valid input type", typ)
	}
}

func coerceInputObjectLiteral(io *graphql.InputObject, ov *ast.ObjectValue, vars map[string]CoercedValue) (map[string]CoercedValue, error) {
	supplied := map[string]ast.Value{}
	for _, f := range ov.Fields {
		supplied[f.Name] = f.Value
	}
	out := map[string]CoercedValue{}
	nonNullSeen := 0
	for name, field := range io.Fields {
		valNode, ok := supplied[name]
		if !ok {
			if field.HasDefault {
				out[name] = field.DefaultValue
			} else if graphql.IsNonNull(field.Type) {
				return nil, fmt.Errorf("field %q of required type %q was not provided", name, field.Type)
			}
			continue
		}
		v, err := coerceValueNode(valNode, field.Type, vars)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		if v != nil {
			nonNullSeen++
		}
		out[name] = v
	}
	for name := range supplied {
		if _, ok := io.Fields[name]; !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
	}
	if io.OneOf && nonNullSeen != 1 {
		return nil, fmt.Errorf("input object %q annotated @oneOf must have exactly one non-null field set, got %d", io.Name, nonNullSeen)
	}
	return out, nil
}

// scalarCoerce returns t.Coerce, or the identity function if nil — Scalar's
// own doc comment promises Coerce defaults to identity when unset, a
// contract this package must honor too, not just the field-completion path.
func scalarCoerce(t *graphql.Scalar) func(interface{}) (interface{}, error) {
	if t.Coerce != nil {
		return t.Coerce
	}
	return func(v interface{}) (interface{}, error) { return v, nil }
}

// literalGoValue reduces a scalar-shaped literal node to the plain Go value
// handed to a Scalar.Coerce function: Int and Float literals arrive as their
// source text (a string, not a float64), strings and enum names as strings,
// booleans as bool.
func literalGoValue(val ast.Value) interface{} {
	switch v := val.(type) {
	case *ast.IntValue:
		return v.Value
	case *ast.FloatValue:
		return v.Value
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.EnumValue:
		return v.Value
	default:
		return nil
	}
}
