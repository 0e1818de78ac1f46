// Package introspection adds the __schema/__type meta-fields every spec-
// compliant server exposes, built as ordinary graphql.Object values wired
// directly onto the graphql package's runtime types rather than through the
// reflection-based schemabuilder: the introspection system describes
// graphql.Type values themselves, which have no natural Go struct to
// reflect over. Adapted from teacher's introspection/introspection.go
// (same field set, same resolver logic), retargeted from the reflective
// schemabuilder.Object/FieldFunc registration onto direct graphql.Object/
// graphql.Field construction.
package introspection

import (
	"fmt"
	"sort"

	"github.com/appointy/gqlcore/graphql"
)

// TypeKind is the __TypeKind enum: which of the eight kinds of graphql.Type
// a __Type wraps.
type TypeKind string

const (
	ScalarKind      TypeKind = "SCALAR"
	ObjectKind      TypeKind = "OBJECT"
	InterfaceKind   TypeKind = "INTERFACE"
	UnionKind       TypeKind = "UNION"
	EnumKind        TypeKind = "ENUM"
	InputObjectKind TypeKind = "INPUT_OBJECT"
	ListKind        TypeKind = "LIST"
	NonNullKind     TypeKind = "NON_NULL"
)

func typeKindOf(t graphql.Type) TypeKind {
	switch t.(type) {
	case *graphql.Object:
		return ObjectKind
	case *graphql.Union:
		return UnionKind
	case *graphql.Interface:
		return InterfaceKind
	case *graphql.Scalar:
		return ScalarKind
	case *graphql.Enum:
		return EnumKind
	case *graphql.InputObject:
		return InputObjectKind
	case *graphql.List:
		return ListKind
	case *graphql.NonNull:
		return NonNullKind
	default:
		return ""
	}
}

// typeRef wraps a graphql.Type as the source value every __Type field
// resolver receives, so a nil *graphql.Object (a legitimately absent
// mutationType, say) never gets mistaken for "no type" by the executor
// (a non-nil typeRef holding a nil inner is only produced deliberately, and
// those call sites check inner before wrapping).
type typeRef struct{ inner graphql.Type }

type fieldRef struct {
	name  string
	field *graphql.Field
}

type argRef struct {
	name string
	def  *graphql.InputValueDefinition
}

type enumValueRef struct {
	name              string
	description       string
	isDeprecated      bool
	deprecationReason string
}

type directiveRef struct{ d *graphql.Directive }

func resolve(fn func(p graphql.ResolveParams) interface{}) graphql.Resolver {
	return func(p graphql.ResolveParams) (interface{}, error) { return fn(p), nil }
}

func describeType(t graphql.Type) string {
	switch t := t.(type) {
	case *graphql.Object:
		return t.Description
	case *graphql.Union:
		return t.Description
	case *graphql.Interface:
		return t.Description
	case *graphql.Enum:
		return t.Description
	case *graphql.InputObject:
		return t.Description
	case *graphql.Scalar:
		return t.Description
	default:
		return ""
	}
}

func nameOfType(t graphql.Type) interface{} {
	if nt, ok := t.(graphql.NamedType); ok {
		return nt.TypeName()
	}
	return nil
}

func sortedObjectRefs(m map[string]*graphql.Object) []typeRef {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]typeRef, len(names))
	for i, n := range names {
		out[i] = typeRef{inner: m[n]}
	}
	return out
}

func sortedInterfaceRefs(m map[string]*graphql.Interface) []typeRef {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]typeRef, len(names))
	for i, n := range names {
		out[i] = typeRef{inner: m[n]}
	}
	return out
}

func sortedFieldRefs(m map[string]*graphql.Field) []fieldRef {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]fieldRef, len(names))
	for i, n := range names {
		out[i] = fieldRef{name: n, field: m[n]}
	}
	return out
}

func sortedArgRefs(m map[string]*graphql.InputValueDefinition) []argRef {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]argRef, len(names))
	for i, n := range names {
		out[i] = argRef{name: n, def: m[n]}
	}
	return out
}

func includeDeprecatedArg(p graphql.ResolveParams) bool {
	if v, ok := p.Args["includeDeprecated"]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func printDefault(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// The six introspection object types reference one another (__Type lists
// __Field and __InputValue, __Field's args are __InputValue, __InputValue's
// type is __Type, ...), so they're declared first and their Fields maps
// populated afterward in init, rather than trying to express the cycle in
// one struct literal.
var (
	typeObject        = &graphql.Object{Name: "__Type"}
	fieldObject       = &graphql.Object{Name: "__Field"}
	inputValueObject  = &graphql.Object{Name: "__InputValue"}
	enumValueObject   = &graphql.Object{Name: "__EnumValue"}
	directiveObject   = &graphql.Object{Name: "__Directive"}
	schemaObject      = &graphql.Object{Name: "__Schema"}
	typeKindEnum      = &graphql.Enum{Name: "__TypeKind"}
	directiveLocEnum  = &graphql.Enum{Name: "__DirectiveLocation"}
)

func init() {
	typeKindEnum.Map = map[string]interface{}{
		"SCALAR": ScalarKind, "OBJECT": ObjectKind, "INTERFACE": InterfaceKind,
		"UNION": UnionKind, "ENUM": EnumKind, "INPUT_OBJECT": InputObjectKind,
		"LIST": ListKind, "NON_NULL": NonNullKind,
	}
	typeKindEnum.ReverseMap = map[interface{}]string{}
	for k, v := range typeKindEnum.Map {
		typeKindEnum.ReverseMap[v] = k
	}

	directiveLocEnum.Map = map[string]interface{}{}
	for _, loc := range []graphql.DirectiveLocation{
		graphql.LocQuery, graphql.LocMutation, graphql.LocSubscription, graphql.LocField,
		graphql.LocFragmentDefinition, graphql.LocFragmentSpread, graphql.LocInlineFragment,
		graphql.LocVariableDefinition, graphql.LocSchema, graphql.LocScalar, graphql.LocObject,
		graphql.LocFieldDefinition, graphql.LocArgumentDefinition, graphql.LocInterface,
		graphql.LocUnion, graphql.LocEnum, graphql.LocEnumValue, graphql.LocInputObject,
		graphql.LocInputFieldDefinition,
	} {
		directiveLocEnum.Map[string(loc)] = loc
	}
	directiveLocEnum.ReverseMap = map[interface{}]string{}
	for k, v := range directiveLocEnum.Map {
		directiveLocEnum.ReverseMap[v] = k
	}

	inputValueObject.FieldOrder = []string{"name", "description", "type", "defaultValue", "isDeprecated", "deprecationReason"}
	inputValueObject.Fields = map[string]*graphql.Field{
		"name": {Name: "name", Type: graphql.NewNonNull(graphql.String), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(argRef).name
		})},
		"description": {Name: "description", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(argRef).def.Description
		})},
		"type": {Name: "type", Type: graphql.NewNonNull(typeObject), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return typeRef{inner: p.Source.(argRef).def.Type}
		})},
		"defaultValue": {Name: "defaultValue", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			a := p.Source.(argRef)
			if !a.def.HasDefault {
				return nil
			}
			return printDefault(a.def.DefaultValue)
		})},
		"isDeprecated": {Name: "isDeprecated", Type: graphql.NewNonNull(graphql.Boolean), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(argRef).def.IsDeprecated
		})},
		"deprecationReason": {Name: "deprecationReason", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			a := p.Source.(argRef)
			if !a.def.IsDeprecated {
				return nil
			}
			return a.def.DeprecationReason
		})},
	}

	enumValueObject.FieldOrder = []string{"name", "description", "isDeprecated", "deprecationReason"}
	enumValueObject.Fields = map[string]*graphql.Field{
		"name":        {Name: "name", Type: graphql.NewNonNull(graphql.String), Resolve: resolve(func(p graphql.ResolveParams) interface{} { return p.Source.(enumValueRef).name })},
		"description": {Name: "description", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} { return p.Source.(enumValueRef).description })},
		"isDeprecated": {Name: "isDeprecated", Type: graphql.NewNonNull(graphql.Boolean), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(enumValueRef).isDeprecated
		})},
		"deprecationReason": {Name: "deprecationReason", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			e := p.Source.(enumValueRef)
			if !e.isDeprecated {
				return nil
			}
			return e.deprecationReason
		})},
	}

	fieldObject.FieldOrder = []string{"name", "description", "args", "type", "isDeprecated", "deprecationReason"}
	fieldObject.Fields = map[string]*graphql.Field{
		"name":        {Name: "name", Type: graphql.NewNonNull(graphql.String), Resolve: resolve(func(p graphql.ResolveParams) interface{} { return p.Source.(fieldRef).name })},
		"description": {Name: "description", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} { return p.Source.(fieldRef).field.Description })},
		"args": {Name: "args", Type: graphql.NewNonNull(&graphql.List{Type: graphql.NewNonNull(inputValueObject)}), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return sortedArgRefs(p.Source.(fieldRef).field.Args)
		})},
		"type": {Name: "type", Type: graphql.NewNonNull(typeObject), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return typeRef{inner: p.Source.(fieldRef).field.Type}
		})},
		"isDeprecated": {Name: "isDeprecated", Type: graphql.NewNonNull(graphql.Boolean), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(fieldRef).field.IsDeprecated
		})},
		"deprecationReason": {Name: "deprecationReason", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			f := p.Source.(fieldRef)
			if !f.field.IsDeprecated {
				return nil
			}
			return f.field.DeprecationReason
		})},
	}

	directiveObject.FieldOrder = []string{"name", "description", "locations", "args", "isRepeatable"}
	directiveObject.Fields = map[string]*graphql.Field{
		"name":        {Name: "name", Type: graphql.NewNonNull(graphql.String), Resolve: resolve(func(p graphql.ResolveParams) interface{} { return p.Source.(directiveRef).d.Name })},
		"description": {Name: "description", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} { return p.Source.(directiveRef).d.Description })},
		"locations": {Name: "locations", Type: graphql.NewNonNull(&graphql.List{Type: graphql.NewNonNull(directiveLocEnum)}), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			locs := p.Source.(directiveRef).d.Locations
			out := make([]graphql.DirectiveLocation, len(locs))
			copy(out, locs)
			return out
		})},
		"args": {Name: "args", Type: graphql.NewNonNull(&graphql.List{Type: graphql.NewNonNull(inputValueObject)}), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return sortedArgRefs(p.Source.(directiveRef).d.Args)
		})},
		"isRepeatable": {Name: "isRepeatable", Type: graphql.NewNonNull(graphql.Boolean), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(directiveRef).d.Repeatable
		})},
	}

	typeObject.FieldOrder = []string{
		"kind", "name", "description", "fields", "interfaces", "possibleTypes",
		"enumValues", "inputFields", "ofType", "specifiedByURL",
	}
	typeObject.Fields = map[string]*graphql.Field{
		"kind": {Name: "kind", Type: graphql.NewNonNull(typeKindEnum), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return typeKindOf(p.Source.(typeRef).inner)
		})},
		"name": {Name: "name", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return nameOfType(p.Source.(typeRef).inner)
		})},
		"description": {Name: "description", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return describeType(p.Source.(typeRef).inner)
		})},
		"fields": {
			Name: "fields",
			Type: &graphql.List{Type: graphql.NewNonNull(fieldObject)},
			Args: map[string]*graphql.InputValueDefinition{
				"includeDeprecated": {Name: "includeDeprecated", Type: graphql.Boolean, HasDefault: true, DefaultValue: false},
			},
			ArgOrder: []string{"includeDeprecated"},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				includeDeprecated := includeDeprecatedArg(p)
				var fields map[string]*graphql.Field
				switch t := p.Source.(typeRef).inner.(type) {
				case *graphql.Object:
					fields = t.Fields
				case *graphql.Interface:
					fields = t.Fields
				default:
					return nil, nil
				}
				refs := sortedFieldRefs(fields)
				if includeDeprecated {
					return refs, nil
				}
				out := refs[:0:0]
				for _, r := range refs {
					if !r.field.IsDeprecated {
						out = append(out, r)
					}
				}
				return out, nil
			},
		},
		"interfaces": {Name: "interfaces", Type: &graphql.List{Type: graphql.NewNonNull(typeObject)}, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			obj, ok := p.Source.(typeRef).inner.(*graphql.Object)
			if !ok {
				return nil
			}
			return sortedInterfaceRefs(obj.Interfaces)
		})},
		"possibleTypes": {Name: "possibleTypes", Type: &graphql.List{Type: graphql.NewNonNull(typeObject)}, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			switch t := p.Source.(typeRef).inner.(type) {
			case *graphql.Union:
				return sortedObjectRefs(t.Types)
			case *graphql.Interface:
				return sortedObjectRefs(t.Types)
			default:
				return nil
			}
		})},
		"enumValues": {
			Name: "enumValues",
			Type: &graphql.List{Type: graphql.NewNonNull(enumValueObject)},
			Args: map[string]*graphql.InputValueDefinition{
				"includeDeprecated": {Name: "includeDeprecated", Type: graphql.Boolean, HasDefault: true, DefaultValue: false},
			},
			ArgOrder: []string{"includeDeprecated"},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				e, ok := p.Source.(typeRef).inner.(*graphql.Enum)
				if !ok {
					return nil, nil
				}
				includeDeprecated := includeDeprecatedArg(p)
				names := append([]string{}, e.Values...)
				sort.Strings(names)
				var out []enumValueRef
				for _, name := range names {
					reason, deprecated := e.DeprecatedValues[name]
					if deprecated && !includeDeprecated {
						continue
					}
					out = append(out, enumValueRef{
						name:              name,
						description:       e.ValueDescriptions[name],
						isDeprecated:      deprecated,
						deprecationReason: reason,
					})
				}
				return out, nil
			},
		},
		"inputFields": {Name: "inputFields", Type: &graphql.List{Type: graphql.NewNonNull(inputValueObject)}, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			io, ok := p.Source.(typeRef).inner.(*graphql.InputObject)
			if !ok {
				return nil
			}
			return sortedArgRefs(io.Fields)
		})},
		"ofType": {Name: "ofType", Type: typeObject, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			switch t := p.Source.(typeRef).inner.(type) {
			case *graphql.List:
				return typeRef{inner: t.Type}
			case *graphql.NonNull:
				return typeRef{inner: t.Type}
			default:
				return nil
			}
		})},
		"specifiedByURL": {Name: "specifiedByURL", Type: graphql.String, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			sc, ok := p.Source.(typeRef).inner.(*graphql.Scalar)
			if !ok || sc.SpecifiedByURL == "" {
				return nil
			}
			return sc.SpecifiedByURL
		})},
	}

	schemaObject.FieldOrder = []string{"types", "queryType", "mutationType", "subscriptionType", "directives"}
	schemaObject.Fields = map[string]*graphql.Field{
		"types": {Name: "types", Type: graphql.NewNonNull(&graphql.List{Type: graphql.NewNonNull(typeObject)}), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return p.Source.(schemaSource).types
		})},
		"queryType": {Name: "queryType", Type: graphql.NewNonNull(typeObject), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			return typeRef{inner: p.Source.(schemaSource).schema.Query}
		})},
		"mutationType": {Name: "mutationType", Type: typeObject, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			s := p.Source.(schemaSource).schema
			if s.Mutation == nil {
				return nil
			}
			return typeRef{inner: s.Mutation}
		})},
		"subscriptionType": {Name: "subscriptionType", Type: typeObject, Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			s := p.Source.(schemaSource).schema
			if s.Subscription == nil {
				return nil
			}
			return typeRef{inner: s.Subscription}
		})},
		"directives": {Name: "directives", Type: graphql.NewNonNull(&graphql.List{Type: graphql.NewNonNull(directiveObject)}), Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			s := p.Source.(schemaSource).schema
			names := make([]string, 0, len(s.Directives))
			for n := range s.Directives {
				names = append(names, n)
			}
			sort.Strings(names)
			out := make([]directiveRef, len(names))
			for i, n := range names {
				out[i] = directiveRef{d: s.Directives[n]}
			}
			return out
		})},
	}
}

// schemaSource is the Source value __schema's root resolver produces: the
// schema itself plus its types pre-sorted into typeRef values, so
// schemaObject's field resolvers never need to re-derive either.
type schemaSource struct {
	schema *graphql.Schema
	types  []typeRef
}

// Inject adds __schema and __type to schema's Query type and registers the
// six introspection object types (plus __TypeKind/__DirectiveLocation)
// into schema.Types, so a single schema built once carries both its own
// domain types and the machinery to describe them.
func Inject(schema *graphql.Schema) {
	for _, t := range []graphql.NamedType{
		typeObject, fieldObject, inputValueObject, enumValueObject, directiveObject,
		schemaObject, typeKindEnum, directiveLocEnum,
	} {
		schema.Types[t.TypeName()] = t
	}

	query := schema.Query
	if query.Fields == nil {
		query.Fields = map[string]*graphql.Field{}
	}
	query.Fields["__schema"] = &graphql.Field{
		Name: "__schema",
		Type: graphql.NewNonNull(schemaObject),
		Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			names := make([]string, 0, len(schema.Types))
			for n := range schema.Types {
				names = append(names, n)
			}
			sort.Strings(names)
			types := make([]typeRef, len(names))
			for i, n := range names {
				types[i] = typeRef{inner: schema.Types[n]}
			}
			return schemaSource{schema: schema, types: types}
		}),
	}
	query.Fields["__type"] = &graphql.Field{
		Name: "__type",
		Type: typeObject,
		Args: map[string]*graphql.InputValueDefinition{
			"name": {Name: "name", Type: graphql.NewNonNull(graphql.String)},
		},
		ArgOrder: []string{"name"},
		Resolve: resolve(func(p graphql.ResolveParams) interface{} {
			name, _ := p.Args["name"].(string)
			t, ok := schema.Types[name]
			if !ok {
				return nil
			}
			return typeRef{inner: t}
		}),
	}
	query.FieldOrder = append(query.FieldOrder, "__schema", "__type")
}
