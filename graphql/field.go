package graphql

import (
	"context"

	"github.com/appointy/gqlcore/gqlerrors"
)

// InputValueDefinition is a resolved (schema-level) argument or input-object
// field: name, type and an optional default value, the runtime counterpart
// of ast.InputValueDefinition once its TypeNode has been resolved to a
// graphql.Type.
type InputValueDefinition struct {
	Name              string
	Description       string
	Type              Type
	DefaultValue      interface{}
	HasDefault        bool
	IsDeprecated      bool
	DeprecationReason string
}

// ResolveInfo carries the request-scoped context a Resolver needs beyond its
// own arguments: which field of which parent type is being resolved, and
// where in the response tree that field lives.
type ResolveInfo struct {
	Schema     *Schema
	ParentType NamedType
	Field      *Field
	FieldName  string
	Path       []gqlerrors.PathSegment
}

// ResolveParams bundles everything passed to a Resolver.
type ResolveParams struct {
	Context context.Context
	Source  interface{}
	Args    map[string]interface{}
	Info    ResolveInfo
}

// Resolver computes the value of one field for one source object.
type Resolver func(params ResolveParams) (interface{}, error)

// Middleware wraps a Resolver to add cross-cutting behavior (logging,
// auth, tracing). graphql/executor builds the wrapping function once per
// request and applies it to a field's resolver at every field invocation,
// so the chain is walked again for each resolved field.
type Middleware func(next Resolver) Resolver

// Field knows how to compute one field of an Object or Interface type.
// Per the Oct 2021 spec, IsDeprecated/DeprecationReason surface
// @deprecated on FIELD_DEFINITION (and, via InputValueDefinition, on
// arguments), mirrored from teacher's graphql.Field deprecation fields.
type Field struct {
	Name        string
	Description string
	Type        Type
	Args        map[string]*InputValueDefinition
	ArgOrder    []string
	Resolve     Resolver

	IsDeprecated      bool
	DeprecationReason string
}

// Directive is the schema-level declaration of a directive (distinct from
// ast.Directive, which is one *use* of a directive at a particular
// location in a document).
type Directive struct {
	Name        string
	Description string
	Locations   []DirectiveLocation
	Args        map[string]*InputValueDefinition
	ArgOrder    []string
	Repeatable  bool
}

// DirectiveLocation names one place in a document or schema a directive may
// be applied, per the GraphQL spec's DirectiveLocation enum.
type DirectiveLocation string

const (
	LocQuery              DirectiveLocation = "QUERY"
	LocMutation           DirectiveLocation = "MUTATION"
	LocSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocField              DirectiveLocation = "FIELD"
	LocFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocVariableDefinition DirectiveLocation = "VARIABLE_DEFINITION"

	LocSchema               DirectiveLocation = "SCHEMA"
	LocScalar               DirectiveLocation = "SCALAR"
	LocObject               DirectiveLocation = "OBJECT"
	LocFieldDefinition      DirectiveLocation = "FIELD_DEFINITION"
	LocArgumentDefinition   DirectiveLocation = "ARGUMENT_DEFINITION"
	LocInterface            DirectiveLocation = "INTERFACE"
	LocUnion                DirectiveLocation = "UNION"
	LocEnum                 DirectiveLocation = "ENUM"
	LocEnumValue            DirectiveLocation = "ENUM_VALUE"
	LocInputObject          DirectiveLocation = "INPUT_OBJECT"
	LocInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// SkipDirective and IncludeDirective are always present on Schema.Directives
// (every spec-compliant schema carries them); DeprecatedDirective and
// SpecifiedByDirective round out the built-ins the executor and
// introspection both rely on.
var (
	SkipDirective = &Directive{
		Name:      "skip",
		Locations: []DirectiveLocation{LocField, LocFragmentSpread, LocInlineFragment},
		Args: map[string]*InputValueDefinition{
			"if": {Name: "if", Type: NewNonNull(Boolean)},
		},
		ArgOrder: []string{"if"},
	}
	IncludeDirective = &Directive{
		Name:      "include",
		Locations: []DirectiveLocation{LocField, LocFragmentSpread, LocInlineFragment},
		Args: map[string]*InputValueDefinition{
			"if": {Name: "if", Type: NewNonNull(Boolean)},
		},
		ArgOrder: []string{"if"},
	}
	DeprecatedDirective = &Directive{
		Name:      "deprecated",
		Locations: []DirectiveLocation{LocFieldDefinition, LocArgumentDefinition, LocInputFieldDefinition, LocEnumValue},
		Args: map[string]*InputValueDefinition{
			"reason": {Name: "reason", Type: String, DefaultValue: "No longer supported", HasDefault: true},
		},
		ArgOrder: []string{"reason"},
	}
	SpecifiedByDirective = &Directive{
		Name:      "specifiedBy",
		Locations: []DirectiveLocation{LocScalar},
		Args: map[string]*InputValueDefinition{
			"url": {Name: "url", Type: NewNonNull(String)},
		},
		ArgOrder: []string{"url"},
	}
	OneOfDirective = &Directive{
		Name:      "oneOf",
		Locations: []DirectiveLocation{LocInputObject},
	}
)
