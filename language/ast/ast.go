// Package ast defines the immutable tree produced by language/parser: every
// GraphQL grammar production, executable and SDL, as a plain struct. Nodes
// never carry a parent pointer (spec.md §3) and are never mutated after
// parsing; the parser's constructors are the only place node values are
// assembled.
package ast

import "github.com/appointy/gqlcore/gqlerrors"

// Node is implemented by every concrete AST node.
type Node interface {
	Location() gqlerrors.SourceLocation
}

// Selection is implemented by Field, FragmentSpread and InlineFragment —
// the three things that can appear inside a SelectionSet (teacher's
// graphql.Selection/FragmentSpread pair generalized into this trio).
type Selection interface {
	Node
	isSelection()
}

// Value is implemented by every value-node kind (literal or variable
// reference) appearing in an argument, a default value or an input object
// field.
type Value interface {
	Node
	isValue()
}

// TypeNode is implemented by NamedType, ListType and NonNullType — the
// syntactic (unresolved) type references that appear in variable
// definitions, argument/field/input-field type positions and SDL
// definitions, before the schema builder resolves them to a graphql.Type.
type TypeNode interface {
	Node
	isTypeNode()
}

// Definition is implemented by every top-level document definition:
// executable (OperationDefinition, FragmentDefinition) and SDL (Schema*,
// *TypeDefinition, *TypeExtension, DirectiveDefinition).
type Definition interface {
	Node
	isDefinition()
}

// Document is the root node: an ordered list of definitions. A document may
// mix executable and SDL definitions only when the parser was invoked with
// allowTypeSystem=true.
type Document struct {
	Loc         gqlerrors.SourceLocation
	Definitions []Definition
}

func (d *Document) Location() gqlerrors.SourceLocation { return d.Loc }

// OperationType is query, mutation or subscription.
type OperationType string

const (
	OperationQuery        OperationType = "query"
	OperationMutation     OperationType = "mutation"
	OperationSubscription OperationType = "subscription"
)

// OperationDefinition is `query Name($v: T) @dir { ... }` (the Name,
// VariableDefinitions and Directives are all optional for the shorthand
// `{ field }` form).
type OperationDefinition struct {
	Loc                 gqlerrors.SourceLocation
	Operation           OperationType
	Name                string
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
}

func (o *OperationDefinition) Location() gqlerrors.SourceLocation { return o.Loc }
func (o *OperationDefinition) isDefinition()                      {}

// VariableDefinition is `$name: Type = defaultValue`.
type VariableDefinition struct {
	Loc          gqlerrors.SourceLocation
	Variable     *Variable
	Type         TypeNode
	DefaultValue Value // nil if absent
	HasDefault   bool
	Directives   []*Directive
}

func (v *VariableDefinition) Location() gqlerrors.SourceLocation { return v.Loc }

// SelectionSet is a braced group of selections.
type SelectionSet struct {
	Loc        gqlerrors.SourceLocation
	Selections []Selection
}

func (s *SelectionSet) Location() gqlerrors.SourceLocation { return s.Loc }

// Field is `alias: name(args) directives { selectionSet }`.
type Field struct {
	Loc          gqlerrors.SourceLocation
	Alias        string // "" if no alias was written
	Name         string
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet // nil for leaf fields
}

func (f *Field) Location() gqlerrors.SourceLocation { return f.Loc }
func (f *Field) isSelection()                       {}

// ResponseKey is the alias if present, else the name (spec.md glossary).
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FragmentSpread is `...Name directives`.
type FragmentSpread struct {
	Loc        gqlerrors.SourceLocation
	Name       string
	Directives []*Directive
}

func (f *FragmentSpread) Location() gqlerrors.SourceLocation { return f.Loc }
func (f *FragmentSpread) isSelection()                       {}

// InlineFragment is `... on Type directives { selectionSet }`. TypeCondition
// is nil when the fragment has no `on Type` clause.
type InlineFragment struct {
	Loc           gqlerrors.SourceLocation
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

func (f *InlineFragment) Location() gqlerrors.SourceLocation { return f.Loc }
func (f *InlineFragment) isSelection()                       {}

// FragmentDefinition is `fragment Name on Type directives { selectionSet }`.
type FragmentDefinition struct {
	Loc           gqlerrors.SourceLocation
	Name          string
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

func (f *FragmentDefinition) Location() gqlerrors.SourceLocation { return f.Loc }
func (f *FragmentDefinition) isDefinition()                      {}

// Argument is `name: value`, used both for field arguments and directive
// arguments.
type Argument struct {
	Loc   gqlerrors.SourceLocation
	Name  string
	Value Value
}

func (a *Argument) Location() gqlerrors.SourceLocation { return a.Loc }

// Directive is `@name(args)`.
type Directive struct {
	Loc       gqlerrors.SourceLocation
	Name      string
	Arguments []*Argument
}

func (d *Directive) Location() gqlerrors.SourceLocation { return d.Loc }

// ---- Value nodes ----

type IntValue struct {
	Loc   gqlerrors.SourceLocation
	Value string
}

func (v *IntValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *IntValue) isValue()                           {}

type FloatValue struct {
	Loc   gqlerrors.SourceLocation
	Value string
}

func (v *FloatValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *FloatValue) isValue()                           {}

type StringValue struct {
	Loc   gqlerrors.SourceLocation
	Value string
	Block bool
}

func (v *StringValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *StringValue) isValue()                           {}

type BooleanValue struct {
	Loc   gqlerrors.SourceLocation
	Value bool
}

func (v *BooleanValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *BooleanValue) isValue()                           {}

type NullValue struct {
	Loc gqlerrors.SourceLocation
}

func (v *NullValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *NullValue) isValue()                           {}

type EnumValue struct {
	Loc   gqlerrors.SourceLocation
	Value string
}

func (v *EnumValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *EnumValue) isValue()                           {}

type ListValue struct {
	Loc    gqlerrors.SourceLocation
	Values []Value
}

func (v *ListValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *ListValue) isValue()                           {}

type ObjectField struct {
	Loc   gqlerrors.SourceLocation
	Name  string
	Value Value
}

func (f *ObjectField) Location() gqlerrors.SourceLocation { return f.Loc }

type ObjectValue struct {
	Loc    gqlerrors.SourceLocation
	Fields []*ObjectField
}

func (v *ObjectValue) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *ObjectValue) isValue()                           {}

// Variable is `$name`, a value node that must be resolved against the
// request's coerced variables before it has a concrete value.
type Variable struct {
	Loc  gqlerrors.SourceLocation
	Name string
}

func (v *Variable) Location() gqlerrors.SourceLocation { return v.Loc }
func (v *Variable) isValue()                           {}

// ---- Type nodes ----

type NamedType struct {
	Loc  gqlerrors.SourceLocation
	Name string
}

func (t *NamedType) Location() gqlerrors.SourceLocation { return t.Loc }
func (t *NamedType) isTypeNode()                        {}
func (t *NamedType) String() string                     { return t.Name }

type ListType struct {
	Loc  gqlerrors.SourceLocation
	Type TypeNode
}

func (t *ListType) Location() gqlerrors.SourceLocation { return t.Loc }
func (t *ListType) isTypeNode()                        {}
func (t *ListType) String() string                     { return "[" + typeString(t.Type) + "]" }

type NonNullType struct {
	Loc  gqlerrors.SourceLocation
	Type TypeNode // NamedType or ListType; never another NonNullType
}

func (t *NonNullType) Location() gqlerrors.SourceLocation { return t.Loc }
func (t *NonNullType) isTypeNode()                        {}
func (t *NonNullType) String() string                     { return typeString(t.Type) + "!" }

func typeString(t TypeNode) string {
	switch t := t.(type) {
	case *NamedType:
		return t.String()
	case *ListType:
		return t.String()
	case *NonNullType:
		return t.String()
	default:
		return "?"
	}
}
