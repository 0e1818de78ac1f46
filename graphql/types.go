// Package graphql is the type system: Scalar, Enum, Object, Interface,
// Union, InputObject, List and NonNull wrapping types, plus Schema as the
// owner of every named type. Grounded directly on teacher's graphql/types.go
// (Scalar/Enum/Object/List/InputObject/NonNull/Union/Interface), generalized
// with LazyRef forward references, a Directive type distinct from the AST
// directive node, and Schema.Validate().
package graphql

import "fmt"

// Type is implemented by every value of the type system. isType() tags the
// known set so arbitrary interface{} values can't satisfy it, mirroring
// teacher's Scalar/Object/List/NonNull tagging idiom.
type Type interface {
	String() string
	isType()
}

// NamedType is implemented by every Type that owns a schema-unique name:
// Scalar, Enum, Object, Interface, Union, InputObject. List, NonNull and
// LazyRef are wrapping/forward-reference types and are never registered in
// Schema.Types directly.
type NamedType interface {
	Type
	TypeName() string
}

// Scalar is a leaf value. SpecifiedByURL carries the @specifiedBy directive
// URL (empty for built-ins and customs that don't set one).
type Scalar struct {
	Name           string
	Description    string
	SpecifiedByURL string

	// Serialize converts a resolved Go value into a CoercedValue suitable for
	// the response. Coerce converts an input literal/variable value into the
	// scalar's internal representation. Both default to identity when nil.
	Serialize func(interface{}) (interface{}, error)
	Coerce    func(interface{}) (interface{}, error)
}

func (s *Scalar) isType()          {}
func (s *Scalar) String() string   { return s.Name }
func (s *Scalar) TypeName() string { return s.Name }

// Enum is a leaf value restricted to a fixed set of names, each mapped to an
// internal Go value (teacher's Enum.ReverseMap idiom retained verbatim).
type Enum struct {
	Name        string
	Description string
	Values      []string
	ValueDescriptions map[string]string
	DeprecatedValues  map[string]string // value name -> deprecation reason
	Map        map[string]interface{}
	ReverseMap map[interface{}]string
}

func (e *Enum) isType()          {}
func (e *Enum) String() string   { return e.Name }
func (e *Enum) TypeName() string { return e.Name }

// Object is a composite output type with named, typed fields.
type Object struct {
	Name        string
	Description string
	Fields      map[string]*Field
	// FieldOrder preserves declaration order for introspection/SDL printing
	// (map iteration order is unspecified in Go).
	FieldOrder []string
	Interfaces map[string]*Interface
	// IsTypeOf distinguishes this object among a Union/Interface's possible
	// types when a resolved Go value doesn't otherwise carry its type name.
	IsTypeOf func(value interface{}) bool
}

func (o *Object) isType()          {}
func (o *Object) String() string   { return o.Name }
func (o *Object) TypeName() string { return o.Name }

// List is a collection of another type.
type List struct {
	Type Type
}

func (l *List) isType()        {}
func (l *List) String() string { return fmt.Sprintf("[%s]", l.Type) }

// NonNull forbids its wrapped type from resolving to null.
type NonNull struct {
	Type Type
}

func (n *NonNull) isType()        {}
func (n *NonNull) String() string { return fmt.Sprintf("%s!", n.Type) }

// NewNonNull wraps t in a NonNull, panicking if t is already a *NonNull:
// NonNull(NonNull(_)) can only arise from a bug in schema-construction code,
// never from user input, so it panics like teacher's "duplicate method"
// programmer-error idiom instead of returning an error.
func NewNonNull(t Type) *NonNull {
	if _, ok := t.(*NonNull); ok {
		panic("graphql: NonNull may not wrap another NonNull")
	}
	return &NonNull{Type: t}
}

// Union is a choice between several Object types. ResolveType identifies
// which member Object a resolved Go value belongs to; required for the
// executor to complete a union-typed selection (spec.md §4.J "Completion").
type Union struct {
	Name        string
	Description string
	Types       map[string]*Object
	ResolveType func(value interface{}) (*Object, error)
}

func (u *Union) isType()          {}
func (u *Union) String() string   { return u.Name }
func (u *Union) TypeName() string { return u.Name }

// Interface declares a set of fields that implementing Objects must provide.
type Interface struct {
	Name        string
	Description string
	Fields      map[string]*Field
	FieldOrder  []string
	// Types is populated from Schema.PossibleTypes during Validate, mirroring
	// teacher's Interface.Types "for introspection only" comment.
	Types map[string]*Object
	// ResolveType identifies the concrete Object implementing this interface
	// for a resolved Go value; required for abstract-type completion.
	ResolveType func(value interface{}) (*Object, error)
}

func (i *Interface) isType()          {}
func (i *Interface) String() string   { return i.Name }
func (i *Interface) TypeName() string { return i.Name }

// InputObject is a composite input type: every field must itself be an
// input type (Scalar, Enum or InputObject, optionally List/NonNull-wrapped).
type InputObject struct {
	Name        string
	Description string
	Fields      map[string]*InputValueDefinition
	FieldOrder  []string
	// OneOf marks an @oneOf input object (Oct 2021+ spec): exactly one field
	// must be non-null in any input value of this type.
	OneOf bool
}

func (io *InputObject) isType()          {}
func (io *InputObject) String() string   { return io.Name }
func (io *InputObject) TypeName() string { return io.Name }

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*List)(nil)
	_ Type = (*NonNull)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*InputObject)(nil)
	_ Type = (*LazyRef)(nil)
)

// NamedOf returns the innermost NamedType of t, unwrapping any List/NonNull/
// LazyRef layers, or nil if t is nil.
func NamedOf(t Type) NamedType {
	for {
		switch v := t.(type) {
		case nil:
			return nil
		case *List:
			t = v.Type
		case *NonNull:
			t = v.Type
		case *LazyRef:
			resolved, err := v.Resolved()
			if err != nil {
				return nil
			}
			t = resolved
		case NamedType:
			return v
		default:
			return nil
		}
	}
}

// IsNonNull reports whether t is a NonNull (without unwrapping LazyRef — a
// lazy reference to a NonNull type reports false).
func IsNonNull(t Type) bool {
	_, ok := t.(*NonNull)
	return ok
}

// IsInputType reports whether t is usable in an input position: Scalar,
// Enum, InputObject, or List/NonNull wrapping one of those.
func IsInputType(t Type) bool {
	switch NamedOf(t).(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	default:
		return false
	}
}

// IsOutputType reports whether t is usable in an output (field) position:
// Scalar, Enum, Object, Interface, Union, or List/NonNull wrapping one.
func IsOutputType(t Type) bool {
	switch NamedOf(t).(type) {
	case *Scalar, *Enum, *Object, *Interface, *Union:
		return true
	default:
		return false
	}
}

// IsCompositeType reports whether t (after unwrapping) selects fields:
// Object, Interface or Union.
func IsCompositeType(t Type) bool {
	switch NamedOf(t).(type) {
	case *Object, *Interface, *Union:
		return true
	default:
		return false
	}
}

func IsLeafType(t Type) bool {
	switch NamedOf(t).(type) {
	case *Scalar, *Enum:
		return true
	default:
		return false
	}
}

// Unwrap resolves LazyRef layers but does NOT strip List/NonNull — used when
// callers care about nullability/list-ness and only need LazyRefs resolved.
func Unwrap(t Type) Type {
	if ref, ok := t.(*LazyRef); ok {
		resolved, err := ref.Resolved()
		if err != nil {
			return nil
		}
		return Unwrap(resolved)
	}
	return t
}
