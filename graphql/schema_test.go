package graphql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLazyRefCyclicResolution(t *testing.T) {
	a := &Object{Name: "A", Fields: map[string]*Field{}}
	b := &Object{Name: "B", Fields: map[string]*Field{}}
	refB := NewLazyRef("B")
	refA := NewLazyRef("A")
	refB.Bind(func() (Type, error) { return b, nil })
	refA.Bind(func() (Type, error) { return a, nil })
	a.Fields["b"] = &Field{Name: "b", Type: refB}
	b.Fields["a"] = &Field{Name: "a", Type: refA}

	resolved, err := refB.Resolved()
	require.NoError(t, err)
	require.Same(t, b, resolved)
	require.Equal(t, "B", refB.String())
}

func TestLazyRefUnboundErrors(t *testing.T) {
	ref := NewLazyRef("Missing")
	_, err := ref.Resolved()
	require.Error(t, err)
}

func TestNewNonNullRejectsDoubleWrap(t *testing.T) {
	require.Panics(t, func() {
		NewNonNull(NewNonNull(String))
	})
}

func TestSchemaValidateDetectsUnresolvedLazyRef(t *testing.T) {
	s := NewSchema()
	obj := &Object{Name: "Query", Fields: map[string]*Field{
		"broken": {Name: "broken", Type: NewLazyRef("Ghost")},
	}}
	s.Query = obj
	s.Types["Query"] = obj

	errs := s.Validate()
	require.True(t, errs.HasErrors())
}

func TestSchemaValidateIsMemoized(t *testing.T) {
	s := NewSchema()
	obj := &Object{Name: "Query", Fields: map[string]*Field{
		"ok": {Name: "ok", Type: String},
	}}
	s.Query = obj
	s.Types["Query"] = obj

	first := s.Validate()
	second := s.Validate()
	require.Equal(t, len(first), len(second))
	require.False(t, first.HasErrors())
}

func TestSchemaValidateInterfaceImplementation(t *testing.T) {
	s := NewSchema()
	iface := &Interface{Name: "Node", Fields: map[string]*Field{
		"id": {Name: "id", Type: NewNonNull(ID)},
	}}
	good := &Object{
		Name:       "User",
		Fields:     map[string]*Field{"id": {Name: "id", Type: NewNonNull(ID)}},
		Interfaces: map[string]*Interface{"Node": iface},
	}
	bad := &Object{
		Name:       "Broken",
		Fields:     map[string]*Field{},
		Interfaces: map[string]*Interface{"Node": iface},
	}
	query := &Object{Name: "Query", Fields: map[string]*Field{"u": {Name: "u", Type: good}}}

	s.Query = query
	s.Types["Query"] = query
	s.Types["Node"] = iface
	s.Types["User"] = good
	s.Types["Broken"] = bad

	errs := s.Validate()
	require.True(t, errs.HasErrors())
	require.True(t, s.IsPossibleType("Node", good))
}

func TestSchemaValidateRejectsInputObjectAsOutputField(t *testing.T) {
	s := NewSchema()
	input := &InputObject{Name: "Foo", Fields: map[string]*InputValueDefinition{
		"x": {Name: "x", Type: Int},
	}}
	query := &Object{Name: "Query", Fields: map[string]*Field{
		"bar": {Name: "bar", Type: input},
	}}
	s.Query = query
	s.Types["Query"] = query
	s.Types["Foo"] = input

	errs := s.Validate()
	require.True(t, errs.HasErrors())
}

func TestSchemaValidateRejectsObjectAsInputField(t *testing.T) {
	s := NewSchema()
	obj := &Object{Name: "Foo", Fields: map[string]*Field{
		"x": {Name: "x", Type: Int},
	}}
	input := &InputObject{Name: "BadInput", Fields: map[string]*InputValueDefinition{
		"foo": {Name: "foo", Type: obj},
	}}
	query := &Object{Name: "Query", Fields: map[string]*Field{
		"ok": {Name: "ok", Type: String, Args: map[string]*InputValueDefinition{
			"in": {Name: "in", Type: input},
		}},
	}}
	s.Query = query
	s.Types["Query"] = query
	s.Types["Foo"] = obj
	s.Types["BadInput"] = input

	errs := s.Validate()
	require.True(t, errs.HasErrors())
}

func TestSchemaValidateRequiredFieldCycle(t *testing.T) {
	s := NewSchema()
	a := &InputObject{Name: "A", Fields: map[string]*InputValueDefinition{}}
	b := &InputObject{Name: "B", Fields: map[string]*InputValueDefinition{}}
	a.Fields["b"] = &InputValueDefinition{Name: "b", Type: NewNonNull(b)}
	b.Fields["a"] = &InputValueDefinition{Name: "a", Type: NewNonNull(a)}

	query := &Object{Name: "Query", Fields: map[string]*Field{"ok": {Name: "ok", Type: String}}}
	s.Query = query
	s.Types["Query"] = query
	s.Types["A"] = a
	s.Types["B"] = b

	errs := s.Validate()
	require.True(t, errs.HasErrors())
}
