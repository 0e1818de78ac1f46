package schemabuilder

import (
	"reflect"

	"github.com/appointy/gqlcore/graphql"
)

// Schema is the code-first builder: register Go types as GraphQL
// objects/inputs/enums via Query()/Mutation()/Subscription()/Object()/
// InputObject()/Enum(), then call Build to produce a *graphql.Schema.
// Adapted from teacher's schemabuilder.Schema (absent from the retrieved
// slice as its own file, but implied throughout types.go/input_object.go's
// sb *schemaBuilder receiver) into an explicit, exported type.
type Schema struct {
	objects      map[reflect.Type]*Object
	inputObjects map[reflect.Type]*InputObject
	enumMappings map[reflect.Type]*EnumMapping

	query        *Object
	mutation     *Object
	subscription *Object
}

// NewSchema creates an empty code-first builder.
func NewSchema() *Schema {
	return &Schema{
		objects:      map[reflect.Type]*Object{},
		inputObjects: map[reflect.Type]*InputObject{},
		enumMappings: map[reflect.Type]*EnumMapping{},
	}
}

type query struct{}
type mutation struct{}
type subscription struct{}

// Query returns the root Query object, creating it on first call.
func (s *Schema) Query() *Object {
	if s.query == nil {
		s.query = s.Object("Query", query{})
	}
	return s.query
}

// Mutation returns the root Mutation object, creating it on first call.
func (s *Schema) Mutation() *Object {
	if s.mutation == nil {
		s.mutation = s.Object("Mutation", mutation{})
	}
	return s.mutation
}

// Subscription returns the root Subscription object, creating it on first call.
func (s *Schema) Subscription() *Object {
	if s.subscription == nil {
		s.subscription = s.Object("Subscription", subscription{})
	}
	return s.subscription
}

// Object registers typ (a struct, or a pointer to one) as a GraphQL Object
// named name.
func (s *Schema) Object(name string, typ interface{}, desc ...string) *Object {
	t := reflect.TypeOf(typ)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if o, ok := s.objects[t]; ok {
		return o
	}
	o := &Object{Name: name, Type: typ}
	if len(desc) > 0 {
		o.Description = desc[0]
	}
	s.objects[t] = o
	return o
}

// InputObject registers typ as a GraphQL input object named name.
func (s *Schema) InputObject(name string, typ interface{}, desc ...string) *InputObject {
	t := reflect.TypeOf(typ)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if io, ok := s.inputObjects[t]; ok {
		return io
	}
	io := &InputObject{Name: name, Type: typ}
	if len(desc) > 0 {
		io.Description = desc[0]
	}
	s.inputObjects[t] = io
	return io
}

// MustBuild calls Build and panics on error; for callers (tests, server
// startup) where an invalid schema is a programmer error, not a runtime one.
func (s *Schema) MustBuild() *graphql.Schema {
	gs, err := s.Build()
	if err != nil {
		panic(err)
	}
	return gs
}

// Enum registers typ as a GraphQL enum backed by mapping.
func (s *Schema) Enum(typ interface{}, mapping *EnumMapping) {
	t := reflect.TypeOf(typ)
	if mapping.ReverseMap == nil {
		mapping.ReverseMap = map[interface{}]string{}
		for k, v := range mapping.Map {
			mapping.ReverseMap[v] = k
		}
	}
	s.enumMappings[t] = mapping
}
