package schemabuilder_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/schemabuilder"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type Droid struct {
	Name string
	Age  int32
}

func TestBuildSimpleQuery(t *testing.T) {
	s := schemabuilder.NewSchema()
	droid := s.Object("Droid", Droid{})
	droid.FieldFunc("name", func(ctx context.Context, d *Droid) string { return d.Name })
	droid.FieldFunc("age", func(d *Droid) int32 { return d.Age })

	s.Query().FieldFunc("droid", func() *Droid { return &Droid{Name: "R2-D2", Age: 33} })

	schema := s.MustBuild()
	require.NotNil(t, schema.Query)
	field, ok := schema.Query.Fields["droid"]
	require.True(t, ok)

	result, err := field.Resolve(graphql.ResolveParams{Context: context.Background()})
	require.NoError(t, err)
	d, ok := result.(*Droid)
	require.True(t, ok)
	require.Equal(t, "R2-D2", d.Name)
}

func TestBuildFieldWithArgs(t *testing.T) {
	s := schemabuilder.NewSchema()
	obj := s.Object("Calc", struct{}{})
	obj.FieldFunc("double", func(args struct{ X int32 }) int32 { return args.X * 2 })
	s.Query().FieldFunc("calc", func() *struct{} { return &struct{}{} })

	schema := s.MustBuild()
	calcObj := schema.Types["Calc"].(*graphql.Object)
	field := calcObj.Fields["double"]
	require.NotNil(t, field.Args["x"])

	out, err := field.Resolve(graphql.ResolveParams{
		Source: &struct{}{},
		Args:   map[string]interface{}{"x": float64(21)},
	})
	require.NoError(t, err)
	require.Equal(t, int32(42), out)
}

func TestBuildFieldReturningError(t *testing.T) {
	s := schemabuilder.NewSchema()
	obj := s.Object("Thing", struct{ ID string }{})
	obj.FieldFunc("boom", func(*struct{ ID string }) (string, error) {
		return "", errBoom
	})
	s.Query().FieldFunc("thing", func() *struct{ ID string } { return &struct{ ID string }{} })

	schema := s.MustBuild()
	thingObj := schema.Types["Thing"].(*graphql.Object)
	_, err := thingObj.Fields["boom"].Resolve(graphql.ResolveParams{Source: &struct{ ID string }{}})
	require.ErrorIs(t, err, errBoom)
}

type Vehicle struct {
	Model string
	Speed float64
}

func TestBuildListField(t *testing.T) {
	s := schemabuilder.NewSchema()
	v := s.Object("Vehicle", Vehicle{})
	v.FieldFunc("model", func(x *Vehicle) string { return x.Model })
	s.Query().FieldFunc("fleet", func() []*Vehicle {
		return []*Vehicle{{Model: "X-Wing"}, {Model: "TIE"}}
	})

	schema := s.MustBuild()
	listType, ok := schema.Query.Fields["fleet"].Type.(*graphql.NonNull)
	require.True(t, ok)
	_, ok = listType.Type.(*graphql.List)
	require.True(t, ok)
}

type Rank int32

const (
	RankPrivate Rank = iota
	RankSergeant
)

func TestBuildEnumField(t *testing.T) {
	s := schemabuilder.NewSchema()
	s.Enum(Rank(0), &schemabuilder.EnumMapping{
		Map: map[string]interface{}{
			"PRIVATE":  RankPrivate,
			"SERGEANT": RankSergeant,
		},
	})
	obj := s.Object("Soldier", struct{ Rank Rank }{})
	obj.FieldFunc("rank", func(x *struct{ Rank Rank }) Rank { return x.Rank })
	s.Query().FieldFunc("soldier", func() *struct{ Rank Rank } {
		return &struct{ Rank Rank }{Rank: RankSergeant}
	})

	schema := s.MustBuild()
	enumTyp := schema.Types["Rank"].(*graphql.Enum)
	require.Contains(t, enumTyp.Map, "SERGEANT")
}

type CreateDroidInput struct {
	Name string
	Age  int32
}

func TestBuildInputObjectRoundTrip(t *testing.T) {
	s := schemabuilder.NewSchema()
	s.InputObject("CreateDroidInput", CreateDroidInput{})
	obj := s.Object("Droid2", Droid{})
	obj.FieldFunc("name", func(d *Droid) string { return d.Name })

	s.Query().FieldFunc("droid", func() *Droid { return &Droid{} })
	s.Mutation().FieldFunc("createDroid", func(args struct{ Input CreateDroidInput }) *Droid {
		return &Droid{Name: args.Input.Name, Age: args.Input.Age}
	})

	schema := s.MustBuild()
	field := schema.Mutation.Fields["createDroid"]
	out, err := field.Resolve(graphql.ResolveParams{
		Args: map[string]interface{}{
			"input": map[string]interface{}{"name": "BB-8", "age": float64(5)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "BB-8", out.(*Droid).Name)
}

type Cat struct{ Lives int32 }
type Dog struct{ Breed string }

type Pet struct {
	schemabuilder.Union
	Cat *Cat
	Dog *Dog
}

func TestBuildUnionResolvesConcreteType(t *testing.T) {
	s := schemabuilder.NewSchema()
	s.Object("Cat", Cat{}).FieldFunc("lives", func(c *Cat) int32 { return c.Lives })
	s.Object("Dog", Dog{}).FieldFunc("breed", func(d *Dog) string { return d.Breed })
	s.Object("Pet", Pet{})
	s.Query().FieldFunc("pet", func() *Pet { return &Pet{Dog: &Dog{Breed: "Corgi"}} })

	schema := s.MustBuild()
	union := schema.Types["Pet"].(*graphql.Union)
	require.Len(t, union.Types, 2)

	resolved, err := union.ResolveType(&Pet{Dog: &Dog{Breed: "Corgi"}})
	require.NoError(t, err)
	require.Equal(t, "Dog", resolved.Name)
}

type Node struct {
	schemabuilder.Interface
}

type File struct {
	Node
	Path string
}

func TestBuildInterfaceImplementation(t *testing.T) {
	s := schemabuilder.NewSchema()
	s.Object("Node", Node{}).FieldFunc("id", func(*Node) string { return "node" })
	fileObj := s.Object("File", File{})
	fileObj.FieldFunc("id", func(f *File) string { return f.Path })
	fileObj.FieldFunc("path", func(f *File) string { return f.Path })
	fileObj.InterfaceList(Node{})
	s.Query().FieldFunc("file", func() *File { return &File{Path: "/tmp"} })

	schema := s.MustBuild()
	fileType := schema.Types["File"].(*graphql.Object)
	require.Contains(t, fileType.Interfaces, "Node")
	require.True(t, schema.IsPossibleType("Node", fileType))
}

func TestRegisterScalarRejectsPointerType(t *testing.T) {
	err := schemabuilder.RegisterScalar(reflect.TypeOf(&Droid{}), "Bad", nil)
	require.Error(t, err)
}
