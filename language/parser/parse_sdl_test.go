package parser

import (
	"testing"

	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/stretchr/testify/require"
)

func parseSDL(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, err := ParseDocument(gqlerrors.Source{Name: "schema", Body: body}, true)
	require.NoError(t, err)
	return doc
}

func TestParseSchemaDefinition(t *testing.T) {
	doc := parseSDL(t, `schema { query: Query mutation: Mutation }`)
	def := doc.Definitions[0].(*ast.SchemaDefinition)
	require.Len(t, def.OperationTypeDefs, 2)
	require.Equal(t, ast.OperationQuery, def.OperationTypeDefs[0].Operation)
	require.Equal(t, "Query", def.OperationTypeDefs[0].Type.Name)
}

func TestParseScalarTypeDefinition(t *testing.T) {
	doc := parseSDL(t, `"A date-time" scalar DateTime @specifiedBy(url: "https://x")`)
	def := doc.Definitions[0].(*ast.ScalarTypeDefinition)
	require.Equal(t, "DateTime", def.Name)
	require.NotNil(t, def.Description)
	require.Equal(t, "A date-time", def.Description.Value)
	require.Len(t, def.Directives, 1)
}

func TestParseObjectTypeDefinitionWithInterfaces(t *testing.T) {
	doc := parseSDL(t, `
	type Droid implements Character & Node {
		id: ID!
		name: String
		friends(first: Int = 10): [Character]
	}`)
	def := doc.Definitions[0].(*ast.ObjectTypeDefinition)
	require.Equal(t, "Droid", def.Name)
	require.Len(t, def.Interfaces, 2)
	require.Equal(t, "Character", def.Interfaces[0].Name)
	require.Equal(t, "Node", def.Interfaces[1].Name)
	require.Len(t, def.Fields, 3)

	idField := def.Fields[0]
	require.Equal(t, "id", idField.Name)
	require.IsType(t, &ast.NonNullType{}, idField.Type)

	friends := def.Fields[2]
	require.Len(t, friends.Arguments, 1)
	require.True(t, friends.Arguments[0].HasDefault)
	require.IsType(t, &ast.ListType{}, friends.Type)
}

func TestParseInterfaceTypeDefinition(t *testing.T) {
	doc := parseSDL(t, `interface Character { id: ID! name: String }`)
	def := doc.Definitions[0].(*ast.InterfaceTypeDefinition)
	require.Equal(t, "Character", def.Name)
	require.Len(t, def.Fields, 2)
}

func TestParseUnionTypeDefinition(t *testing.T) {
	doc := parseSDL(t, `union SearchResult = Human | Droid | Starship`)
	def := doc.Definitions[0].(*ast.UnionTypeDefinition)
	require.Len(t, def.Types, 3)
	require.Equal(t, "Starship", def.Types[2].Name)
}

func TestParseEnumTypeDefinition(t *testing.T) {
	doc := parseSDL(t, `enum Episode { NEWHOPE EMPIRE @deprecated JEDI }`)
	def := doc.Definitions[0].(*ast.EnumTypeDefinition)
	require.Len(t, def.Values, 3)
	require.Equal(t, "EMPIRE", def.Values[1].Name)
	require.Len(t, def.Values[1].Directives, 1)
}

func TestParseInputObjectTypeDefinition(t *testing.T) {
	doc := parseSDL(t, `input ReviewInput { stars: Int! commentary: String = "" }`)
	def := doc.Definitions[0].(*ast.InputObjectTypeDefinition)
	require.Len(t, def.Fields, 2)
	require.True(t, def.Fields[1].HasDefault)
}

func TestParseDirectiveDefinition(t *testing.T) {
	doc := parseSDL(t, `directive @auth(role: String!) repeatable on FIELD_DEFINITION | OBJECT`)
	def := doc.Definitions[0].(*ast.DirectiveDefinition)
	require.Equal(t, "auth", def.Name)
	require.True(t, def.Repeatable)
	require.Equal(t, []string{"FIELD_DEFINITION", "OBJECT"}, def.Locations)
}

func TestParseTypeExtension(t *testing.T) {
	doc := parseSDL(t, `extend type Droid { primaryFunction: String }`)
	def := doc.Definitions[0].(*ast.ObjectTypeExtension)
	require.Equal(t, "Droid", def.Name)
	require.Len(t, def.Fields, 1)
}

func TestParseSchemaExtensionWithoutBody(t *testing.T) {
	doc := parseSDL(t, `extend schema @addedDirective`)
	def := doc.Definitions[0].(*ast.SchemaDefinition)
	require.Len(t, def.Directives, 1)
	require.Empty(t, def.OperationTypeDefs)
}

func TestParseMixedExecutableAndSDLDocument(t *testing.T) {
	doc := parseSDL(t, `
	scalar DateTime
	type Query { now: DateTime }
	{ now }
	`)
	require.Len(t, doc.Definitions, 3)
	require.IsType(t, &ast.ScalarTypeDefinition{}, doc.Definitions[0])
	require.IsType(t, &ast.ObjectTypeDefinition{}, doc.Definitions[1])
	require.IsType(t, &ast.OperationDefinition{}, doc.Definitions[2])
}
