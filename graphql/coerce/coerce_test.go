package coerce_test

import (
	"testing"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/graphql/coerce"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/stretchr/testify/require"
)

func namedType(t graphql.NamedType) *ast.NamedType { return &ast.NamedType{Name: t.TypeName()} }

func TestCoerceVariableValuesAppliesDefault(t *testing.T) {
	schema := graphql.NewSchema()
	defs := []*ast.VariableDefinition{
		{
			Variable:     &ast.Variable{Name: "limit"},
			Type:         &ast.NonNullType{Type: namedType(graphql.Int)},
			DefaultValue: &ast.IntValue{Value: "10"},
			HasDefault:   true,
		},
	}
	out, errs := coerce.CoerceVariableValues(schema, defs, map[string]interface{}{})
	require.Empty(t, errs)
	require.Equal(t, int64(10), out["limit"])
}

func TestCoerceVariableValuesRejectsNullForNonNull(t *testing.T) {
	schema := graphql.NewSchema()
	defs := []*ast.VariableDefinition{
		{Variable: &ast.Variable{Name: "id"}, Type: &ast.NonNullType{Type: namedType(graphql.ID)}},
	}
	_, errs := coerce.CoerceVariableValues(schema, defs, map[string]interface{}{"id": nil})
	require.True(t, errs.HasErrors())
}

func TestCoerceVariableValuesWrapsBareValueIntoList(t *testing.T) {
	schema := graphql.NewSchema()
	defs := []*ast.VariableDefinition{
		{Variable: &ast.Variable{Name: "tags"}, Type: &ast.ListType{Type: namedType(graphql.String)}},
	}
	out, errs := coerce.CoerceVariableValues(schema, defs, map[string]interface{}{"tags": "urgent"})
	require.Empty(t, errs)
	require.Equal(t, []coerce.CoercedValue{"urgent"}, out["tags"])
}

func TestCoerceArgumentValuesSubstitutesVariable(t *testing.T) {
	argDefs := map[string]*graphql.InputValueDefinition{
		"count": {Name: "count", Type: graphql.NewNonNull(graphql.Int)},
	}
	argNodes := []*ast.Argument{
		{Name: "count", Value: &ast.Variable{Name: "n"}},
	}
	out, errs := coerce.CoerceArgumentValues(argDefs, argNodes, map[string]coerce.CoercedValue{"n": int64(5)})
	require.Empty(t, errs)
	require.Equal(t, int64(5), out["count"])
}

func TestCoerceEnumLiteralUnknownValue(t *testing.T) {
	enum := &graphql.Enum{Name: "Color", Map: map[string]interface{}{"RED": 0}}
	_, err := coerce.CoerceEnumLiteral(enum, "BLUE")
	require.Error(t, err)
}
