package parser

import (
	"testing"

	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, body string, allowTypeSystem bool) *ast.Document {
	t.Helper()
	doc, err := ParseDocument(gqlerrors.Source{Name: "test", Body: body}, allowTypeSystem)
	require.NoError(t, err)
	return doc
}

func TestParseShorthandQuery(t *testing.T) {
	doc := parse(t, "{ hero { name } }", false)
	require.Len(t, doc.Definitions, 1)
	op, ok := doc.Definitions[0].(*ast.OperationDefinition)
	require.True(t, ok)
	require.Equal(t, ast.OperationQuery, op.Operation)
	require.Len(t, op.SelectionSet.Selections, 1)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	require.Equal(t, "hero", field.Name)
}

func TestParseNamedOperationWithVariables(t *testing.T) {
	doc := parse(t, `query Hero($ep: Episode = JEDI) { hero(episode: $ep) { name } }`, false)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	require.Equal(t, "Hero", op.Name)
	require.Len(t, op.VariableDefinitions, 1)
	vd := op.VariableDefinitions[0]
	require.Equal(t, "ep", vd.Variable.Name)
	require.True(t, vd.HasDefault)
	require.Equal(t, "JEDI", vd.DefaultValue.(*ast.EnumValue).Value)
}

func TestParseAliasAndArguments(t *testing.T) {
	doc := parse(t, `{ luke: hero(id: 1000) { name } }`, false)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	require.Equal(t, "luke", field.Alias)
	require.Equal(t, "hero", field.Name)
	require.Equal(t, "luke", field.ResponseKey())
	require.Len(t, field.Arguments, 1)
	require.Equal(t, "id", field.Arguments[0].Name)
}

func TestParseFragmentSpreadAndInline(t *testing.T) {
	doc := parse(t, `{
		hero {
			...basic
			... on Droid { primaryFunction }
			... { name }
		}
	}
	fragment basic on Character { name }`, false)
	require.Len(t, doc.Definitions, 2)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	hero := op.SelectionSet.Selections[0].(*ast.Field)
	require.Len(t, hero.SelectionSet.Selections, 3)

	spread, ok := hero.SelectionSet.Selections[0].(*ast.FragmentSpread)
	require.True(t, ok)
	require.Equal(t, "basic", spread.Name)

	inline, ok := hero.SelectionSet.Selections[1].(*ast.InlineFragment)
	require.True(t, ok)
	require.Equal(t, "Droid", inline.TypeCondition.Name)

	bare, ok := hero.SelectionSet.Selections[2].(*ast.InlineFragment)
	require.True(t, ok)
	require.Nil(t, bare.TypeCondition)

	frag := doc.Definitions[1].(*ast.FragmentDefinition)
	require.Equal(t, "basic", frag.Name)
	require.Equal(t, "Character", frag.TypeCondition.Name)
}

func TestParseOnAsOrdinaryFieldName(t *testing.T) {
	doc := parse(t, `{ on { on } }`, false)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	require.Equal(t, "on", field.Name)
}

func TestParseRejectsFragmentNamedOn(t *testing.T) {
	_, err := ParseDocument(gqlerrors.Source{Name: "test", Body: `fragment on on Foo { x }`}, false)
	require.Error(t, err)
}

func TestParseRejectsKeywordVariableName(t *testing.T) {
	_, err := ParseDocument(gqlerrors.Source{Name: "test", Body: `query($true: Int) { x(id: $true) }`}, false)
	require.Error(t, err)
}

func TestParseDirectives(t *testing.T) {
	doc := parse(t, `{ field @include(if: true) @skip(if: false) }`, false)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	require.Len(t, field.Directives, 2)
	require.Equal(t, "include", field.Directives[0].Name)
	require.Equal(t, "skip", field.Directives[1].Name)
}

func TestParseValues(t *testing.T) {
	doc := parse(t, `{ f(a: 1, b: 1.5, c: "s", d: true, e: null, g: FOO, h: [1,2], i: {x: 1}) }`, false)
	op := doc.Definitions[0].(*ast.OperationDefinition)
	field := op.SelectionSet.Selections[0].(*ast.Field)
	args := map[string]ast.Value{}
	for _, a := range field.Arguments {
		args[a.Name] = a.Value
	}
	require.IsType(t, &ast.IntValue{}, args["a"])
	require.IsType(t, &ast.FloatValue{}, args["b"])
	require.IsType(t, &ast.StringValue{}, args["c"])
	require.IsType(t, &ast.BooleanValue{}, args["d"])
	require.IsType(t, &ast.NullValue{}, args["e"])
	require.IsType(t, &ast.EnumValue{}, args["g"])
	require.IsType(t, &ast.ListValue{}, args["h"])
	require.IsType(t, &ast.ObjectValue{}, args["i"])
}

func TestParseRejectsDuplicateObjectField(t *testing.T) {
	_, err := ParseDocument(gqlerrors.Source{Name: "test", Body: `{ f(a: {x: 1, x: 2}) }`}, false)
	require.Error(t, err)
}

func TestParseRejectsTypeSystemInExecutableOnlyMode(t *testing.T) {
	_, err := ParseDocument(gqlerrors.Source{Name: "test", Body: `type Foo { x: Int }`}, false)
	require.Error(t, err)
}

func TestParseValueEntryPoint(t *testing.T) {
	v, err := ParseValue(gqlerrors.Source{Name: "test", Body: `{a: [1, 2], b: "s"}`})
	require.NoError(t, err)
	obj, ok := v.(*ast.ObjectValue)
	require.True(t, ok)
	require.Len(t, obj.Fields, 2)
}
