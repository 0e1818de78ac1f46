package introspection_test

import (
	"testing"

	"github.com/appointy/gqlcore/graphql/executor"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/introspection"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/parser"
	"github.com/appointy/gqlcore/schemabuilder"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name string
}

func buildSchema(t *testing.T) *schemabuilder.Schema {
	t.Helper()
	s := schemabuilder.NewSchema()
	obj := s.Query()
	obj.FieldFunc("widget", func() widget { return widget{Name: "gear"} })

	w := s.Object("Widget", widget{})
	w.FieldFunc("name", func(in widget) string { return in.Name })
	return s
}

func mustParse(t *testing.T, query string) *ast.Document {
	t.Helper()
	doc, err := parser.ParseDocument(gqlerrors.Source{Name: "test", Body: query}, false)
	require.NoError(t, err)
	return doc
}

// MustBuild already wires introspection in before its own Validate() call
// (see schemabuilder.Schema.Build), so these two exercise that wiring
// end to end rather than calling Inject a second time.

func TestInjectAddsSchemaField(t *testing.T) {
	schema := buildSchema(t).MustBuild()

	doc := mustParse(t, `{ __schema { queryType { name } types { name kind } } }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.Empty(t, result.Errors)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	schemaData, ok := data["__schema"].(map[string]interface{})
	require.True(t, ok)
	queryType, ok := schemaData["queryType"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Query", queryType["name"])
}

func TestInjectAddsTypeField(t *testing.T) {
	schema := buildSchema(t).MustBuild()

	doc := mustParse(t, `{ __type(name: "Widget") { name kind fields { name } } }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.Empty(t, result.Errors)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	typeData, ok := data["__type"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Widget", typeData["name"])
	require.Equal(t, string(introspection.ObjectKind), typeData["kind"])
}

// TestBuildInjectsIntrospectionBeforeValidating confirms Build's single
// Validate() call (memoized from then on) already sees the injected
// __schema/__type fields, rather than checking a stale pre-introspection
// schema that a later manual Validate() call would keep returning.
func TestBuildInjectsIntrospectionBeforeValidating(t *testing.T) {
	s := buildSchema(t)
	gs, err := s.Build()
	require.NoError(t, err)

	require.Empty(t, gs.Validate())
	require.Contains(t, gs.Query.Fields, "__schema")
	require.Contains(t, gs.Query.Fields, "__type")
}
