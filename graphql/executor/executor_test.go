package executor_test

import (
	"context"
	"testing"

	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/graphql/executor"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/parser"
	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, query string) *ast.Document {
	t.Helper()
	doc, err := parser.ParseDocument(gqlerrors.Source{Name: "test", Body: query}, false)
	require.NoError(t, err)
	return doc
}

// requireDataEqual asserts want matches result.Data. A bare require.Equal
// diff on nested map[string]interface{} values is close to unreadable, so
// this reports a field-level diff and, on failure, a full dump of the
// result to see the errors alongside it.
func requireDataEqual(t *testing.T, want interface{}, result *executor.Result) {
	t.Helper()
	if diff := pretty.Compare(want, result.Data); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s\nfull result:\n%s", diff, spew.Sdump(result))
	}
}

func testSchema(t *testing.T, queryResolve map[string]graphql.Resolver, mutationResolve map[string]graphql.Resolver) *graphql.Schema {
	t.Helper()
	fields := map[string]*graphql.Field{}
	order := []string{}
	for name, resolve := range queryResolve {
		fields[name] = &graphql.Field{Name: name, Type: graphql.String, Resolve: resolve}
		order = append(order, name)
	}
	query := &graphql.Object{Name: "Query", Fields: fields, FieldOrder: order}

	schema := graphql.NewSchema()
	schema.Query = query

	if mutationResolve != nil {
		mfields := map[string]*graphql.Field{}
		morder := []string{}
		for name, resolve := range mutationResolve {
			mfields[name] = &graphql.Field{Name: name, Type: graphql.String, Resolve: resolve}
			morder = append(morder, name)
		}
		schema.Mutation = &graphql.Object{Name: "Mutation", Fields: mfields, FieldOrder: morder}
	}

	require.Empty(t, schema.Validate())
	return schema
}

func TestExecuteRequestResolvesScalarFields(t *testing.T) {
	schema := testSchema(t, map[string]graphql.Resolver{
		"hello": func(p graphql.ResolveParams) (interface{}, error) { return "world", nil },
	}, nil)

	doc := mustParse(t, `{ hello }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.Empty(t, result.Errors)
	requireDataEqual(t, map[string]interface{}{"hello": "world"}, result)
}

func TestExecuteRequestUsesNamedOperation(t *testing.T) {
	schema := testSchema(t, map[string]graphql.Resolver{
		"a": func(p graphql.ResolveParams) (interface{}, error) { return "A", nil },
	}, nil)

	doc := mustParse(t, `query First { a } query Second { a }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{OperationName: "Second"})

	require.Empty(t, result.Errors)
	require.Equal(t, map[string]interface{}{"a": "A"}, result.Data)
}

func TestExecuteRequestMissingOperationNameErrors(t *testing.T) {
	schema := testSchema(t, map[string]graphql.Resolver{
		"a": func(p graphql.ResolveParams) (interface{}, error) { return "A", nil },
	}, nil)

	doc := mustParse(t, `query First { a } query Second { a }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.True(t, result.Errors.HasErrors())
}

func TestExecuteRequestNonNullFieldErrorPropagatesToParent(t *testing.T) {
	fields := map[string]*graphql.Field{
		"required": {Name: "required", Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return nil, nil
		}},
	}
	schema := graphql.NewSchema()
	schema.Query = &graphql.Object{Name: "Query", Fields: fields, FieldOrder: []string{"required"}}
	require.Empty(t, schema.Validate())

	doc := mustParse(t, `{ required }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.True(t, result.Errors.HasErrors())
	require.Nil(t, result.Data, "a failed root-level NonNull field must null the whole result, not just its own key")
}

func TestExecuteRequestNonNullFieldErrorBubblesThroughNullableParent(t *testing.T) {
	child := &graphql.Object{
		Name: "Child",
		Fields: map[string]*graphql.Field{
			"required": {Name: "required", Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return nil, nil
			}},
		},
		FieldOrder: []string{"required"},
	}
	fields := map[string]*graphql.Field{
		"child": {Name: "child", Type: child, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return struct{}{}, nil
		}},
	}
	schema := graphql.NewSchema()
	schema.Query = &graphql.Object{Name: "Query", Fields: fields, FieldOrder: []string{"child"}}
	schema.Types["Child"] = child
	require.Empty(t, schema.Validate())

	doc := mustParse(t, `{ child { required } }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.True(t, result.Errors.HasErrors())
	requireDataEqual(t, map[string]interface{}{"child": nil}, result)
}

func TestExecuteRequestSkipDirectiveOmitsField(t *testing.T) {
	schema := testSchema(t, map[string]graphql.Resolver{
		"a": func(p graphql.ResolveParams) (interface{}, error) { return "A", nil },
		"b": func(p graphql.ResolveParams) (interface{}, error) { return "B", nil },
	}, nil)

	doc := mustParse(t, `query($skipB: Boolean!) { a b @skip(if: $skipB) }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{
		Variables: map[string]interface{}{"skipB": true},
	})

	require.Empty(t, result.Errors)
	require.Equal(t, map[string]interface{}{"a": "A"}, result.Data)
}

func TestExecuteRequestMutationRunsSequentially(t *testing.T) {
	var order []string
	schema := testSchema(t, map[string]graphql.Resolver{
		"noop": func(p graphql.ResolveParams) (interface{}, error) { return "noop", nil },
	}, map[string]graphql.Resolver{
		"first":  func(p graphql.ResolveParams) (interface{}, error) { order = append(order, "first"); return "1", nil },
		"second": func(p graphql.ResolveParams) (interface{}, error) { order = append(order, "second"); return "2", nil },
	})

	doc := mustParse(t, `mutation { first second }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{})

	require.Empty(t, result.Errors)
	require.Equal(t, []string{"first", "second"}, order)
}

func TestExecuteRequestMiddlewareWrapsResolve(t *testing.T) {
	schema := testSchema(t, map[string]graphql.Resolver{
		"hello": func(p graphql.ResolveParams) (interface{}, error) { return "world", nil },
	}, nil)

	var called bool
	mw := graphql.Middleware(func(next graphql.Resolver) graphql.Resolver {
		return func(p graphql.ResolveParams) (interface{}, error) {
			called = true
			return next(p)
		}
	})

	doc := mustParse(t, `{ hello }`)
	result := executor.ExecuteRequest(schema, doc, executor.RequestOptions{
		Middlewares: []graphql.Middleware{mw},
		Context:     context.Background(),
	})

	require.Empty(t, result.Errors)
	require.True(t, called)
}
