package visitor

import (
	"testing"

	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/parser"
	"github.com/stretchr/testify/require"
)

type recordingVisitor struct {
	entered []string
	left    []string
}

func (r *recordingVisitor) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	r.entered = append(r.entered, kindName(node))
	return Continue
}

func (r *recordingVisitor) Leave(node ast.Node, parent ast.Node, key interface{}, path []interface{}) {
	r.left = append(r.left, kindName(node))
}

func kindName(node ast.Node) string {
	switch node.(type) {
	case *ast.Document:
		return "Document"
	case *ast.OperationDefinition:
		return "OperationDefinition"
	case *ast.SelectionSet:
		return "SelectionSet"
	case *ast.Field:
		return "Field"
	case *ast.Argument:
		return "Argument"
	case *ast.IntValue:
		return "IntValue"
	default:
		return "Other"
	}
}

func mustParse(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, err := parser.ParseDocument(gqlerrors.Source{Name: "test", Body: body}, false)
	require.NoError(t, err)
	return doc
}

func TestWalkVisitsEveryNodeInDocumentOrder(t *testing.T) {
	doc := mustParse(t, `{ a(x: 1) { b } }`)
	rv := &recordingVisitor{}
	Walk(rv, doc)

	require.Equal(t, []string{
		"Document", "OperationDefinition", "SelectionSet", "Field", "Argument", "IntValue", "SelectionSet", "Field",
	}, rv.entered)
	require.Equal(t, []string{
		"IntValue", "Argument", "Field", "SelectionSet", "Field", "SelectionSet", "OperationDefinition", "Document",
	}, rv.left)
}

type skipAtVisitor struct {
	skipOn  string
	entered []string
}

func (s *skipAtVisitor) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	name := kindName(node)
	s.entered = append(s.entered, name)
	if name == s.skipOn {
		return SkipSubtree
	}
	return Continue
}

func (s *skipAtVisitor) Leave(ast.Node, ast.Node, interface{}, []interface{}) {}

func TestWalkSkipSubtree(t *testing.T) {
	doc := mustParse(t, `{ a(x: 1) { b } }`)
	sv := &skipAtVisitor{skipOn: "Field"}
	Walk(sv, doc)
	// the outer Field ("a") is entered, its children skipped: no Argument,
	// no IntValue, no inner Field ("b"), no inner SelectionSet.
	require.Equal(t, []string{"Document", "OperationDefinition", "SelectionSet", "Field"}, sv.entered)
}

func TestParallelVisitorIndependentSkip(t *testing.T) {
	doc := mustParse(t, `{ a(x: 1) { b } }`)
	full := &recordingVisitor{}
	skip := &skipAtVisitor{skipOn: "Field"}
	pv := NewParallelVisitor(skip, full)
	Walk(pv, doc)

	// full runs the complete traversal regardless of skip's own skip state.
	require.Equal(t, []string{
		"Document", "OperationDefinition", "SelectionSet", "Field", "Argument", "IntValue", "SelectionSet", "Field",
	}, full.entered)
	require.Equal(t, []string{"Document", "OperationDefinition", "SelectionSet", "Field"}, skip.entered)
}

type stoppingVisitor struct{ stopOn string }

func (s *stoppingVisitor) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	if kindName(node) == s.stopOn {
		return Stop
	}
	return Continue
}
func (s *stoppingVisitor) Leave(ast.Node, ast.Node, interface{}, []interface{}) {}

func TestParallelVisitorStopAborts(t *testing.T) {
	doc := mustParse(t, `{ a(x: 1) { b } }`)
	full := &recordingVisitor{}
	stopper := &stoppingVisitor{stopOn: "Argument"}
	pv := NewParallelVisitor(full, stopper)
	Walk(pv, doc)

	require.Equal(t, []string{"Document", "OperationDefinition", "SelectionSet", "Field", "Argument"}, full.entered)
	require.Empty(t, full.left)
}
