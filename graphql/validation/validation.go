// Package validation runs the specified validation rules (spec.md §4.H)
// over a parsed document before execution. Grounded on the graphql
// reference implementations' two-pass design (one Walk, many rules riding
// along via a ParallelVisitor) rather than on any single teacher file — the
// retrieved pack never shipped a validation layer of its own.
package validation

import (
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/graphql/typeinfo"
	"github.com/appointy/gqlcore/gqlerrors"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// Context is the shared, read-only state every rule in one Validate call
// sees: the schema being validated against, the document being walked, the
// type information tracked for the node currently being visited, and the
// raw variable values supplied with the request (nil during a
// variables-agnostic validation pass).
type Context struct {
	Schema    *graphql.Schema
	Document  *ast.Document
	TypeInfo  *typeinfo.Info
	Variables map[string]interface{}
}

// Rule is one validation rule: a Visitor that accumulates Errors as it's
// walked alongside every other rule in the same pass.
type Rule interface {
	visitor.Visitor
	Errors() gqlerrors.List
}

// RuleFactory constructs a fresh Rule bound to ctx. Rules are stateful
// (they accumulate errors across the walk) so a factory, not a shared
// instance, is what SpecifiedRules holds.
type RuleFactory func(ctx *Context) Rule

// SpecifiedRules is every rule this package implements, grouped by the file
// that implements them (definitions, fields, fragments, variables,
// directives and arguments, merging, input fields). Validate uses this bank
// when no explicit rules are given.
var SpecifiedRules = []RuleFactory{
	NewExecutableDefinitions,
	NewUniqueOperationNames,
	NewLoneAnonymousOperation,
	NewSingleFieldSubscriptions,

	NewKnownTypeNames,
	NewFragmentsOnCompositeTypes,
	NewVariablesAreInputTypes,
	NewScalarLeafs,
	NewFieldsOnCorrectType,

	NewUniqueFragmentNames,
	NewKnownFragmentNames,
	NewNoUnusedFragments,
	NewPossibleFragmentSpreads,
	NewNoFragmentCycles,

	NewUniqueVariableNames,
	NewNoUndefinedVariables,
	NewNoUnusedVariables,
	NewVariablesInAllowedPosition,

	NewKnownDirectives,
	NewUniqueDirectivesPerLocation,
	NewKnownArgumentNames,
	NewUniqueArgumentNames,
	NewProvidedRequiredArguments,
	NewValuesOfCorrectType,

	NewOverlappingFieldsCanBeMerged,

	NewUniqueInputFieldNames,
}

// Validate walks doc once, running rules (SpecifiedRules if none are given)
// alongside a typeinfo.Info visitor, and returns every error any rule
// raised. It is pure: every call constructs its own rule instances, so no
// state carries over between calls, and identical (schema, doc, vars, rules)
// always yields the same errors with the same messages. The order of the
// errors is not fixed: some rules iterate Go maps while reporting (missing
// required arguments, response keys checked for merge conflicts).
func Validate(schema *graphql.Schema, doc *ast.Document, vars map[string]interface{}, rules ...RuleFactory) gqlerrors.List {
	if len(rules) == 0 {
		rules = SpecifiedRules
	}

	info, infoVisitor := typeinfo.NewTypeInfoVisitor(schema, doc)
	ctx := &Context{Schema: schema, Document: doc, TypeInfo: info, Variables: vars}

	instances := make([]Rule, len(rules))
	visitors := make([]visitor.Visitor, 0, len(rules)+1)
	visitors = append(visitors, infoVisitor)
	for i, f := range rules {
		r := f(ctx)
		instances[i] = r
		visitors = append(visitors, r)
	}

	visitor.Walk(visitor.NewParallelVisitor(visitors...), doc)

	var out gqlerrors.List
	for _, r := range instances {
		out = append(out, r.Errors()...)
	}
	return out
}

// baseRule gives every concrete rule no-op Enter/Leave and an Errors/report
// pair for free; rules override only the callbacks they care about.
type baseRule struct {
	ctx  *Context
	errs gqlerrors.List
}

func (b *baseRule) Enter(ast.Node, ast.Node, interface{}, []interface{}) visitor.Action {
	return visitor.Continue
}

func (b *baseRule) Leave(ast.Node, ast.Node, interface{}, []interface{}) {}

func (b *baseRule) Errors() gqlerrors.List { return b.errs }

func (b *baseRule) report(err *gqlerrors.Error) {
	b.errs = append(b.errs, err)
}

func invalid(format string, args ...interface{}) *gqlerrors.Error {
	return gqlerrors.New(gqlerrors.InvalidDocument, format, args...)
}
