package validation

import (
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// knownDirectives rejects a directive name the schema never declared, and a
// correctly-named directive used in a location its schema declaration
// doesn't list (e.g. @skip on a query operation). Locations are checked
// only for directives on executable nodes; a directive on an SDL node is
// checked for its name alone.
type knownDirectives struct{ baseRule }

func NewKnownDirectives(ctx *Context) Rule { return &knownDirectives{baseRule{ctx: ctx}} }

func (r *knownDirectives) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	d, ok := node.(*ast.Directive)
	if !ok {
		return visitor.Continue
	}
	def, ok := r.ctx.Schema.Directives[d.Name]
	if !ok {
		var names []string
		for n := range r.ctx.Schema.Directives {
			names = append(names, n)
		}
		r.report(invalid("unknown directive %q.%s", d.Name, didYouMean(suggestionList(d.Name, names))).WithNodes(d))
		return visitor.Continue
	}
	loc := directiveLocationOf(parent, node)
	if loc == "" {
		return visitor.Continue
	}
	for _, l := range def.Locations {
		if l == loc {
			return visitor.Continue
		}
	}
	r.report(invalid("directive %q may not be used on %s", d.Name, loc).WithNodes(d))
	return visitor.Continue
}

func directiveLocationOf(parent ast.Node, self ast.Node) graphql.DirectiveLocation {
	switch parent.(type) {
	case *ast.OperationDefinition:
		op := parent.(*ast.OperationDefinition)
		switch op.Operation {
		case ast.OperationQuery:
			return graphql.LocQuery
		case ast.OperationMutation:
			return graphql.LocMutation
		case ast.OperationSubscription:
			return graphql.LocSubscription
		}
	case *ast.Field:
		return graphql.LocField
	case *ast.FragmentSpread:
		return graphql.LocFragmentSpread
	case *ast.InlineFragment:
		return graphql.LocInlineFragment
	case *ast.FragmentDefinition:
		return graphql.LocFragmentDefinition
	case *ast.VariableDefinition:
		return graphql.LocVariableDefinition
	}
	return ""
}

// uniqueDirectivesPerLocation rejects the same non-repeatable directive
// applied twice at one location.
type uniqueDirectivesPerLocation struct{ baseRule }

func NewUniqueDirectivesPerLocation(ctx *Context) Rule {
	return &uniqueDirectivesPerLocation{baseRule{ctx: ctx}}
}

func (r *uniqueDirectivesPerLocation) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	directives := directivesOf(node)
	if directives == nil {
		return visitor.Continue
	}
	seen := map[string]bool{}
	for _, d := range directives {
		def, ok := r.ctx.Schema.Directives[d.Name]
		if ok && def.Repeatable {
			continue
		}
		if seen[d.Name] {
			r.report(invalid("the directive %q can only be used once at this location", d.Name).WithNodes(d))
		}
		seen[d.Name] = true
	}
	return visitor.Continue
}

func directivesOf(node ast.Node) []*ast.Directive {
	switch n := node.(type) {
	case *ast.OperationDefinition:
		return n.Directives
	case *ast.Field:
		return n.Directives
	case *ast.FragmentSpread:
		return n.Directives
	case *ast.InlineFragment:
		return n.Directives
	case *ast.FragmentDefinition:
		return n.Directives
	case *ast.VariableDefinition:
		return n.Directives
	default:
		return nil
	}
}

// knownArgumentNames rejects an argument name absent from the field or
// directive it's attached to.
type knownArgumentNames struct{ baseRule }

func NewKnownArgumentNames(ctx *Context) Rule { return &knownArgumentNames{baseRule{ctx: ctx}} }

func (r *knownArgumentNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	a, ok := node.(*ast.Argument)
	if !ok {
		return visitor.Continue
	}
	var args map[string]*graphql.InputValueDefinition
	if d := r.ctx.TypeInfo.Directive(); d != nil {
		args = d.Args
	} else if fd := r.ctx.TypeInfo.FieldDef(); fd != nil {
		args = fd.Args
	}
	if args == nil {
		return visitor.Continue
	}
	if _, ok := args[a.Name]; ok {
		return visitor.Continue
	}
	var names []string
	for n := range args {
		names = append(names, n)
	}
	r.report(invalid("unknown argument %q.%s", a.Name, didYouMean(suggestionList(a.Name, names))).WithNodes(a))
	return visitor.Continue
}

// uniqueArgumentNames rejects the same argument name supplied twice on one
// field/directive invocation.
type uniqueArgumentNames struct{ baseRule }

func NewUniqueArgumentNames(ctx *Context) Rule { return &uniqueArgumentNames{baseRule{ctx: ctx}} }

func (r *uniqueArgumentNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	var args []*ast.Argument
	switch n := node.(type) {
	case *ast.Field:
		args = n.Arguments
	case *ast.Directive:
		args = n.Arguments
	default:
		return visitor.Continue
	}
	seen := map[string]bool{}
	for _, a := range args {
		if seen[a.Name] {
			r.report(invalid("there can be only one argument named %q", a.Name).WithNodes(a))
		}
		seen[a.Name] = true
	}
	return visitor.Continue
}

// providedRequiredArguments rejects a field or directive invocation that
// omits a non-null argument with no declared default.
type providedRequiredArguments struct{ baseRule }

func NewProvidedRequiredArguments(ctx *Context) Rule {
	return &providedRequiredArguments{baseRule{ctx: ctx}}
}

func (r *providedRequiredArguments) Leave(node ast.Node, parent ast.Node, key interface{}, path []interface{}) {
	var supplied []*ast.Argument
	var required map[string]*graphql.InputValueDefinition
	var label string
	var at ast.Node
	switch n := node.(type) {
	case *ast.Field:
		supplied, at = n.Arguments, n
		if fd := r.ctx.TypeInfo.FieldDef(); fd != nil {
			required, label = fd.Args, "field "+n.Name
		}
	case *ast.Directive:
		supplied, at = n.Arguments, n
		if d, ok := r.ctx.Schema.Directives[n.Name]; ok {
			required, label = d.Args, "directive @"+n.Name
		}
	default:
		return
	}
	if required == nil {
		return
	}
	have := map[string]bool{}
	for _, a := range supplied {
		have[a.Name] = true
	}
	for name, def := range required {
		if have[name] || def.HasDefault || !graphql.IsNonNull(def.Type) {
			continue
		}
		r.report(invalid("%s is missing required argument %q", label, name).WithNodes(at))
	}
}

// valuesOfCorrectType rejects a literal value whose shape doesn't match the
// type it's being used as: wrong scalar kind, unknown enum value, or an
// explicit null against a non-null position. Variable references are
// exempt here (VariablesInAllowedPosition and coercion cover those).
type valuesOfCorrectType struct{ baseRule }

func NewValuesOfCorrectType(ctx *Context) Rule { return &valuesOfCorrectType{baseRule{ctx: ctx}} }

func (r *valuesOfCorrectType) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	val, ok := node.(ast.Value)
	if !ok {
		return visitor.Continue
	}
	if _, ok := val.(*ast.Variable); ok {
		return visitor.Continue
	}
	if _, ok := val.(*ast.ListValue); ok {
		return visitor.Continue // elements are checked individually as the walk descends
	}
	if _, ok := val.(*ast.ObjectValue); ok {
		return visitor.Continue // fields are checked individually as the walk descends
	}
	expected := r.ctx.TypeInfo.InputType()
	if expected == nil {
		return visitor.Continue
	}
	if _, isNull := val.(*ast.NullValue); isNull {
		if graphql.IsNonNull(expected) {
			r.report(invalid("expected non-null value, found null").WithNodes(val))
		}
		return visitor.Continue
	}
	named := graphql.NamedOf(expected)
	switch t := named.(type) {
	case *graphql.Scalar:
		if !scalarLiteralMatches(t, val) {
			r.report(invalid("expected type %q, found %s", t.Name, describeValue(val)).WithNodes(val))
		}
	case *graphql.Enum:
		ev, ok := val.(*ast.EnumValue)
		if !ok {
			r.report(invalid("expected enum value for type %q, found %s", t.Name, describeValue(val)).WithNodes(val))
			return visitor.Continue
		}
		if _, ok := t.Map[ev.Value]; !ok {
			r.report(invalid("value %q does not exist in enum %q", ev.Value, t.Name).WithNodes(val))
		}
	}
	return visitor.Continue
}

func scalarLiteralMatches(s *graphql.Scalar, val ast.Value) bool {
	switch s.Name {
	case "Int":
		_, ok := val.(*ast.IntValue)
		return ok
	case "Float":
		switch val.(type) {
		case *ast.IntValue, *ast.FloatValue:
			return true
		}
		return false
	case "String", "ID":
		_, ok := val.(*ast.StringValue)
		return ok || s.Name == "ID" && isIntLiteral(val)
	case "Boolean":
		_, ok := val.(*ast.BooleanValue)
		return ok
	default:
		return true // custom scalars accept any literal shape; Coerce validates it
	}
}

func isIntLiteral(val ast.Value) bool {
	_, ok := val.(*ast.IntValue)
	return ok
}

func describeValue(val ast.Value) string {
	switch val.(type) {
	case *ast.IntValue:
		return "an integer"
	case *ast.FloatValue:
		return "a float"
	case *ast.StringValue:
		return "a string"
	case *ast.BooleanValue:
		return "a boolean"
	case *ast.EnumValue:
		return "an enum value"
	case *ast.ListValue:
		return "a list"
	case *ast.ObjectValue:
		return "an object"
	default:
		return "a value"
	}
}
