package validation

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/appointy/gqlcore/graphql"
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// namedTypeOf unwraps List/NonNull syntax down to the NamedType naming the
// type, or nil if typ is nil.
func namedTypeOf(typ ast.TypeNode) *ast.NamedType {
	for {
		switch t := typ.(type) {
		case *ast.NamedType:
			return t
		case *ast.ListType:
			typ = t.Type
		case *ast.NonNullType:
			typ = t.Type
		default:
			return nil
		}
	}
}

// suggestionList ranks candidates by edit distance to name, keeping only
// those within len(name)/2 edits (at least 1, at most 2), closest 5.
// Candidates are sorted by name first, so ties rank the same way on every
// call whatever order the caller collected them in.
func suggestionList(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)
	var scoredList []scored
	for _, c := range sorted {
		d := levenshtein.ComputeDistance(name, c)
		threshold := len(name) / 2
		if threshold < 1 {
			threshold = 1
		}
		if threshold > 2 {
			threshold = 2
		}
		if d <= threshold {
			scoredList = append(scoredList, scored{c, d})
		}
	}
	for i := 1; i < len(scoredList); i++ {
		for j := i; j > 0 && scoredList[j].dist < scoredList[j-1].dist; j-- {
			scoredList[j], scoredList[j-1] = scoredList[j-1], scoredList[j]
		}
	}
	if len(scoredList) > 5 {
		scoredList = scoredList[:5]
	}
	out := make([]string, len(scoredList))
	for i, s := range scoredList {
		out[i] = s.name
	}
	return out
}

func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf(" Did you mean %s?", quoteJoin(suggestions))
}

func quoteJoin(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			if i == len(items)-1 {
				out += " or "
			} else {
				out += ", "
			}
		}
		out += `"` + it + `"`
	}
	return out
}

// knownTypeNames rejects any NamedType referencing a type absent from the
// schema — a mistyped fragment type condition or variable type.
type knownTypeNames struct{ baseRule }

func NewKnownTypeNames(ctx *Context) Rule { return &knownTypeNames{baseRule{ctx: ctx}} }

func (r *knownTypeNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	nt, ok := node.(*ast.NamedType)
	if !ok {
		return visitor.Continue
	}
	if _, ok := r.ctx.Schema.Types[nt.Name]; ok {
		return visitor.Continue
	}
	var names []string
	for n := range r.ctx.Schema.Types {
		names = append(names, n)
	}
	r.report(invalid("unknown type %q.%s", nt.Name, didYouMean(suggestionList(nt.Name, names))).WithNodes(nt))
	return visitor.Continue
}

// fragmentsOnCompositeTypes rejects a fragment (named or inline) whose type
// condition names a non-composite (scalar/enum/input) type — fragments can
// only narrow onto object/interface/union types.
type fragmentsOnCompositeTypes struct{ baseRule }

func NewFragmentsOnCompositeTypes(ctx *Context) Rule {
	return &fragmentsOnCompositeTypes{baseRule{ctx: ctx}}
}

func (r *fragmentsOnCompositeTypes) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	var tc *ast.NamedType
	var at ast.Node
	switch n := node.(type) {
	case *ast.FragmentDefinition:
		tc, at = n.TypeCondition, n
	case *ast.InlineFragment:
		tc, at = n.TypeCondition, n
	default:
		return visitor.Continue
	}
	if tc == nil {
		return visitor.Continue
	}
	named, ok := r.ctx.Schema.Types[tc.Name]
	if !ok {
		return visitor.Continue // KnownTypeNames already reports this
	}
	if !graphql.IsCompositeType(named.(graphql.Type)) {
		r.report(invalid("fragment cannot condition on non-composite type %q", tc.Name).WithNodes(at))
	}
	return visitor.Continue
}

// variablesAreInputTypes rejects a variable declared with an output
// (object/interface/union) type — variables only ever carry input values.
type variablesAreInputTypes struct{ baseRule }

func NewVariablesAreInputTypes(ctx *Context) Rule { return &variablesAreInputTypes{baseRule{ctx: ctx}} }

func (r *variablesAreInputTypes) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	v, ok := node.(*ast.VariableDefinition)
	if !ok {
		return visitor.Continue
	}
	nt := namedTypeOf(v.Type)
	if nt == nil {
		return visitor.Continue
	}
	named, ok := r.ctx.Schema.Types[nt.Name]
	if !ok {
		return visitor.Continue
	}
	if !graphql.IsInputType(named.(graphql.Type)) {
		r.report(invalid("variable $%s cannot be of non-input type %q", v.Variable.Name, nt.Name).WithNodes(v))
	}
	return visitor.Continue
}

// scalarLeafs rejects a field with no selection set when its type is
// composite (the query would silently return no sub-fields), and a field
// with a selection set when its type is a leaf (scalar/enum — there's
// nothing to select under it).
type scalarLeafs struct{ baseRule }

func NewScalarLeafs(ctx *Context) Rule { return &scalarLeafs{baseRule{ctx: ctx}} }

func (r *scalarLeafs) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	f, ok := node.(*ast.Field)
	if !ok {
		return visitor.Continue
	}
	fieldDef := r.ctx.TypeInfo.FieldDef()
	if fieldDef == nil {
		return visitor.Continue
	}
	named := graphql.NamedOf(fieldDef.Type)
	isLeaf := graphql.IsLeafType(named)
	hasSelection := f.SelectionSet != nil && len(f.SelectionSet.Selections) > 0
	switch {
	case isLeaf && hasSelection:
		r.report(invalid("field %q must not have a selection since type %q has no subfields", f.ResponseKey(), named).WithNodes(f))
	case !isLeaf && !hasSelection:
		r.report(invalid("field %q of type %q must have a selection of subfields", f.ResponseKey(), named).WithNodes(f))
	}
	return visitor.Continue
}

// fieldsOnCorrectType rejects a field name absent from its parent type's
// (object or interface) field set.
type fieldsOnCorrectType struct{ baseRule }

func NewFieldsOnCorrectType(ctx *Context) Rule { return &fieldsOnCorrectType{baseRule{ctx: ctx}} }

func (r *fieldsOnCorrectType) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	f, ok := node.(*ast.Field)
	if !ok {
		return visitor.Continue
	}
	parentType := r.ctx.TypeInfo.ParentType()
	if parentType == nil {
		return visitor.Continue
	}
	fields := compositeFields(parentType)
	if fields == nil {
		return visitor.Continue
	}
	if f.Name == "__typename" || f.Name == "__schema" || f.Name == "__type" {
		return visitor.Continue
	}
	if _, ok := fields[f.Name]; ok {
		return visitor.Continue
	}
	var names []string
	for n := range fields {
		names = append(names, n)
	}
	r.report(invalid("field %q is not defined on type %q.%s", f.Name, graphql.NamedOf(parentType), didYouMean(suggestionList(f.Name, names))).WithNodes(f))
	return visitor.Continue
}

func compositeFields(t graphql.Type) map[string]*graphql.Field {
	switch v := graphql.NamedOf(t).(type) {
	case *graphql.Object:
		return v.Fields
	case *graphql.Interface:
		return v.Fields
	default:
		return nil
	}
}
