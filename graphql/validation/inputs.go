package validation

import (
	"github.com/appointy/gqlcore/language/ast"
	"github.com/appointy/gqlcore/language/visitor"
)

// uniqueInputFieldNames rejects an input object literal that sets the same
// field twice (`{x: 1, x: 2}`), at any nesting depth.
type uniqueInputFieldNames struct{ baseRule }

func NewUniqueInputFieldNames(ctx *Context) Rule { return &uniqueInputFieldNames{baseRule{ctx: ctx}} }

func (r *uniqueInputFieldNames) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) visitor.Action {
	obj, ok := node.(*ast.ObjectValue)
	if !ok {
		return visitor.Continue
	}
	seen := map[string]bool{}
	for _, f := range obj.Fields {
		if seen[f.Name] {
			r.report(invalid("there can be only one input field named %q", f.Name).WithNodes(f))
		}
		seen[f.Name] = true
	}
	return visitor.Continue
}
