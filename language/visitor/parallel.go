package visitor

import "github.com/appointy/gqlcore/language/ast"

// ParallelVisitor runs several Visitors over one Walk. A visitor that
// returns SkipSubtree on Enter is marked skipping for the remainder of that
// node's subtree; it is not offered Enter/Leave calls for descendants, but
// still receives the matching Leave call on the node itself so its own
// stack bookkeeping (graphql/typeinfo.Info in particular) stays balanced.
// Any visitor returning Stop aborts the whole walk immediately.
type ParallelVisitor struct {
	visitors []Visitor
	skipping []bool
	skipNode []ast.Node
}

// NewParallelVisitor builds a ParallelVisitor running vs in order on Enter
// and in reverse order on Leave.
func NewParallelVisitor(vs ...Visitor) *ParallelVisitor {
	return &ParallelVisitor{
		visitors: vs,
		skipping: make([]bool, len(vs)),
		skipNode: make([]ast.Node, len(vs)),
	}
}

func (pv *ParallelVisitor) Enter(node ast.Node, parent ast.Node, key interface{}, path []interface{}) Action {
	for i, v := range pv.visitors {
		if pv.skipping[i] {
			continue
		}
		switch v.Enter(node, parent, key, path) {
		case SkipSubtree:
			pv.skipping[i] = true
			pv.skipNode[i] = node
		case Stop:
			return Stop
		}
	}
	return Continue
}

func (pv *ParallelVisitor) Leave(node ast.Node, parent ast.Node, key interface{}, path []interface{}) {
	for i := len(pv.visitors) - 1; i >= 0; i-- {
		if pv.skipping[i] {
			if pv.skipNode[i] != node {
				continue
			}
			pv.skipping[i] = false
			pv.skipNode[i] = nil
		}
		pv.visitors[i].Leave(node, parent, key, path)
	}
}
