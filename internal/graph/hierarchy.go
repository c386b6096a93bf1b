package graph

import (
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/model"
)

// buildHierarchy splits each operation name on '.' and inserts ancestor
// "flow" nodes idempotently, attaching the operation as a leaf under its
// immediate parent flow. Root flows (or bare leaves, for undotted names)
// are recorded in first-seen order.
func (g *Graph) buildHierarchy(operations []*model.OperationDescriptor) {
	forest := HierarchyForest{Roots: make(map[string]*FlowNode)}

	for _, op := range operations {
		segments := strings.Split(op.Name, ".")
		if len(segments) == 1 {
			forest.attachRoot(segments[0], op.Name, true)
			continue
		}

		rootName := segments[0]
		root := forest.attachRoot(rootName, "", false)

		node := root
		for i := 1; i < len(segments)-1; i++ {
			node = node.child(segments[i], false, "")
		}
		leaf := segments[len(segments)-1]
		node.child(leaf, true, op.Name)
	}

	g.Hierarchy = forest
}

func (f *HierarchyForest) attachRoot(name, operation string, isLeaf bool) *FlowNode {
	if existing, ok := f.Roots[name]; ok {
		if isLeaf {
			existing.IsLeaf = true
			existing.Operation = operation
		}
		return existing
	}
	node := &FlowNode{
		Path:      name,
		Name:      name,
		Children:  make(map[string]*FlowNode),
		IsLeaf:    isLeaf,
		Operation: operation,
	}
	f.Roots[name] = node
	f.RootOrder = append(f.RootOrder, name)
	return node
}

func (n *FlowNode) child(name string, isLeaf bool, operation string) *FlowNode {
	if existing, ok := n.Children[name]; ok {
		if isLeaf {
			existing.IsLeaf = true
			existing.Operation = operation
		}
		return existing
	}
	path := name
	if n.Path != "" {
		path = n.Path + "." + name
	}
	child := &FlowNode{
		Path:      path,
		Name:      name,
		Children:  make(map[string]*FlowNode),
		IsLeaf:    isLeaf,
		Operation: operation,
	}
	n.Children[name] = child
	n.ChildOrder = append(n.ChildOrder, name)
	return child
}

// OrderedChildren returns a node's children in first-seen order.
func (n *FlowNode) OrderedChildren() []*FlowNode {
	out := make([]*FlowNode, 0, len(n.ChildOrder))
	for _, name := range n.ChildOrder {
		out = append(out, n.Children[name])
	}
	return out
}

// Leaves returns every operation name reachable under n, in a stable
// depth-first, first-seen order.
func (n *FlowNode) Leaves() []string {
	var out []string
	if n.IsLeaf {
		out = append(out, n.Operation)
	}
	for _, child := range n.OrderedChildren() {
		out = append(out, child.Leaves()...)
	}
	return out
}

// OperationsInFlow returns the operation leaves whose dotted name begins
// with prefix (a dotted path, or "" for every operation in the forest).
func (g *Graph) OperationsInFlow(prefix string) []string {
	if prefix == "" {
		var out []string
		for _, rootName := range g.Hierarchy.RootOrder {
			out = append(out, g.Hierarchy.Roots[rootName].Leaves()...)
		}
		return out
	}

	segments := strings.Split(prefix, ".")
	node, ok := g.Hierarchy.Roots[segments[0]]
	if !ok {
		return nil
	}
	for _, seg := range segments[1:] {
		node, ok = node.Children[seg]
		if !ok {
			return nil
		}
	}
	return node.Leaves()
}
