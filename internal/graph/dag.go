package graph

import "github.com/alexisbeaulieu97/weave/internal/model"

// buildDAG adds an edge A -> B whenever writes(A) intersects reads(B),
// for every distinct pair of operations. Edges are deduplicated and labelled
// with the mediating entities, in the order they appear in A's writes.
func (g *Graph) buildDAG(operations []*model.OperationDescriptor) {
	names := make([]string, 0, len(operations))
	index := make(map[string]int, len(operations))
	for i, op := range operations {
		names = append(names, op.Name)
		index[op.Name] = i
	}

	forward := make(map[string][]string, len(names))
	reverse := make(map[string][]string, len(names))
	var edges []DAGEdge

	for _, a := range operations {
		if len(a.Writes) == 0 {
			continue
		}

		for _, b := range operations {
			if a.Name == b.Name {
				continue
			}
			readSet := make(map[string]bool, len(b.Reads))
			for _, r := range b.Reads {
				readSet[r] = true
			}
			var mediating []string
			seen := make(map[string]bool)
			for _, w := range a.Writes {
				if readSet[w] && !seen[w] {
					seen[w] = true
					mediating = append(mediating, w)
				}
			}
			if len(mediating) == 0 {
				continue
			}
			edges = append(edges, DAGEdge{From: a.Name, To: b.Name, MediatingEntities: mediating})
			forward[a.Name] = append(forward[a.Name], b.Name)
			reverse[b.Name] = append(reverse[b.Name], a.Name)
		}
	}

	g.DAG = OperationDAG{
		Nodes:   names,
		Edges:   edges,
		forward: forward,
		reverse: reverse,
		index:   index,
	}
}

// Predecessors returns the operations with an edge into name.
func (d *OperationDAG) Predecessors(name string) []string {
	return append([]string(nil), d.reverse[name]...)
}

// Successors returns the operations name has an edge into.
func (d *OperationDAG) Successors(name string) []string {
	return append([]string(nil), d.forward[name]...)
}

// DetectCycle returns the operation names participating in a cycle, in
// traversal order, or nil if the DAG is acyclic. Deterministic: nodes are
// visited in registration order, so the same cyclic input always reports
// the same cycle.
func (d *OperationDAG) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(d.Nodes))
	var stack []string
	var cycle []string

	var visit func(string) bool
	visit = func(node string) bool {
		color[node] = gray
		stack = append(stack, node)
		for _, next := range d.forward[node] {
			switch color[next] {
			case white:
				if visit(next) {
					return true
				}
			case gray:
				start := 0
				for i, n := range stack {
					if n == next {
						start = i
						break
					}
				}
				cycle = append([]string(nil), stack[start:]...)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[node] = black
		return false
	}

	for _, node := range d.Nodes {
		if color[node] == white {
			if visit(node) {
				return cycle
			}
		}
	}
	return nil
}
