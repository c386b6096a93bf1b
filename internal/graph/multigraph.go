package graph

import "github.com/alexisbeaulieu97/weave/internal/model"

// buildMultigraph expands each operation's reads x writes into multigraph
// edges, using the synthetic VoidNode as source/sink when a set is empty.
// It also populates the read/write indexes used by EntitiesReadBy,
// EntitiesWrittenBy, ReadersOf, WritersOf, and through the last two the
// validator's UnusedEntity rule.
func (g *Graph) buildMultigraph(operations []*model.OperationDescriptor) {
	nodeSeen := make(map[string]bool)
	var nodes []string
	addNode := func(name string) {
		if !nodeSeen[name] {
			nodeSeen[name] = true
			nodes = append(nodes, name)
		}
	}

	var edges []OperationEdge

	for _, op := range operations {
		g.opReads[op.Name] = append([]string(nil), op.Reads...)
		g.opWrites[op.Name] = append([]string(nil), op.Writes...)
		for _, r := range op.Reads {
			g.readsOf[r] = append(g.readsOf[r], op.Name)
		}
		for _, w := range op.Writes {
			g.writesOf[w] = append(g.writesOf[w], op.Name)
		}

		reads := op.Reads
		if len(reads) == 0 {
			reads = []string{VoidNode}
		}
		writes := op.Writes
		if len(writes) == 0 {
			writes = []string{VoidNode}
		}

		for _, r := range reads {
			addNode(r)
			for _, w := range writes {
				addNode(w)
				edges = append(edges, OperationEdge{From: r, To: w, OperationName: op.Name})
			}
		}
	}

	g.Multigraph = OperationMultigraph{Nodes: nodes, Edges: edges}
}

// EntitiesReadBy returns the entities consumed by opName, in declaration
// order.
func (g *Graph) EntitiesReadBy(opName string) []string {
	return append([]string(nil), g.opReads[opName]...)
}

// EntitiesWrittenBy returns the entities produced by opName, in declaration
// order.
func (g *Graph) EntitiesWrittenBy(opName string) []string {
	return append([]string(nil), g.opWrites[opName]...)
}

// ReadersOf returns operations that read entityName.
func (g *Graph) ReadersOf(entityName string) []string {
	return append([]string(nil), g.readsOf[entityName]...)
}

// WritersOf returns operations that write entityName.
func (g *Graph) WritersOf(entityName string) []string {
	return append([]string(nil), g.writesOf[entityName]...)
}
