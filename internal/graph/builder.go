package graph

import "github.com/alexisbeaulieu97/weave/internal/registry"

// Build derives the entity graph, operation multigraph, operation DAG, and
// hierarchy forest from the current contents of reg. It never fails:
// dangling references and cycles are recorded structurally and left for the
// validator to report.
func Build(reg *registry.Registry) *Graph {
	g := &Graph{
		readsOf:  make(map[string][]string),
		writesOf: make(map[string][]string),
		opReads:  make(map[string][]string),
		opWrites: make(map[string][]string),
	}

	entities := reg.ListEntities()
	operations := reg.ListOperations()

	g.buildEntityGraph(entities)
	g.buildMultigraph(operations)
	g.buildDAG(operations)
	g.buildHierarchy(operations)

	return g
}
