package graph

import (
	"fmt"
	"sort"
	"strings"
)

// DOT renders the full registry graph (entities, operations, and their
// dependency edges) as a single GraphViz DOT document, with nodes and edges
// ordered lexicographically by identifier.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph registry {\n")
	b.WriteString("    rankdir=LR;\n")

	entityNodes := sortedCopy(g.Entity.Nodes)
	for _, n := range entityNodes {
		fmt.Fprintf(&b, "    %q [shape=box, label=%q];\n", n, n)
	}

	opNodes := sortedCopy(g.DAG.Nodes)
	for _, n := range opNodes {
		fmt.Fprintf(&b, "    %q [shape=ellipse, label=%q];\n", n, n)
	}

	entityEdges := append([]EntityEdge(nil), g.Entity.Edges...)
	sort.Slice(entityEdges, func(i, j int) bool {
		if entityEdges[i].From != entityEdges[j].From {
			return entityEdges[i].From < entityEdges[j].From
		}
		return entityEdges[i].To < entityEdges[j].To
	})
	for _, e := range entityEdges {
		fmt.Fprintf(&b, "    %q -> %q [label=%q, style=dashed];\n", e.From, e.To, e.FieldName)
	}

	dagEdges := append([]DAGEdge(nil), g.DAG.Edges...)
	sort.Slice(dagEdges, func(i, j int) bool {
		if dagEdges[i].From != dagEdges[j].From {
			return dagEdges[i].From < dagEdges[j].From
		}
		return dagEdges[i].To < dagEdges[j].To
	})
	for _, e := range dagEdges {
		fmt.Fprintf(&b, "    %q -> %q [label=%q];\n", e.From, e.To, strings.Join(e.MediatingEntities, ","))
	}

	b.WriteString("}\n")
	return b.String()
}
