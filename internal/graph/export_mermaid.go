package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/model"
)

// EntityMermaid renders the entity graph as a Mermaid erDiagram, with nodes
// and edges ordered lexicographically by identifier so diffs stay readable.
func (g *Graph) EntityMermaid() string {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	nodes := sortedCopy(g.Entity.Nodes)
	for _, n := range nodes {
		fmt.Fprintf(&b, "    %s {\n    }\n", mermaidID(n))
	}

	edges := append([]EntityEdge(nil), g.Entity.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].FieldName < edges[j].FieldName
	})

	for _, e := range edges {
		relation := "||--o{"
		if e.Cardinality != model.CardinalityMany {
			relation = "||--||"
		}
		fmt.Fprintf(&b, "    %s %s %s : %q\n", mermaidID(e.From), relation, mermaidID(e.To), e.FieldName)
	}

	return b.String()
}

// OperationMermaid renders the operation multigraph as a Mermaid flowchart,
// with nodes and edges ordered lexicographically by identifier.
func (g *Graph) OperationMermaid() string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	nodes := sortedCopy(g.Multigraph.Nodes)
	for _, n := range nodes {
		fmt.Fprintf(&b, "    %s[%s]\n", mermaidID(n), mermaidLabel(n))
	}

	edges := append([]OperationEdge(nil), g.Multigraph.Edges...)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].OperationName < edges[j].OperationName
	})

	for _, e := range edges {
		fmt.Fprintf(&b, "    %s -->|%s| %s\n", mermaidID(e.From), e.OperationName, mermaidID(e.To))
	}

	return b.String()
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

func mermaidID(name string) string {
	if name == VoidNode {
		return "void"
	}
	replacer := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return replacer.Replace(name)
}

func mermaidLabel(name string) string {
	if name == VoidNode {
		return "∅"
	}
	return name
}
