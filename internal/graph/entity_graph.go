package graph

import "github.com/alexisbeaulieu97/weave/internal/model"

func (g *Graph) buildEntityGraph(entities []*model.EntityDescriptor) {
	nodes := make([]string, 0, len(entities))
	var edges []EntityEdge

	for _, e := range entities {
		nodes = append(nodes, e.Name)
		for _, rel := range e.Relations {
			edges = append(edges, EntityEdge{
				From:        e.Name,
				To:          rel.TargetEntityName,
				FieldName:   rel.FieldName,
				Cardinality: rel.Cardinality,
			})
		}
	}

	g.Entity = EntityGraph{Nodes: nodes, Edges: edges}
}
