package graph

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

// JSONNode is one entry of the serialised graph's nodes map. Fields unused
// by a given node kind are omitted.
type JSONNode struct {
	Kind       string   `json:"kind"`
	Name       string   `json:"name"`
	Attributes []string `json:"attributes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Category   string   `json:"category,omitempty"`
	Stage      string   `json:"stage,omitempty"`
	Reads      []string `json:"reads,omitempty"`
	Writes     []string `json:"writes,omitempty"`
	FlowPath   string   `json:"flow_path,omitempty"`
}

// JSONEdge is one entry of the serialised graph's edges array.
type JSONEdge struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Properties map[string]any `json:"properties,omitempty"`
}

// JSONIndexes gives downstream readers O(1) lookups by kind, flow path, and
// category. Its content is fully derivable from Nodes; it exists only for
// reader convenience.
type JSONIndexes struct {
	ByKind     map[string][]string `json:"by_kind"`
	ByFlowPath map[string][]string `json:"by_flow_path"`
	ByCategory map[string][]string `json:"by_category"`
}

// JSONDiagnostic mirrors model.Diagnostic for serialisation.
type JSONDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
}

// JSONValidation summarises the diagnostics produced for this graph.
type JSONValidation struct {
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Infos       int              `json:"infos"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
}

// JSONGraph is the wire shape written to registry_graph.json.
type JSONGraph struct {
	Metadata   map[string]any         `json:"metadata"`
	Nodes      map[string]JSONNode    `json:"nodes"`
	Edges      []JSONEdge             `json:"edges"`
	Indexes    JSONIndexes            `json:"indexes"`
	Validation JSONValidation         `json:"validation"`
}

// ToJSON renders the graph into the stable wire shape described in the
// specification. reg supplies the attribute/tag detail that the graph
// itself does not retain; diagnostics is the validator's output, embedded
// verbatim in the validation section.
func (g *Graph) ToJSON(reg *registry.Registry, diagnostics []model.Diagnostic, generatedAt string) JSONGraph {
	nodes := make(map[string]JSONNode)
	byKind := make(map[string][]string)
	byFlowPath := make(map[string][]string)
	byCategory := make(map[string][]string)

	for _, name := range g.Entity.Nodes {
		e, _ := reg.GetEntity(name)
		node := JSONNode{Kind: "entity", Name: name}
		if e != nil {
			for _, attr := range e.OrderedAttributes() {
				node.Attributes = append(node.Attributes, attr.Name)
			}
			node.Tags = e.SortedTags()
		}
		nodes[name] = node
		byKind["entity"] = append(byKind["entity"], name)
	}

	for _, op := range reg.ListOperations() {
		flowPath, _ := op.HierarchyPath()
		node := JSONNode{
			Kind:     "operation",
			Name:     op.Name,
			Category: op.Category,
			Stage:    op.Stage,
			Reads:    append([]string(nil), op.Reads...),
			Writes:   append([]string(nil), op.Writes...),
			FlowPath: joinDotted(flowPath),
		}
		nodes[op.Name] = node
		byKind["operation"] = append(byKind["operation"], op.Name)
		if node.FlowPath != "" {
			byFlowPath[node.FlowPath] = append(byFlowPath[node.FlowPath], op.Name)
		}
		if op.Category != "" {
			byCategory[op.Category] = append(byCategory[op.Category], op.Name)
		}
	}

	if _, ok := nodes[VoidNode]; !ok {
		for _, n := range g.Multigraph.Nodes {
			if n == VoidNode {
				nodes[VoidNode] = JSONNode{Kind: "void", Name: VoidNode}
				byKind["void"] = append(byKind["void"], VoidNode)
				break
			}
		}
	}

	var edges []JSONEdge
	for i, e := range g.Entity.Edges {
		edges = append(edges, JSONEdge{
			ID:     fmt.Sprintf("relation-%d", i),
			Type:   "relation",
			Source: e.From,
			Target: e.To,
			Properties: map[string]any{
				"field_name":  e.FieldName,
				"cardinality": string(e.Cardinality),
			},
		})
	}
	for i, e := range g.Multigraph.Edges {
		edges = append(edges, JSONEdge{
			ID:     fmt.Sprintf("flow-%d", i),
			Type:   "data_flow",
			Source: e.From,
			Target: e.To,
			Properties: map[string]any{
				"operation": e.OperationName,
			},
		})
	}
	for i, e := range g.DAG.Edges {
		edges = append(edges, JSONEdge{
			ID:     fmt.Sprintf("depends_on-%d", i),
			Type:   "depends_on",
			Source: e.From,
			Target: e.To,
			Properties: map[string]any{
				"mediating_entities": e.MediatingEntities,
			},
		})
	}

	for _, bucket := range [](map[string][]string){byKind, byFlowPath, byCategory} {
		for k := range bucket {
			sort.Strings(bucket[k])
		}
	}

	validation := JSONValidation{}
	for _, d := range diagnostics {
		switch d.Severity {
		case model.SeverityError:
			validation.Errors++
		case model.SeverityWarning:
			validation.Warnings++
		case model.SeverityInfo:
			validation.Infos++
		}
		validation.Diagnostics = append(validation.Diagnostics, JSONDiagnostic{
			Severity: string(d.Severity), Code: d.Code, Subject: d.Subject, Message: d.Message, Hint: d.Hint,
		})
	}

	return JSONGraph{
		Metadata: map[string]any{
			"generated_at":    generatedAt,
			"entity_count":    len(g.Entity.Nodes),
			"operation_count": len(g.DAG.Nodes),
		},
		Nodes: nodes,
		Edges: edges,
		Indexes: JSONIndexes{
			ByKind:     byKind,
			ByFlowPath: byFlowPath,
			ByCategory: byCategory,
		},
		Validation: validation,
	}
}

func joinDotted(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
