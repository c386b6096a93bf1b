package synth

import (
	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
)

// DiagramSynthesizer emits Mermaid and DOT text for both the entity graph
// and the operation multigraph. Its fingerprint is sensitive to the full
// graph, since any structural change can move a node or edge in the
// rendered output.
type DiagramSynthesizer struct{}

const diagramGeneratorID = "diagram"
const diagramVersion = "1.0.0"

func (DiagramSynthesizer) ID() string      { return diagramGeneratorID }
func (DiagramSynthesizer) Version() string { return diagramVersion }

func (s DiagramSynthesizer) Produce(in Inputs) ([]model.ArtifactRecord, error) {
	relevant := struct {
		EntityNodes  []string
		EntityEdges  []graph.EntityEdge
		OpNodes      []string
		OpEdges      []graph.OperationEdge
		DAGNodes     []string
		DAGEdges     []graph.DAGEdge
	}{
		in.Graph.Entity.Nodes, in.Graph.Entity.Edges,
		in.Graph.Multigraph.Nodes, in.Graph.Multigraph.Edges,
		in.Graph.DAG.Nodes, in.Graph.DAG.Edges,
	}

	records := []struct {
		path    string
		content string
	}{
		{"docs/operation-flow.md", wrapMermaid(in.Graph.OperationMermaid())},
		{"docs/model-relationships.md", wrapMermaid(in.Graph.EntityMermaid())},
		{"docs/registry_graph.dot", in.Graph.DOT()},
	}

	var out []model.ArtifactRecord
	for _, r := range records {
		rec, err := fingerprintRecord(
			model.ArtifactRecord{RelativePath: r.path, Content: []byte(r.content)},
			diagramGeneratorID, diagramVersion, "", relevant,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func wrapMermaid(body string) string {
	return "```mermaid\n" + body + "```\n"
}
