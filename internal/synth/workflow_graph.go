package synth

import (
	"encoding/json"
	"sort"

	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
)

// WorkflowGraphSynthesizer renders the hierarchy forest annotated with the
// OperationDAG. The hierarchy is organisational only — grouping; execution
// order always comes from the OperationDAG, never from the dotted name.
type WorkflowGraphSynthesizer struct{}

const workflowGraphGeneratorID = "workflow_graph"
const workflowGraphVersion = "1.0.0"

func (WorkflowGraphSynthesizer) ID() string      { return workflowGraphGeneratorID }
func (WorkflowGraphSynthesizer) Version() string { return workflowGraphVersion }

// flowOutput is one entry per flow in the hierarchy forest.
type flowOutput struct {
	Path           string          `json:"path"`
	Operations     []operationStep `json:"operations"`
	ParallelLevels [][]string      `json:"parallel_levels"`
}

// operationStep is one entry per operation: its ordered predecessor list,
// straight from the OperationDAG.
type operationStep struct {
	Name         string   `json:"name"`
	Predecessors []string `json:"predecessors"`
}

func (s WorkflowGraphSynthesizer) Produce(in Inputs) ([]model.ArtifactRecord, error) {
	var flows []flowOutput
	for _, rootName := range in.Graph.Hierarchy.RootOrder {
		collectFlows(in.Graph.Hierarchy.Roots[rootName], in.Graph, &flows)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Path < flows[j].Path })

	content, err := json.MarshalIndent(struct {
		Flows []flowOutput `json:"flows"`
	}{flows}, "", "  ")
	if err != nil {
		return nil, err
	}

	rec, err := fingerprintRecord(
		model.ArtifactRecord{RelativePath: "generated_flows.json", Content: content},
		workflowGraphGeneratorID, workflowGraphVersion, "",
		struct {
			Nodes []string          `json:"nodes"`
			Edges []graph.DAGEdge   `json:"edges"`
			Roots []string          `json:"roots"`
		}{in.Graph.DAG.Nodes, in.Graph.DAG.Edges, in.Graph.Hierarchy.RootOrder},
	)
	if err != nil {
		return nil, err
	}
	return []model.ArtifactRecord{rec}, nil
}

func collectFlows(node *graph.FlowNode, g *graph.Graph, out *[]flowOutput) {
	if !node.IsLeaf {
		leaves := node.Leaves()
		sort.Strings(leaves)

		var steps []operationStep
		for _, name := range leaves {
			steps = append(steps, operationStep{Name: name, Predecessors: g.DAG.Predecessors(name)})
		}

		*out = append(*out, flowOutput{
			Path:           node.Path,
			Operations:     steps,
			ParallelLevels: localParallelLevels(leaves, &g.DAG),
		})
	}
	for _, child := range node.OrderedChildren() {
		collectFlows(child, g, out)
	}
}

// localParallelLevels groups ops (a subset of the full OperationDAG's
// nodes) into levels using only dependency edges between members of ops;
// a dependency on an operation outside the flow is assumed already
// satisfied by the time the flow runs.
func localParallelLevels(ops []string, dag *graph.OperationDAG) [][]string {
	member := make(map[string]bool, len(ops))
	for _, o := range ops {
		member[o] = true
	}

	indegree := make(map[string]int, len(ops))
	for _, o := range ops {
		for _, pred := range dag.Predecessors(o) {
			if member[pred] {
				indegree[o]++
			}
		}
	}

	remaining := make(map[string]bool, len(ops))
	for _, o := range ops {
		remaining[o] = true
	}

	var levels [][]string
	for len(remaining) > 0 {
		var level []string
		for _, o := range ops {
			if remaining[o] && indegree[o] == 0 {
				level = append(level, o)
			}
		}
		if len(level) == 0 {
			for _, o := range ops {
				if remaining[o] {
					level = append(level, o)
				}
			}
			levels = append(levels, level)
			break
		}
		for _, o := range level {
			delete(remaining, o)
			for _, succ := range dag.Successors(o) {
				if member[succ] && remaining[succ] {
					indegree[succ]--
				}
			}
		}
		levels = append(levels, level)
	}
	return levels
}
