package orchestrator

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

// entityJSON and operationJSON give EntityDescriptor/OperationDescriptor a
// stable, flattened JSON shape: the Attributes map becomes a list in
// insertion order and the Tags sets become sorted lists.
type entityJSON struct {
	Name         string                  `json:"name"`
	Attributes   []model.FieldDescriptor `json:"attributes"`
	Description  string                  `json:"description,omitempty"`
	Presentation map[string]any          `json:"presentation,omitempty"`
	Tags         []string                `json:"tags,omitempty"`
	Relations    []model.RelationHint    `json:"relations,omitempty"`
}

type operationJSON struct {
	Name             string                  `json:"name"`
	InputSchemaName  string                  `json:"input_schema_name"`
	OutputSchemaName string                  `json:"output_schema_name"`
	InputFields      []model.FieldDescriptor `json:"input_fields,omitempty"`
	OutputFields     []model.FieldDescriptor `json:"output_fields,omitempty"`
	Reads            []string                `json:"reads,omitempty"`
	Writes           []string                `json:"writes,omitempty"`
	Description      string                  `json:"description,omitempty"`
	Category         string                  `json:"category,omitempty"`
	Tags             []string                `json:"tags,omitempty"`
	Stage            string                  `json:"stage,omitempty"`
	Track            bool                    `json:"track,omitempty"`
}

type registrySnapshot struct {
	GeneratedAt string          `json:"generated_at"`
	Entities    []entityJSON    `json:"entities"`
	Operations  []operationJSON `json:"operations"`
}

// writeRegistrySnapshot writes registry.json and registry_graph.json under
// cacheDir — the orchestrator's two audit artifacts, written unconditionally
// on every successful run rather than gated by the incremental cache,
// since they describe the run itself rather than a cacheable generator
// output.
func writeRegistrySnapshot(cacheDir, generatedAt string, reg *registry.Registry, g *graph.Graph, diags []model.Diagnostic) error {
	snapshot := registrySnapshot{GeneratedAt: generatedAt}
	for _, e := range reg.ListEntities() {
		snapshot.Entities = append(snapshot.Entities, entityJSON{
			Name: e.Name, Attributes: e.OrderedAttributes(), Description: e.Description,
			Presentation: e.Presentation, Tags: e.SortedTags(), Relations: e.Relations,
		})
	}
	for _, op := range reg.ListOperations() {
		tags := make([]string, 0, len(op.Tags))
		for t := range op.Tags {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		snapshot.Operations = append(snapshot.Operations, operationJSON{
			Name: op.Name, InputSchemaName: op.InputSchemaName, OutputSchemaName: op.OutputSchemaName,
			InputFields: op.InputFields, OutputFields: op.OutputFields, Reads: op.Reads, Writes: op.Writes,
			Description: op.Description, Category: op.Category, Tags: tags, Stage: op.Stage, Track: op.Track,
		})
	}

	registryBytes, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	if _, err := writeFileDirect(filepath.Join(cacheDir, "registry.json"), registryBytes); err != nil {
		return err
	}

	graphJSON := g.ToJSON(reg, diags, generatedAt)
	graphBytes, err := json.MarshalIndent(graphJSON, "", "  ")
	if err != nil {
		return err
	}
	if _, err := writeFileDirect(filepath.Join(cacheDir, "registry_graph.json"), graphBytes); err != nil {
		return err
	}
	return nil
}
