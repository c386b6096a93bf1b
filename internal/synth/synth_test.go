package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

func buildSampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("Order")))
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("Invoice")))

	op := model.NewOperationDescriptor("billing.invoice.generate")
	op.InputSchemaName = "GenerateInvoiceInput"
	op.OutputSchemaName = "GenerateInvoiceOutput"
	op.Reads = []string{"Order"}
	op.Writes = []string{"Invoice"}
	op.InputFields = []model.FieldDescriptor{{Name: "order_id", TypeName: "string"}}
	require.NoError(t, reg.RegisterOperation(op))

	return reg
}

func TestHTTPRouterSynthesizerProducesCRUDAndOperationRoutes(t *testing.T) {
	reg := buildSampleRegistry(t)
	g := graph.Build(reg)

	records, err := HTTPRouterSynthesizer{}.Produce(Inputs{Graph: g, Registry: reg})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "generated_api.go", records[0].RelativePath)
	require.Contains(t, string(records[0].Content), `Path: "/order"`)
	require.Contains(t, string(records[0].Content), `Path: "/operations/billing/invoice/generate"`)
	require.NotEmpty(t, records[0].ContentHash)
}

func TestWorkflowGraphSynthesizerGroupsByHierarchyOrdersByDAG(t *testing.T) {
	reg := buildSampleRegistry(t)
	g := graph.Build(reg)

	records, err := WorkflowGraphSynthesizer{}.Produce(Inputs{Graph: g, Registry: reg})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Contains(t, string(records[0].Content), "billing.invoice.generate")
}

func TestCLICommandTreeSynthesizerMirrorsHierarchy(t *testing.T) {
	reg := buildSampleRegistry(t)
	g := graph.Build(reg)

	records, err := CLICommandTreeSynthesizer{}.Produce(Inputs{Graph: g, Registry: reg})
	require.NoError(t, err)
	require.Len(t, records, 1)
	content := string(records[0].Content)
	require.True(t, strings.Contains(content, "group billing"))
	require.True(t, strings.Contains(content, "--order_id string"))
}

func TestDiagramSynthesizerProducesThreeFiles(t *testing.T) {
	reg := buildSampleRegistry(t)
	g := graph.Build(reg)

	records, err := DiagramSynthesizer{}.Produce(Inputs{Graph: g, Registry: reg})
	require.NoError(t, err)
	require.Len(t, records, 3)

	var paths []string
	for _, r := range records {
		paths = append(paths, r.RelativePath)
	}
	require.ElementsMatch(t, []string{"docs/operation-flow.md", "docs/model-relationships.md", "docs/registry_graph.dot"}, paths)
}

func TestFingerprintStableAcrossIdenticalInputs(t *testing.T) {
	reg := buildSampleRegistry(t)
	g := graph.Build(reg)

	first, err := HTTPRouterSynthesizer{}.Produce(Inputs{Graph: g, Registry: reg})
	require.NoError(t, err)
	second, err := HTTPRouterSynthesizer{}.Produce(Inputs{Graph: g, Registry: reg})
	require.NoError(t, err)

	require.Equal(t, first[0].ContentHash, second[0].ContentHash)
}
