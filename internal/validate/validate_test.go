package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

func newOp(name string, reads, writes []string) *model.OperationDescriptor {
	op := model.NewOperationDescriptor(name)
	op.Reads = reads
	op.Writes = writes
	return op
}

func TestCycleDetectionScenarioS1(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("A")))
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("B")))
	require.NoError(t, reg.RegisterOperation(newOp("op1", []string{"A"}, []string{"B"})))
	require.NoError(t, reg.RegisterOperation(newOp("op2", []string{"B"}, []string{"A"})))

	g := graph.Build(reg)
	diags := Run(reg, g)

	require.True(t, HasErrors(diags))
	var cycleDiag *model.Diagnostic
	for i := range diags {
		if diags[i].Code == "CYCLE" {
			cycleDiag = &diags[i]
		}
	}
	require.NotNil(t, cycleDiag)
	require.Contains(t, cycleDiag.Message, "op1")
	require.Contains(t, cycleDiag.Message, "op2")
}

func TestMissingEntityProducesError(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("A")))
	require.NoError(t, reg.RegisterOperation(newOp("op1", []string{"Ghost"}, []string{"A"})))

	g := graph.Build(reg)
	diags := Run(reg, g)

	require.True(t, HasErrors(diags))
	require.Equal(t, "MISSING_ENTITY", diags[0].Code)
}

func TestBadOperationNameGrammar(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterOperation(newOp("1bad.name", nil, nil)))

	g := graph.Build(reg)
	diags := Run(reg, g)

	var found bool
	for _, d := range diags {
		if d.Code == "BAD_NAME" {
			found = true
		}
	}
	require.True(t, found)
}

func TestNameVsTypeScenarioS4(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("Pokemon")))

	trainer := model.NewEntityDescriptor("Trainer")
	trainer.Description = "A Pokemon trainer."
	trainer.AddAttribute(model.FieldDescriptor{Name: "pokemon_team", TypeName: "[]string", Description: "roster"})
	require.NoError(t, reg.RegisterEntity(trainer))

	g := graph.Build(reg)
	diags := Run(reg, g)

	var found *model.Diagnostic
	for i := range diags {
		if diags[i].Code == "LIST_OF_STRING_SHOULD_BE_LIST_OF_ENTITY" {
			found = &diags[i]
		}
	}
	require.NotNil(t, found)
	require.Equal(t, model.SeverityWarning, found.Severity)
	require.Equal(t, "pokemon_team: sequence of Pokemon", found.Hint)
	require.False(t, HasErrors(diags))
}

func TestNameVsTypeExceptionSuppressesWarning(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("Status")))

	e := model.NewEntityDescriptor("Report")
	e.Description = "A status report."
	e.AddAttribute(model.FieldDescriptor{Name: "status", TypeName: "[]string", Description: "current status"})
	require.NoError(t, reg.RegisterEntity(e))

	g := graph.Build(reg)
	diags := Run(reg, g)

	for _, d := range diags {
		require.NotEqual(t, "LIST_OF_STRING_SHOULD_BE_LIST_OF_ENTITY", d.Code)
	}
}

func TestDuplicateNameScenarioS6(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("User")))
	err := reg.RegisterEntity(model.NewEntityDescriptor("User"))
	require.Error(t, err)
}

func TestOrphanOperationBoundary(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterOperation(newOp("standalone", nil, nil)))

	g := graph.Build(reg)
	diags := Run(reg, g)

	var found bool
	for _, d := range diags {
		if d.Code == "ORPHAN_OPERATION" && d.Severity == model.SeverityInfo {
			found = true
		}
	}
	require.True(t, found)
	require.False(t, HasErrors(diags))
}

func TestUnusedEntityInfo(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterEntity(model.NewEntityDescriptor("Lonely")))

	g := graph.Build(reg)
	diags := Run(reg, g)

	var found bool
	for _, d := range diags {
		if d.Code == "UNUSED_ENTITY" && d.Subject == "Lonely" {
			found = true
		}
	}
	require.True(t, found)
}

func TestDocumentationPresenceWarnsOnShortDescription(t *testing.T) {
	reg := registry.New()
	e := model.NewEntityDescriptor("Thin")
	e.Description = "x"
	require.NoError(t, reg.RegisterEntity(e))

	g := graph.Build(reg)
	diags := Run(reg, g)

	var found bool
	for _, d := range diags {
		if d.Code == "MISSING_DOCUMENTATION" && d.Subject == "Thin" {
			found = true
		}
	}
	require.True(t, found)
}

func TestDiagnosticsAreOrderedBySeverityThenCodeThenSubject(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.RegisterOperation(newOp("b.orphan", nil, nil)))
	require.NoError(t, reg.RegisterOperation(newOp("a.orphan", nil, nil)))

	g := graph.Build(reg)
	diags := Run(reg, g)

	for i := 1; i < len(diags); i++ {
		require.False(t, diags[i].Less(diags[i-1]), "diagnostics must be non-decreasing")
	}
}

func TestEmptyRegistrySucceedsBoundary(t *testing.T) {
	reg := registry.New()
	g := graph.Build(reg)
	diags := Run(reg, g)
	require.False(t, HasErrors(diags))
}
