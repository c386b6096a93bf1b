package model

import "testing"

import "github.com/stretchr/testify/require"

func TestEntityDescriptorPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	e := NewEntityDescriptor("Trainer")
	e.AddAttribute(FieldDescriptor{Name: "name", TypeName: "string"})
	e.AddAttribute(FieldDescriptor{Name: "pokemon_team", TypeName: "sequence-of-string"})
	e.AddAttribute(FieldDescriptor{Name: "name", TypeName: "string", IsRequired: true})

	ordered := e.OrderedAttributes()
	require.Len(t, ordered, 2)
	require.Equal(t, "name", ordered[0].Name)
	require.True(t, ordered[0].IsRequired)
	require.Equal(t, "pokemon_team", ordered[1].Name)
}

func TestOperationDescriptorHierarchyPath(t *testing.T) {
	t.Parallel()

	op := NewOperationDescriptor("payment.checkout.charge_card")
	path, leaf := op.HierarchyPath()
	require.Equal(t, []string{"payment", "checkout"}, path)
	require.Equal(t, "charge_card", leaf)

	op2 := NewOperationDescriptor("validate")
	path2, leaf2 := op2.HierarchyPath()
	require.Empty(t, path2)
	require.Equal(t, "validate", leaf2)
}

func TestDiagnosticLessOrdersBySeverityThenCodeThenSubject(t *testing.T) {
	t.Parallel()

	warn := Diagnostic{Severity: SeverityWarning, Code: "DOC_MISSING", Subject: "User"}
	err1 := Diagnostic{Severity: SeverityError, Code: "CYCLE", Subject: "op2"}
	err2 := Diagnostic{Severity: SeverityError, Code: "CYCLE", Subject: "op1"}

	require.True(t, err1.Less(warn))
	require.False(t, warn.Less(err1))
	require.True(t, err2.Less(err1))
}
