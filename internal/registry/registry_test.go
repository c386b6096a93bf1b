package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/weave/internal/model"
	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

func TestRegisterEntityRejectsDuplicate(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterEntity(model.NewEntityDescriptor("User")))

	err := r.RegisterEntity(model.NewEntityDescriptor("User"))
	require.Error(t, err)

	var structErr *streamyerrors.StructuralError
	require.ErrorAs(t, err, &structErr)
	require.Equal(t, streamyerrors.CodeDuplicateName, structErr.Code)
	require.Equal(t, "User", structErr.Subject)
}

func TestListEntitiesPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterEntity(model.NewEntityDescriptor("Order")))
	require.NoError(t, r.RegisterEntity(model.NewEntityDescriptor("Charge")))
	require.NoError(t, r.RegisterEntity(model.NewEntityDescriptor("Validation")))

	names := make([]string, 0, 3)
	for _, e := range r.ListEntities() {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"Order", "Charge", "Validation"}, names)
}

func TestGetOperationNotFoundReturnsFalse(t *testing.T) {
	t.Parallel()

	r := New()
	_, ok := r.GetOperation("missing")
	require.False(t, ok)
}

func TestClearRemovesEverything(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.RegisterEntity(model.NewEntityDescriptor("Order")))
	require.NoError(t, r.RegisterOperation(model.NewOperationDescriptor("order.create")))

	r.Clear()
	require.Equal(t, 0, r.EntityCount())
	require.Equal(t, 0, r.OperationCount())
}
