package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("project.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "project.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "project.yaml")
}

func TestStructuralErrorIncludesCodeAndSubject(t *testing.T) {
	t.Parallel()

	err := NewStructuralError(CodeDuplicateName, "User", "entity already registered", nil)

	var structErr *StructuralError
	require.ErrorAs(t, err, &structErr)
	require.Equal(t, CodeDuplicateName, structErr.Code)
	require.Equal(t, "User", structErr.Subject)
	require.Contains(t, err.Error(), "DUPLICATE_NAME")
	require.Contains(t, err.Error(), "User")
}

func TestCacheIOErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("disk full")
	err := NewCacheIOError(".run_cache/generated_api.go", underlying)

	var cacheErr *CacheIOError
	require.ErrorAs(t, err, &cacheErr)
	require.Equal(t, ".run_cache/generated_api.go", cacheErr.Path)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestCancellationErrorIncludesStage(t *testing.T) {
	t.Parallel()

	err := NewCancellationError("Generated")

	var cancelErr *CancellationError
	require.ErrorAs(t, err, &cancelErr)
	require.Equal(t, "Generated", cancelErr.Stage)
	require.Contains(t, err.Error(), "CANCELLED")
}
