package orchestrator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/weave/internal/logger"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

func discoverSample() DiscoverFunc {
	return func() (*registry.Registry, error) {
		reg := registry.New()
		order := model.NewEntityDescriptor("Order")
		order.Description = "A placed customer order."
		if err := reg.RegisterEntity(order); err != nil {
			return nil, err
		}

		invoice := model.NewEntityDescriptor("Invoice")
		invoice.Description = "A billing invoice."
		if err := reg.RegisterEntity(invoice); err != nil {
			return nil, err
		}

		op := model.NewOperationDescriptor("billing.invoice.generate")
		op.Description = "Generates an invoice from an order."
		op.InputSchemaName = "GenerateInvoiceInput"
		op.OutputSchemaName = "GenerateInvoiceOutput"
		op.Reads = []string{"Order"}
		op.Writes = []string{"Invoice"}
		if err := reg.RegisterOperation(op); err != nil {
			return nil, err
		}
		return reg, nil
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Options{Writer: os.Stderr})
	require.NoError(t, err)
	return log
}

func TestRunSucceedsAndWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	docsDir := filepath.Join(dir, "docs")

	result := Run(context.Background(), discoverSample(), Options{
		CacheDir: cacheDir, DocsDir: docsDir, GeneratedAt: "2026-01-01T00:00:00Z",
	}, testLogger(t))

	require.Equal(t, StateDone, result.State)
	require.Nil(t, result.Err)
	require.Greater(t, result.ArtifactsWritten, 0)

	_, err := os.Stat(filepath.Join(cacheDir, "registry.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cacheDir, "registry_graph.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(docsDir, "registry_graph.dot"))
	require.NoError(t, err)
}

func TestRunSecondCallSkipsUnchangedArtifactsScenarioS5(t *testing.T) {
	dir := t.TempDir()
	opts := Options{CacheDir: filepath.Join(dir, "cache"), DocsDir: filepath.Join(dir, "docs"), GeneratedAt: "2026-01-01T00:00:00Z"}

	first := Run(context.Background(), discoverSample(), opts, testLogger(t))
	require.Equal(t, StateDone, first.State)
	require.Greater(t, first.ArtifactsWritten, 0)

	second := Run(context.Background(), discoverSample(), opts, testLogger(t))
	require.Equal(t, StateDone, second.State)
	require.Equal(t, 0, second.ArtifactsWritten)
	require.Equal(t, first.ArtifactsWritten+first.ArtifactsSkipped, second.ArtifactsSkipped)
}

func TestRunAbortsOnCycleScenarioS1(t *testing.T) {
	dir := t.TempDir()
	discover := func() (*registry.Registry, error) {
		reg := registry.New()
		if err := reg.RegisterEntity(model.NewEntityDescriptor("A")); err != nil {
			return nil, err
		}
		if err := reg.RegisterEntity(model.NewEntityDescriptor("B")); err != nil {
			return nil, err
		}
		op1 := model.NewOperationDescriptor("op1")
		op1.Reads = []string{"A"}
		op1.Writes = []string{"B"}
		if err := reg.RegisterOperation(op1); err != nil {
			return nil, err
		}
		op2 := model.NewOperationDescriptor("op2")
		op2.Reads = []string{"B"}
		op2.Writes = []string{"A"}
		return reg, reg.RegisterOperation(op2)
	}

	result := Run(context.Background(), discover, Options{CacheDir: filepath.Join(dir, "cache"), DocsDir: filepath.Join(dir, "docs")}, testLogger(t))

	require.Equal(t, StateFailed, result.State)
	require.Zero(t, result.ArtifactsWritten)

	_, err := os.Stat(filepath.Join(dir, "cache", "registry.json"))
	require.True(t, os.IsNotExist(err))
}

func TestRunRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Run(ctx, discoverSample(), Options{CacheDir: filepath.Join(dir, "cache")}, testLogger(t))
	require.Equal(t, StateFailed, result.State)
	require.Error(t, result.Err)
}

func TestRegistrySnapshotContainsFullDescriptors(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")

	result := Run(context.Background(), discoverSample(), Options{CacheDir: cacheDir, DocsDir: filepath.Join(dir, "docs")}, testLogger(t))
	require.Equal(t, StateDone, result.State)

	data, err := os.ReadFile(filepath.Join(cacheDir, "registry.json"))
	require.NoError(t, err)

	var snapshot registrySnapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Len(t, snapshot.Entities, 2)
	require.Len(t, snapshot.Operations, 1)
	require.Equal(t, "billing.invoice.generate", snapshot.Operations[0].Name)
}
