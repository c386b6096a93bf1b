package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeIsDeterministicAcrossMapKeyOrder(t *testing.T) {
	a, err := Compute(Inputs{
		GeneratorID: "http_router", GeneratorVersion: "1", EngineVersion: "1",
		Relevant: map[string]any{"b": 2, "a": 1},
	})
	require.NoError(t, err)

	b, err := Compute(Inputs{
		GeneratorID: "http_router", GeneratorVersion: "1", EngineVersion: "1",
		Relevant: map[string]any{"a": 1, "b": 2},
	})
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestComputeChangesWithRelevantInputs(t *testing.T) {
	a, err := Compute(Inputs{GeneratorID: "g", Relevant: "v1"})
	require.NoError(t, err)
	b, err := Compute(Inputs{GeneratorID: "g", Relevant: "v2"})
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestStoreWritesArtifactAndHashOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	fp, err := Compute(Inputs{GeneratorID: "g", Relevant: "v1"})
	require.NoError(t, err)

	decision, err := Store(dir, "generated_api.go", []byte("package api"), fp)
	require.NoError(t, err)
	require.True(t, decision.Written)

	content, err := os.ReadFile(filepath.Join(dir, "generated_api.go"))
	require.NoError(t, err)
	require.Equal(t, "package api", string(content))

	hash, err := os.ReadFile(filepath.Join(dir, "generated_api.go.hash"))
	require.NoError(t, err)
	require.Equal(t, string(fp), string(hash))
}

func TestStoreSkipsWhenFingerprintMatchesScenarioS5(t *testing.T) {
	dir := t.TempDir()
	fp, err := Compute(Inputs{GeneratorID: "g", Relevant: "v1"})
	require.NoError(t, err)

	_, err = Store(dir, "generated_api.go", []byte("package api"), fp)
	require.NoError(t, err)

	hashPath := filepath.Join(dir, "generated_api.go.hash")
	before, err := os.Stat(hashPath)
	require.NoError(t, err)

	decision, err := Store(dir, "generated_api.go", []byte("package api"), fp)
	require.NoError(t, err)
	require.False(t, decision.Written)

	after, err := os.Stat(hashPath)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}

func TestStoreRegeneratesWhenHashFileIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	fp, err := Compute(Inputs{GeneratorID: "g", Relevant: "v1"})
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generated_api.go.hash"), []byte("not-a-real-hash"), 0o644))

	decision, err := Store(dir, "generated_api.go", []byte("package api"), fp)
	require.NoError(t, err)
	require.True(t, decision.Written)
}

func TestStoreRewritesWhenFingerprintChanges(t *testing.T) {
	dir := t.TempDir()
	fp1, err := Compute(Inputs{GeneratorID: "g", Relevant: "v1"})
	require.NoError(t, err)
	fp2, err := Compute(Inputs{GeneratorID: "g", Relevant: "v2"})
	require.NoError(t, err)

	_, err = Store(dir, "generated_api.go", []byte("v1"), fp1)
	require.NoError(t, err)

	decision, err := Store(dir, "generated_api.go", []byte("v2"), fp2)
	require.NoError(t, err)
	require.True(t, decision.Written)

	content, err := os.ReadFile(filepath.Join(dir, "generated_api.go"))
	require.NoError(t, err)
	require.Equal(t, "v2", string(content))
}
