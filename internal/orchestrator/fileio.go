package orchestrator

import (
	"os"
	"path/filepath"

	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// writeFileDirect writes data to path, creating parent directories as
// needed. Unlike the cache package's artifact writes, registry.json and
// registry_graph.json are not fingerprint-gated — they describe the run
// itself and are rewritten unconditionally on every success — so a plain
// write (rather than the temp-file-then-rename dance) is sufficient.
func writeFileDirect(path string, data []byte) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, streamyerrors.NewCacheIOError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, streamyerrors.NewCacheIOError(path, err)
	}
	return len(data), nil
}
