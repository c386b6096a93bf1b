package cache

import (
	"os"
	"path/filepath"

	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// hashSuffix names an artifact's hash sidecar, holding only the hex digest.
const hashSuffix = ".hash"

// Decision reports what Store chose to do for one artifact.
type Decision struct {
	Path    string
	Written bool
	Fingerprint
}

// Store decides whether relativePath under baseDir is already up to date
// for fingerprint fp, and if not, writes content and the hash sidecar
// atomically: write artifact, fsync, rename; then write hash, fsync,
// rename. A missing or corrupt hash file forces regeneration rather than
// failing.
func Store(baseDir, relativePath string, content []byte, fp Fingerprint) (Decision, error) {
	path := filepath.Join(baseDir, relativePath)
	hashPath := path + hashSuffix

	if existing, err := os.ReadFile(hashPath); err == nil {
		if Fingerprint(existing) == fp {
			return Decision{Path: path, Written: false, Fingerprint: fp}, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Decision{}, streamyerrors.NewCacheIOError(path, err)
	}

	if err := atomicWrite(path, content); err != nil {
		return Decision{}, streamyerrors.NewCacheIOError(path, err)
	}
	if err := atomicWrite(hashPath, []byte(fp)); err != nil {
		return Decision{}, streamyerrors.NewCacheIOError(hashPath, err)
	}

	return Decision{Path: path, Written: true, Fingerprint: fp}, nil
}

// atomicWrite writes data to a temp file in the same directory as path,
// fsyncs it, then renames it into place, so a reader never observes a
// partially written file.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
