package model

// ArtifactRecord describes one generated output before it is written to
// disk: the path it belongs at, its bytes, and the fingerprint that keys
// the incremental cache.
type ArtifactRecord struct {
	RelativePath string
	Content      []byte
	ContentHash  string // hex-encoded digest, defined in internal/cache
	GeneratorID  string
}
