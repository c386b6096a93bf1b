// Package cache implements the incremental artifact store: given a
// generator's declared inputs, it decides whether a target file is already
// up to date and, when it is not, writes the new content and its hash
// sidecar atomically.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint is the hex-encoded digest that keys one artifact in the
// cache. Two calls with structurally equal Inputs values always produce
// the same Fingerprint, regardless of map key order, since Compute
// serialises through json.Marshal, which writes map keys in sorted order.
type Fingerprint string

// Inputs is the canonical serialisation of everything a generator declared
// as relevant to one artifact: its own identity and version, the template
// source it rendered (if any), the engine's version, and an arbitrary
// generator-declared subset of the registry/graph (already reduced to a
// JSON-marshalable value by the caller).
type Inputs struct {
	GeneratorID      string `json:"generator_id"`
	GeneratorVersion string `json:"generator_version"`
	EngineVersion    string `json:"engine_version"`
	TemplateSource   string `json:"template_source,omitempty"`
	Relevant         any    `json:"relevant"`
}

// Compute returns the fingerprint of in. json.Marshal sorts map keys
// lexicographically, so Relevant may safely be built from maps without
// introducing run-to-run nondeterminism.
func Compute(in Inputs) (Fingerprint, error) {
	canonical, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return Fingerprint(hex.EncodeToString(sum[:])), nil
}
