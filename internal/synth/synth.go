// Package synth implements the four incremental artifact synthesizers: the
// HTTP router, the workflow graph, the CLI command tree, and the
// relationship diagrams. Every synthesizer is a pure function of the
// inputs it declares — it never touches the filesystem or the
// environment; the orchestrator decides whether and where to write what
// it returns.
package synth

import (
	"github.com/alexisbeaulieu97/weave/internal/cache"
	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

// EngineVersion is folded into every synthesizer's fingerprint so a
// released engine upgrade invalidates every cached artifact even when the
// registry and graph are unchanged.
const EngineVersion = "1.0.0"

// Inputs is the frozen view passed to every synthesizer. Synthesizers read
// only the fields relevant to their own generator_id.
type Inputs struct {
	Graph           *graph.Graph
	Registry        *registry.Registry
	TemplateSources map[string]string
}

// Synthesizer produces zero or more artifacts from a frozen Inputs view.
type Synthesizer interface {
	ID() string
	Version() string
	Produce(in Inputs) ([]model.ArtifactRecord, error)
}

// All returns the four synthesizers in the fixed, deterministic order the
// orchestrator runs them: router, workflow graph, CLI tree, diagrams.
func All() []Synthesizer {
	return []Synthesizer{
		HTTPRouterSynthesizer{},
		WorkflowGraphSynthesizer{},
		CLICommandTreeSynthesizer{},
		DiagramSynthesizer{},
	}
}

// fingerprintRecord computes rec's fingerprint over relevant (the
// generator's declared input subset) and stores it as rec.ContentHash, so
// every returned ArtifactRecord already carries the hash the cache layer
// will key on.
func fingerprintRecord(rec model.ArtifactRecord, generatorID, version string, templateSource string, relevant any) (model.ArtifactRecord, error) {
	fp, err := cache.Compute(cache.Inputs{
		GeneratorID:      generatorID,
		GeneratorVersion: version,
		EngineVersion:    EngineVersion,
		TemplateSource:   templateSource,
		Relevant:         relevant,
	})
	if err != nil {
		return model.ArtifactRecord{}, err
	}
	rec.ContentHash = string(fp)
	rec.GeneratorID = generatorID
	return rec, nil
}
