// Package orchestrator drives a single pipeline run: discovery, registry
// population, graph construction, validation, synthesis, and the
// incremental write-out to the cache directory. It is the only component
// in the engine that touches the filesystem.
package orchestrator

import (
	"context"

	"github.com/alexisbeaulieu97/weave/internal/cache"
	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/logger"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
	"github.com/alexisbeaulieu97/weave/internal/synth"
	"github.com/alexisbeaulieu97/weave/internal/validate"
	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// DiscoverFunc populates and returns a registry. It is supplied by the
// caller so the orchestrator stays agnostic to which discovery strategy
// (load-time or source-scan) produced it.
type DiscoverFunc func() (*registry.Registry, error)

// Options configures one run.
type Options struct {
	CacheDir        string
	DocsDir         string
	TemplateSources map[string]string
	Synthesizers    []synth.Synthesizer // nil means synth.All()

	// GeneratedAt stamps registry.json/registry_graph.json. The caller
	// supplies it (rather than the orchestrator reading the clock itself)
	// so a run's output is a pure function of its Options.
	GeneratedAt string

	// OnStage, if set, is called synchronously as the run enters each
	// state in order. A caller driving a progress display from a
	// separate goroutine must not block inside it.
	OnStage func(State)
}

func (o Options) notify(stage State) {
	if o.OnStage != nil {
		o.OnStage(stage)
	}
}

// Result summarises the outcome of one run.
type Result struct {
	State            State
	Registry         *registry.Registry
	Graph            *graph.Graph
	Diagnostics      []model.Diagnostic
	ArtifactsWritten int
	ArtifactsSkipped int
	Err              error
}

// Run executes the full pipeline. It never panics; every failure ends with
// Result.State set to StateFailed. Result.Err carries the cause, except for
// a validation-gate rejection, where Err is nil and the blocking findings
// are in Result.Diagnostics.
func Run(ctx context.Context, discover DiscoverFunc, opts Options, log *logger.Logger) Result {
	if opts.CacheDir == "" {
		opts.CacheDir = ".run_cache"
	}
	if opts.DocsDir == "" {
		opts.DocsDir = "docs"
	}
	synthesizers := opts.Synthesizers
	if synthesizers == nil {
		synthesizers = synth.All()
	}

	log.Info("pipeline starting")

	if err := ctx.Err(); err != nil {
		return cancelled(StateDiscovering, log)
	}
	opts.notify(StateDiscovering)
	log.WithFields(map[string]any{"stage": string(StateDiscovering)}).Info("discovering declarations")
	reg, err := discover()
	if err != nil {
		log.Error(err, "discovery failed")
		return Result{State: StateFailed, Err: err}
	}
	opts.notify(StateRegistered)
	log.WithFields(map[string]any{
		"stage":      string(StateRegistered),
		"entities":   reg.EntityCount(),
		"operations": reg.OperationCount(),
	}).Info("registry populated")

	if err := ctx.Err(); err != nil {
		return cancelled(StateGraphBuilt, log)
	}
	opts.notify(StateGraphBuilt)
	g := graph.Build(reg)
	log.WithFields(map[string]any{"stage": string(StateGraphBuilt)}).Info("graph built")

	if err := ctx.Err(); err != nil {
		return cancelled(StateValidated, log)
	}
	opts.notify(StateValidated)
	diags := validate.Run(reg, g)
	log.WithFields(map[string]any{
		"stage":       string(StateValidated),
		"diagnostics": len(diags),
	}).Info("validation complete")

	if validate.HasErrors(diags) {
		log.Warn("validation gate rejected the run")
		return Result{State: StateFailed, Registry: reg, Graph: g, Diagnostics: diags}
	}

	if err := ctx.Err(); err != nil {
		return cancelled(StateGenerated, log)
	}
	opts.notify(StateGenerated)
	in := synth.Inputs{Graph: g, Registry: reg, TemplateSources: opts.TemplateSources}
	var artifacts []model.ArtifactRecord
	for _, s := range synthesizers {
		records, err := s.Produce(in)
		if err != nil {
			wrapped := streamyerrors.NewStructuralError(streamyerrors.CodeInternal, s.ID(), err.Error(), err)
			log.Error(wrapped, "synthesizer failed")
			return Result{State: StateFailed, Registry: reg, Graph: g, Diagnostics: diags, Err: wrapped}
		}
		artifacts = append(artifacts, records...)
	}
	log.WithFields(map[string]any{
		"stage":     string(StateGenerated),
		"artifacts": len(artifacts),
	}).Info("synthesis complete")

	if err := ctx.Err(); err != nil {
		return cancelled(StateWrittenOrSkipped, log)
	}
	opts.notify(StateWrittenOrSkipped)
	written, skipped, err := writeArtifacts(opts.CacheDir, opts.DocsDir, artifacts)
	if err != nil {
		log.Error(err, "artifact write failed")
		return Result{State: StateFailed, Registry: reg, Graph: g, Diagnostics: diags, Err: err}
	}

	if err := writeRegistrySnapshot(opts.CacheDir, opts.GeneratedAt, reg, g, diags); err != nil {
		log.Error(err, "registry snapshot write failed")
		return Result{State: StateFailed, Registry: reg, Graph: g, Diagnostics: diags, Err: err}
	}

	opts.notify(StateDone)
	log.WithFields(map[string]any{
		"stage":   string(StateDone),
		"written": written,
		"skipped": skipped,
	}).Info("pipeline done")

	return Result{
		State: StateDone, Registry: reg, Graph: g, Diagnostics: diags,
		ArtifactsWritten: written, ArtifactsSkipped: skipped,
	}
}

// writeArtifacts stores each artifact under cacheDir, except for the
// docs/ prefixed ones (the diagram synthesizer's output), which are
// rooted at docsDir instead — matching the engine's two separate produced
// directories (cache directory vs. diagrams directory).
func writeArtifacts(cacheDir, docsDir string, artifacts []model.ArtifactRecord) (written, skipped int, err error) {
	for _, a := range artifacts {
		base := cacheDir
		relative := a.RelativePath
		if rest, ok := cutPrefix(relative, "docs/"); ok {
			base = docsDir
			relative = rest
		}

		decision, storeErr := cache.Store(base, relative, a.Content, cache.Fingerprint(a.ContentHash))
		if storeErr != nil {
			return written, skipped, storeErr
		}
		if decision.Written {
			written++
		} else {
			skipped++
		}
	}
	return written, skipped, nil
}

func cutPrefix(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):], true
	}
	return s, false
}

func cancelled(stage State, log *logger.Logger) Result {
	err := streamyerrors.NewCancellationError(string(stage))
	log.Warn(err.Error())
	return Result{State: StateFailed, Err: err}
}
