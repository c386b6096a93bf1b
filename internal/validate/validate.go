// Package validate walks a registry and its derived graph, producing an
// ordered list of diagnostics. It never returns an error: every finding,
// blocking or not, is reported through the returned slice so a single run
// always yields a complete picture.
package validate

import (
	"sort"

	"github.com/alexisbeaulieu97/weave/internal/discovery"
	"github.com/alexisbeaulieu97/weave/internal/graph"
	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// Run applies every rule to reg/g and returns diagnostics ordered by
// (severity, code, subject).
func Run(reg *registry.Registry, g *graph.Graph) []model.Diagnostic {
	var diags []model.Diagnostic

	diags = append(diags, referenceIntegrity(reg)...)
	diags = append(diags, operationNameGrammar(reg)...)
	diags = append(diags, noCycles(g)...)
	diags = append(diags, noDuplicates(reg)...)
	diags = append(diags, nameVsType(reg)...)
	diags = append(diags, documentationPresence(reg)...)
	diags = append(diags, unusedEntity(reg, g)...)
	diags = append(diags, orphanOperation(reg)...)

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Less(diags[j]) })
	return diags
}

// HasErrors reports whether diags contains at least one error-severity
// diagnostic, the validation gate the orchestrator checks before running
// the synthesizers.
func HasErrors(diags []model.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == model.SeverityError {
			return true
		}
	}
	return false
}

func referenceIntegrity(reg *registry.Registry) []model.Diagnostic {
	var diags []model.Diagnostic
	entityExists := func(name string) bool {
		_, ok := reg.GetEntity(name)
		return ok
	}

	for _, op := range reg.ListOperations() {
		for _, r := range op.Reads {
			if !entityExists(r) {
				diags = append(diags, missingEntity(op.Name, r))
			}
		}
		for _, w := range op.Writes {
			if !entityExists(w) {
				diags = append(diags, missingEntity(op.Name, w))
			}
		}
	}
	for _, e := range reg.ListEntities() {
		for _, rel := range e.Relations {
			if !entityExists(rel.TargetEntityName) {
				diags = append(diags, missingEntity(e.Name, rel.TargetEntityName))
			}
		}
	}
	return diags
}

func missingEntity(subject, target string) model.Diagnostic {
	return model.Diagnostic{
		Severity: model.SeverityError,
		Code:     string(streamyerrors.CodeMissingEntity),
		Subject:  subject,
		Message:  "references unknown entity " + target,
	}
}

func operationNameGrammar(reg *registry.Registry) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, op := range reg.ListOperations() {
		if !discovery.IsWellFormedName(op.Name) {
			diags = append(diags, model.Diagnostic{
				Severity: model.SeverityError,
				Code:     string(streamyerrors.CodeBadName),
				Subject:  op.Name,
				Message:  "operation name does not match the dotted-identifier grammar",
			})
		}
	}
	return diags
}

func noCycles(g *graph.Graph) []model.Diagnostic {
	cycle := g.DAG.DetectCycle()
	if len(cycle) == 0 {
		return nil
	}
	subject := cycle[0]
	message := "cyclic dependency: "
	for i, n := range cycle {
		if i > 0 {
			message += " -> "
		}
		message += n
	}
	return []model.Diagnostic{{
		Severity: model.SeverityError,
		Code:     string(streamyerrors.CodeCycle),
		Subject:  subject,
		Message:  message,
		Hint:     "break the cycle by removing or redirecting one of the listed writes/reads",
	}}
}

func noDuplicates(reg *registry.Registry) []model.Diagnostic {
	var diags []model.Diagnostic
	diags = append(diags, duplicatesIn(reg.ListEntities(), func(e *model.EntityDescriptor) string { return e.Name })...)
	diags = append(diags, duplicatesIn(reg.ListOperations(), func(o *model.OperationDescriptor) string { return o.Name })...)
	return diags
}

func duplicatesIn[T any](items []T, nameOf func(T) string) []model.Diagnostic {
	seen := make(map[string]int)
	var diags []model.Diagnostic
	for _, item := range items {
		name := nameOf(item)
		seen[name]++
		if seen[name] == 2 {
			diags = append(diags, model.Diagnostic{
				Severity: model.SeverityError,
				Code:     string(streamyerrors.CodeDuplicateName),
				Subject:  name,
				Message:  "name registered more than once",
			})
		}
	}
	return diags
}

func unusedEntity(reg *registry.Registry, g *graph.Graph) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, e := range reg.ListEntities() {
		if len(g.ReadersOf(e.Name)) == 0 && len(g.WritersOf(e.Name)) == 0 {
			diags = append(diags, model.Diagnostic{
				Severity: model.SeverityInfo,
				Code:     "UNUSED_ENTITY",
				Subject:  e.Name,
				Message:  "entity is neither read nor written by any operation",
			})
		}
	}
	return diags
}

func orphanOperation(reg *registry.Registry) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, op := range reg.ListOperations() {
		if len(op.Reads) == 0 && len(op.Writes) == 0 {
			diags = append(diags, model.Diagnostic{
				Severity: model.SeverityInfo,
				Code:     "ORPHAN_OPERATION",
				Subject:  op.Name,
				Message:  "operation has empty reads and writes",
			})
		}
	}
	return diags
}
