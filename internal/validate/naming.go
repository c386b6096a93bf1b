package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/model"
	"github.com/alexisbeaulieu97/weave/internal/registry"
)

// PluralExceptions lists well-known identifiers that look like collections
// but are not — the NameVsType rule never fires on them. Callers may add
// project-specific terms before running validation.
var PluralExceptions = map[string]struct{}{
	"status":   {},
	"address":  {},
	"progress": {},
	"series":   {},
	"news":     {},
}

var opaqueStringSequenceType = regexp.MustCompile(`(?i)^(?:\[\]string|list<\s*string\s*>|sequence(?:[\s-]+of)?[\s-]*<?\s*string\s*>?)$`)

func nameVsType(reg *registry.Registry) []model.Diagnostic {
	var diags []model.Diagnostic
	entityNames := make([]string, 0)
	for _, e := range reg.ListEntities() {
		entityNames = append(entityNames, e.Name)
	}

	for _, e := range reg.ListEntities() {
		for _, field := range e.OrderedAttributes() {
			if diag, ok := collectionFieldSuggestion(e.Name, field, entityNames); ok {
				diags = append(diags, diag)
				continue
			}
			if diag, ok := directReferenceSuggestion(e.Name, field, entityNames); ok {
				diags = append(diags, diag)
			}
		}
	}
	for _, op := range reg.ListOperations() {
		for _, field := range append(append([]model.FieldDescriptor{}, op.InputFields...), op.OutputFields...) {
			if diag, ok := collectionFieldSuggestion(op.Name, field, entityNames); ok {
				diags = append(diags, diag)
			}
		}
	}
	return diags
}

func collectionFieldSuggestion(subject string, field model.FieldDescriptor, entityNames []string) (model.Diagnostic, bool) {
	lower := strings.ToLower(field.Name)
	if _, exempt := PluralExceptions[lower]; exempt {
		return model.Diagnostic{}, false
	}
	if !opaqueStringSequenceType.MatchString(field.TypeName) {
		return model.Diagnostic{}, false
	}
	target := matchingEntity(field.Name, entityNames)
	if target == "" {
		return model.Diagnostic{}, false
	}
	return model.Diagnostic{
		Severity: model.SeverityWarning,
		Code:     "LIST_OF_STRING_SHOULD_BE_LIST_OF_ENTITY",
		Subject:  subject + "." + field.Name,
		Message:  "field looks like a collection of " + target + " but is typed as a sequence of opaque strings",
		Hint:     fmt.Sprintf("%s: sequence of %s", field.Name, target),
	}, true
}

func directReferenceSuggestion(subject string, field model.FieldDescriptor, entityNames []string) (model.Diagnostic, bool) {
	if !strings.HasSuffix(strings.ToLower(field.Name), "_id") {
		return model.Diagnostic{}, false
	}
	base := field.Name[:len(field.Name)-len("_id")]
	target := matchingEntity(base, entityNames)
	if target == "" {
		return model.Diagnostic{}, false
	}
	return model.Diagnostic{
		Severity: model.SeverityWarning,
		Code:     "ID_FIELD_SHOULD_BE_DIRECT_REFERENCE",
		Subject:  subject + "." + field.Name,
		Message:  "field looks like a reference to " + target + " but is typed as an opaque identifier",
		Hint:     fmt.Sprintf("%s: %s", base, target),
	}, true
}

// matchingEntity returns the registered entity name whose singular form is
// contained in fieldName, or "" if none match.
func matchingEntity(fieldName string, entityNames []string) string {
	lowerField := strings.ToLower(fieldName)
	for _, name := range entityNames {
		if strings.Contains(lowerField, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

func documentationPresence(reg *registry.Registry) []model.Diagnostic {
	var diags []model.Diagnostic
	const minLen = 2

	for _, e := range reg.ListEntities() {
		if len(strings.TrimSpace(e.Description)) <= minLen {
			diags = append(diags, undocumented(e.Name))
		}
		for _, field := range e.OrderedAttributes() {
			if len(strings.TrimSpace(field.Description)) <= minLen {
				diags = append(diags, undocumented(e.Name+"."+field.Name))
			}
		}
	}
	for _, op := range reg.ListOperations() {
		if len(strings.TrimSpace(op.Description)) <= minLen {
			diags = append(diags, undocumented(op.Name))
		}
		for _, field := range append(append([]model.FieldDescriptor{}, op.InputFields...), op.OutputFields...) {
			if len(strings.TrimSpace(field.Description)) <= minLen {
				diags = append(diags, undocumented(op.Name+"."+field.Name))
			}
		}
	}
	return diags
}

func undocumented(subject string) model.Diagnostic {
	return model.Diagnostic{
		Severity: model.SeverityWarning,
		Code:     "MISSING_DOCUMENTATION",
		Subject:  subject,
		Message:  "should carry a non-trivial description",
	}
}
