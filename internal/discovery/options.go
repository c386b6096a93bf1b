// Package discovery implements the two interchangeable strategies that
// populate a registry.Registry: load-time (executing a declaration site's
// annotation wrapper) and source-scan (parsing source text without
// executing it). Both strategies produce the same option vectors, which are
// translated into model descriptors by buildEntity/buildOperation.
package discovery

import (
	"regexp"

	"github.com/alexisbeaulieu97/weave/internal/model"
	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// dottedNameGrammar matches segment(.segment){0,N} where
// segment = [a-zA-Z_][a-zA-Z0-9_]*.
var dottedNameGrammar = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

// FieldOption describes one attribute/field argument recognised by the
// wrapper option grammars in the specification's discovery section.
type FieldOption struct {
	Name           string
	TypeName       string
	IsRequired     bool
	Description    string
	DefaultLiteral string
	HasDefault     bool
}

// RelationOption mirrors model.RelationHint at the option-vector level.
type RelationOption struct {
	FieldName        string
	TargetEntityName string
	Cardinality      model.Cardinality
	Via              string
}

// EntityOptions is the recognised option set for the entity wrapper.
type EntityOptions struct {
	Name         string
	Description  string
	Tags         []string
	Presentation map[string]any
	Fields       []FieldOption
	Relations    []RelationOption
}

// OperationOptions is the recognised option set for the operation wrapper.
type OperationOptions struct {
	Name         string
	Description  string
	Input        string
	Output       string
	InputFields  []FieldOption
	OutputFields []FieldOption
	Category     string
	Tags         []string
	Stage        string
	Reads        []string
	Writes       []string
	Track        bool
}

// buildEntity translates a recognised option vector into an EntityDescriptor.
// It performs no validation beyond requiring Name to be non-empty: malformed
// input is the validator's problem, per the registry's contract.
func buildEntity(opts EntityOptions) (*model.EntityDescriptor, error) {
	if opts.Name == "" {
		return nil, streamyerrors.NewStructuralError(streamyerrors.CodeInternal, "", "entity name is required", nil)
	}

	e := model.NewEntityDescriptor(opts.Name)
	e.Description = opts.Description
	e.Presentation = opts.Presentation
	for _, tag := range opts.Tags {
		e.Tags[tag] = struct{}{}
	}
	for _, f := range opts.Fields {
		e.AddAttribute(model.FieldDescriptor{
			Name:           f.Name,
			TypeName:       f.TypeName,
			IsRequired:     f.IsRequired,
			Description:    f.Description,
			DefaultLiteral: f.DefaultLiteral,
			HasDefault:     f.HasDefault,
		})
	}
	for _, rel := range opts.Relations {
		e.Relations = append(e.Relations, model.RelationHint{
			FieldName:        rel.FieldName,
			TargetEntityName: rel.TargetEntityName,
			Cardinality:      rel.Cardinality,
			Via:              rel.Via,
		})
	}
	return e, nil
}

// buildOperation translates a recognised option vector into an
// OperationDescriptor.
func buildOperation(opts OperationOptions) (*model.OperationDescriptor, error) {
	if opts.Name == "" {
		return nil, streamyerrors.NewStructuralError(streamyerrors.CodeInternal, "", "operation name is required", nil)
	}

	o := model.NewOperationDescriptor(opts.Name)
	o.Description = opts.Description
	o.InputSchemaName = opts.Input
	o.OutputSchemaName = opts.Output
	o.Category = opts.Category
	o.Stage = opts.Stage
	o.Track = opts.Track
	o.Reads = append([]string(nil), opts.Reads...)
	o.Writes = append([]string(nil), opts.Writes...)
	for _, tag := range opts.Tags {
		o.Tags[tag] = struct{}{}
	}
	for _, f := range opts.InputFields {
		o.InputFields = append(o.InputFields, model.FieldDescriptor{
			Name: f.Name, TypeName: f.TypeName, IsRequired: f.IsRequired,
			Description: f.Description, DefaultLiteral: f.DefaultLiteral, HasDefault: f.HasDefault,
		})
	}
	for _, f := range opts.OutputFields {
		o.OutputFields = append(o.OutputFields, model.FieldDescriptor{
			Name: f.Name, TypeName: f.TypeName, IsRequired: f.IsRequired,
			Description: f.Description, DefaultLiteral: f.DefaultLiteral, HasDefault: f.HasDefault,
		})
	}
	return o, nil
}

// IsWellFormedName reports whether name matches the dotted-identifier
// grammar. Exported so the validator can reuse the exact same check rather
// than drift from discovery's notion of a well-formed name.
func IsWellFormedName(name string) bool {
	return dottedNameGrammar.MatchString(name)
}
