package model

import "strings"

// OperationDescriptor represents a declared operation: a typed input/output
// schema reference plus the reads/writes sets that are the sole source of
// truth for inter-operation ordering.
type OperationDescriptor struct {
	Name string // dotted identifier, e.g. "payment.checkout.charge"

	InputSchemaName  string
	OutputSchemaName string
	InputFields      []FieldDescriptor
	OutputFields     []FieldDescriptor

	Reads  []string
	Writes []string

	Description string
	Category    string
	Tags        map[string]struct{}
	Stage       string
	Track       bool
}

// NewOperationDescriptor returns an OperationDescriptor with its maps
// initialised.
func NewOperationDescriptor(name string) *OperationDescriptor {
	return &OperationDescriptor{
		Name: name,
		Tags: make(map[string]struct{}),
	}
}

// HierarchyPath splits the dotted name into ancestor flow segments and a
// leaf. For "payment.checkout.charge" the path is ["payment", "checkout"]
// and the leaf is "charge".
func (o *OperationDescriptor) HierarchyPath() (path []string, leaf string) {
	segments := strings.Split(o.Name, ".")
	if len(segments) == 0 {
		return nil, o.Name
	}
	return segments[:len(segments)-1], segments[len(segments)-1]
}

// HasTag reports whether the operation carries the given tag.
func (o *OperationDescriptor) HasTag(tag string) bool {
	_, ok := o.Tags[tag]
	return ok
}
