// Package model defines the descriptor types the registry stores: the
// typed shape of declared entities and operations, plus the records the
// validator and synthesizers exchange.
package model

// FieldDescriptor describes a single attribute of an entity or a single
// input/output field of an operation.
type FieldDescriptor struct {
	Name            string
	TypeName        string
	IsRequired      bool
	Description     string
	DefaultLiteral  string
	HasDefault      bool
}

// Clone returns a deep copy suitable for handing to a synthesizer as a
// frozen view.
func (f FieldDescriptor) Clone() FieldDescriptor {
	return f
}
