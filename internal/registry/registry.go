// Package registry holds the process-scoped tables of entity and operation
// descriptors populated by discovery. Writes only happen during discovery,
// single-threaded; reads are safe from any goroutine once discovery
// completes, but the mutex is kept so accidental concurrent writes are
// serialised instead of corrupting the insertion order.
package registry

import (
	"sync"

	"github.com/alexisbeaulieu97/weave/internal/model"
	streamyerrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// Registry stores entity and operation descriptors keyed by name, preserving
// insertion order for deterministic downstream emission.
type Registry struct {
	mu sync.RWMutex

	entityOrder []string
	entities    map[string]*model.EntityDescriptor

	operationOrder []string
	operations     map[string]*model.OperationDescriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		entities:   make(map[string]*model.EntityDescriptor),
		operations: make(map[string]*model.OperationDescriptor),
	}
}

// RegisterEntity inserts an entity descriptor. Registering a name that
// already exists is a hard error: later stages assume uniqueness.
func (r *Registry) RegisterEntity(d *model.EntityDescriptor) error {
	if d == nil {
		return streamyerrors.NewStructuralError(streamyerrors.CodeInternal, "", "entity descriptor cannot be nil", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[d.Name]; exists {
		return streamyerrors.NewStructuralError(streamyerrors.CodeDuplicateName, d.Name, "entity already registered", nil)
	}

	r.entities[d.Name] = d
	r.entityOrder = append(r.entityOrder, d.Name)
	return nil
}

// RegisterOperation inserts an operation descriptor under the same
// duplicate-name policy as RegisterEntity.
func (r *Registry) RegisterOperation(d *model.OperationDescriptor) error {
	if d == nil {
		return streamyerrors.NewStructuralError(streamyerrors.CodeInternal, "", "operation descriptor cannot be nil", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.operations[d.Name]; exists {
		return streamyerrors.NewStructuralError(streamyerrors.CodeDuplicateName, d.Name, "operation already registered", nil)
	}

	r.operations[d.Name] = d
	r.operationOrder = append(r.operationOrder, d.Name)
	return nil
}

// GetEntity returns the descriptor for name, or ok=false if not found. It
// never panics or returns an error: absence is the validator's concern.
func (r *Registry) GetEntity(name string) (*model.EntityDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entities[name]
	return d, ok
}

// GetOperation returns the descriptor for name, or ok=false if not found.
func (r *Registry) GetOperation(name string) (*model.OperationDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.operations[name]
	return d, ok
}

// ListEntities returns an insertion-ordered snapshot of all entities.
func (r *Registry) ListEntities() []*model.EntityDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.EntityDescriptor, 0, len(r.entityOrder))
	for _, name := range r.entityOrder {
		out = append(out, r.entities[name])
	}
	return out
}

// ListOperations returns an insertion-ordered snapshot of all operations.
func (r *Registry) ListOperations() []*model.OperationDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.OperationDescriptor, 0, len(r.operationOrder))
	for _, name := range r.operationOrder {
		out = append(out, r.operations[name])
	}
	return out
}

// Clear removes every registered descriptor. Used only by tests and
// explicit reload; never called during a normal pipeline run.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entities = make(map[string]*model.EntityDescriptor)
	r.entityOrder = nil
	r.operations = make(map[string]*model.OperationDescriptor)
	r.operationOrder = nil
}

// EntityCount returns the number of registered entities.
func (r *Registry) EntityCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entityOrder)
}

// OperationCount returns the number of registered operations.
func (r *Registry) OperationCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.operationOrder)
}
