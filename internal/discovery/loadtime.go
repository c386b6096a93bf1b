package discovery

import "github.com/alexisbeaulieu97/weave/internal/registry"

// LoadTime is the load-time discovery strategy: the wrapper functions it
// exposes (Entity, Operation) are meant to be called at package
// initialisation time next to the declaration they annotate. Calling a
// wrapper registers the descriptor and returns the original declaration
// unchanged, so execution semantics of the annotated value are preserved.
type LoadTime struct {
	reg *registry.Registry
}

// NewLoadTime returns a LoadTime strategy bound to reg. Import order of the
// packages that call Entity/Operation controls discovery order.
func NewLoadTime(reg *registry.Registry) *LoadTime {
	return &LoadTime{reg: reg}
}

// Entity registers an entity descriptor built from opts and returns decl
// unchanged. Typical use:
//
//	var User = discovery.Entity(loadTime, T{}, discovery.EntityOptions{Name: "User", ...})
func Entity[T any](lt *LoadTime, decl T, opts EntityOptions) T {
	d, err := buildEntity(opts)
	if err != nil {
		panic(err)
	}
	if err := lt.reg.RegisterEntity(d); err != nil {
		panic(err)
	}
	return decl
}

// Operation registers an operation descriptor built from opts and returns
// decl unchanged.
func Operation[T any](lt *LoadTime, decl T, opts OperationOptions) T {
	d, err := buildOperation(opts)
	if err != nil {
		panic(err)
	}
	if err := lt.reg.RegisterOperation(d); err != nil {
		panic(err)
	}
	return decl
}
