package calltrace

import (
	"fmt"
	"reflect"
	"sync"
)

// Registration binds an interface type to the factory that builds its traced
// decorator. Decorators are usually generated by tracegen.
type Registration struct {
	iface   reflect.Type
	factory interface{}
}

// NewRegistration creates a Registration for the interface T.
func NewRegistration[T any](factory func(T, *Tracer) T) Registration {
	return Registration{
		iface:   reflect.TypeOf((*T)(nil)).Elem(),
		factory: factory,
	}
}

// Type returns the decorated interface type.
func (r Registration) Type() reflect.Type { return r.iface }

// Registry holds one decorator factory per interface type.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]interface{}
}

// NewRegistry creates a Registry populated with regs.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{factories: make(map[reflect.Type]interface{})}
	for _, reg := range regs {
		if err := r.Add(reg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add stores reg. It fails for non-interface types and for interfaces that
// already have a decorator.
func (r *Registry) Add(reg Registration) error {
	if reg.iface == nil || reg.iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %v", ErrNotInterface, reg.iface)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[reg.iface]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateDecorator, reg.iface)
	}
	r.factories[reg.iface] = reg.factory
	return nil
}

// Register adds the decorator factory for the interface T to r.
func Register[T any](r *Registry, factory func(T, *Tracer) T) error {
	return r.Add(NewRegistration(factory))
}

// Len returns the number of registered decorators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

func lookup[T any](r *Registry) (func(T, *Tracer) T, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	factory, ok := f.(func(T, *Tracer) T)
	return factory, ok
}
