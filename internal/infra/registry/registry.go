// Package registry implements the typed service container the application is
// composed from. Services are registered once during process startup, either
// eagerly or through a lazily-invoked factory, and resolved by type from
// request handlers afterwards.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"userhub/internal/errors"
)

// ErrDuplicateService is returned when a type is registered twice. Double
// registration is always a wiring bug, so it is rejected instead of
// overwriting the earlier entry.
var ErrDuplicateService = errors.New("service type already registered")

// NotRegisteredError reports a resolve of a type that was never registered.
// It is a configuration error, distinct from anything request-level.
type NotRegisteredError struct {
	Type reflect.Type
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("no service registered for type %s", e.Type)
}

// entry holds one registered service. For lazy registrations the factory runs
// at most once under the entry's own once cell; lookups never serialize on a
// shared lock while a factory is running.
type entry struct {
	once     sync.Once
	factory  func() (any, error)
	instance any
	err      error
}

func (e *entry) resolve() (any, error) {
	e.once.Do(func() {
		if e.factory != nil {
			e.instance, e.err = e.factory()
			e.factory = nil
		}
	})

	return e.instance, e.err
}

// Registry is the type-keyed container. It is populated during a single build
// phase and treated as read-only afterwards; a built registry is safe for
// concurrent use by any number of request handlers.
//
// Factories may resolve their own dependencies from the same registry. Cycles
// between factories are not detected: a circular dependency deadlocks on the
// second entry into the same once cell. Keep the dependency graph acyclic.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[reflect.Type]*entry)}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (r *Registry) add(key reflect.Type, e *entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return errors.Wrap(ErrDuplicateService, key.String())
	}
	r.entries[key] = e

	return nil
}

func (r *Registry) get(key reflect.Type) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]

	return e, ok
}

// Register stores an already-built instance keyed by the type T it was
// registered as. Registering the same type twice fails with
// ErrDuplicateService.
func Register[T any](r *Registry, instance T) error {
	e := &entry{instance: instance}
	e.once.Do(func() {})

	return r.add(typeOf[T](), e)
}

// Provide stores a factory for T that is invoked at most once, on first
// resolve, with the result (or the factory's error) cached for every
// subsequent lookup. Concurrent first resolves observe exactly one factory
// execution.
func Provide[T any](r *Registry, factory func() (T, error)) error {
	return r.add(typeOf[T](), &entry{factory: func() (any, error) {
		return factory()
	}})
}

// Lookup resolves T, reporting false when no entry of that type exists or its
// factory failed.
func Lookup[T any](r *Registry) (T, bool) {
	v, err := Resolve[T](r)

	return v, err == nil
}

// Resolve returns the instance registered for T, running its factory if this
// is the first resolve. A missing entry yields a NotRegisteredError.
func Resolve[T any](r *Registry) (T, error) {
	var zero T

	key := typeOf[T]()
	e, ok := r.get(key)
	if !ok {
		return zero, &NotRegisteredError{Type: key}
	}

	// The registry lock is already released here, so a running factory can
	// resolve its own dependencies from the registry.
	v, err := e.resolve()
	if err != nil {
		return zero, errors.Wrapf(err, "building service %s", key)
	}

	instance, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("service registered for %s has unexpected type %T", key, v)
	}

	return instance, nil
}

// MustResolve is Resolve for composition-root code where a missing service is
// fatal misconfiguration. It panics instead of returning an error.
func MustResolve[T any](r *Registry) T {
	v, err := Resolve[T](r)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}

	return v
}
