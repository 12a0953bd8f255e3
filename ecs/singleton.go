package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides typed access to one world resource, a value keyed by
// its type and owned by the world rather than any entity. Use it for
// global state and configuration.
type Singleton[T any] struct {
	world        *World
	resourcePtr  unsafe.Pointer
	resourceType reflect.Type
}

// NewSingleton creates a Singleton accessor for world. If initializer is
// provided and no resource of type T exists yet, it is created with the
// initializer value, otherwise with a zero value, so the resource is
// guaranteed to exist after the call.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	resourceType := reflect.TypeFor[T]()

	entry := world.getResourceEntry(resourceType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		world.AddResource(value)
		entry = world.getResourceEntry(resourceType)
	}

	return &Singleton[T]{
		world:        world,
		resourcePtr:  entry.dataPtr,
		resourceType: resourceType,
	}
}

// Init initializes the Singleton with a world reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(world *World) {
	s.world = world
	s.resourceType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the resource, or nil if no resource of type T
// has been added to the world.
func (s *Singleton[T]) Get() *T {
	if s.resourcePtr == nil {
		s.updateCache()
	}
	if s.resourcePtr == nil {
		return nil
	}
	return (*T)(s.resourcePtr)
}

func (s *Singleton[T]) updateCache() {
	if s.world == nil {
		return
	}
	entry := s.world.getResourceEntry(s.resourceType)
	if entry != nil {
		s.resourcePtr = entry.dataPtr
	} else {
		s.resourcePtr = nil
	}
}

// Exists reports whether a resource of type T has been added to the world.
func (s *Singleton[T]) Exists() bool {
	if s.resourcePtr == nil {
		s.updateCache()
	}
	return s.resourcePtr != nil
}
