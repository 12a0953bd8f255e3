package ecs_test

import (
	"fmt"
	"reflect"
	"testing"
	"unsafe"

	"github.com/plus3/chassis/ecs"
	"github.com/stretchr/testify/assert"
)

func TestRegisterComponentAssignsDenseIds(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	posId := ecs.RegisterComponent[Position](registry, ecs.StorageTable)
	velId := ecs.RegisterComponent[Velocity](registry, ecs.StorageTable)

	assert.Equal(t, ecs.ComponentId(0), posId)
	assert.Equal(t, ecs.ComponentId(1), velId)
	assert.Equal(t, 2, registry.Count())
}

func TestRegisterComponentIdempotent(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	first := ecs.RegisterComponent[Position](registry, ecs.StorageTable)
	second := ecs.RegisterComponent[Position](registry, ecs.StorageTable)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, registry.Count())
}

func TestRegisterComponentStorageMismatchPanics(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry, ecs.StorageTable)

	assert.Panics(t, func() {
		ecs.RegisterComponent[Position](registry, ecs.StorageSparse)
	})
}

func TestRegisterComponentRejectsReferenceKinds(t *testing.T) {
	assert.Panics(t, func() {
		ecs.RegisterComponent[*Position](ecs.NewComponentRegistry(), ecs.StorageTable)
	})
	assert.Panics(t, func() {
		ecs.RegisterComponent[map[string]int](ecs.NewComponentRegistry(), ecs.StorageTable)
	})
	assert.Panics(t, func() {
		ecs.RegisterComponent[chan int](ecs.NewComponentRegistry(), ecs.StorageTable)
	})
	assert.Panics(t, func() {
		ecs.RegisterComponent[func()](ecs.NewComponentRegistry(), ecs.StorageTable)
	})
}

func TestRegisterComponentAllowsContainedReferences(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	// Structs holding slices, maps, or pointers are fine; only top-level
	// reference kinds are rejected.
	assert.NotPanics(t, func() {
		ecs.RegisterComponent[Inventory](registry, ecs.StorageTable)
		ecs.RegisterComponent[Target](registry, ecs.StorageTable)
	})
}

func TestComponentInfoLayout(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	id := ecs.RegisterComponent[Position](registry, ecs.StorageTable)

	size, align := registry.Layout(id)
	assert.Equal(t, unsafe.Sizeof(Position{}), size)
	assert.Equal(t, uintptr(unsafe.Alignof(Position{})), align)

	info := registry.Info(id)
	assert.Equal(t, reflect.TypeOf(Position{}), info.Type())
	assert.Equal(t, ecs.StorageTable, info.Storage())
}

func TestComponentIdFor(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	id := ecs.RegisterComponent[Health](registry, ecs.StorageTable)

	assert.Equal(t, id, ecs.ComponentIdFor[Health](registry))
	assert.Panics(t, func() {
		ecs.ComponentIdFor[Velocity](registry)
	})
}

func TestLookupUnregistered(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	_, ok := registry.Lookup(reflect.TypeOf(Position{}))
	assert.False(t, ok)
}

func TestStorageKindString(t *testing.T) {
	assert.Equal(t, "table", ecs.StorageTable.String())
	assert.Equal(t, "sparse", ecs.StorageSparse.String())
}

func TestComponentTypeLimit(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	types := registerManyTypes(registry, ecs.MaxComponentTypes)
	assert.Equal(t, ecs.MaxComponentTypes, registry.Count())
	assert.NotEmpty(t, types)

	assert.Panics(t, func() {
		ecs.RegisterComponent[Position](registry, ecs.StorageTable)
	})
}

// registerManyTypes fills the registry with distinct array types, since each
// distinct length is a distinct reflect.Type.
func registerManyTypes(registry *ecs.ComponentRegistry, n int) []reflect.Type {
	registered := make([]reflect.Type, 0, n)
	for i := 0; len(registered) < n; i++ {
		t := reflect.ArrayOf(i+1, reflect.TypeOf(byte(0)))
		registry.RegisterType(t, ecs.StorageTable)
		registered = append(registered, t)
	}
	return registered
}

func TestRegistryIsPerWorld(t *testing.T) {
	a := ecs.NewComponentRegistry()
	b := ecs.NewComponentRegistry()

	ecs.RegisterComponent[Velocity](a, ecs.StorageTable)
	idA := ecs.RegisterComponent[Position](a, ecs.StorageTable)
	idB := ecs.RegisterComponent[Position](b, ecs.StorageTable)

	assert.NotEqual(t, idA, idB, fmt.Sprintf("ids %d and %d should differ across registries", idA, idB))
}
