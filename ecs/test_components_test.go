package ecs_test

import "github.com/plus3/chassis/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Sparse-stored marker types, added and removed frequently in tests
type Frozen struct{}

type Burning struct {
	Remaining float32
}

type Score int32
type Tag string

type Inventory struct {
	Items []string
}

type Target struct {
	Enemy *Name
}

// Handle tracks cleanup hook invocations for ownership tests.
type Handle struct {
	Closed *int
}

func (h *Handle) Drop() {
	if h.Closed != nil {
		*h.Closed++
	}
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry, ecs.StorageTable)
	ecs.RegisterComponent[Velocity](registry, ecs.StorageTable)
	ecs.RegisterComponent[Name](registry, ecs.StorageTable)
	ecs.RegisterComponent[Health](registry, ecs.StorageTable)
	ecs.RegisterComponent[PlayerController](registry, ecs.StorageTable)
	ecs.RegisterComponent[AI](registry, ecs.StorageTable)
	ecs.RegisterComponent[Score](registry, ecs.StorageTable)
	ecs.RegisterComponent[Tag](registry, ecs.StorageTable)
	ecs.RegisterComponent[Inventory](registry, ecs.StorageTable)
	ecs.RegisterComponent[Target](registry, ecs.StorageTable)
	ecs.RegisterComponent[Handle](registry, ecs.StorageTable)
	ecs.RegisterComponent[Frozen](registry, ecs.StorageSparse)
	ecs.RegisterComponent[Burning](registry, ecs.StorageSparse)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}
