/*
Package ecs provides an archetype-based entity storage engine for games and
simulations.

Entities are lightweight generation-counted identifiers. Components are plain
Go values attached to entities at runtime; every distinct set of component
types in use is materialized as an archetype. Components registered with
StorageTable live in per-archetype columnar tables for cache-friendly bulk
iteration; components registered with StorageSparse live in per-type sparse
sets shared across archetypes, which keeps high-churn tag components from
multiplying archetype tables. Adding or removing a component migrates the
entity's row to the neighboring archetype along a memoized graph edge.

Every stored value carries added/changed ticks, advanced by the Scheduler
before each system run, so queries can filter on "changed since the last
run".

Basic Usage:

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry, ecs.StorageTable)
	ecs.RegisterComponent[Velocity](registry, ecs.StorageTable)
	ecs.RegisterComponent[Burning](registry, ecs.StorageSparse)

	world := ecs.NewWorld(registry)
	e := world.Spawn(Position{X: 1}, Velocity{DX: 2})
	world.InsertComponent(e, Burning{Remaining: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)
	for id, row := range view.Iter() {
		row.Position.X += row.Velocity.DX
		_ = id
	}

The World is single-writer: structural mutations (spawn, despawn,
insert/remove component) assume exclusive access and must not overlap a
query pass. Read-only iteration may be fanned out across goroutines between
structural mutations; serializing the two is the caller's responsibility,
typically via the Scheduler and deferred Commands.
*/
package ecs
