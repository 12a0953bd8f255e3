package ecs

import "reflect"

// Commands buffers structural operations for execution at the end of a
// frame, so systems can spawn, despawn, and reshape entities without
// invalidating the rows they are iterating.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty command buffer. The scheduler creates one
// per frame; worlds driven by hand can flush their own.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues an arbitrary function to run during the flush, after all
// structural commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Despawn queues an entity despawn.
func (c *Commands) Despawn(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component insertion.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal. The removed value is
// discarded without running its cleanup hook, matching direct removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Flush applies the buffered commands to world and resets the buffer.
// Despawns run first; component commands targeting an entity that is dead
// by the time the flush reaches them are silently dropped, since the
// handle's staleness is expected rather than a caller bug.
func (c *Commands) Flush(world *World) {
	for _, entity := range c.deletes {
		if world.IsLive(entity) {
			_ = world.Despawn(entity)
		}
	}

	for _, cmd := range c.removes {
		if world.IsLive(cmd.entity) {
			_, _ = world.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if world.IsLive(cmd.entity) {
			_ = world.InsertComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		world.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
