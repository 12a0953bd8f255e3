package ecs

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"github.com/kamstrup/intmap"
)

// ArchetypeId indexes the world's archetype arena.
type ArchetypeId uint32

// Archetype groups every entity whose component set is exactly `set`. It
// owns one table for the set's table-stored members and records which
// sparse sets its entities participate in. Add/remove transitions to
// neighboring archetypes are memoized in the edge maps; since component
// sets are immutable and archetypes are never deleted, cached edges never
// need invalidation.
type Archetype struct {
	id          ArchetypeId
	set         ComponentSet
	table       *table
	sparseIds   []ComponentId
	addEdges    *intmap.Map[ComponentId, ArchetypeId]
	removeEdges *intmap.Map[ComponentId, ArchetypeId]
}

// ID returns the archetype's arena index.
func (a *Archetype) ID() ArchetypeId {
	return a.id
}

// Components returns the archetype's component ids in ascending order.
// Callers must not mutate the returned slice.
func (a *Archetype) Components() []ComponentId {
	return a.set.ids
}

// Contains reports whether id is part of the archetype's component set.
func (a *Archetype) Contains(id ComponentId) bool {
	return a.set.Contains(id)
}

// EntityCount returns the number of entities currently in the archetype.
func (a *Archetype) EntityCount() int {
	return a.table.Len()
}

// Entities iterates the archetype's entities in row order. The sequence is
// invalidated by any structural mutation.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, e := range a.table.entities {
			if !yield(e) {
				return
			}
		}
	}
}

// archetypeIndex is the arena of all archetypes plus the mask-keyed lookup.
// Growth is monotonic; the arena's length doubles as the watermark query
// caches use to pick up newly created archetypes.
type archetypeIndex struct {
	arena []*Archetype
	byKey map[mask.Mask]ArchetypeId
}

// getOrCreateArchetype returns the archetype for set, creating and wiring
// it on first use.
func (w *World) getOrCreateArchetype(set ComponentSet) *Archetype {
	if id, ok := w.archetypes.byKey[set.key()]; ok {
		return w.archetypes.arena[id]
	}

	var tableIds, sparseIds []ComponentId
	for _, id := range set.Ids() {
		if w.registry.Info(id).storage == StorageTable {
			tableIds = append(tableIds, id)
		} else {
			sparseIds = append(sparseIds, id)
		}
	}

	a := &Archetype{
		id:          ArchetypeId(len(w.archetypes.arena)),
		set:         set,
		table:       newTable(w.registry, tableIds),
		sparseIds:   sparseIds,
		addEdges:    intmap.New[ComponentId, ArchetypeId](8),
		removeEdges: intmap.New[ComponentId, ArchetypeId](8),
	}
	w.archetypes.arena = append(w.archetypes.arena, a)
	w.archetypes.byKey[set.key()] = a.id

	for _, id := range sparseIds {
		w.sparseFor(id)
	}
	return a
}

// transitionAdd resolves the archetype an entity of a moves to when the
// component id is added, computing and caching the edge on first use.
func (w *World) transitionAdd(a *Archetype, id ComponentId) *Archetype {
	if target, ok := a.addEdges.Get(id); ok {
		return w.archetypes.arena[target]
	}
	target := w.getOrCreateArchetype(a.set.With(id))
	a.addEdges.Put(id, target.id)
	return target
}

// transitionRemove is the removal mirror of transitionAdd.
func (w *World) transitionRemove(a *Archetype, id ComponentId) *Archetype {
	if target, ok := a.removeEdges.Get(id); ok {
		return w.archetypes.arena[target]
	}
	target := w.getOrCreateArchetype(a.set.Without(id))
	a.removeEdges.Put(id, target.id)
	return target
}
