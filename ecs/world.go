package ecs

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

// entityLocation records where a live entity's data resides. row indexes
// the archetype's table and is only stable until the next structural
// mutation; the location index is corrected as the final step of every
// migration.
type entityLocation struct {
	archetype ArchetypeId
	row       int32
}

// World is the entity store: allocator, location index, archetype arena,
// the shared sparse sets, and the change-tick counter. It is single-writer;
// structural mutations assume exclusive access for their duration.
type World struct {
	registry   *ComponentRegistry
	allocator  entityAllocator
	locations  []entityLocation
	archetypes archetypeIndex
	sparse     []*sparseSet // indexed by ComponentId, nil for table-stored types
	resources  map[reflect.Type]*resourceEntry
	queries    map[queryKey]*queryCache
	tick       Tick
}

// NewWorld creates an empty world over the given registry. The empty
// archetype exists from the start; entities spawned with no components
// live there.
func NewWorld(registry *ComponentRegistry) *World {
	w := &World{
		registry:   registry,
		archetypes: archetypeIndex{byKey: make(map[mask.Mask]ArchetypeId)},
		sparse:     make([]*sparseSet, MaxComponentTypes),
		resources:  make(map[reflect.Type]*resourceEntry),
		queries:    make(map[queryKey]*queryCache),
		tick:       1,
	}
	w.getOrCreateArchetype(newComponentSet(nil))
	return w
}

// Registry returns the component registry the world was built over.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// CurrentTick returns the world's change counter.
func (w *World) CurrentTick() Tick {
	return w.tick
}

// AdvanceTick increments the change counter and returns the new value.
// The scheduler calls this before every system run; writes between two
// advances all carry the same tick.
func (w *World) AdvanceTick() Tick {
	w.tick++
	return w.tick
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.allocator.liveCount()
}

// IsLive reports whether e refers to a live entity.
func (w *World) IsLive(e EntityId) bool {
	return w.allocator.isLive(e)
}

// Archetypes returns the archetype arena. The slice grows monotonically;
// callers must not mutate it.
func (w *World) Archetypes() []*Archetype {
	return w.archetypes.arena
}

// ArchetypeOf returns the archetype holding e, or nil for dead handles.
func (w *World) ArchetypeOf(e EntityId) *Archetype {
	a, _, err := w.locate(e)
	if err != nil {
		return nil
	}
	return a
}

// locate resolves e to its archetype and table row. Indices that were never
// allocated yield EntityNotFoundError; a generation mismatch yields
// InvalidEntityError (use after despawn).
func (w *World) locate(e EntityId) (*Archetype, int, error) {
	index := e.Index()
	if e == 0 || int(index) >= len(w.allocator.generations) {
		return nil, 0, EntityNotFoundError{Entity: e}
	}
	if w.allocator.generations[index] != e.Generation() {
		return nil, 0, InvalidEntityError{Entity: e}
	}
	loc := w.locations[index]
	return w.archetypes.arena[loc.archetype], int(loc.row), nil
}

// sparseFor returns the shared sparse set for id, creating it on first use.
func (w *World) sparseFor(id ComponentId) *sparseSet {
	if s := w.sparse[id]; s != nil {
		return s
	}
	info := w.registry.Info(id)
	if info.storage != StorageSparse {
		panic(fmt.Sprintf("component type %s is table-stored, not sparse", info.typ.String()))
	}
	s := newSparseSet(info)
	w.sparse[id] = s
	return s
}

// componentValue normalizes one component argument: pointers are
// dereferenced, so Position{...} and &Position{...} are interchangeable.
func componentValue(component any) (reflect.Value, reflect.Type) {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v, v.Type()
}

// Spawn creates a new entity holding the given components and returns its
// id. All component types must be registered; passing the same type twice
// is a programming error. Spawning with no components is allowed and lands
// the entity in the empty archetype.
func (w *World) Spawn(components ...any) EntityId {
	ids := make([]ComponentId, len(components))
	values := make([]reflect.Value, len(components))
	var seen mask.Mask
	for i, component := range components {
		v, t := componentValue(component)
		id := w.registry.idFor(t)
		single := maskOf([]ComponentId{id})
		if seen.ContainsAll(single) {
			panic("duplicate component type in Spawn: " + t.String())
		}
		seen.Mark(uint32(id))
		ids[i] = id
		values[i] = v
	}

	e := w.allocator.allocate()
	for int(e.Index()) >= len(w.locations) {
		w.locations = append(w.locations, entityLocation{})
	}

	a := w.getOrCreateArchetype(newComponentSet(ids))
	row := a.table.allocateRow(e)
	for i, id := range ids {
		if w.registry.Info(id).storage == StorageTable {
			a.table.set(id, row, values[i], w.tick, true)
		} else {
			w.sparseFor(id).insert(e.Index(), values[i], w.tick)
		}
	}
	w.locations[e.Index()] = entityLocation{archetype: a.id, row: int32(row)}
	return e
}

// Despawn destroys e, running cleanup hooks for every owned component value
// and recycling the entity index. Stale or unknown handles return
// InvalidEntityError / EntityNotFoundError.
func (w *World) Despawn(e EntityId) error {
	a, row, err := w.locate(e)
	if err != nil {
		return err
	}

	a.table.dropRow(row)
	for _, id := range a.sparseIds {
		w.sparse[id].removeDrop(e.Index())
	}

	relocated, moved := a.table.swapRemoveRow(row)
	if moved {
		w.locations[relocated.Index()].row = int32(row)
	}
	w.locations[e.Index()] = entityLocation{}
	return w.allocator.release(e)
}

// InsertComponent attaches component to e, or overwrites in place if e
// already has the type (no migration, archetype unchanged). Otherwise the
// entity's row migrates to the neighboring archetype: shared table columns
// are copied across, the new value is written, the old row is swap-removed
// (patching the relocated entity's location), and e's location is updated
// last.
func (w *World) InsertComponent(e EntityId, component any) error {
	a, row, err := w.locate(e)
	if err != nil {
		return err
	}
	v, t := componentValue(component)
	id := w.registry.idFor(t)
	info := w.registry.Info(id)

	if a.set.Contains(id) {
		if info.storage == StorageTable {
			a.table.set(id, row, v, w.tick, false)
		} else {
			w.sparseFor(id).insert(e.Index(), v, w.tick)
		}
		return nil
	}

	target := w.transitionAdd(a, id)
	newRow := target.table.allocateRow(e)
	a.table.copySharedRow(target.table, row, newRow)
	if info.storage == StorageTable {
		target.table.set(id, newRow, v, w.tick, true)
	} else {
		w.sparseFor(id).insert(e.Index(), v, w.tick)
	}

	relocated, moved := a.table.swapRemoveRow(row)
	if moved {
		w.locations[relocated.Index()].row = int32(row)
	}
	w.locations[e.Index()] = entityLocation{archetype: target.id, row: int32(newRow)}
	return nil
}

// RemoveComponent detaches compType from e and returns the extracted value
// (ownership passes to the caller; no cleanup hook runs). Returns nil with
// no error if e does not have the component. The entity's row migrates to
// the neighboring archetype exactly as in InsertComponent.
func (w *World) RemoveComponent(e EntityId, compType reflect.Type) (any, error) {
	a, row, err := w.locate(e)
	if err != nil {
		return nil, err
	}
	id := w.registry.idFor(compType)
	if !a.set.Contains(id) {
		return nil, nil
	}
	info := w.registry.Info(id)

	var extracted any
	if info.storage == StorageTable {
		extracted = a.table.extractAt(id, row)
	} else {
		extracted, _ = w.sparse[id].removeExtract(e.Index())
	}

	target := w.transitionRemove(a, id)
	newRow := target.table.allocateRow(e)
	a.table.copySharedRow(target.table, row, newRow)

	relocated, moved := a.table.swapRemoveRow(row)
	if moved {
		w.locations[relocated.Index()].row = int32(row)
	}
	w.locations[e.Index()] = entityLocation{archetype: target.id, row: int32(newRow)}
	return extracted, nil
}

// GetComponent returns a pointer to e's value of compType as *T boxed in an
// any, or nil if e is dead or lacks the component. The pointer is valid
// only until the next structural mutation. Mutating through it does not
// stamp the changed tick; use GetComponentMut when change detection
// matters.
func (w *World) GetComponent(e EntityId, compType reflect.Type) any {
	a, row, err := w.locate(e)
	if err != nil {
		return nil
	}
	id := w.registry.idFor(compType)
	if !a.set.Contains(id) {
		return nil
	}
	if w.registry.Info(id).storage == StorageTable {
		return a.table.valueAt(id, row)
	}
	s := w.sparse[id]
	return s.valueAt(s.locate(e.Index()))
}

// GetComponentMut is GetComponent plus a changed-tick stamp at the current
// tick.
func (w *World) GetComponentMut(e EntityId, compType reflect.Type) any {
	a, row, err := w.locate(e)
	if err != nil {
		return nil
	}
	id := w.registry.idFor(compType)
	if !a.set.Contains(id) {
		return nil
	}
	if w.registry.Info(id).storage == StorageTable {
		c := a.table.columnFor(id)
		c.ticks[row].changed = w.tick
		return a.table.valueAt(id, row)
	}
	s := w.sparse[id]
	pos := s.locate(e.Index())
	s.ticks[pos].changed = w.tick
	return s.valueAt(pos)
}

// HasComponent reports whether e currently has compType.
func (w *World) HasComponent(e EntityId, compType reflect.Type) bool {
	a, _, err := w.locate(e)
	if err != nil {
		return false
	}
	id, ok := w.registry.Lookup(compType)
	if !ok {
		return false
	}
	return a.set.Contains(id)
}

// ReadComponent is the typed convenience over GetComponent.
func ReadComponent[T any](w *World, e EntityId) *T {
	v := w.GetComponent(e, reflect.TypeFor[T]())
	if v == nil {
		return nil
	}
	return v.(*T)
}

// WriteComponent is the typed convenience over GetComponentMut.
func WriteComponent[T any](w *World, e EntityId) *T {
	v := w.GetComponentMut(e, reflect.TypeFor[T]())
	if v == nil {
		return nil
	}
	return v.(*T)
}

// resourceEntry holds one world-scoped value outside any entity.
type resourceEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// AddResource stores a world-scoped value keyed by its type, replacing any
// previous value of that type. Use Singleton for typed access.
func (w *World) AddResource(value any) {
	v, t := componentValue(value)
	boxed := reflect.New(t)
	boxed.Elem().Set(v)
	w.resources[t] = &resourceEntry{value: boxed, dataPtr: boxed.UnsafePointer()}
}

func (w *World) getResourceEntry(t reflect.Type) *resourceEntry {
	return w.resources[t]
}

// ArchetypeStats describes one archetype for diagnostics.
type ArchetypeStats struct {
	ID             ArchetypeId
	ComponentTypes []string
	EntityCount    int
}

// WorldStats is a point-in-time snapshot of the store's shape, consumed by
// the debug overlay and the stress reporter.
type WorldStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	ResourceCount      int
	ArchetypeBreakdown []ArchetypeStats
	ResourceTypes      []string
}

// CollectStats snapshots the world's current shape.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		TotalEntityCount: w.EntityCount(),
		ArchetypeCount:   len(w.archetypes.arena),
		ResourceCount:    len(w.resources),
	}
	for _, a := range w.archetypes.arena {
		types := make([]string, len(a.set.ids))
		for i, id := range a.set.ids {
			types[i] = w.registry.Info(id).typ.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: types,
			EntityCount:    a.EntityCount(),
		})
	}
	for t := range w.resources {
		stats.ResourceTypes = append(stats.ResourceTypes, t.String())
	}
	sort.Strings(stats.ResourceTypes)
	return stats
}
