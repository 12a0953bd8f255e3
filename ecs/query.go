package ecs

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// QueryShape is the untyped description of a query: components an entity
// must have, must not have, and tick filters. Changed and Added members are
// implicitly required.
type QueryShape struct {
	Require []ComponentId
	Without []ComponentId
	Changed []ComponentId
	Added   []ComponentId
}

// queryKey identifies a compiled query. Masks are comparable, so shapes
// that name the same component sets share one cache entry regardless of
// slice ordering.
type queryKey struct {
	require mask.Mask
	without mask.Mask
	changed mask.Mask
	added   mask.Mask
}

// queryCache holds the archetypes matching one shape. Archetypes are never
// deleted and their sets never change, so the matched list only ever grows;
// watermark records how far into the arena matching has progressed.
type queryCache struct {
	require   mask.Mask
	without   mask.Mask
	matched   []ArchetypeId
	watermark int
}

func (c *queryCache) extend(w *World) {
	for ; c.watermark < len(w.archetypes.arena); c.watermark++ {
		a := w.archetypes.arena[c.watermark]
		if !a.set.bits.ContainsAll(c.require) {
			continue
		}
		// mask.ContainsNone reports false for an empty argument, so the
		// exclusion test only runs when there are exclusions.
		if c.without.IsEmpty() || a.set.bits.ContainsNone(c.without) {
			c.matched = append(c.matched, a.id)
		}
	}
}

// cachedQuery compiles shape, reusing a prior compilation when one exists.
// A component listed as both required and excluded can never match anything
// and is a programming error.
func (w *World) cachedQuery(shape QueryShape) *queryCache {
	require := maskOf(shape.Require)
	for _, id := range shape.Changed {
		require.Mark(uint32(id))
	}
	for _, id := range shape.Added {
		require.Mark(uint32(id))
	}
	without := maskOf(shape.Without)
	if require.ContainsAny(without) {
		panic("query requires and excludes the same component")
	}

	key := queryKey{
		require: require,
		without: without,
		changed: maskOf(shape.Changed),
		added:   maskOf(shape.Added),
	}
	c, ok := w.queries[key]
	if !ok {
		c = &queryCache{require: require, without: without}
		w.queries[key] = c
	}
	c.extend(w)
	return c
}

// ticksFor returns the change ticks of e's value of id, wherever it is
// stored. The component must be present.
func (w *World) ticksFor(a *Archetype, row int, entityIndex uint32, id ComponentId) *componentTicks {
	if c := a.table.columnFor(id); c != nil {
		return &c.ticks[row]
	}
	s := w.sparse[id]
	return s.ticksAt(s.locate(entityIndex))
}

// QueryIter is a restartable iterator over the entities matching a shape.
// Results reflect the world as of each call to Entities; structural
// mutation during iteration is not supported.
type QueryIter struct {
	world *World
	cache *queryCache
	shape QueryShape
	since Tick
}

// RunQuery returns an iterator over entities matching shape. Changed and
// Added filters compare against since: a value passes when its tick is
// strictly greater. since zero disables tick filtering since live ticks
// start at one.
func (w *World) RunQuery(shape QueryShape, since Tick) *QueryIter {
	return &QueryIter{world: w, cache: w.cachedQuery(shape), shape: shape, since: since}
}

func (it *QueryIter) passesTickFilters(a *Archetype, row int, entityIndex uint32) bool {
	for _, id := range it.shape.Changed {
		if !it.world.ticksFor(a, row, entityIndex, id).changedSince(it.since) {
			return false
		}
	}
	for _, id := range it.shape.Added {
		if !it.world.ticksFor(a, row, entityIndex, id).addedSince(it.since) {
			return false
		}
	}
	return true
}

// Entities iterates the matching entities in archetype order, row order
// within each archetype.
func (it *QueryIter) Entities() iter.Seq[EntityId] {
	it.cache.extend(it.world)
	return func(yield func(EntityId) bool) {
		for _, aid := range it.cache.matched {
			a := it.world.archetypes.arena[aid]
			for row := 0; row < a.table.len; row++ {
				e := a.table.entities[row]
				if !it.passesTickFilters(a, row, e.Index()) {
					continue
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Count returns the number of matching entities. With no tick filters this
// is a sum of archetype lengths and touches no component data.
func (it *QueryIter) Count() int {
	it.cache.extend(it.world)
	total := 0
	filtered := len(it.shape.Changed) > 0 || len(it.shape.Added) > 0
	for _, aid := range it.cache.matched {
		a := it.world.archetypes.arena[aid]
		if !filtered {
			total += a.table.len
			continue
		}
		for row := 0; row < a.table.len; row++ {
			if it.passesTickFilters(a, row, a.table.entities[row].Index()) {
				total++
			}
		}
	}
	return total
}

// Query wraps a View with per-frame caching for repeated iteration. Execute
// rebuilds the entity and view-struct arrays; Iter and Values then serve
// from the arrays without touching the store. Tick-filtered views use the
// tick of the previous Execute as their baseline, so each frame sees only
// writes since the last.
type Query[T any] struct {
	view    *View[T]
	world   *World
	lastRun Tick

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query over world for the view struct T.
func NewQuery[T any](world *World) *Query[T] {
	q := &Query[T]{}
	q.Init(world)
	return q
}

// Init initializes or re-initializes the Query with a world.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(world *World) {
	q.view = NewView[T](world)
	q.world = world
	q.lastRun = 0
	q.cacheValid = false
}

// Execute builds the entity and component caches for this frame.
// Called automatically by the Scheduler before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.IterSince(q.lastRun) {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.lastRun = q.world.CurrentTick()
	q.cacheValid = true
}

func (q *Query[T]) invalidateCache() {
	q.cacheValid = false
}

// Iter returns an iterator over entity IDs and view structs.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over view structs only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
