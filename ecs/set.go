package ecs

import (
	"slices"

	"github.com/TheBitDrifter/mask"
)

// ComponentSet is an immutable, ordered set of component ids. The bitmask
// keys the archetype map and answers superset/disjointness tests during
// query matching; the sorted slice serves enumeration and membership.
type ComponentSet struct {
	bits mask.Mask
	ids  []ComponentId
}

// newComponentSet builds a set from ids, deduplicating and sorting.
func newComponentSet(ids []ComponentId) ComponentSet {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var bits mask.Mask
	for _, id := range sorted {
		bits.Mark(uint32(id))
	}
	return ComponentSet{bits: bits, ids: sorted}
}

// Contains reports whether id is a member.
func (s ComponentSet) Contains(id ComponentId) bool {
	_, ok := slices.BinarySearch(s.ids, id)
	return ok
}

// With returns a new set with id added.
func (s ComponentSet) With(id ComponentId) ComponentSet {
	if s.Contains(id) {
		return s
	}
	ids := make([]ComponentId, 0, len(s.ids)+1)
	ids = append(ids, s.ids...)
	ids = append(ids, id)
	return newComponentSet(ids)
}

// Without returns a new set with id removed.
func (s ComponentSet) Without(id ComponentId) ComponentSet {
	if !s.Contains(id) {
		return s
	}
	ids := make([]ComponentId, 0, len(s.ids)-1)
	for _, existing := range s.ids {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	return newComponentSet(ids)
}

// Ids returns the members in ascending order. Callers must not mutate the
// returned slice.
func (s ComponentSet) Ids() []ComponentId {
	return s.ids
}

// Len returns the number of members.
func (s ComponentSet) Len() int {
	return len(s.ids)
}

// key returns the mask under which archetypes with this set are indexed.
func (s ComponentSet) key() mask.Mask {
	return s.bits
}

// maskOf builds a bare bitmask from ids, for query compilation.
func maskOf(ids []ComponentId) mask.Mask {
	var m mask.Mask
	for _, id := range ids {
		m.Mark(uint32(id))
	}
	return m
}
