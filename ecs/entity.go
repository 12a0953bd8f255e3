package ecs

// EntityId encodes a generation counter (upper 32 bits) and a recyclable
// index (lower 32 bits). Indices are reused after despawn with the
// generation incremented, so a stale handle never aliases a new entity.
// The zero EntityId is never live.
type EntityId uint64

// NewEntityId creates an EntityId from an index and a generation.
func NewEntityId(index, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the storage index from the entity ID.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation counter from the entity ID.
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// entityAllocator issues and recycles entity indices. generations[i] is the
// currently live generation for index i; it starts at 1 and is bumped on
// every free, so released handles become detectably stale.
type entityAllocator struct {
	generations []uint32
	free        []uint32
}

func (a *entityAllocator) allocate() EntityId {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		return NewEntityId(index, a.generations[index])
	}
	index := uint32(len(a.generations))
	a.generations = append(a.generations, 1)
	return NewEntityId(index, 1)
}

func (a *entityAllocator) isLive(e EntityId) bool {
	index := e.Index()
	return e != 0 && int(index) < len(a.generations) && a.generations[index] == e.Generation()
}

func (a *entityAllocator) release(e EntityId) error {
	if !a.isLive(e) {
		return InvalidEntityError{Entity: e}
	}
	index := e.Index()
	a.generations[index]++
	a.free = append(a.free, index)
	return nil
}

func (a *entityAllocator) liveCount() int {
	return len(a.generations) - len(a.free)
}
