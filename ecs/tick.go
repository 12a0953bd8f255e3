package ecs

// Tick is the world's monotonically increasing change counter. The Scheduler
// advances it before every system run; every component write is stamped with
// the tick current at write time.
type Tick uint64

// componentTicks travels with every stored component value. added is stamped
// when the value first enters the entity's component set, changed on every
// write (including in-place overwrites and mutable view access).
type componentTicks struct {
	added   Tick
	changed Tick
}

func (t componentTicks) addedSince(since Tick) bool {
	return t.added > since
}

func (t componentTicks) changedSince(since Tick) bool {
	return t.changed > since
}
