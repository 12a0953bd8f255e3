package ecs

import "fmt"

// EntityNotFoundError reports an operation against an entity index that was
// never allocated. Recoverable; the caller decides whether to ignore it.
type EntityNotFoundError struct {
	Entity EntityId
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d not found", e.Entity)
}

// InvalidEntityError reports a stale handle: the index exists but its
// generation no longer matches, i.e. use after despawn.
type InvalidEntityError struct {
	Entity EntityId
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("entity %d is stale (generation %d of index %d was despawned)",
		e.Entity, e.Entity.Generation(), e.Entity.Index())
}
