package ecs

import (
	"fmt"
	"reflect"
)

// ComponentId is a dense integer assigned once per component type at first
// registration, stable for the process lifetime.
type ComponentId uint32

// MaxComponentTypes bounds the number of distinct component types per
// registry. Component ids double as bit positions in archetype masks, so the
// cap keeps every id inside one mask word.
const MaxComponentTypes = 64

// StorageKind selects the backing storage strategy for a component type.
type StorageKind uint8

const (
	// StorageTable stores values in per-archetype columnar tables:
	// contiguous iteration, but every add/remove of the component migrates
	// the entity's table row.
	StorageTable StorageKind = iota
	// StorageSparse stores values in one per-type sparse set shared across
	// archetypes. Suited to components that are added and removed far more
	// often than they are iterated in bulk.
	StorageSparse
)

func (k StorageKind) String() string {
	switch k {
	case StorageTable:
		return "table"
	case StorageSparse:
		return "sparse"
	}
	return fmt.Sprintf("StorageKind(%d)", uint8(k))
}

// Droppable is implemented by component types that own external resources.
// Drop is invoked exactly once when a stored value is discarded: overwritten
// in place, despawned with its entity, or torn down with the world. It is
// not invoked when RemoveComponent hands the value back to the caller.
type Droppable interface {
	Drop()
}

var droppableType = reflect.TypeFor[Droppable]()

// ComponentInfo is the runtime type descriptor captured at registration and
// consulted by the storage layers.
type ComponentInfo struct {
	id        ComponentId
	typ       reflect.Type
	size      uintptr
	align     uintptr
	storage   StorageKind
	droppable bool
}

func (ci *ComponentInfo) Id() ComponentId      { return ci.id }
func (ci *ComponentInfo) Type() reflect.Type   { return ci.typ }
func (ci *ComponentInfo) Size() uintptr        { return ci.size }
func (ci *ComponentInfo) Align() uintptr       { return ci.align }
func (ci *ComponentInfo) Storage() StorageKind { return ci.storage }

// dropValue runs the cleanup hook for one stored value. v must be an
// addressable element of a storage array.
func (ci *ComponentInfo) dropValue(v reflect.Value) {
	if !ci.droppable {
		return
	}
	v.Addr().Interface().(Droppable).Drop()
}

// ComponentRegistry assigns component ids and records type descriptors.
// Each World has its own registry; ids are only meaningful within it.
// There is no unregistration: once assigned, an id is valid for the
// process lifetime.
type ComponentRegistry struct {
	byType map[reflect.Type]ComponentId
	infos  []ComponentInfo
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]ComponentId),
	}
}

// RegisterComponent registers T with the given storage strategy and returns
// its id. Registration is idempotent per type; re-registering with a
// different StorageKind panics, since the strategy is fixed at first use.
func RegisterComponent[T any](r *ComponentRegistry, storage StorageKind) ComponentId {
	return r.register(reflect.TypeFor[T](), storage)
}

// RegisterType is the non-generic form of RegisterComponent, for callers
// holding a reflect.Type rather than a static type.
func (r *ComponentRegistry) RegisterType(t reflect.Type, storage StorageKind) ComponentId {
	return r.register(t, storage)
}

func (r *ComponentRegistry) register(t reflect.Type, storage StorageKind) ComponentId {
	if id, ok := r.byType[t]; ok {
		if r.infos[id].storage != storage {
			panic(fmt.Sprintf("component type %s already registered with %s storage",
				t.String(), r.infos[id].storage))
		}
		return id
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	if len(r.infos) >= MaxComponentTypes {
		panic(fmt.Sprintf("component type limit (%d) exceeded registering %s",
			MaxComponentTypes, t.String()))
	}

	id := ComponentId(len(r.infos))
	r.infos = append(r.infos, ComponentInfo{
		id:        id,
		typ:       t,
		size:      t.Size(),
		align:     uintptr(t.Align()),
		storage:   storage,
		droppable: reflect.PointerTo(t).Implements(droppableType),
	})
	r.byType[t] = id
	return id
}

// ComponentIdFor returns the id registered for T, panicking if T was never
// registered.
func ComponentIdFor[T any](r *ComponentRegistry) ComponentId {
	return r.idFor(reflect.TypeFor[T]())
}

// Lookup returns the id for a registered type.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentId, bool) {
	id, ok := r.byType[t]
	return id, ok
}

// idFor is the contract-enforcing variant of Lookup: using a type that was
// never registered is a programming error, not a runtime condition.
func (r *ComponentRegistry) idFor(t reflect.Type) ComponentId {
	id, ok := r.byType[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return id
}

// Info returns the descriptor for id. The pointer stays valid for the
// registry's lifetime; descriptors are immutable after registration.
func (r *ComponentRegistry) Info(id ComponentId) *ComponentInfo {
	return &r.infos[id]
}

// Layout returns the byte size and alignment recorded for id.
func (r *ComponentRegistry) Layout(id ComponentId) (size, align uintptr) {
	info := &r.infos[id]
	return info.size, info.align
}

// Count returns the number of registered component types.
func (r *ComponentRegistry) Count() int {
	return len(r.infos)
}
