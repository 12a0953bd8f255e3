package ecs

import (
	"iter"
	"reflect"
	"strings"
	"unsafe"
)

// viewField is one compiled binding from a view struct field to a
// component type.
type viewField struct {
	id       ComponentId
	typ      reflect.Type
	offset   uintptr
	sparse   bool
	optional bool
	mut      bool
	changed  bool
	added    bool
}

// View binds a struct of component pointers to the store. The type T must
// be a struct whose fields are pointers to registered component types;
// embedded fields are required, named fields accept an `ecs` tag with any
// of:
//
//	optional  field is nil when the entity lacks the component
//	mut       writes through the field count as changes
//	changed   tick-filtered iteration requires the value changed since
//	added     tick-filtered iteration requires the value added since
//
// Binding the same component type twice is allowed for reads but rejected
// when either binding is mut, so a filled view never aliases a writable
// pointer.
type View[T any] struct {
	world  *World
	fields []viewField
	shape  QueryShape
}

// NewView compiles the view struct T against world's registry. Malformed
// structs and unregistered component types panic: view construction errors
// are programming errors, not runtime conditions.
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{world: world}
	mutSeen := make(map[ComponentId]bool)
	seen := make(map[ComponentId]bool)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}
		componentType := field.Type.Elem()
		id := world.registry.idFor(componentType)
		info := world.registry.Info(id)

		f := viewField{
			id:     id,
			typ:    componentType,
			offset: field.Offset,
			sparse: info.storage == StorageSparse,
		}
		if tag := field.Tag.Get("ecs"); tag != "" {
			for _, opt := range strings.Split(tag, ",") {
				switch strings.TrimSpace(opt) {
				case "optional":
					f.optional = true
				case "mut":
					f.mut = true
				case "changed":
					f.changed = true
				case "added":
					f.added = true
				default:
					panic("invalid ecs tag value: \"" + opt + "\"")
				}
			}
		}
		if field.Anonymous && f.optional {
			panic("embedded view fields are always required: " + componentType.String())
		}
		if f.optional && (f.changed || f.added) {
			panic("ecs tag \"optional\" cannot combine with tick filters: " + componentType.String())
		}
		if seen[id] && (f.mut || mutSeen[id]) {
			panic("view binds " + componentType.String() + " twice with a mut binding")
		}
		seen[id] = true
		if f.mut {
			mutSeen[id] = true
		}

		switch {
		case f.changed:
			v.shape.Changed = append(v.shape.Changed, id)
		case f.added:
			v.shape.Added = append(v.shape.Added, id)
		case !f.optional:
			v.shape.Require = append(v.shape.Require, id)
		}
		v.fields = append(v.fields, f)
	}
	return v
}

// Without excludes entities having any of the given component types.
// Returns the view for chaining. Excluding a type the view requires makes
// the view unsatisfiable and panics.
func (v *View[T]) Without(types ...reflect.Type) *View[T] {
	for _, t := range types {
		id := v.world.registry.idFor(t)
		for _, f := range v.fields {
			if f.id == id && !f.optional {
				panic("view requires and excludes " + t.String())
			}
		}
		v.shape.Without = append(v.shape.Without, id)
	}
	return v
}

// fill populates the view struct at out for the entity at row in a.
// Returns false when a required component is missing. Fields tagged mut
// have their value's changed tick stamped at the current world tick;
// presence of every required field is checked first so a non-matching
// entity is never stamped.
func (v *View[T]) fill(a *Archetype, row int, entityIndex uint32, out unsafe.Pointer) bool {
	for i := range v.fields {
		f := &v.fields[i]
		if !f.optional && !a.set.Contains(f.id) {
			return false
		}
	}

	for i := range v.fields {
		f := &v.fields[i]
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(out, f.offset))

		if !a.set.Contains(f.id) {
			*fieldPtr = nil
			continue
		}

		if f.sparse {
			s := v.world.sparse[f.id]
			pos := s.locate(entityIndex)
			if f.mut {
				s.ticks[pos].changed = v.world.tick
			}
			*fieldPtr = s.ptrAt(pos)
		} else {
			c := a.table.columnFor(f.id)
			if f.mut {
				c.ticks[row].changed = v.world.tick
			}
			*fieldPtr = c.ptr(row)
		}
	}
	return true
}

// Get returns a populated view struct for e, or nil if e is dead or lacks
// a required component. Tick filters do not apply to direct lookups.
func (v *View[T]) Get(e EntityId) *T {
	a, row, err := v.world.locate(e)
	if err != nil {
		return nil
	}
	var result T
	if !v.fill(a, row, e.Index(), unsafe.Pointer(&result)) {
		return nil
	}
	return &result
}

// Iter yields every matching entity with its populated view struct. The
// pointers inside the struct are valid until the next structural mutation;
// mutating the store mid-iteration is not supported.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return v.IterSince(0)
}

// IterSince is Iter with tick filters evaluated against since: fields
// tagged changed or added match only entities whose value ticked strictly
// after it. since zero matches everything, since live ticks start at one.
func (v *View[T]) IterSince(since Tick) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		it := v.world.RunQuery(v.shape, since)
		var result T
		out := unsafe.Pointer(&result)
		for _, aid := range it.cache.matched {
			a := v.world.archetypes.arena[aid]
			for row := 0; row < a.table.len; row++ {
				e := a.table.entities[row]
				if !it.passesTickFilters(a, row, e.Index()) {
					continue
				}
				if !v.fill(a, row, e.Index(), out) {
					continue
				}
				if !yield(e, result) {
					return
				}
			}
		}
	}
}

// Values iterates view structs only.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities the view currently matches.
func (v *View[T]) Count() int {
	return v.world.RunQuery(v.shape, 0).Count()
}

// Spawn creates an entity from the view struct's populated fields. Nil
// optional fields are skipped; a nil required field panics.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for i := range v.fields {
		f := &v.fields[i]
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil {
			if !f.optional {
				panic("required component " + f.typ.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, componentPtr).Elem().Interface())
	}
	return v.world.Spawn(components...)
}
