package ecs

import (
	"reflect"
	"unsafe"
)

// sparseSet stores one component type for any number of entities across all
// archetypes: a dense value array (with parallel owner and tick arrays) plus
// a sparse index array keyed by entity index. Removal swap-removes from the
// dense arrays and patches the relocated owner's sparse entry, so the dense
// side stays packed.
type sparseSet struct {
	info     *ComponentInfo
	dense    reflect.Value // []T with len == cap, windowed by len
	base     unsafe.Pointer
	entities []uint32
	ticks    []componentTicks
	sparse   []int32 // entity index -> dense position, -1 absent
	len      int
	cap      int
}

func newSparseSet(info *ComponentInfo) *sparseSet {
	return &sparseSet{
		info:  info,
		dense: reflect.MakeSlice(reflect.SliceOf(info.typ), 0, 0),
	}
}

// locate returns the dense position for entityIndex, or -1.
func (s *sparseSet) locate(entityIndex uint32) int {
	if int(entityIndex) >= len(s.sparse) {
		return -1
	}
	return int(s.sparse[entityIndex])
}

func (s *sparseSet) has(entityIndex uint32) bool {
	return s.locate(entityIndex) >= 0
}

func (s *sparseSet) growSparse(entityIndex uint32) {
	for int(entityIndex) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
}

func (s *sparseSet) growDense() {
	newCap := s.cap * 2
	if newCap < 8 {
		newCap = 8
	}
	grown := reflect.MakeSlice(reflect.SliceOf(s.info.typ), newCap, newCap)
	reflect.Copy(grown, s.dense)
	s.dense = grown
	s.base = grown.UnsafePointer()

	ticks := make([]componentTicks, newCap)
	copy(ticks, s.ticks)
	s.ticks = ticks

	s.cap = newCap
}

// insert stores v for entityIndex, overwriting in place if already present.
// An overwrite runs the old value's cleanup hook and keeps its added tick.
func (s *sparseSet) insert(entityIndex uint32, v reflect.Value, tick Tick) {
	if pos := s.locate(entityIndex); pos >= 0 {
		element := s.dense.Index(pos)
		s.info.dropValue(element)
		element.Set(v)
		s.ticks[pos].changed = tick
		return
	}
	if s.len == s.cap {
		s.growDense()
	}
	s.growSparse(entityIndex)
	pos := s.len
	s.dense.Index(pos).Set(v)
	s.ticks[pos] = componentTicks{added: tick, changed: tick}
	s.entities = append(s.entities, entityIndex)
	s.sparse[entityIndex] = int32(pos)
	s.len++
}

// valueAt returns a pointer to the stored value, as *T boxed in an any.
func (s *sparseSet) valueAt(pos int) any {
	return s.dense.Index(pos).Addr().Interface()
}

// ptrAt returns the raw address of the value at pos. Valid until growth.
func (s *sparseSet) ptrAt(pos int) unsafe.Pointer {
	return unsafe.Add(s.base, uintptr(pos)*s.info.size)
}

func (s *sparseSet) ticksAt(pos int) *componentTicks {
	return &s.ticks[pos]
}

// removeExtract removes entityIndex's value and returns a copy of it,
// transferring ownership: no cleanup hook runs.
func (s *sparseSet) removeExtract(entityIndex uint32) (any, bool) {
	pos := s.locate(entityIndex)
	if pos < 0 {
		return nil, false
	}
	out := reflect.New(s.info.typ).Elem()
	out.Set(s.dense.Index(pos))
	s.removeAt(pos, entityIndex)
	return out.Interface(), true
}

// removeDrop removes entityIndex's value, running its cleanup hook.
func (s *sparseSet) removeDrop(entityIndex uint32) bool {
	pos := s.locate(entityIndex)
	if pos < 0 {
		return false
	}
	s.info.dropValue(s.dense.Index(pos))
	s.removeAt(pos, entityIndex)
	return true
}

func (s *sparseSet) removeAt(pos int, entityIndex uint32) {
	last := s.len - 1
	if pos != last {
		s.dense.Index(pos).Set(s.dense.Index(last))
		s.ticks[pos] = s.ticks[last]
		moved := s.entities[last]
		s.entities[pos] = moved
		s.sparse[moved] = int32(pos)
	}
	s.dense.Index(last).SetZero()
	s.ticks[last] = componentTicks{}
	s.entities = s.entities[:last]
	s.sparse[entityIndex] = -1
	s.len = last
}
