package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// column is one contiguous array of component values plus the parallel
// change-tick array. The backing slice is allocated through reflect so
// pointer-bearing component types stay visible to the garbage collector;
// base caches the slice's data pointer for typed access without reflection.
type column struct {
	info  *ComponentInfo
	data  reflect.Value // []T with len == cap, windowed by the table's len
	base  unsafe.Pointer
	ticks []componentTicks
}

func (c *column) grow(newCap int) {
	grown := reflect.MakeSlice(reflect.SliceOf(c.info.typ), newCap, newCap)
	reflect.Copy(grown, c.data)
	c.data = grown
	c.base = grown.UnsafePointer()

	ticks := make([]componentTicks, newCap)
	copy(ticks, c.ticks)
	c.ticks = ticks
}

// ptr returns the address of the value at row. Valid until the next growth.
func (c *column) ptr(row int) unsafe.Pointer {
	return unsafe.Add(c.base, uintptr(row)*c.info.size)
}

// table is the columnar backing store for one archetype's table-stored
// components. All columns always have equal capacity and share one length;
// row i across every column plus entities[i] describes one entity. Rows are
// kept dense by swap-remove, so a row index is only stable until the next
// structural mutation.
type table struct {
	ids      []ComponentId
	columns  []column
	slots    [MaxComponentTypes]int8 // ComponentId -> column index, -1 absent
	entities []EntityId
	len      int
	cap      int
}

func newTable(registry *ComponentRegistry, ids []ComponentId) *table {
	t := &table{ids: ids}
	for i := range t.slots {
		t.slots[i] = -1
	}
	t.columns = make([]column, len(ids))
	for i, id := range ids {
		info := registry.Info(id)
		t.columns[i] = column{
			info: info,
			data: reflect.MakeSlice(reflect.SliceOf(info.typ), 0, 0),
		}
		t.slots[id] = int8(i)
	}
	return t
}

func (t *table) Len() int {
	return t.len
}

// columnFor returns the column holding id, or nil if the table has none.
func (t *table) columnFor(id ComponentId) *column {
	slot := t.slots[id]
	if slot < 0 {
		return nil
	}
	return &t.columns[slot]
}

// allocateRow appends a zeroed slot to every column and records the owning
// entity. Amortized O(1) via geometric growth.
func (t *table) allocateRow(e EntityId) int {
	if t.len == t.cap {
		newCap := t.cap * 2
		if newCap < 8 {
			newCap = 8
		}
		for i := range t.columns {
			t.columns[i].grow(newCap)
		}
		t.cap = newCap
		t.checkIntegrity()
	}
	row := t.len
	t.entities = append(t.entities, e)
	t.len++
	return row
}

// set writes v into the column for id at row. isNew stamps the added tick;
// an overwrite runs the previous value's cleanup hook first.
func (t *table) set(id ComponentId, row int, v reflect.Value, tick Tick, isNew bool) {
	c := t.columnFor(id)
	element := c.data.Index(row)
	if !isNew {
		c.info.dropValue(element)
	}
	element.Set(v)
	if isNew {
		c.ticks[row].added = tick
	}
	c.ticks[row].changed = tick
}

// valueAt returns a pointer to the value at row, as *T boxed in an any.
func (t *table) valueAt(id ComponentId, row int) any {
	return t.columnFor(id).data.Index(row).Addr().Interface()
}

// extractAt copies the value at row out of the table, transferring
// ownership: no cleanup hook runs.
func (t *table) extractAt(id ComponentId, row int) any {
	c := t.columnFor(id)
	out := reflect.New(c.info.typ).Elem()
	out.Set(c.data.Index(row))
	return out.Interface()
}

// copySharedRow copies every column present in both tables from srcRow into
// dst's dstRow, change ticks included. Columns dst lacks are skipped.
func (t *table) copySharedRow(dst *table, srcRow, dstRow int) {
	for i, id := range t.ids {
		dc := dst.columnFor(id)
		if dc == nil {
			continue
		}
		sc := &t.columns[i]
		dc.data.Index(dstRow).Set(sc.data.Index(srcRow))
		dc.ticks[dstRow] = sc.ticks[srcRow]
	}
}

// dropRow runs cleanup hooks for every value in row. The slots still hold
// the dropped values afterwards; callers follow up with swapRemoveRow.
func (t *table) dropRow(row int) {
	for i := range t.columns {
		c := &t.columns[i]
		c.info.dropValue(c.data.Index(row))
	}
}

// swapRemoveRow removes row by moving the last row into its place across
// every column, keeping the table dense. It returns the entity that now
// occupies row, so the caller can fix that entity's location; ok is false
// when row was the last row and nothing moved. No cleanup hooks run; the
// caller has already dropped or extracted the row's values. The vacated
// tail slot is zeroed so the collector can reclaim anything it referenced.
func (t *table) swapRemoveRow(row int) (relocated EntityId, ok bool) {
	last := t.len - 1
	moved := row != last
	if moved {
		for i := range t.columns {
			c := &t.columns[i]
			c.data.Index(row).Set(c.data.Index(last))
			c.ticks[row] = c.ticks[last]
		}
		t.entities[row] = t.entities[last]
	}
	for i := range t.columns {
		c := &t.columns[i]
		c.data.Index(last).SetZero()
		c.ticks[last] = componentTicks{}
	}
	t.entities = t.entities[:last]
	t.len = last
	if moved {
		return t.entities[row], true
	}
	return 0, false
}

// checkIntegrity verifies the equal-length column invariant. A mismatch
// means the store is corrupt and cannot be safely continued past.
func (t *table) checkIntegrity() {
	for i := range t.columns {
		c := &t.columns[i]
		if c.data.Len() != t.cap || len(c.ticks) != t.cap {
			panic(fmt.Sprintf("table corrupt: column %s has capacity %d, want %d",
				c.info.typ.String(), c.data.Len(), t.cap))
		}
	}
	if len(t.entities) != t.len {
		panic(fmt.Sprintf("table corrupt: %d entity slots for %d rows", len(t.entities), t.len))
	}
}
