package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/chassis/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posVelView struct {
	Pos *Position
	Vel *Velocity
}

func TestViewIter(t *testing.T) {
	world := newTestWorld()

	world.Spawn(&Position{X: 1}, &Velocity{DX: 10})
	world.Spawn(&Position{X: 2}, &Velocity{DX: 20}, &Health{})
	world.Spawn(&Position{X: 3})

	view := ecs.NewView[posVelView](world)

	sum := float32(0)
	count := 0
	for id, v := range view.Iter() {
		assert.True(t, world.IsLive(id))
		sum += v.Pos.X
		count++
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, float32(3), sum)
	assert.Equal(t, 2, view.Count())
}

func TestViewGet(t *testing.T) {
	world := newTestWorld()

	id := world.Spawn(&Position{X: 7}, &Velocity{DX: 8})
	other := world.Spawn(&Position{X: 1})

	view := ecs.NewView[posVelView](world)

	v := view.Get(id)
	require.NotNil(t, v)
	assert.Equal(t, float32(7), v.Pos.X)
	assert.Equal(t, float32(8), v.Vel.DX)

	// Missing required component
	assert.Nil(t, view.Get(other))

	require.NoError(t, world.Despawn(id))
	assert.Nil(t, view.Get(id))
}

func TestViewWritesThroughPointers(t *testing.T) {
	world := newTestWorld()

	id := world.Spawn(&Position{X: 1}, &Velocity{DX: 5})
	view := ecs.NewView[posVelView](world)

	for _, v := range view.Iter() {
		v.Pos.X += v.Vel.DX
	}
	assert.Equal(t, float32(6), ecs.ReadComponent[Position](world, id).X)
}

type optionalHealthView struct {
	Pos    *Position
	Health *Health `ecs:"optional"`
}

func TestViewOptional(t *testing.T) {
	world := newTestWorld()

	wounded := world.Spawn(&Position{X: 1}, &Health{Current: 50, Max: 100})
	unhurt := world.Spawn(&Position{X: 2})

	view := ecs.NewView[optionalHealthView](world)

	seen := map[ecs.EntityId]bool{}
	for id, v := range view.Iter() {
		seen[id] = true
		switch id {
		case wounded:
			require.NotNil(t, v.Health)
			assert.Equal(t, 50, v.Health.Current)
		case unhurt:
			assert.Nil(t, v.Health)
		}
	}
	assert.True(t, seen[wounded])
	assert.True(t, seen[unhurt])
}

type embeddedView struct {
	*Position
	*Velocity
}

func TestViewEmbeddedFields(t *testing.T) {
	world := newTestWorld()

	world.Spawn(&Position{X: 4}, &Velocity{DX: 2})
	world.Spawn(&Position{X: 9})

	view := ecs.NewView[embeddedView](world)

	count := 0
	for _, v := range view.Iter() {
		assert.Equal(t, float32(4), v.Position.X)
		assert.Equal(t, float32(2), v.Velocity.DX)
		count++
	}
	assert.Equal(t, 1, count)
}

func TestViewWithout(t *testing.T) {
	world := newTestWorld()

	type posView struct {
		Pos *Position
	}

	player := world.Spawn(&Position{X: 1}, PlayerController{})
	world.Spawn(&Position{X: 2}, AI{})

	view := ecs.NewView[posView](world).Without(reflect.TypeOf(AI{}))

	var got []ecs.EntityId
	for id := range view.Iter() {
		got = append(got, id)
	}
	assert.Equal(t, []ecs.EntityId{player}, got)
}

func TestViewWithoutRequiredPanics(t *testing.T) {
	world := newTestWorld()

	type posView struct {
		Pos *Position
	}
	assert.Panics(t, func() {
		ecs.NewView[posView](world).Without(reflect.TypeOf(Position{}))
	})
}

type mutPosView struct {
	Pos *Position `ecs:"mut"`
}

func TestViewMutStampsChangedTick(t *testing.T) {
	world := newTestWorld()
	posId := ecs.ComponentIdFor[Position](world.Registry())

	world.Spawn(&Position{X: 1})
	baseline := world.CurrentTick()
	world.AdvanceTick()

	view := ecs.NewView[mutPosView](world)
	for _, v := range view.Iter() {
		v.Pos.X = 2
	}

	changed := world.RunQuery(ecs.QueryShape{Changed: []ecs.ComponentId{posId}}, baseline)
	assert.Equal(t, 1, changed.Count())
}

func TestViewGetOnNonMatchDoesNotStamp(t *testing.T) {
	world := newTestWorld()
	posId := ecs.ComponentIdFor[Position](world.Registry())

	type mutPosVel struct {
		Pos *Position `ecs:"mut"`
		Vel *Velocity
	}

	// The entity has the mut field's component but lacks a later required
	// one; a failed Get must leave its ticks untouched.
	id := world.Spawn(&Position{X: 1})
	baseline := world.CurrentTick()
	world.AdvanceTick()

	view := ecs.NewView[mutPosVel](world)
	assert.Nil(t, view.Get(id))

	changed := world.RunQuery(ecs.QueryShape{Changed: []ecs.ComponentId{posId}}, baseline)
	assert.Equal(t, 0, changed.Count())
}

func TestViewReadDoesNotStampChangedTick(t *testing.T) {
	world := newTestWorld()
	posId := ecs.ComponentIdFor[Position](world.Registry())

	type posView struct {
		Pos *Position
	}

	world.Spawn(&Position{X: 1})
	baseline := world.CurrentTick()
	world.AdvanceTick()

	view := ecs.NewView[posView](world)
	for range view.Iter() {
	}

	changed := world.RunQuery(ecs.QueryShape{Changed: []ecs.ComponentId{posId}}, baseline)
	assert.Equal(t, 0, changed.Count())
}

func TestViewAliasedMutPanics(t *testing.T) {
	world := newTestWorld()

	type aliased struct {
		A *Position `ecs:"mut"`
		B *Position
	}
	assert.Panics(t, func() {
		ecs.NewView[aliased](world)
	})
}

func TestViewInvalidTagPanics(t *testing.T) {
	world := newTestWorld()

	type badTag struct {
		Pos *Position `ecs:"writable"`
	}
	assert.Panics(t, func() {
		ecs.NewView[badTag](world)
	})
}

func TestViewNonPointerFieldPanics(t *testing.T) {
	world := newTestWorld()

	type byValue struct {
		Pos Position
	}
	assert.Panics(t, func() {
		ecs.NewView[byValue](world)
	})
}

type changedView struct {
	Pos *Position `ecs:"changed"`
}

func TestViewIterSince(t *testing.T) {
	world := newTestWorld()

	a := world.Spawn(&Position{X: 1})
	world.Spawn(&Position{X: 2})
	baseline := world.CurrentTick()
	world.AdvanceTick()

	ecs.WriteComponent[Position](world, a).X = 10

	view := ecs.NewView[changedView](world)

	var got []ecs.EntityId
	for id := range view.IterSince(baseline) {
		got = append(got, id)
	}
	assert.Equal(t, []ecs.EntityId{a}, got)
}

type sparseView struct {
	Pos     *Position
	Burning *Burning `ecs:"mut"`
}

func TestViewOverSparseComponents(t *testing.T) {
	world := newTestWorld()

	id := world.Spawn(&Position{X: 1}, Burning{Remaining: 3})
	world.Spawn(&Position{X: 2})

	view := ecs.NewView[sparseView](world)

	count := 0
	for _, v := range view.Iter() {
		v.Burning.Remaining -= 1
		count++
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, float32(2), ecs.ReadComponent[Burning](world, id).Remaining)
}

func TestViewSpawn(t *testing.T) {
	world := newTestWorld()

	view := ecs.NewView[optionalHealthView](world)

	id := view.Spawn(optionalHealthView{
		Pos: &Position{X: 5},
	})
	assert.True(t, world.IsLive(id))
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](world, id).X)
	assert.False(t, world.HasComponent(id, reflect.TypeOf(Health{})))

	full := view.Spawn(optionalHealthView{
		Pos:    &Position{X: 6},
		Health: &Health{Current: 1, Max: 2},
	})
	assert.Equal(t, 1, ecs.ReadComponent[Health](world, full).Current)
}

func TestViewSpawnNilRequiredPanics(t *testing.T) {
	world := newTestWorld()

	view := ecs.NewView[posVelView](world)
	assert.Panics(t, func() {
		view.Spawn(posVelView{Pos: &Position{}})
	})
}
