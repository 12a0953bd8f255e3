package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/chassis/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movementSystem struct {
	Moving ecs.Query[movementView]
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for _, v := range s.Moving.Iter() {
		v.Pos.X += v.Vel.DX * dt
		v.Pos.Y += v.Vel.DY * dt
	}
}

func TestSchedulerRunsSystems(t *testing.T) {
	world := newTestWorld()

	id := world.Spawn(&Position{X: 0}, &Velocity{DX: 10})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&movementSystem{})

	scheduler.Once(1.0)
	assert.InDelta(t, 10.0, float64(ecs.ReadComponent[Position](world, id).X), 0.001)

	scheduler.Once(0.5)
	assert.InDelta(t, 15.0, float64(ecs.ReadComponent[Position](world, id).X), 0.001)
}

type countingSystem struct {
	executions int
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.executions++
}

func TestSchedulerExecutionOrder(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	var order []string
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "a") }))
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "b") }))
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "c") }))

	scheduler.Once(0.016)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

type systemFunc func(frame *ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) { f(frame) }

func TestSchedulerInitializesSingletonFields(t *testing.T) {
	world := newTestWorld()
	world.AddResource(Score(40))

	system := &scoreSystem{}
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(system)

	scheduler.Once(0.016)
	assert.Equal(t, Score(41), system.observed)
	assert.Equal(t, Score(41), *ecs.NewSingleton[Score](world).Get())
}

type scoreSystem struct {
	Score    ecs.Singleton[Score]
	observed Score
}

func (s *scoreSystem) Execute(frame *ecs.UpdateFrame) {
	score := s.Score.Get()
	*score++
	s.observed = *score
}

func TestSchedulerAdvancesTicks(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&countingSystem{})

	before := world.CurrentTick()
	scheduler.Once(0.016)
	assert.Greater(t, world.CurrentTick(), before)
}

type changeReaderSystem struct {
	Changed ecs.Query[changedPosView]
	seen    []int
}

func (s *changeReaderSystem) Execute(frame *ecs.UpdateFrame) {
	count := 0
	for range s.Changed.Iter() {
		count++
	}
	s.seen = append(s.seen, count)
}

func TestSchedulerChangeDetectionAcrossFrames(t *testing.T) {
	world := newTestWorld()

	id := world.Spawn(&Position{X: 1})

	reader := &changeReaderSystem{}
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(reader)

	// Frame 1 observes the spawn, frame 2 observes quiet, frame 3 observes
	// the direct write made between frames.
	scheduler.Once(0.016)
	scheduler.Once(0.016)
	ecs.WriteComponent[Position](world, id).X = 2
	scheduler.Once(0.016)

	require.Equal(t, []int{1, 0, 1}, reader.seen)
}

func TestSchedulerStats(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	system := &countingSystem{}
	scheduler.Register(system)

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats := scheduler.GetStats()
	assert.Equal(t, 1, stats.SystemCount)
	assert.Equal(t, int64(2), stats.TotalExecutions)
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, "countingSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.GreaterOrEqual(t, stats.Systems[0].MaxDuration, stats.Systems[0].MinDuration)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	world := newTestWorld()
	scheduler := ecs.NewScheduler(world)

	system := &countingSystem{}
	scheduler.Register(system)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, time.Millisecond)
	assert.Greater(t, system.executions, 0)
}
