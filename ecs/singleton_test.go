package ecs_test

import (
	"testing"

	"github.com/plus3/chassis/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type GameConfig struct {
	Gravity   float32
	MaxPlayer int
}

func TestSingletonCreatesWithInitializer(t *testing.T) {
	world := newTestWorld()

	config := ecs.NewSingleton(world, GameConfig{Gravity: 9.8, MaxPlayer: 4})

	got := config.Get()
	require.NotNil(t, got)
	assert.Equal(t, float32(9.8), got.Gravity)
	assert.True(t, config.Exists())
}

func TestSingletonCreatesZeroValue(t *testing.T) {
	world := newTestWorld()

	config := ecs.NewSingleton[GameConfig](world)

	got := config.Get()
	require.NotNil(t, got)
	assert.Equal(t, GameConfig{}, *got)
}

func TestSingletonInitializerIgnoredWhenPresent(t *testing.T) {
	world := newTestWorld()

	world.AddResource(GameConfig{Gravity: 1.0})
	config := ecs.NewSingleton(world, GameConfig{Gravity: 99.0})

	assert.Equal(t, float32(1.0), config.Get().Gravity)
}

func TestSingletonSharedAcrossAccessors(t *testing.T) {
	world := newTestWorld()

	first := ecs.NewSingleton(world, GameConfig{MaxPlayer: 2})
	second := ecs.NewSingleton[GameConfig](world)

	first.Get().MaxPlayer = 8
	assert.Equal(t, 8, second.Get().MaxPlayer)
}

func TestSingletonInitWithoutResource(t *testing.T) {
	world := newTestWorld()

	var config ecs.Singleton[GameConfig]
	config.Init(world)

	assert.Nil(t, config.Get())
	assert.False(t, config.Exists())

	world.AddResource(GameConfig{Gravity: 3.0})
	require.NotNil(t, config.Get())
	assert.Equal(t, float32(3.0), config.Get().Gravity)
}

func TestAddResourceReplaces(t *testing.T) {
	world := newTestWorld()

	world.AddResource(GameConfig{Gravity: 1.0})
	world.AddResource(GameConfig{Gravity: 2.0})

	config := ecs.NewSingleton[GameConfig](world)
	assert.Equal(t, float32(2.0), config.Get().Gravity)

	stats := world.CollectStats()
	assert.Equal(t, 1, stats.ResourceCount)
}
