package debugui

import "github.com/plus3/chassis/ecs"

// SpawnDebugUI spawns one entity per debug panel and seeds the input state
// resource the ImguiSystem writes to.
func SpawnDebugUI(world *ecs.World) {
	world.AddResource(ImguiInputState{})
	world.Spawn(NewEntityBrowserComponent(100))
	world.Spawn(NewComponentInspectorComponent())
	world.Spawn(NewArchetypeViewerComponent())
	world.Spawn(NewPerformanceStatsComponent(120))
}

// RegisterDebugUIComponents registers every debug panel component type.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[EntityBrowserComponent](registry, ecs.StorageTable)
	ecs.RegisterComponent[ComponentInspectorComponent](registry, ecs.StorageTable)
	ecs.RegisterComponent[ArchetypeViewerComponent](registry, ecs.StorageTable)
	ecs.RegisterComponent[PerformanceStatsComponent](registry, ecs.StorageTable)
	ecs.RegisterComponent[ImguiItem](registry, ecs.StorageTable)
	ecs.RegisterComponent[FrameTimer](registry, ecs.StorageTable)
}
