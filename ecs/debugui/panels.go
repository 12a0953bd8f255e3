package debugui

import (
	"github.com/plus3/chassis/ecs"
)

// DebugPanelSystem drives the built-in inspection panels: the entity
// browser feeds its selection to the component inspector, and a click in
// the archetype viewer filters the browser. Rendering is deferred through
// Commands so the ImGui calls run after all systems, inside the backend's
// frame.
type DebugPanelSystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Viewers    ecs.Query[struct{ *ArchetypeViewerComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
}

func (d *DebugPanelSystem) Execute(frame *ecs.UpdateFrame) {
	world := frame.World
	dt := float32(frame.DeltaTime)

	var browsers []*EntityBrowserComponent
	for _, b := range d.Browsers.Iter() {
		browsers = append(browsers, b.EntityBrowserComponent)
	}
	var inspectors []*ComponentInspectorComponent
	for _, i := range d.Inspectors.Iter() {
		inspectors = append(inspectors, i.ComponentInspectorComponent)
	}
	var viewers []*ArchetypeViewerComponent
	for _, v := range d.Viewers.Iter() {
		viewers = append(viewers, v.ArchetypeViewerComponent)
	}
	var stats []*PerformanceStatsComponent
	for _, s := range d.Stats.Iter() {
		stats = append(stats, s.PerformanceStatsComponent)
	}

	frame.Commands.Defer(func() {
		for _, viewer := range viewers {
			if clicked := viewer.Render(world); clicked != nil {
				for _, browser := range browsers {
					browser.FilterByArchetype(*clicked)
				}
			}
		}
		for _, browser := range browsers {
			browser.Render(world)
			for _, inspector := range inspectors {
				inspector.Render(world, browser.GetSelectedEntity())
			}
		}
		for _, st := range stats {
			st.Render(world, dt)
		}
	})
}
