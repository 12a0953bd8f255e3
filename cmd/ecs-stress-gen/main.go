// ecs-stress-gen emits the component and system definitions the ecs-stress
// harness runs against. The output is checked in so the harness builds
// without a generate step; rerun this after changing the counts.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/plus3/chassis/ecs"
)

type genParams struct {
	Components []componentParams
	Systems    []systemParams
}

type componentParams struct {
	Index  int
	Sparse bool
}

type systemParams struct {
	Index int
	// Component indices the system's view binds. A reads and writes, B
	// reads only.
	A int
	B int
}

const componentsTemplate = `// Code generated by ecs-stress-gen. DO NOT EDIT.

package main

import (
	"math/rand"

	"github.com/plus3/chassis/ecs"
)

{{range .Components}}
type StressComp{{.Index}} struct {
	A float32
	B float32
	C int32
}
{{end}}

func RegisterAllGeneratedComponents(registry *ecs.ComponentRegistry) {
{{- range .Components}}
	ecs.RegisterComponent[StressComp{{.Index}}](registry, {{if .Sparse}}ecs.StorageSparse{{else}}ecs.StorageTable{{end}})
{{- end}}
}

var componentFactories = []func() any{
{{- range .Components}}
	func() any { return &StressComp{{.Index}}{A: rand.Float32(), B: rand.Float32(), C: rand.Int31n(100)} },
{{- end}}
}

// SpawnRandomEntity spawns an entity with numComponents distinct randomly
// chosen component types.
func SpawnRandomEntity(world *ecs.World, numComponents int) ecs.EntityId {
	if numComponents > len(componentFactories) {
		numComponents = len(componentFactories)
	}
	components := make([]any, 0, numComponents)
	for _, idx := range rand.Perm(len(componentFactories))[:numComponents] {
		components = append(components, componentFactories[idx]())
	}
	return world.Spawn(components...)
}
`

const systemsTemplate = `// Code generated by ecs-stress-gen. DO NOT EDIT.

package main

import (
	"github.com/plus3/chassis/ecs"
)

{{range .Systems}}
type stressView{{.Index}} struct {
	A *StressComp{{.A}} ` + "`ecs:\"mut\"`" + `
	B *StressComp{{.B}}
}

type StressSystem{{.Index}} struct {
	Matched ecs.Query[stressView{{.Index}}]
}

func (s *StressSystem{{.Index}}) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for _, v := range s.Matched.Iter() {
		v.A.A += v.B.A * dt
		v.A.B += v.B.B * dt
		v.A.C = (v.A.C + v.B.C) % 1000
	}
}
{{end}}

func RegisterAllGeneratedSystems(scheduler *ecs.Scheduler) {
{{- range .Systems}}
	scheduler.Register(&StressSystem{{.Index}}{})
{{- end}}
}
`

func main() {
	componentCount := flag.Int("components", 16, "Number of component types to generate.")
	systemCount := flag.Int("systems", 8, "Number of systems to generate.")
	outDir := flag.String("out", "cmd/ecs-stress", "Directory to write the generated files into.")
	flag.Parse()

	if *componentCount < 2 {
		log.Fatalf("need at least 2 components, got %d", *componentCount)
	}
	if *componentCount > ecs.MaxComponentTypes {
		log.Fatalf("component count %d exceeds the %d component limit", *componentCount, ecs.MaxComponentTypes)
	}
	if *systemCount > *componentCount/2 {
		log.Fatalf("system count %d needs %d components for disjoint pairs, have %d",
			*systemCount, *systemCount*2, *componentCount)
	}

	params := genParams{}
	for i := 0; i < *componentCount; i++ {
		params.Components = append(params.Components, componentParams{
			Index:  i,
			Sparse: i%4 == 3,
		})
	}
	// Each system works a disjoint pair of components so no two systems
	// contend for the same mut binding.
	for i := 0; i < *systemCount; i++ {
		params.Systems = append(params.Systems, systemParams{
			Index: i,
			A:     i * 2,
			B:     i*2 + 1,
		})
	}

	emit(filepath.Join(*outDir, "components_gen.go"), componentsTemplate, params)
	emit(filepath.Join(*outDir, "systems_gen.go"), systemsTemplate, params)
}

func emit(path, tmplText string, params genParams) {
	tmpl, err := template.New(filepath.Base(path)).Parse(tmplText)
	if err != nil {
		log.Fatalf("parse template for %s: %v", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		log.Fatalf("execute template for %s: %v", path, err)
	}

	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("format %s: %v", path, err)
	}

	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	log.Printf("wrote %s", path)
}
