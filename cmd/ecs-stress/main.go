package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/chassis/ecs"
)

//go:generate go run github.com/plus3/chassis/cmd/ecs-stress-gen -components 16 -systems 8 -out .

// These will be updated by the generator's flags
const (
	componentCount = 16
	systemCount    = 8
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Entities to despawn and respawn per frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile: cpu or mem.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting ECS stress test...")

	// 1. Setup Registry, World, and Scheduler
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	world := ecs.NewWorld(registry)
	scheduler := ecs.NewScheduler(world)
	RegisterAllGeneratedSystems(scheduler)

	// 2. Populate the world with initial entities
	log.Printf("Populating world with %d entities...\n", *entityCount)
	entities := make([]ecs.EntityId, 0, *entityCount)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		numComponents := rand.Intn(5) + 1
		entities = append(entities, SpawnRandomEntity(world, numComponents))
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Churn:          *churn,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			churnEntities(world, entities, *churn)
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.FinalEntityCount = world.EntityCount()
	report.FinalArchetypeCount = len(world.Archetypes())
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// churnEntities despawns n random live entities and respawns replacements,
// exercising row migration, index recycling, and archetype growth every
// frame.
func churnEntities(world *ecs.World, entities []ecs.EntityId, n int) {
	if len(entities) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		slot := rand.Intn(len(entities))
		if world.IsLive(entities[slot]) {
			if err := world.Despawn(entities[slot]); err != nil {
				log.Fatalf("despawn failed: %v", err)
			}
		}
		entities[slot] = SpawnRandomEntity(world, rand.Intn(5)+1)
	}
}
