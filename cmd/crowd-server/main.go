package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	bettererrors "github.com/xtuc/better-errors"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/game/crowd"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/vizserver"
)

// logRagdollSpawner stands in for the presentation layer when the server
// runs headless; a real client reacts to the same events over the viz feed.
type logRagdollSpawner struct{}

func (s logRagdollSpawner) SpawnRagdoll(event *crowd.DeathEvent) {
	px, py := event.Position.Get()
	utils.DebugWithContext("ragdoll", "Agent died", utils.Context{
		"agent":    event.Agent.String(),
		"unittype": event.UnitType,
		"position": []float64{px, py},
	})
}

func main() {
	rand.Seed(time.Now().UnixNano())

	tps := flag.Int("tps", 20, "Simulation ticks per second")
	port := flag.Int("port", 8080, "Port serving the viz")
	raiders := flag.Int("raiders", 12, "Number of hostile raiders to spawn")
	defenders := flag.Int("defenders", 8, "Number of defenders to spawn")
	presetsPath := flag.String("presets", "", "YAML unit presets file; built-in presets when empty")
	flag.Parse()

	utils.Assert(*tps > 0, "tps must be positive")

	log.Println("Crowd Control Simulation Server v0.1")

	presets := crowd.DefaultPresets()
	if *presetsPath != "" {
		loaded, err := crowd.LoadPresets(*presetsPath)
		if err != nil {
			utils.FailWith(bettererrors.
				New("Could not load unit presets").
				SetContext("path", *presetsPath).
				With(bettererrors.NewFromErr(err)))
		}
		presets = loaded
	}

	world := crowd.NewPhysicalWorld()
	game := crowd.NewCrowdGame(world, crowd.DefaultOptions())
	game.SetRagdollSpawner(logRagdollSpawner{})

	// Barricades flanking the defended block. They are not part of the
	// pathfinding grid; raiders discover them by running into them.
	game.NewEntityObstacle(vector.MakeVector2(8, 0), 0.5, 3.0, "barricade")
	game.NewEntityObstacle(vector.MakeVector2(-8, 0), 0.5, 3.0, "barricade")

	server := simserver.NewServer(game, *tps)

	server.OnAgentDeath(func(death simserver.AgentDeath) {
		utils.Debug("crowd-server", "Death handoff for agent "+death.AgentHandle.String())
	})

	// Raiders close in from the perimeter; defenders hold the middle.
	raiderSpecs, hasRaiders := presets["raider"]
	defenderSpecs, hasDefenders := presets["militia"]
	utils.Assert(hasRaiders && hasDefenders, "presets must define the raider and militia unit types")

	for i := 0; i < *raiders; i++ {
		angle := rand.Float64() * 2 * math.Pi
		position := vector.MakeVector2(0, 40).SetAngle(angle)
		server.RegisterAgent(raiderSpecs.MakeAgentConfig("hostile", position))
	}

	for i := 0; i < *defenders; i++ {
		position := vector.MakeVector2(rand.Float64()*10-5, rand.Float64()*10-5)
		server.RegisterAgent(defenderSpecs.MakeAgentConfig("defender", position))
	}

	viz := vizserver.NewVizService("0.0.0.0:" + strconv.Itoa(*port))
	go func() {
		err := viz.ListenAndServe()
		utils.Check(err, "Could not start viz server")
	}()

	block := server.Start()

	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-hassigtermed
		server.Stop()
		os.Exit(0)
	}()

	<-block
}
