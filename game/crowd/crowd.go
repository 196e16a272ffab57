package crowd

import (
	"encoding/json"
	"time"

	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/pathfinding"
	servertypes "github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// Options carry the tunables shared by every unit population.
type Options struct {
	CellSize        float64       // pathfinding grid cell size, meters
	PathIterations  int           // A* iteration cap per call
	RepathInterval  time.Duration // minimum delay between path recomputes
	ContactCooldown time.Duration // per (attacker, victim) contact damage window
	KnockbackFactor float64       // scales contact impulse into velocity delta
	PhysicsSubStep  float64       // fixed physics sub-step, seconds
	MaxSubSteps     int           // bound on catch-up sub-steps per tick
	ImpactForce     float64       // death impact velocity magnitude
	UpwardBias      float64       // vertical component handed to the ragdoll layer
	CorpseTicks     int           // ticks a dead agent stays visible before removal
}

func DefaultOptions() Options {
	return Options{
		CellSize:        1.0,
		PathIterations:  pathfinding.DefaultMaxIterations,
		RepathInterval:  500 * time.Millisecond,
		ContactCooldown: 400 * time.Millisecond,
		KnockbackFactor: 0.8,
		PhysicsSubStep:  1.0 / 60.0,
		MaxSubSteps:     4,
		ImpactForce:     6.0,
		UpwardBias:      3.0,
		CorpseTicks:     1,
	}
}

// CrowdGame simulates two populations of mobile units (hostile raiders and
// friendly defenders) on a shared ground plane. It is single threaded: all
// mutation happens inside Step, external mutation arrives as commands.
type CrowdGame struct {
	ticknum int
	now     time.Time
	options Options
	manager *ecs.Manager

	allegianceComponent   *ecs.Component
	physicalBodyComponent *ecs.Component
	healthComponent       *ecs.Component
	navigationComponent   *ecs.Component
	combatComponent       *ecs.Component
	renderComponent       *ecs.Component
	lifecycleComponent    *ecs.Component

	physicalView   *ecs.View
	navigationView *ecs.View
	steeringView   *ecs.View
	combatView     *ecs.View
	healthView     *ecs.View
	lifecycleView  *ecs.View
	renderableView *ecs.View

	grid pathfinding.Grid

	// The physical world is owned by whoever constructed it and may be nil;
	// agents registered without a world are flagged unsimulated.
	PhysicalWorld     *box2d.B2World
	collisionListener *collisionListener

	ragdollSpawner RagdollSpawner
	snapshotter    MotionSnapshotter
}

// NewPhysicalWorld builds the zero-gravity rigid body world the simulation
// is viewed from the top of.
func NewPhysicalWorld() *box2d.B2World {
	gravity := box2d.MakeB2Vec2(0.0, 0.0)
	world := box2d.MakeB2World(gravity)
	return &world
}

func NewCrowdGame(world *box2d.B2World, options Options) *CrowdGame {
	manager := ecs.NewManager()

	game := &CrowdGame{
		options: options,
		manager: manager,

		allegianceComponent:   manager.NewComponent(),
		physicalBodyComponent: manager.NewComponent(),
		healthComponent:       manager.NewComponent(),
		navigationComponent:   manager.NewComponent(),
		combatComponent:       manager.NewComponent(),
		renderComponent:       manager.NewComponent(),
		lifecycleComponent:    manager.NewComponent(),

		grid:          pathfinding.MakeGrid(options.CellSize),
		PhysicalWorld: world,
	}

	game.physicalView = manager.CreateView(game.physicalBodyComponent)

	game.navigationView = manager.CreateView(
		game.navigationComponent,
		game.physicalBodyComponent,
		game.combatComponent,
		game.lifecycleComponent,
	)

	game.steeringView = manager.CreateView(
		game.navigationComponent,
		game.physicalBodyComponent,
		game.lifecycleComponent,
	)

	game.combatView = manager.CreateView(
		game.combatComponent,
		game.physicalBodyComponent,
		game.allegianceComponent,
		game.lifecycleComponent,
	)

	game.healthView = manager.CreateView(
		game.healthComponent,
		game.lifecycleComponent,
	)

	game.lifecycleView = manager.CreateView(
		game.lifecycleComponent,
	)

	game.renderableView = manager.CreateView(
		game.renderComponent,
		game.physicalBodyComponent,
	)

	game.physicalBodyComponent.SetDestructor(func(entity *ecs.Entity, data interface{}) {
		physicalAspect := data.(*PhysicalBody)
		if body := physicalAspect.GetBody(); body != nil && game.PhysicalWorld != nil {
			game.PhysicalWorld.DestroyBody(body)
		}
	})

	if game.PhysicalWorld != nil {
		game.collisionListener = newCollisionListener(game)
		game.PhysicalWorld.SetContactListener(game.collisionListener)
		game.PhysicalWorld.SetContactFilter(newCollisionFilter(game))
	}

	return game
}

// SetRagdollSpawner attaches the external ragdoll presentation collaborator.
func (game *CrowdGame) SetRagdollSpawner(spawner RagdollSpawner) {
	game.ragdollSpawner = spawner
}

// SetMotionSnapshotter attaches the external animation collaborator used to
// capture per-limb state on death.
func (game *CrowdGame) SetMotionSnapshotter(snapshotter MotionSnapshotter) {
	game.snapshotter = snapshotter
}

func (game *CrowdGame) Ticknum() int {
	return game.ticknum
}

func (game CrowdGame) getEntity(id ecs.EntityID, tagelements ...interface{}) *ecs.QueryResult {
	return game.manager.GetEntityByID(id, tagelements...)
}

// <GameInterface>

func (game *CrowdGame) ImplementsGameInterface() {}

// Step advances the simulation by dt seconds. Systems run in a fixed order:
// external commands, aging, path refresh, steering, physics, contact
// resolution, combat, death handoff, entity disposal.
func (game *CrowdGame) Step(ticknum int, dt float64, now time.Time, commands []servertypes.Command) {
	game.ticknum = ticknum
	game.now = now

	systemCommands(game, commands)

	systemAging(game)

	systemNavigation(game)

	systemSteering(game, dt)

	systemPhysics(game, dt)

	systemCollisions(game)

	systemCombat(game)

	systemDeath(game)

	systemDeleteEntities(game)
}

// </GameInterface>

type VizMessageObject struct {
	Id          string                 `json:"id"`
	Type        string                 `json:"type"`
	Faction     string                 `json:"faction"`
	Position    [2]float64             `json:"position"`
	Velocity    [2]float64             `json:"velocity"`
	Radius      float64                `json:"radius"`
	Orientation float64                `json:"orientation"`
	Health      float64                `json:"health"`
	Alive       bool                   `json:"alive"`
	Hints       map[string]interface{} `json:"hints,omitempty"`
}

type VizMessage struct {
	Tick    int                `json:"tick"`
	Objects []VizMessageObject `json:"objects"`
}

func (game *CrowdGame) ProduceVizMessageJson() []byte {
	msg := VizMessage{
		Tick:    game.ticknum,
		Objects: []VizMessageObject{},
	}

	for _, entityresult := range game.renderableView.Get() {
		renderAspect := game.CastRender(entityresult.Components[game.renderComponent])
		physicalAspect := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])

		object := VizMessageObject{
			Id:          entityresult.Entity.GetID().String(),
			Type:        renderAspect.GetType(),
			Radius:      physicalAspect.GetRadius(),
			Orientation: physicalAspect.GetOrientation(),
			Hints:       renderAspect.Hints(),
		}

		px, py := physicalAspect.GetPosition().Get()
		vx, vy := physicalAspect.GetVelocity().Get()
		object.Position = [2]float64{px, py}
		object.Velocity = [2]float64{vx, vy}

		if qr := game.getEntity(entityresult.Entity.GetID(), game.allegianceComponent); qr != nil {
			object.Faction = game.CastAllegiance(qr.Components[game.allegianceComponent]).Faction().String()
		}

		if qr := game.getEntity(entityresult.Entity.GetID(), game.healthComponent, game.lifecycleComponent); qr != nil {
			object.Health = game.CastHealth(qr.Components[game.healthComponent]).GetLife()
			object.Alive = game.CastLifecycle(qr.Components[game.lifecycleComponent]).IsAlive()
		}

		msg.Objects = append(msg.Objects, object)
	}

	res, _ := json.Marshal(msg)
	return res
}
