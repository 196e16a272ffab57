package crowd

import (
	"math"

	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/number"
	servertypes "github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// linearForceBudget converts the configured top speed into the steering
// force whose equilibrium against the friction decay sits at that speed.
func linearForceBudget(config servertypes.AgentConfig) float64 {
	return config.Speed * config.Mass * math.Max(config.Friction, 1.0)
}

// NewEntityAgent registers one unit. When the game has no physics world the
// agent is still created but flagged unsimulated; it regains nothing until
// re-registered, it just idles visibly.
func (game *CrowdGame) NewEntityAgent(config servertypes.AgentConfig) ecs.EntityID {

	agent := game.manager.NewEntity()

	physical := &PhysicalBody{
		mass:                config.Mass,
		radius:              config.CollisionRadius,
		baseSpeed:           config.Speed,
		linearForceBudget:   linearForceBudget(config),
		friction:            config.Friction,
		maxAngularVelocity:  number.DegreeToRadian(540), // rad/s; ~1.5 turns per second
		knockbackResistance: number.Clamp(config.KnockbackResistance, 0, 1),
	}
	physical.SetPosition(config.Position)

	lifecycle := NewLifecycle(game.ticknum)

	if game.PhysicalWorld != nil {
		bodydef := box2d.MakeB2BodyDef()
		bodydef.Position.Set(config.Position.GetX(), config.Position.GetY())
		bodydef.Type = box2d.B2BodyType.B2_dynamicBody
		bodydef.AllowSleep = false
		bodydef.FixedRotation = true

		body := game.PhysicalWorld.CreateBody(&bodydef)

		shape := box2d.MakeB2CircleShape()
		shape.SetRadius(config.CollisionRadius)

		fixturedef := box2d.MakeB2FixtureDef()
		fixturedef.Shape = &shape
		fixturedef.Density = config.Mass / (math.Pi * config.CollisionRadius * config.CollisionRadius)
		body.CreateFixtureFromDef(&fixturedef)
		body.SetUserData(makeBodyDescriptor(bodyDescriptorType.Agent, agent.GetID()))
		body.SetBullet(false)

		physical.SetBody(body)
		physical.SetPosition(config.Position)
	} else {
		lifecycle.SetUnsimulated(true)
		utils.Debug("crowd", "No physical world available; agent "+agent.GetID().String()+" registered unsimulated")
	}

	agent.
		AddComponent(game.allegianceComponent, &Allegiance{
			faction:  FactionFromString(config.Faction),
			unitType: config.UnitType,
		}).
		AddComponent(game.physicalBodyComponent, physical).
		AddComponent(game.healthComponent, NewHealth(config.MaxHealth, config.Health, config.Armor)).
		AddComponent(game.navigationComponent, NewNavigation(game.options.CellSize*0.6)).
		AddComponent(game.combatComponent, NewCombat(
			config.DetectionRange,
			config.AttackRange,
			config.Damage,
			config.AttackFrequency,
		)).
		AddComponent(game.renderComponent, &Render{
			type_:  config.UnitType,
			static: false,
			scale:  config.AnimationScale,
			color:  config.AnimationColor,
		}).
		AddComponent(game.lifecycleComponent, lifecycle)

	return agent.GetID()
}

// RemoveEntityAgent releases the agent's physics body and record. Idempotent:
// removing an absent handle is a no-op. Callers must only invoke it between
// ticks; the simulation server defers removals to tick boundaries.
func (game *CrowdGame) RemoveEntityAgent(id ecs.EntityID) {
	qr := game.getEntity(id)
	if qr == nil {
		return
	}

	game.forgetCounterpart(id)
	game.manager.DisposeEntities(qr.Entity)
}

// forgetCounterpart clears per-pair cooldown entries pointing at a removed
// agent so no dangling handles survive removal.
func (game *CrowdGame) forgetCounterpart(id ecs.EntityID) {
	for _, entityresult := range game.combatView.Get() {
		game.CastCombat(entityresult.Components[game.combatComponent]).ForgetCounterpart(id)
	}
}
