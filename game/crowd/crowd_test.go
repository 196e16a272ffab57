package crowd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bytearena/ecs"
	"github.com/stretchr/testify/assert"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
	servertypes "github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

const testDt = 1.0 / 60.0

var testEpoch = time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

func testAgentConfig(faction string, position vector.Vector2) servertypes.AgentConfig {
	return servertypes.AgentConfig{
		Faction:  faction,
		UnitType: "test-unit",
		Position: position,

		Health:          100,
		MaxHealth:       100,
		Armor:           0,
		Speed:           3.5,
		Mass:            80,
		Friction:        4.0,
		CollisionRadius: 0.5,
		DetectionRange:  30,
		AttackRange:     1.6,
		Damage:          10,
		AttackFrequency: 1.0,
	}
}

func agentHealth(t *testing.T, game *CrowdGame, id ecs.EntityID) *Health {
	t.Helper()

	qr := game.getEntity(id, game.healthComponent)
	if qr == nil {
		t.Fatalf("no health record for entity %v", id)
	}

	return game.CastHealth(qr.Components[game.healthComponent])
}

func agentPhysicalBody(t *testing.T, game *CrowdGame, id ecs.EntityID) *PhysicalBody {
	t.Helper()

	qr := game.getEntity(id, game.physicalBodyComponent)
	if qr == nil {
		t.Fatalf("no physical record for entity %v", id)
	}

	return game.CastPhysicalBody(qr.Components[game.physicalBodyComponent])
}

func takeDamage(id ecs.EntityID, amount float64, attacker ecs.EntityID) servertypes.Command {
	return servertypes.Command{
		EntityID: id,
		Method:   servertypes.CommandTakeDamage,
		Amount:   amount,
		Attacker: attacker,
	}
}

func TestArmorReducesDamageWithFloor(t *testing.T) {
	game := NewCrowdGame(NewPhysicalWorld(), DefaultOptions())

	config := testAgentConfig("defender", vector.MakeVector2(0, 0))
	config.MaxHealth = 50
	config.Health = 50
	config.Armor = 2
	id := game.NewEntityAgent(config)

	game.Step(1, testDt, testEpoch, []servertypes.Command{
		takeDamage(id, 10, 0),
		takeDamage(id, 10, 0),
		takeDamage(id, 10, 0),
	})

	assert.Equal(t, 26.0, agentHealth(t, game, id).GetLife())

	// Damage below the armor value still lands one point.
	game.Step(2, testDt, testEpoch.Add(50*time.Millisecond), []servertypes.Command{
		takeDamage(id, 1, 0),
	})

	assert.Equal(t, 25.0, agentHealth(t, game, id).GetLife())
}

func TestAttackCooldownGatesOnWallClock(t *testing.T) {
	game := NewCrowdGame(NewPhysicalWorld(), DefaultOptions())

	attackerConfig := testAgentConfig("hostile", vector.MakeVector2(0, 0))
	attackerConfig.AttackFrequency = 2.0 // 500ms interval
	game.NewEntityAgent(attackerConfig)

	victimConfig := testAgentConfig("defender", vector.MakeVector2(1.2, 0))
	victimConfig.Damage = 0
	victim := game.NewEntityAgent(victimConfig)

	// First attack is permitted immediately.
	game.Step(1, testDt, testEpoch, nil)
	assert.Equal(t, 90.0, agentHealth(t, game, victim).GetLife())

	// 400ms in, still cooling down.
	game.Step(2, testDt, testEpoch.Add(400*time.Millisecond), nil)
	assert.Equal(t, 90.0, agentHealth(t, game, victim).GetLife())

	// The interval elapsed.
	game.Step(3, testDt, testEpoch.Add(500*time.Millisecond), nil)
	assert.Equal(t, 80.0, agentHealth(t, game, victim).GetLife())

	// A long stall grants at most one catch-up attack.
	game.Step(4, testDt, testEpoch.Add(5*time.Second), nil)
	assert.Equal(t, 70.0, agentHealth(t, game, victim).GetLife())
}

func TestContactDamageWindowPerPair(t *testing.T) {
	options := DefaultOptions()
	game := NewCrowdGame(NewPhysicalWorld(), options)

	raider := game.NewEntityAgent(testAgentConfig("hostile", vector.MakeVector2(0, 0)))
	militia := game.NewEntityAgent(testAgentConfig("defender", vector.MakeVector2(0.5, 0)))

	game.now = testEpoch
	resolveAgentContact(game, raider, militia)

	assert.Equal(t, 90.0, agentHealth(t, game, militia).GetLife())
	assert.Equal(t, 90.0, agentHealth(t, game, raider).GetLife())

	// Still inside the per-pair window; the bump is free.
	game.now = testEpoch.Add(200 * time.Millisecond)
	resolveAgentContact(game, raider, militia)

	assert.Equal(t, 90.0, agentHealth(t, game, militia).GetLife())

	// Past the window, contact damage lands again.
	game.now = testEpoch.Add(450 * time.Millisecond)
	resolveAgentContact(game, raider, militia)

	assert.Equal(t, 80.0, agentHealth(t, game, militia).GetLife())
}

func TestOverlappingAgentsContactThroughPhysics(t *testing.T) {
	game := NewCrowdGame(NewPhysicalWorld(), DefaultOptions())

	// Detection zero keeps scheduled attacks out; only contact damage runs.
	raiderConfig := testAgentConfig("hostile", vector.MakeVector2(0, 0))
	raiderConfig.DetectionRange = 0
	raider := game.NewEntityAgent(raiderConfig)

	militiaConfig := testAgentConfig("defender", vector.MakeVector2(0.6, 0))
	militiaConfig.DetectionRange = 0
	militia := game.NewEntityAgent(militiaConfig)

	game.Step(1, testDt, testEpoch, nil)

	// The overlap surfaced through the contact listener: one damage
	// application each, and the pair separated along the contact normal.
	assert.Equal(t, 90.0, agentHealth(t, game, raider).GetLife())
	assert.Equal(t, 90.0, agentHealth(t, game, militia).GetLife())

	distance := agentPhysicalBody(t, game, raider).GetPosition().
		DistanceTo(agentPhysicalBody(t, game, militia).GetPosition())
	assert.GreaterOrEqual(t, distance, 0.99)

	// Sustained overlap inside the cooldown window lands nothing further.
	game.Step(2, testDt, testEpoch.Add(50*time.Millisecond), nil)
	assert.Equal(t, 90.0, agentHealth(t, game, raider).GetLife())
	assert.Equal(t, 90.0, agentHealth(t, game, militia).GetLife())
}

type recordingSpawner struct {
	events []*DeathEvent
}

func (spawner *recordingSpawner) SpawnRagdoll(event *DeathEvent) {
	spawner.events = append(spawner.events, event)
}

func TestDeathHandoffFiresExactlyOnce(t *testing.T) {
	game := NewCrowdGame(NewPhysicalWorld(), DefaultOptions())

	spawner := &recordingSpawner{}
	game.SetRagdollSpawner(spawner)

	attackerConfig := testAgentConfig("hostile", vector.MakeVector2(2, 0))
	attackerConfig.DetectionRange = 0 // keeps the scheduled combat system out of the picture
	attacker := game.NewEntityAgent(attackerConfig)

	victimConfig := testAgentConfig("defender", vector.MakeVector2(0, 0))
	victimConfig.Health = 5
	victimConfig.DetectionRange = 0
	victim := game.NewEntityAgent(victimConfig)

	// Two killing blows inside the same tick; the handoff still fires once.
	game.Step(1, testDt, testEpoch, []servertypes.Command{
		takeDamage(victim, 10, attacker),
		takeDamage(victim, 10, attacker),
	})

	assert.Equal(t, 1, len(spawner.events))
	event := spawner.events[0]

	assert.Equal(t, victim, event.Agent)
	assert.Equal(t, attacker, event.Attacker)
	assert.Equal(t, FactionDefender, event.Faction)

	// Impact points away from the killer, scaled by the configured force.
	assert.InDelta(t, -6.0, event.ImpactVelocity.GetX(), 1e-9)
	assert.InDelta(t, 0.0, event.ImpactVelocity.GetY(), 1e-9)

	// The corpse is frozen in place until removal.
	assert.True(t, agentPhysicalBody(t, game, victim).GetVelocity().IsNull())
	assert.Equal(t, 0.0, agentHealth(t, game, victim).GetLife())

	if qr := game.getEntity(victim, game.combatComponent); assert.NotNil(t, qr) {
		assert.Equal(t, CombatDead, game.CastCombat(qr.Components[game.combatComponent]).State())
	}

	// Further damage on the dead agent is ignored, and the handoff does not
	// repeat; the corpse is reclaimed after its display window.
	game.Step(2, testDt, testEpoch.Add(50*time.Millisecond), []servertypes.Command{
		takeDamage(victim, 10, attacker),
	})

	assert.Equal(t, 1, len(spawner.events))
	assert.Nil(t, game.getEntity(victim))
}

func TestDeathWithoutAttackerUsesOwnVelocity(t *testing.T) {
	game := NewCrowdGame(NewPhysicalWorld(), DefaultOptions())

	spawner := &recordingSpawner{}
	game.SetRagdollSpawner(spawner)

	config := testAgentConfig("defender", vector.MakeVector2(0, 0))
	config.Health = 5
	config.Friction = 0
	victim := game.NewEntityAgent(config)

	agentPhysicalBody(t, game, victim).SetVelocity(vector.MakeVector2(2, 0))

	game.Step(1, testDt, testEpoch, []servertypes.Command{
		takeDamage(victim, 10, 0),
	})

	if !assert.Equal(t, 1, len(spawner.events)) {
		return
	}

	event := spawner.events[0]
	assert.Equal(t, ecs.EntityID(0), event.Attacker)
	assert.InDelta(t, 2.0, event.ImpactVelocity.GetX(), 1e-6)
	assert.InDelta(t, 0.0, event.ImpactVelocity.GetY(), 1e-6)
}

func TestVizMessageCarriesAgentState(t *testing.T) {
	game := NewCrowdGame(NewPhysicalWorld(), DefaultOptions())

	game.NewEntityAgent(testAgentConfig("hostile", vector.MakeVector2(1, 2)))
	game.NewEntityObstacle(vector.MakeVector2(8, 0), 0.5, 3.0, "barricade")
	game.Step(1, testDt, testEpoch, nil)

	var message VizMessage
	assert.NoError(t, json.Unmarshal(game.ProduceVizMessageJson(), &message))

	assert.Equal(t, 1, message.Tick)
	if !assert.Equal(t, 2, len(message.Objects)) {
		return
	}

	byType := make(map[string]VizMessageObject)
	for _, object := range message.Objects {
		byType[object.Type] = object
	}

	agent := byType["test-unit"]
	assert.Equal(t, "hostile", agent.Faction)
	assert.True(t, agent.Alive)
	assert.Equal(t, 100.0, agent.Health)
	assert.Equal(t, 0.5, agent.Radius)

	obstacle, found := byType["barricade"]
	assert.True(t, found)
	assert.Equal(t, 8.0, obstacle.Position[0])
}
