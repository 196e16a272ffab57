package simserver

import (
	"encoding/json"
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/game/crowd"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

func testConfig(faction string, unitType string, position vector.Vector2) types.AgentConfig {
	return types.AgentConfig{
		Faction:  faction,
		UnitType: unitType,
		Position: position,

		Health:          100,
		MaxHealth:       100,
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

func newTestServer() *Server {
	game := crowd.NewCrowdGame(crowd.NewPhysicalWorld(), crowd.DefaultOptions())
	return NewServer(game, 20)
}

func TestSpawnIsDeferredToTickBoundary(t *testing.T) {
	server := newTestServer()

	handle := server.RegisterAgent(testConfig("defender", "militia", vector.MakeVector2(0, 0)))

	_, ok := server.ResolveHandle(handle)
	assert.False(t, ok, "agent resolvable before the tick boundary")

	server.doTick()

	entityid, ok := server.ResolveHandle(handle)
	assert.True(t, ok)

	reverse, ok := server.handleForEntity(entityid)
	assert.True(t, ok)
	assert.True(t, uuid.Equal(handle, reverse))
}

func TestUnregisterIsIdempotent(t *testing.T) {
	server := newTestServer()

	handle := server.RegisterAgent(testConfig("defender", "militia", vector.MakeVector2(0, 0)))
	server.doTick()

	server.UnregisterAgent(handle)
	server.UnregisterAgent(handle)
	server.UnregisterAgent(uuid.NewV4())
	server.doTick()

	_, ok := server.ResolveHandle(handle)
	assert.False(t, ok)

	// Commands for the released handle are dropped, not routed.
	server.MoveTo(handle, vector.MakeVector2(5, 5))
	server.doTick()
}

func TestMoveOrderRouting(t *testing.T) {
	server := newTestServer()

	handle := server.RegisterAgent(testConfig("defender", "militia", vector.MakeVector2(0, 0)))
	server.doTick()

	server.MoveTo(handle, vector.MakeVector2(5, 0))

	// 3 simulated seconds at 20 tps.
	for i := 0; i < 60; i++ {
		server.doTick()
	}

	var message crowd.VizMessage
	assert.NoError(t, json.Unmarshal(server.GetGame().ProduceVizMessageJson(), &message))

	if !assert.Equal(t, 1, len(message.Objects)) {
		return
	}
	assert.Greater(t, message.Objects[0].Position[0], 1.0)
}

func TestDeathNotificationTranslatesHandles(t *testing.T) {
	server := newTestServer()

	deaths := make(chan AgentDeath, 1)
	cancel := server.OnAgentDeath(func(death AgentDeath) {
		deaths <- death
	})
	defer cancel()

	raiderHandle := server.RegisterAgent(testConfig("hostile", "raider", vector.MakeVector2(0, 0)))

	victimConfig := testConfig("defender", "militia", vector.MakeVector2(1.2, 0))
	victimConfig.Health = 5
	victimHandle := server.RegisterAgent(victimConfig)

	server.doTick() // spawn
	server.doTick() // first attack kills

	select {
	case death := <-deaths:
		assert.True(t, uuid.Equal(victimHandle, death.AgentHandle))
		assert.True(t, uuid.Equal(raiderHandle, death.AttackerHandle))
		assert.Equal(t, crowd.FactionDefender, death.Event.Faction)
	case <-time.After(2 * time.Second):
		t.Fatal("no death notification received")
	}
}

func TestStartStop(t *testing.T) {
	server := newTestServer()
	server.RegisterAgent(testConfig("defender", "militia", vector.MakeVector2(0, 0)))

	block := server.Start()

	time.Sleep(150 * time.Millisecond)
	server.Stop()

	select {
	case <-block:
	case <-time.After(2 * time.Second):
		t.Fatal("tick loop did not stop")
	}

	assert.Greater(t, server.GetTicknum(), 0)
}
