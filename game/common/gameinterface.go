package common

import (
	"time"

	"github.com/bytearena/ecs"

	servertypes "github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// GameInterface is the contract between the simulation server and a game
// implementation; the server owns the clock, the game owns the entities.
type GameInterface interface {
	ImplementsGameInterface()
	Step(ticknum int, dt float64, now time.Time, commands []servertypes.Command)
	NewEntityAgent(config servertypes.AgentConfig) ecs.EntityID
	RemoveEntityAgent(id ecs.EntityID)
	ProduceVizMessageJson() []byte
}
