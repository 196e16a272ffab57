package types

import (
	"github.com/bytearena/ecs"
	uuid "github.com/satori/go.uuid"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// AgentConfig is the registration payload handed over by spawner
// collaborators. Stats are immutable once the agent is registered.
type AgentConfig struct {
	Faction  string
	UnitType string
	Position vector.Vector2

	Health              float64
	MaxHealth           float64
	Armor               float64
	Speed               float64
	Mass                float64
	Friction            float64
	CollisionRadius     float64
	DetectionRange      float64
	AttackRange         float64
	Damage              float64
	AttackFrequency     float64 // attacks per second
	KnockbackResistance float64 // 0 = full knockback received, 1 = immune

	// Presentation hints, opaque to the simulation
	AnimationScale float64
	AnimationColor string
}

const (
	CommandMoveTo     = "moveTo"
	CommandStopMoving = "stopMoving"
	CommandTakeDamage = "takeDamage"
)

// Command is an external mutation routed into the game at a tick boundary.
// Method selects which of the optional fields are read.
type Command struct {
	AgentProxyUUID uuid.UUID
	EntityID       ecs.EntityID
	Method         string

	Position     vector.Vector2 // moveTo
	Amount       float64        // takeDamage
	AttackerUUID uuid.UUID      // takeDamage; Nil when unknown
	Attacker     ecs.EntityID   // resolved from AttackerUUID at the tick boundary
}

type TearDownCallback func() error
