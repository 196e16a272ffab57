package crowd

import (
	"github.com/bytearena/ecs"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// DeathEventName is the go-notify topic death events are posted on.
const DeathEventName = "crowd:death"

// LimbState is one limb of the motion snapshot handed to the ragdoll layer;
// instantaneous velocity is derived from position deltas by the animation
// collaborator.
type LimbState struct {
	Name        string
	Position    vector.Vector2
	Orientation float64
	Velocity    vector.Vector2
}

// MotionSnapshot captures the motion state of a dying agent at the moment
// of the ragdoll handoff.
type MotionSnapshot struct {
	Position    vector.Vector2
	Velocity    vector.Vector2
	Orientation float64
	Limbs       []LimbState // empty when no animation collaborator is attached
}

// DeathEvent is delivered exactly once per agent death.
type DeathEvent struct {
	Agent    ecs.EntityID
	Attacker ecs.EntityID // 0 when unknown
	Faction  Faction
	UnitType string

	Position       vector.Vector2
	ImpactVelocity vector.Vector2 // ground-plane impulse for the ragdoll
	UpwardBias     float64        // vertical component, presentation space

	Snapshot MotionSnapshot

	// Presentation hints captured at registration
	Scale float64
	Color string
}

// RagdollSpawner is the external presentation collaborator consuming death
// handoffs. Implementations must tolerate being called from the simulation
// tick and return quickly.
type RagdollSpawner interface {
	SpawnRagdoll(event *DeathEvent)
}

// MotionSnapshotter is the optional animation collaborator providing
// per-limb state for a seamless ragdoll transition.
type MotionSnapshotter interface {
	Snapshot(agent ecs.EntityID) []LimbState
}
