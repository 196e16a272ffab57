package crowd

import (
	"math"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/trigo"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// Velocities below this magnitude are hard-zeroed to stop perpetual creep.
const restVelocityEpsilon = 0.01

// systemSteering converts each agent's desired heading into a velocity
// update: steering acceleration, exponential friction decay, speed clamp,
// and a bounded orientation slew. Exponential decay is used over a linear
// one because it is stable under a variable time step.
func systemSteering(game *CrowdGame, dt float64) {

	for _, entityresult := range game.steeringView.Get() {

		lifecycleAspect := game.CastLifecycle(entityresult.Components[game.lifecycleComponent])
		if !lifecycleAspect.IsAlive() || lifecycleAspect.IsUnsimulated() {
			continue
		}

		navigationAspect := game.CastNavigation(entityresult.Components[game.navigationComponent])
		physicalAspect := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])

		heading := navigationAspect.DesiredHeading()
		velocity := physicalAspect.GetVelocity()

		if !heading.IsNull() {
			acceleration := physicalAspect.GetLinearForceBudget() / physicalAspect.GetMass()
			velocity = velocity.Add(heading.MultScalar(acceleration * dt))
		}

		velocity = velocity.MultScalar(math.Exp(-physicalAspect.GetFriction() * dt))
		velocity = velocity.Limit(physicalAspect.GetBaseSpeed())

		if velocity.Mag() < restVelocityEpsilon {
			velocity = vector.MakeNullVector2()
		}

		physicalAspect.SetVelocity(velocity)

		if velocity.IsNull() {
			continue
		}

		// Slew the heading towards the travel direction rather than snapping.
		orientation := physicalAspect.GetOrientation()
		relative := math.Mod(velocity.Angle()-orientation+2*math.Pi, 2*math.Pi)
		turn := trigo.FullCircleAngleToSignedHalfCircleAngle(relative)

		maxTurn := physicalAspect.GetMaxAngularVelocity() * dt
		if math.Abs(turn) > maxTurn {
			if turn > 0 {
				turn = maxTurn
			} else {
				turn = -maxTurn
			}
		}

		physicalAspect.SetOrientation(orientation + turn)
	}
}
