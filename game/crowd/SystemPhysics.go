package crowd

import "math"

// box2d solver tuning, testbed defaults
const (
	velocityIterations = 8
	positionIterations = 3
)

// systemPhysics steps the rigid body world with a fixed sub-step, bounded
// by MaxSubSteps per tick; a longer frame drops the excess time instead of
// spiraling. Agent logic consumes the stepped positions on the next tick,
// a one-frame latency this design accepts.
func systemPhysics(game *CrowdGame, dt float64) {

	if game.PhysicalWorld == nil {
		return
	}

	remaining := dt
	subStep := game.options.PhysicsSubStep
	if subStep <= 0 {
		subStep = dt
	}

	for n := 0; remaining > 0 && n < game.options.MaxSubSteps; n++ {
		h := math.Min(subStep, remaining)
		game.PhysicalWorld.Step(h, velocityIterations, positionIterations)
		remaining -= h
	}
}
