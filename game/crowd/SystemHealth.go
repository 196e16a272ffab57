package crowd

import (
	"math"

	"github.com/bytearena/ecs"
)

// applyRawDamage applies amount against the victim's armor, with a floor of
// one point so contact between near-equal opponents still wears them down.
// A missing or already-dead victim aborts silently: no damage, no cooldown
// side effects, no repeated death handoff. Returns whether damage landed.
func applyRawDamage(game *CrowdGame, victim ecs.EntityID, amount float64, attacker ecs.EntityID) bool {

	qr := game.getEntity(victim, game.healthComponent, game.lifecycleComponent)
	if qr == nil {
		return false
	}

	lifecycleAspect := game.CastLifecycle(qr.Components[game.lifecycleComponent])
	if !lifecycleAspect.IsAlive() {
		return false
	}

	healthAspect := game.CastHealth(qr.Components[game.healthComponent])

	effective := math.Max(1, amount-healthAspect.GetArmor())
	healthAspect.AddLife(-effective)

	if attacker != 0 {
		healthAspect.SetLastAttacker(attacker)
	}

	return true
}
