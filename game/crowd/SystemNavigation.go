package crowd

import (
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// systemNavigation refreshes stale paths and derives each agent's desired
// heading. Explicit move orders take priority over target pursuit; an agent
// in attack range holds still.
func systemNavigation(game *CrowdGame) {

	for _, entityresult := range game.navigationView.Get() {

		lifecycleAspect := game.CastLifecycle(entityresult.Components[game.lifecycleComponent])
		if !lifecycleAspect.IsAlive() || lifecycleAspect.IsUnsimulated() {
			continue
		}

		navigationAspect := game.CastNavigation(entityresult.Components[game.navigationComponent])
		physicalAspect := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])
		combatAspect := game.CastCombat(entityresult.Components[game.combatComponent])

		if combatAspect.State() == CombatAttacking {
			// Movement halts inside attack range.
			navigationAspect.SetDesiredHeading(vector.MakeNullVector2())
			continue
		}

		position := physicalAspect.GetPosition()

		destination, bound := navigationAspect.Goal()
		if !bound {
			if target, engaged := combatAspect.Target(); engaged {
				if targetQr := game.getEntity(target, game.physicalBodyComponent); targetQr != nil {
					destination = game.CastPhysicalBody(targetQr.Components[game.physicalBodyComponent]).GetPosition()
					bound = true
				}
			}
		}

		if !bound {
			navigationAspect.SetDesiredHeading(vector.MakeNullVector2())
			continue
		}

		if navigationAspect.NeedsRepath(game.now, game.options.RepathInterval) {
			path := game.grid.FindPath(position, destination, game.options.PathIterations)
			navigationAspect.SetPath(path, game.now)
		}

		navigationAspect.SetDesiredHeading(navigationAspect.FollowFrom(position))
	}
}
