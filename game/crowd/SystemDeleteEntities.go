package crowd

import "github.com/bytearena/ecs"

// systemDeleteEntities disposes entities whose removal tick has come, at
// the very end of the tick so box2d body references stay valid for every
// earlier system. The physical body destructor runs inside DisposeEntities.
func systemDeleteEntities(game *CrowdGame) {

	entitiesToRemove := make([]*ecs.Entity, 0)

	for _, entityresult := range game.lifecycleView.Get() {
		lifecycleAspect := game.CastLifecycle(entityresult.Components[game.lifecycleComponent])
		if lifecycleAspect.RemovalDue(game.ticknum) {
			entitiesToRemove = append(entitiesToRemove, entityresult.Entity)
		}
	}

	if len(entitiesToRemove) == 0 {
		return
	}

	for _, entity := range entitiesToRemove {
		game.forgetCounterpart(entity.GetID())
	}

	game.manager.DisposeEntities(entitiesToRemove...)
}
