package crowd

// systemAging flags a forced kill on entities past their max age. The kill
// is observed by systemDeath in the same tick, so an aged-out agent still
// goes through the normal handoff.
func systemAging(game *CrowdGame) {
	for _, entityresult := range game.lifecycleView.Get() {
		lifecycleAspect := game.CastLifecycle(entityresult.Components[game.lifecycleComponent])
		if lifecycleAspect.IsAlive() && lifecycleAspect.MaxAgeExceeded(game.ticknum) {
			lifecycleAspect.ForceKill()
		}
	}
}
