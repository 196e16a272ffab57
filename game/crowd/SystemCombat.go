package crowd

// systemCombat acquires targets and applies scheduled attacks. One state
// machine per agent: Idle → Approaching once a target enters detection
// range, Approaching → Attacking inside attack range, back out again when
// the target escapes, Dead is terminal and handled by systemDeath.
func systemCombat(game *CrowdGame) {

	index := buildTargetIndex(game)

	for _, entityresult := range game.combatView.Get() {

		lifecycleAspect := game.CastLifecycle(entityresult.Components[game.lifecycleComponent])
		if !lifecycleAspect.IsAlive() || lifecycleAspect.IsUnsimulated() {
			continue
		}

		combatAspect := game.CastCombat(entityresult.Components[game.combatComponent])
		physicalAspect := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])
		allegianceAspect := game.CastAllegiance(entityresult.Components[game.allegianceComponent])

		position := physicalAspect.GetPosition()

		// Drop a target that no longer exists or no longer lives.
		if target, engaged := combatAspect.Target(); engaged {
			targetQr := game.getEntity(target, game.lifecycleComponent)
			if targetQr == nil || !game.CastLifecycle(targetQr.Components[game.lifecycleComponent]).IsAlive() {
				combatAspect.ClearTarget()
			}
		}

		if _, engaged := combatAspect.Target(); !engaged {
			if found, ok := nearestHostile(index, entityresult.Entity.GetID(), position, allegianceAspect.Faction(), combatAspect.DetectionRange()); ok {
				combatAspect.SetTarget(found)
			}
		}

		target, engaged := combatAspect.Target()
		if !engaged {
			combatAspect.SetState(CombatIdle)
			continue
		}

		targetQr := game.getEntity(target, game.physicalBodyComponent)
		if targetQr == nil {
			combatAspect.ClearTarget()
			combatAspect.SetState(CombatIdle)
			continue
		}

		targetPosition := game.CastPhysicalBody(targetQr.Components[game.physicalBodyComponent]).GetPosition()

		if position.DistanceTo(targetPosition) <= combatAspect.AttackRange() {
			combatAspect.SetState(CombatAttacking)
		} else {
			combatAspect.SetState(CombatApproaching)
			continue
		}

		if !combatAspect.CanAttack(game.now) {
			continue
		}

		// Cooldown is consumed only when damage actually lands; an invalid
		// target aborts the attack without side effects.
		if applyRawDamage(game, target, combatAspect.Damage(), entityresult.Entity.GetID()) {
			combatAspect.MarkAttack(game.now)
		}
	}
}
