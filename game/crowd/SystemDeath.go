package crowd

import (
	notify "github.com/bitly/go-notify"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// systemDeath performs the one-time ragdoll handoff for every agent whose
// health depleted (or whose forced kill is pending) this tick: freeze the
// record, capture the motion snapshot, compute the impact velocity, invoke
// the ragdoll collaborator, and schedule removal.
func systemDeath(game *CrowdGame) {

	for _, entityresult := range game.healthView.Get() {

		lifecycleAspect := game.CastLifecycle(entityresult.Components[game.lifecycleComponent])
		healthAspect := game.CastHealth(entityresult.Components[game.healthComponent])

		if !lifecycleAspect.IsAlive() && lifecycleAspect.HandoffDone() {
			continue
		}

		if healthAspect.GetLife() > 0 && !lifecycleAspect.ForcedKillPending() {
			continue
		}

		if lifecycleAspect.ForcedKillPending() {
			healthAspect.SetLife(0)
		}

		if !lifecycleAspect.MarkDead(game.ticknum, game.options.CorpseTicks) {
			continue
		}

		id := entityresult.Entity.GetID()

		event := &DeathEvent{
			Agent:      id,
			Attacker:   healthAspect.GetLastAttacker(),
			UpwardBias: game.options.UpwardBias,
		}

		if qr := game.getEntity(id, game.combatComponent); qr != nil {
			game.CastCombat(qr.Components[game.combatComponent]).SetState(CombatDead)
		}

		if qr := game.getEntity(id, game.allegianceComponent); qr != nil {
			allegianceAspect := game.CastAllegiance(qr.Components[game.allegianceComponent])
			event.Faction = allegianceAspect.Faction()
			event.UnitType = allegianceAspect.UnitType()
		}

		if qr := game.getEntity(id, game.renderComponent); qr != nil {
			renderAspect := game.CastRender(qr.Components[game.renderComponent])
			event.Scale = renderAspect.GetScale()
			event.Color = renderAspect.GetColor()
		}

		if qr := game.getEntity(id, game.physicalBodyComponent); qr != nil {
			physicalAspect := game.CastPhysicalBody(qr.Components[game.physicalBodyComponent])
			event.Position = physicalAspect.GetPosition()
			event.Snapshot = MotionSnapshot{
				Position:    physicalAspect.GetPosition(),
				Velocity:    physicalAspect.GetVelocity(),
				Orientation: physicalAspect.GetOrientation(),
			}
			event.ImpactVelocity = impactVelocity(game, event)

			// The corpse stays put while the presentation layer consumes it.
			physicalAspect.SetVelocity(vector.MakeNullVector2())
		}

		if game.snapshotter != nil {
			event.Snapshot.Limbs = game.snapshotter.Snapshot(id)
		}

		if game.ragdollSpawner != nil {
			game.ragdollSpawner.SpawnRagdoll(event)
		}

		notify.Post(DeathEventName, event)
	}
}

// impactVelocity points away from the killer, scaled by the configured
// impact force; without a known attacker the victim's own velocity is used.
func impactVelocity(game *CrowdGame, event *DeathEvent) vector.Vector2 {

	if event.Attacker != 0 {
		if qr := game.getEntity(event.Attacker, game.physicalBodyComponent); qr != nil {
			attackerPosition := game.CastPhysicalBody(qr.Components[game.physicalBodyComponent]).GetPosition()
			away := event.Position.Sub(attackerPosition)
			if !away.IsNull() {
				return away.SetMag(game.options.ImpactForce)
			}
		}
	}

	return event.Snapshot.Velocity
}
