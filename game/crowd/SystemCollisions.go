package crowd

import (
	"github.com/bytearena/ecs"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// systemCollisions drains the contact buffer filled by the box2d listener
// and resolves agent/agent contacts: mass-weighted knockback and separation
// for every pair, contact damage across factions gated per (attacker,
// victim) pair. Contacts resolve in buffer order; when one agent hits two
// others in a tick the outcome depends on that order, which is accepted.
func systemCollisions(game *CrowdGame) {

	if game.collisionListener == nil {
		return
	}

	for _, collision := range game.collisionListener.PopCollisions() {

		descriptorA, ok := collision.GetFixtureA().GetBody().GetUserData().(bodyDescriptor)
		if !ok {
			continue
		}

		descriptorB, ok := collision.GetFixtureB().GetBody().GetUserData().(bodyDescriptor)
		if !ok {
			continue
		}

		if descriptorA.Type != bodyDescriptorType.Agent || descriptorB.Type != bodyDescriptorType.Agent {
			continue
		}

		resolveAgentContact(game, descriptorA.ID, descriptorB.ID)
	}
}

// resolveAgentContact mutates both records in one logical step; the one
// place in the simulation this happens.
func resolveAgentContact(game *CrowdGame, idA ecs.EntityID, idB ecs.EntityID) {

	qrA := game.getEntity(idA, game.physicalBodyComponent, game.combatComponent, game.allegianceComponent, game.lifecycleComponent)
	qrB := game.getEntity(idB, game.physicalBodyComponent, game.combatComponent, game.allegianceComponent, game.lifecycleComponent)
	if qrA == nil || qrB == nil {
		return
	}

	lifecycleA := game.CastLifecycle(qrA.Components[game.lifecycleComponent])
	lifecycleB := game.CastLifecycle(qrB.Components[game.lifecycleComponent])
	if !lifecycleA.IsAlive() || !lifecycleB.IsAlive() {
		return
	}

	physicalA := game.CastPhysicalBody(qrA.Components[game.physicalBodyComponent])
	physicalB := game.CastPhysicalBody(qrB.Components[game.physicalBodyComponent])

	positionA := physicalA.GetPosition()
	positionB := physicalB.GetPosition()

	normal := positionB.Sub(positionA).Normalize()
	if normal.IsNull() {
		// Perfectly coincident centers; pick an arbitrary contact normal.
		normal = vector.MakeVector2(1, 0)
	}

	velocityA := physicalA.GetVelocity()
	velocityB := physicalB.GetVelocity()

	closingSpeed := velocityA.Sub(velocityB).Dot(normal)
	if closingSpeed < 0 {
		closingSpeed = 0
	}

	massA := physicalA.GetMass()
	massB := physicalB.GetMass()
	totalMass := massA + massB
	if totalMass <= 0 {
		return
	}

	// Each side's velocity delta is proportional to the *other* side's
	// mass share: the lighter party is displaced more.
	impulse := closingSpeed * game.options.KnockbackFactor

	deltaA := normal.MultScalar(-(massB / totalMass) * impulse * (1 - physicalA.GetKnockbackResistance()))
	deltaB := normal.MultScalar((massA / totalMass) * impulse * (1 - physicalB.GetKnockbackResistance()))

	physicalA.SetVelocity(velocityA.Add(deltaA))
	physicalB.SetVelocity(velocityB.Add(deltaB))

	// Separate overlapping bodies along the same normal, same mass ratio.
	overlap := physicalA.GetRadius() + physicalB.GetRadius() - positionA.DistanceTo(positionB)
	if overlap > 0 {
		physicalA.SetPosition(positionA.Sub(normal.MultScalar(overlap * massB / totalMass)))
		physicalB.SetPosition(positionB.Add(normal.MultScalar(overlap * massA / totalMass)))
	}

	allegianceA := game.CastAllegiance(qrA.Components[game.allegianceComponent])
	allegianceB := game.CastAllegiance(qrB.Components[game.allegianceComponent])
	if !allegianceA.HostileTowards(allegianceB) {
		return
	}

	combatA := game.CastCombat(qrA.Components[game.combatComponent])
	combatB := game.CastCombat(qrB.Components[game.combatComponent])

	if combatA.ContactReady(idB, game.now, game.options.ContactCooldown) {
		if applyRawDamage(game, idB, combatA.Damage(), idA) {
			combatA.MarkContact(idB, game.now)
		}
	}

	if combatB.ContactReady(idA, game.now, game.options.ContactCooldown) {
		if applyRawDamage(game, idA, combatB.Damage(), idB) {
			combatB.MarkContact(idA, game.now)
		}
	}
}
