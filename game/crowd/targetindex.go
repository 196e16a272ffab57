package crowd

import (
	"github.com/bytearena/ecs"
	"github.com/dhconnelly/rtreego"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// indexedAgent is one live agent projected into the spatial target index.
type indexedAgent struct {
	id       ecs.EntityID
	position vector.Vector2
	faction  Faction
	state    CombatState
	rect     rtreego.Rect
}

func (agent *indexedAgent) Bounds() rtreego.Rect {
	return agent.rect
}

// buildTargetIndex projects every live, simulated agent into an R-tree.
// Rebuilt each tick; queries answer "nearest hostile within range" for the
// combat system.
func buildTargetIndex(game *CrowdGame) *rtreego.Rtree {

	spatials := make([]rtreego.Spatial, 0)

	for _, entityresult := range game.combatView.Get() {
		lifecycleQr := game.getEntity(entityresult.Entity.GetID(), game.lifecycleComponent)
		if lifecycleQr == nil {
			continue
		}

		lifecycleAspect := game.CastLifecycle(lifecycleQr.Components[game.lifecycleComponent])
		if !lifecycleAspect.IsAlive() || lifecycleAspect.IsUnsimulated() {
			continue
		}

		physicalAspect := game.CastPhysicalBody(entityresult.Components[game.physicalBodyComponent])
		allegianceAspect := game.CastAllegiance(entityresult.Components[game.allegianceComponent])
		combatAspect := game.CastCombat(entityresult.Components[game.combatComponent])

		position := physicalAspect.GetPosition()
		px, py := position.Get()

		rect, err := rtreego.NewRect(rtreego.Point{px - 0.005, py - 0.005}, []float64{0.01, 0.01})
		if err != nil {
			continue
		}

		spatials = append(spatials, &indexedAgent{
			id:       entityresult.Entity.GetID(),
			position: position,
			faction:  allegianceAspect.Faction(),
			state:    combatAspect.State(),
			rect:     rect,
		})
	}

	return rtreego.NewTree(2, 25, 50, spatials...)
}

// nearestHostile returns the closest enemy of faction within radius of from.
// Among candidates, agents already attacking something rank first: a unit
// actively engaging an objective is the higher priority target.
func nearestHostile(index *rtreego.Rtree, self ecs.EntityID, from vector.Vector2, faction Faction, radius float64) (ecs.EntityID, bool) {

	px, py := from.Get()
	searchRect, err := rtreego.NewRect(
		rtreego.Point{px - radius, py - radius},
		[]float64{radius * 2, radius * 2},
	)
	if err != nil {
		return 0, false
	}

	matches := index.SearchIntersect(searchRect)

	var best *indexedAgent
	var bestDistance float64

	for _, match := range matches {
		candidate := match.(*indexedAgent)

		if candidate.id == self || candidate.faction == faction {
			continue
		}

		distance := candidate.position.DistanceTo(from)
		if distance > radius {
			continue
		}

		if best == nil {
			best, bestDistance = candidate, distance
			continue
		}

		bestEngaged := best.state == CombatAttacking
		candidateEngaged := candidate.state == CombatAttacking

		if candidateEngaged != bestEngaged {
			if candidateEngaged {
				best, bestDistance = candidate, distance
			}
			continue
		}

		if distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}

	if best == nil {
		return 0, false
	}

	return best.id, true
}
