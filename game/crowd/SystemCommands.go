package crowd

import (
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils"
	servertypes "github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// systemCommands applies the externally queued mutations in arrival order.
// Commands on locked or absent entities are discarded silently.
func systemCommands(game *CrowdGame, commands []servertypes.Command) {

	for _, command := range commands {

		lifecycleQr := game.getEntity(command.EntityID, game.lifecycleComponent)
		if lifecycleQr == nil {
			continue
		}

		lifecycleAspect := game.CastLifecycle(lifecycleQr.Components[game.lifecycleComponent])

		switch command.Method {

		case servertypes.CommandMoveTo:
			if lifecycleAspect.IsLocked() || lifecycleAspect.IsUnsimulated() {
				continue
			}

			qr := game.getEntity(command.EntityID, game.navigationComponent)
			if qr == nil {
				continue
			}

			game.CastNavigation(qr.Components[game.navigationComponent]).SetGoal(command.Position)

		case servertypes.CommandStopMoving:
			qr := game.getEntity(command.EntityID, game.navigationComponent)
			if qr == nil {
				continue
			}

			game.CastNavigation(qr.Components[game.navigationComponent]).ClearGoal()

		case servertypes.CommandTakeDamage:
			applyRawDamage(game, command.EntityID, command.Amount, command.Attacker)

		default:
			utils.Debug("crowd-commands", "Unknown command method "+command.Method)
		}
	}
}
