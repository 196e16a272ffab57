package simserver

import (
	"sync"

	notify "github.com/bitly/go-notify"
	uuid "github.com/satori/go.uuid"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/game/crowd"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// RegisterAgent queues a spawn and returns the agent's stable public handle
// immediately. The record is allocated at the next tick boundary so the
// live set never mutates while systems iterate it.
func (server *Server) RegisterAgent(config types.AgentConfig) uuid.UUID {

	proxyid := uuid.NewV4()

	server.pendingmutex.Lock()
	server.pendingSpawns = append(server.pendingSpawns, pendingSpawn{
		proxyid: proxyid,
		config:  config,
	})
	server.pendingmutex.Unlock()

	utils.Debug("sim-server", "Registered agent "+proxyid.String()+" ("+config.Faction+"/"+config.UnitType+")")

	return proxyid
}

// UnregisterAgent queues the removal of an agent. Idempotent: unknown or
// already-removed handles are ignored at apply time.
func (server *Server) UnregisterAgent(handle uuid.UUID) {
	server.pendingmutex.Lock()
	server.pendingRemovals = append(server.pendingRemovals, handle)
	server.pendingmutex.Unlock()
}

// MoveTo orders a (friendly) unit towards a position.
func (server *Server) MoveTo(handle uuid.UUID, position vector.Vector2) {
	server.enqueueCommand(types.Command{
		AgentProxyUUID: handle,
		Method:         types.CommandMoveTo,
		Position:       position,
	})
}

// StopMoving cancels a unit's move order.
func (server *Server) StopMoving(handle uuid.UUID) {
	server.enqueueCommand(types.Command{
		AgentProxyUUID: handle,
		Method:         types.CommandStopMoving,
	})
}

// TakeDamage routes damage from an external source into the agent; attacker
// may be uuid.Nil when the source is anonymous (a trap, a script).
func (server *Server) TakeDamage(handle uuid.UUID, amount float64, attacker uuid.UUID) {
	server.enqueueCommand(types.Command{
		AgentProxyUUID: handle,
		Method:         types.CommandTakeDamage,
		Amount:         amount,
		AttackerUUID:   attacker,
	})
}

func (server *Server) enqueueCommand(command types.Command) {
	server.pendingmutex.Lock()
	server.pendingCommands = append(server.pendingCommands, command)
	server.pendingmutex.Unlock()
}

// AgentDeath is the boundary form of the death handoff, with entity ids
// translated back to public handles.
type AgentDeath struct {
	AgentHandle    uuid.UUID
	AttackerHandle uuid.UUID // Nil when unknown
	Event          *crowd.DeathEvent
}

// OnAgentDeath subscribes cbk to death handoffs. The returned function
// cancels the subscription; it is also registered as a teardown call.
func (server *Server) OnAgentDeath(cbk func(death AgentDeath)) func() {

	channel := make(chan interface{})
	notify.Start(crowd.DeathEventName, channel)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case data := <-channel:
				event, ok := data.(*crowd.DeathEvent)
				if !ok {
					continue
				}

				death := AgentDeath{Event: event}
				if handle, known := server.handleForEntity(event.Agent); known {
					death.AgentHandle = handle
				}
				if event.Attacker != 0 {
					if handle, known := server.handleForEntity(event.Attacker); known {
						death.AttackerHandle = handle
					}
				}

				cbk(death)
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			notify.Stop(crowd.DeathEventName, channel)
			close(done)
		})
	}

	server.AddTearDownCall(func() error {
		cancel()
		return nil
	})

	return cancel
}
