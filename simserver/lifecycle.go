package simserver

import (
	"strconv"
	"time"

	notify "github.com/bitly/go-notify"
	uuid "github.com/satori/go.uuid"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

// VizMessageEvent is the go-notify topic frame batches are posted on.
const VizMessageEvent = "viz:message"

func (server *Server) Start() chan interface{} {
	utils.Debug("sim-server", "Starting at "+strconv.Itoa(server.tickspersec)+" tps")

	block := make(chan interface{})

	server.AddTearDownCall(func() error {
		server.stopticking <- true
		close(server.stopticking)
		return nil
	})

	go func() {
		server.startTicking()
		close(block)
	}()

	return block
}

func (server *Server) Stop() {
	utils.Debug("sim-server", "TearDown from stop")
	server.TearDown()
}

func (server *Server) startTicking() {

	tickduration := time.Duration((1000000 / time.Duration(server.tickspersec)) * time.Microsecond)
	ticker := time.Tick(tickduration)

	for {
		select {
		case <-server.stopticking:
			{
				utils.Debug("core-loop", "Received stop ticking signal")
				notify.Post("app:stopticking", nil)
				return
			}
		case <-ticker:
			{
				server.doTick()
			}
		}
	}
}

func (server *Server) doTick() {

	server.debugNbTicks++
	server.ticknum++

	dolog := (server.ticknum % server.tickspersec) == 0
	if dolog {
		utils.Debug("core-loop", "######## Tick ######## "+strconv.Itoa(server.ticknum))
	}

	///////////////////////////////////////////////////////////////////////////
	// Applying deferred spawns/despawns at the tick boundary
	///////////////////////////////////////////////////////////////////////////
	commands := server.applyPendingOperations()

	///////////////////////////////////////////////////////////////////////////
	// Updating world state
	///////////////////////////////////////////////////////////////////////////
	dt := 1.0 / float64(server.tickspersec)
	server.game.Step(server.ticknum, dt, time.Now(), commands)

	///////////////////////////////////////////////////////////////////////////
	// Pushing updated state to viz
	///////////////////////////////////////////////////////////////////////////
	frame := server.game.ProduceVizMessageJson()
	notify.PostTimeout(VizMessageEvent, string(frame), time.Millisecond)
}

// applyPendingOperations registers queued spawns, releases queued removals
// and drains the command queue, resolving public handles to entity ids.
// Commands whose handle cannot be resolved are dropped with a log line.
func (server *Server) applyPendingOperations() []types.Command {

	server.pendingmutex.Lock()
	spawns := server.pendingSpawns
	removals := server.pendingRemovals
	queued := server.pendingCommands
	server.pendingSpawns = make([]pendingSpawn, 0)
	server.pendingRemovals = make([]uuid.UUID, 0)
	server.pendingCommands = make([]types.Command, 0)
	server.pendingmutex.Unlock()

	for _, spawn := range spawns {
		entityid := server.game.NewEntityAgent(spawn.config)

		server.agentproxiesmutex.Lock()
		server.agentproxies[spawn.proxyid] = entityid
		server.agentproxiesByEnt[entityid] = spawn.proxyid
		server.agentproxiesmutex.Unlock()
	}

	for _, handle := range removals {
		entityid, ok := server.ResolveHandle(handle)
		if !ok {
			// Unregistering an absent handle is a no-op.
			continue
		}

		server.game.RemoveEntityAgent(entityid)

		server.agentproxiesmutex.Lock()
		delete(server.agentproxies, handle)
		delete(server.agentproxiesByEnt, entityid)
		server.agentproxiesmutex.Unlock()
	}

	commands := make([]types.Command, 0, len(queued))
	for _, command := range queued {
		entityid, ok := server.ResolveHandle(command.AgentProxyUUID)
		if !ok {
			utils.Debug("sim-server", "Dropping command "+command.Method+" for unknown agent "+command.AgentProxyUUID.String())
			continue
		}

		command.EntityID = entityid
		if !uuid.Equal(command.AttackerUUID, uuid.Nil) {
			if attacker, known := server.ResolveHandle(command.AttackerUUID); known {
				command.Attacker = attacker
			}
		}

		commands = append(commands, command)
	}

	return commands
}

func (server *Server) TearDown() {
	utils.Debug("sim-server", "teardown")

	server.tearDownCallbacksMutex.Lock()

	for i := len(server.tearDownCallbacks) - 1; i >= 0; i-- {
		utils.Debug("teardown", "Executing TearDownCallback")
		server.tearDownCallbacks[i]()
	}

	// Reset to avoid calling teardown callbacks multiple times
	server.tearDownCallbacks = make([]types.TearDownCallback, 0)

	server.tearDownCallbacksMutex.Unlock()
}
