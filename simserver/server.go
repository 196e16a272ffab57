package simserver

import (
	"sync"

	"github.com/bytearena/ecs"
	uuid "github.com/satori/go.uuid"

	gamecommon "github.com/pythonlearner1025/ChineseCrowdControl-sub001/game/common"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/simserver/types"
)

type pendingSpawn struct {
	proxyid uuid.UUID
	config  types.AgentConfig
}

// Server owns the simulation clock and the public agent handles. All game
// mutation funnels through the tick: spawns, despawns and commands issued
// mid-tick are queued and applied at the next tick boundary, so the live
// set never changes under the iterating systems.
type Server struct {
	tickspersec int
	ticknum     int
	game        gamecommon.GameInterface

	agentproxies      map[uuid.UUID]ecs.EntityID
	agentproxiesByEnt map[ecs.EntityID]uuid.UUID
	agentproxiesmutex sync.Mutex

	pendingSpawns   []pendingSpawn
	pendingRemovals []uuid.UUID
	pendingCommands []types.Command
	pendingmutex    sync.Mutex

	stopticking chan bool

	tearDownCallbacks      []types.TearDownCallback
	tearDownCallbacksMutex sync.Mutex

	debugNbTicks int
}

func NewServer(game gamecommon.GameInterface, tickspersec int) *Server {
	return &Server{
		tickspersec: tickspersec,
		game:        game,

		agentproxies:      make(map[uuid.UUID]ecs.EntityID),
		agentproxiesByEnt: make(map[ecs.EntityID]uuid.UUID),

		pendingSpawns:   make([]pendingSpawn, 0),
		pendingRemovals: make([]uuid.UUID, 0),
		pendingCommands: make([]types.Command, 0),

		stopticking:       make(chan bool),
		tearDownCallbacks: make([]types.TearDownCallback, 0),
	}
}

func (server *Server) GetGame() gamecommon.GameInterface {
	return server.game
}

func (server *Server) GetTicksPerSecond() int {
	return server.tickspersec
}

func (server *Server) GetTicknum() int {
	return server.ticknum
}

// ResolveHandle maps a public agent handle to its entity id; ok is false
// for unknown (or not yet spawned) handles.
func (server *Server) ResolveHandle(handle uuid.UUID) (ecs.EntityID, bool) {
	server.agentproxiesmutex.Lock()
	defer server.agentproxiesmutex.Unlock()

	entityid, ok := server.agentproxies[handle]
	return entityid, ok
}

func (server *Server) handleForEntity(entityid ecs.EntityID) (uuid.UUID, bool) {
	server.agentproxiesmutex.Lock()
	defer server.agentproxiesmutex.Unlock()

	handle, ok := server.agentproxiesByEnt[entityid]
	return handle, ok
}

func (s *Server) AddTearDownCall(fn types.TearDownCallback) {
	s.tearDownCallbacksMutex.Lock()
	defer s.tearDownCallbacksMutex.Unlock()

	s.tearDownCallbacks = append(s.tearDownCallbacks, fn)
}
