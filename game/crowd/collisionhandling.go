package crowd

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"
)

///////////////////////////////////////////////////////////////////////////////
// Collision Handling
///////////////////////////////////////////////////////////////////////////////

var bodyDescriptorType = struct {
	Agent    string
	Obstacle string
}{
	Agent:    "agent",
	Obstacle: "obstacle",
}

// bodyDescriptor is attached as box2d user data so contacts can be mapped
// back to entities.
type bodyDescriptor struct {
	Type string
	ID   ecs.EntityID
}

func makeBodyDescriptor(type_ string, id ecs.EntityID) bodyDescriptor {
	return bodyDescriptor{
		Type: type_,
		ID:   id,
	}
}

type collisionFilter struct { /* implements box2d.B2World.B2ContactFilterInterface */
	game *CrowdGame
}

func (filter *collisionFilter) ShouldCollide(fixtureA *box2d.B2Fixture, fixtureB *box2d.B2Fixture) bool {

	descriptorA, ok := fixtureA.GetBody().GetUserData().(bodyDescriptor)
	if !ok {
		return false
	}

	descriptorB, ok := fixtureB.GetBody().GetUserData().(bodyDescriptor)
	if !ok {
		return false
	}

	// Dead agents stay visible but stop interacting.
	for _, descriptor := range []bodyDescriptor{descriptorA, descriptorB} {
		if descriptor.Type != bodyDescriptorType.Agent {
			continue
		}

		qr := filter.game.getEntity(descriptor.ID, filter.game.lifecycleComponent)
		if qr == nil {
			return false
		}

		if !filter.game.CastLifecycle(qr.Components[filter.game.lifecycleComponent]).IsAlive() {
			return false
		}
	}

	return true
}

func newCollisionFilter(game *CrowdGame) *collisionFilter {
	return &collisionFilter{
		game: game,
	}
}

type collisionListener struct { /* implements box2d.B2World.B2ContactListenerInterface */
	game            *CrowdGame
	collisionbuffer []box2d.B2ContactInterface
}

func (listener *collisionListener) PopCollisions() []box2d.B2ContactInterface {
	defer func() { listener.collisionbuffer = make([]box2d.B2ContactInterface, 0) }()
	return listener.collisionbuffer
}

// Called when two fixtures begin to touch.
func (listener *collisionListener) BeginContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
	listener.collisionbuffer = append(listener.collisionbuffer, contact)
}

// Called when two fixtures cease to touch.
func (listener *collisionListener) EndContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
}

func (listener *collisionListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) { // contact has to be backed by a pointer
}

func (listener *collisionListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) { // contact has to be backed by a pointer
}

func newCollisionListener(game *CrowdGame) *collisionListener {
	return &collisionListener{
		game:            game,
		collisionbuffer: make([]box2d.B2ContactInterface, 0),
	}
}
