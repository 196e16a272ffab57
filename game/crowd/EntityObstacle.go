package crowd

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/ecs"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// NewEntityObstacle places a static blocker (a barricade or a structure).
// Obstacles never appear in the pathfinding grid; agents discover them by
// running into them.
func (game *CrowdGame) NewEntityObstacle(position vector.Vector2, halfWidth float64, halfHeight float64, name string) *ecs.Entity {

	obstacle := game.manager.NewEntity()

	physical := &PhysicalBody{
		radius: halfWidth,
	}
	physical.SetPosition(position)

	if game.PhysicalWorld != nil {
		bodydef := box2d.MakeB2BodyDef()
		bodydef.Position.Set(position.GetX(), position.GetY())
		bodydef.Type = box2d.B2BodyType.B2_staticBody

		body := game.PhysicalWorld.CreateBody(&bodydef)

		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(halfWidth, halfHeight)

		fixturedef := box2d.MakeB2FixtureDef()
		fixturedef.Shape = &shape
		fixturedef.Density = 0.0
		body.CreateFixtureFromDef(&fixturedef)
		body.SetUserData(makeBodyDescriptor(bodyDescriptorType.Obstacle, obstacle.GetID()))

		physical.SetBody(body)
	}

	return obstacle.
		AddComponent(game.physicalBodyComponent, physical).
		AddComponent(game.renderComponent, &Render{
			type_:  name,
			static: true,
			scale:  1.0,
		})
}
