package crowd

import (
	"github.com/bytearena/box2d"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// PhysicalBody wraps the agent's rigid body. The solver owns the body's
// internal state; the simulation only pushes and pulls position, velocity
// and orientation through these accessors. body is nil for unsimulated
// agents (registered while no physics world was available), in which case
// the cached position/velocity stand in.
type PhysicalBody struct {
	body *box2d.B2Body

	position vector.Vector2 // cache, authoritative only when body == nil
	velocity vector.Vector2

	mass                float64 // kg; authoritative for knockback math
	radius              float64 // collision radius, meters
	baseSpeed           float64 // speed clamp, m/s
	linearForceBudget   float64 // steering force, newtons
	friction            float64 // exponential decay coefficient, 1/s
	maxAngularVelocity  float64 // rad/s heading slew bound
	knockbackResistance float64 // 0..1 fraction of received knockback absorbed
}

func (game CrowdGame) CastPhysicalBody(data interface{}) *PhysicalBody {
	return data.(*PhysicalBody)
}

func (p *PhysicalBody) GetBody() *box2d.B2Body {
	return p.body
}

func (p *PhysicalBody) SetBody(body *box2d.B2Body) *PhysicalBody {
	p.body = body
	return p
}

// IsSimulated reports whether a rigid body backs this agent.
func (p PhysicalBody) IsSimulated() bool {
	return p.body != nil
}

func (p PhysicalBody) GetPosition() vector.Vector2 {
	if p.body == nil {
		return p.position
	}
	return vector.FromB2Vec2(p.body.GetPosition())
}

func (p *PhysicalBody) SetPosition(v vector.Vector2) *PhysicalBody {
	p.position = v
	if p.body != nil {
		p.body.SetTransform(v.ToB2Vec2(), p.GetOrientation())
	}
	return p
}

func (p PhysicalBody) GetVelocity() vector.Vector2 {
	if p.body == nil {
		return p.velocity
	}
	return vector.FromB2Vec2(p.body.GetLinearVelocity())
}

func (p *PhysicalBody) SetVelocity(v vector.Vector2) *PhysicalBody {
	p.velocity = v
	if p.body != nil {
		p.body.SetLinearVelocity(v.ToB2Vec2())
	}
	return p
}

func (p PhysicalBody) GetOrientation() float64 {
	if p.body == nil {
		return 0
	}
	return p.body.GetAngle()
}

func (p *PhysicalBody) SetOrientation(angle float64) *PhysicalBody {
	if p.body != nil {
		p.body.SetTransform(p.body.GetPosition(), angle)
	}
	return p
}

func (p PhysicalBody) GetMass() float64 {
	return p.mass
}

func (p PhysicalBody) GetRadius() float64 {
	return p.radius
}

func (p PhysicalBody) GetBaseSpeed() float64 {
	return p.baseSpeed
}

func (p PhysicalBody) GetLinearForceBudget() float64 {
	return p.linearForceBudget
}

func (p PhysicalBody) GetFriction() float64 {
	return p.friction
}

func (p PhysicalBody) GetMaxAngularVelocity() float64 {
	return p.maxAngularVelocity
}

func (p PhysicalBody) GetKnockbackResistance() float64 {
	return p.knockbackResistance
}
