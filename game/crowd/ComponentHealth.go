package crowd

import "github.com/bytearena/ecs"

type Health struct {
	maxLife float64 // Const
	life    float64 // Current life level
	armor   float64 // Const; flat damage reduction, floor of 1 applies

	lastAttacker ecs.EntityID // most recent damage source; 0 when unknown
}

func NewHealth(maxlife float64, life float64, armor float64) *Health {
	if life <= 0 || life > maxlife {
		life = maxlife
	}

	return &Health{
		maxLife: maxlife,
		life:    life,
		armor:   armor,
	}
}

func (game CrowdGame) CastHealth(data interface{}) *Health {
	return data.(*Health)
}

func (health Health) GetMaxLife() float64 {
	return health.maxLife
}

func (health Health) GetLife() float64 {
	return health.life
}

func (health Health) GetArmor() float64 {
	return health.armor
}

func (health *Health) SetLife(life float64) {
	if life < 0 {
		life = 0
	}

	if life > health.maxLife {
		life = health.maxLife
	}

	health.life = life
}

func (health *Health) AddLife(life float64) {
	health.SetLife(life + health.GetLife())
}

func (health Health) GetLastAttacker() ecs.EntityID {
	return health.lastAttacker
}

func (health *Health) SetLastAttacker(attacker ecs.EntityID) {
	health.lastAttacker = attacker
}
