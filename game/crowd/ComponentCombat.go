package crowd

import (
	"time"

	"github.com/bytearena/ecs"
)

type CombatState uint8

const (
	CombatIdle CombatState = iota
	CombatApproaching
	CombatAttacking
	CombatDead // terminal
)

func (s CombatState) String() string {
	switch s {
	case CombatIdle:
		return "idle"
	case CombatApproaching:
		return "approaching"
	case CombatAttacking:
		return "attacking"
	default:
		return "dead"
	}
}

// Combat carries the range/cooldown gated attack state of one agent.
// The target reference is a weak handle, never an owning pointer.
type Combat struct {
	state CombatState

	detectionRange  float64
	attackRange     float64
	damage          float64
	attackFrequency float64 // attacks per second

	lastAttack   time.Time
	everAttacked bool
	target       ecs.EntityID
	hasTarget    bool
	contactTimes map[ecs.EntityID]time.Time // per counterpart contact damage window
}

func NewCombat(detectionRange, attackRange, damage, attackFrequency float64) *Combat {
	return &Combat{
		state:           CombatIdle,
		detectionRange:  detectionRange,
		attackRange:     attackRange,
		damage:          damage,
		attackFrequency: attackFrequency,
		contactTimes:    make(map[ecs.EntityID]time.Time),
	}
}

func (game CrowdGame) CastCombat(data interface{}) *Combat {
	return data.(*Combat)
}

func (c Combat) State() CombatState {
	return c.state
}

func (c *Combat) SetState(state CombatState) {
	if c.state == CombatDead {
		return
	}
	c.state = state
}

func (c Combat) DetectionRange() float64 {
	return c.detectionRange
}

func (c Combat) AttackRange() float64 {
	return c.attackRange
}

func (c Combat) Damage() float64 {
	return c.damage
}

func (c Combat) Target() (ecs.EntityID, bool) {
	return c.target, c.hasTarget
}

func (c *Combat) SetTarget(target ecs.EntityID) {
	c.target = target
	c.hasTarget = true
}

func (c *Combat) ClearTarget() {
	c.target = 0
	c.hasTarget = false
}

// AttackInterval derives the cooldown window from the attack frequency.
func (c Combat) AttackInterval() time.Duration {
	if c.attackFrequency <= 0 {
		return time.Hour
	}
	return time.Duration(float64(time.Second) / c.attackFrequency)
}

// CanAttack gates scheduled attacks on the wall clock. At most one attack is
// permitted per tick regardless of how much time elapsed; extra elapsed time
// is discarded.
func (c Combat) CanAttack(now time.Time) bool {
	if !c.everAttacked {
		return true
	}
	return now.Sub(c.lastAttack) >= c.AttackInterval()
}

func (c *Combat) MarkAttack(now time.Time) {
	c.lastAttack = now
	c.everAttacked = true
}

// ContactReady gates contact-collision damage per counterpart.
func (c Combat) ContactReady(other ecs.EntityID, now time.Time, window time.Duration) bool {
	last, hit := c.contactTimes[other]
	if !hit {
		return true
	}
	return now.Sub(last) >= window
}

func (c *Combat) MarkContact(other ecs.EntityID, now time.Time) {
	c.contactTimes[other] = now
}

// ForgetCounterpart drops the cooldown entry of a removed agent so the map
// does not grow with dead handles.
func (c *Combat) ForgetCounterpart(other ecs.EntityID) {
	delete(c.contactTimes, other)
}
