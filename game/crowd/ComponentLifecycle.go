package crowd

// Lifecycle tracks aliveness and the death/removal schedule of an entity.
// alive is false iff health is depleted or a forced kill is pending;
// a dead agent stays visible (locked) until its removal tick so the
// presentation layer can consume the death snapshot.
type Lifecycle struct {
	alive       bool
	locked      bool // dead but not yet removed; ignores commands and combat
	unsimulated bool // registered without a physics world; no movement/combat

	tickBirth  int
	tickDeath  int
	maxAge     int // ticks; 0 = unbounded
	forcedKill bool

	handoffDone   bool
	removeAtTick  int
	removePending bool
}

func NewLifecycle(tickBirth int) *Lifecycle {
	return &Lifecycle{
		alive:     true,
		tickBirth: tickBirth,
	}
}

func (game CrowdGame) CastLifecycle(data interface{}) *Lifecycle {
	return data.(*Lifecycle)
}

func (lc Lifecycle) IsAlive() bool {
	return lc.alive
}

func (lc Lifecycle) IsLocked() bool {
	return lc.locked
}

func (lc Lifecycle) IsUnsimulated() bool {
	return lc.unsimulated
}

func (lc *Lifecycle) SetUnsimulated(unsimulated bool) *Lifecycle {
	lc.unsimulated = unsimulated
	return lc
}

func (lc *Lifecycle) SetMaxAge(maxAge int) *Lifecycle {
	lc.maxAge = maxAge
	return lc
}

func (lc Lifecycle) GetBirth() int {
	return lc.tickBirth
}

func (lc Lifecycle) GetDeath() int {
	return lc.tickDeath
}

func (lc Lifecycle) ForcedKillPending() bool {
	return lc.forcedKill
}

func (lc *Lifecycle) ForceKill() {
	lc.forcedKill = true
}

func (lc Lifecycle) MaxAgeExceeded(ticknum int) bool {
	return lc.maxAge > 0 && (ticknum-lc.tickBirth) > lc.maxAge
}

func (lc Lifecycle) HandoffDone() bool {
	return lc.handoffDone
}

// MarkDead freezes the agent. Idempotent: the first call wins and schedules
// removal; re-entrant calls are no-ops.
func (lc *Lifecycle) MarkDead(ticknum int, removeAfter int) bool {
	if lc.handoffDone {
		return false
	}

	lc.alive = false
	lc.locked = true
	lc.tickDeath = ticknum
	lc.handoffDone = true
	lc.removeAtTick = ticknum + removeAfter
	lc.removePending = true
	return true
}

func (lc Lifecycle) RemovalDue(ticknum int) bool {
	return lc.removePending && ticknum >= lc.removeAtTick
}
