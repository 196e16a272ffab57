package crowd

import (
	"time"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// Navigation holds the agent's current path and its follow state. A path is
// recomputed no less often than the repath interval, and immediately when
// exhausted.
type Navigation struct {
	goal    vector.Vector2 // explicit move order destination
	hasGoal bool

	waypoints  []vector.Vector2
	cursor     int
	lastRepath time.Time

	arriveRadius   float64
	desiredHeading vector.Vector2 // unit vector or zero; consumed by steering
}

func NewNavigation(arriveRadius float64) *Navigation {
	return &Navigation{
		arriveRadius: arriveRadius,
	}
}

func (game CrowdGame) CastNavigation(data interface{}) *Navigation {
	return data.(*Navigation)
}

func (nav *Navigation) SetGoal(goal vector.Vector2) {
	nav.goal = goal
	nav.hasGoal = true
	nav.clearPath()
}

func (nav *Navigation) ClearGoal() {
	nav.hasGoal = false
	nav.clearPath()
	nav.desiredHeading = vector.MakeNullVector2()
}

func (nav Navigation) Goal() (vector.Vector2, bool) {
	return nav.goal, nav.hasGoal
}

func (nav *Navigation) SetPath(waypoints []vector.Vector2, now time.Time) {
	nav.waypoints = waypoints
	nav.cursor = 0
	nav.lastRepath = now
}

func (nav *Navigation) clearPath() {
	nav.waypoints = nil
	nav.cursor = 0
}

func (nav Navigation) PathExhausted() bool {
	return nav.cursor >= len(nav.waypoints)
}

func (nav Navigation) NeedsRepath(now time.Time, interval time.Duration) bool {
	return nav.PathExhausted() || now.Sub(nav.lastRepath) >= interval
}

func (nav Navigation) CurrentWaypoint() (vector.Vector2, bool) {
	if nav.PathExhausted() {
		return vector.MakeNullVector2(), false
	}
	return nav.waypoints[nav.cursor], true
}

// FollowFrom advances the cursor past reached waypoints and returns the unit
// heading towards the current one, or a zero vector when the path is done.
func (nav *Navigation) FollowFrom(position vector.Vector2) vector.Vector2 {
	for {
		waypoint, ok := nav.CurrentWaypoint()
		if !ok {
			return vector.MakeNullVector2()
		}

		delta := waypoint.Sub(position)
		if delta.Mag() > nav.arriveRadius {
			return delta.Normalize()
		}

		nav.cursor++
	}
}

func (nav Navigation) DesiredHeading() vector.Vector2 {
	return nav.desiredHeading
}

func (nav *Navigation) SetDesiredHeading(heading vector.Vector2) {
	nav.desiredHeading = heading
}

func (nav Navigation) Waypoints() []vector.Vector2 {
	return nav.waypoints
}
