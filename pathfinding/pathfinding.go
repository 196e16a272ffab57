package pathfinding

import (
	"math"
	"sort"
	"strconv"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
)

// DefaultMaxIterations bounds the per-call cost of FindPath. The cap is a
// real-time latency bound, not a completeness guarantee: when it is hit the
// search returns the best-effort path to the last expanded cell.
const DefaultMaxIterations = 200

const diagonalCost = math.Sqrt2

// Grid maps continuous world coordinates onto an implicit, unbounded,
// obstacle-free integer grid. Placed structures are not part of the grid;
// they block agents through physical contact only.
type Grid struct {
	CellSize float64
}

func MakeGrid(cellSize float64) Grid {
	return Grid{CellSize: cellSize}
}

func (g Grid) ToGrid(x float64, y float64) (int, int) {
	return int(math.Round(x / g.CellSize)), int(math.Round(y / g.CellSize))
}

func (g Grid) ToWorld(gx int, gy int) (float64, float64) {
	return float64(gx) * g.CellSize, float64(gy) * g.CellSize
}

type pathNode struct {
	gx, gy int
	gcost  float64 // cost from start
	fcost  float64 // gcost + heuristic
	parent *pathNode
}

func cellKey(gx int, gy int) string {
	return strconv.Itoa(gx) + ":" + strconv.Itoa(gy)
}

// manhattan is the heuristic; it slightly overestimates diagonal travel,
// which trades optimality for fewer expansions at the small search depths
// the iteration cap allows.
func manhattan(ax, ay, bx, by int) float64 {
	return math.Abs(float64(bx-ax)) + math.Abs(float64(by-ay))
}

var neighborOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindPath runs a bounded A* search from start to goal and returns the
// world-space waypoints of the path, excluding the start cell. Waypoints are
// pairwise 8-adjacent on the grid. An empty path is returned when start and
// goal share a cell. maxIterations <= 0 selects DefaultMaxIterations.
func (g Grid) FindPath(start vector.Vector2, goal vector.Vector2, maxIterations int) []vector.Vector2 {

	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	startx, starty := g.ToGrid(start.Get())
	goalx, goaly := g.ToGrid(goal.Get())

	if startx == goalx && starty == goaly {
		return nil
	}

	first := &pathNode{
		gx:    startx,
		gy:    starty,
		gcost: 0,
		fcost: manhattan(startx, starty, goalx, goaly),
	}

	open := []*pathNode{first}
	openByKey := map[string]*pathNode{cellKey(startx, starty): first}
	closed := make(map[string]bool)

	var current *pathNode

	for iteration := 0; iteration < maxIterations && len(open) > 0; iteration++ {

		sort.SliceStable(open, func(i, j int) bool {
			return open[i].fcost < open[j].fcost
		})

		current = open[0]
		open = open[1:]

		key := cellKey(current.gx, current.gy)
		delete(openByKey, key)
		closed[key] = true

		if current.gx == goalx && current.gy == goaly {
			return g.reconstruct(current, startx, starty)
		}

		for _, offset := range neighborOffsets {
			nx := current.gx + offset[0]
			ny := current.gy + offset[1]
			nkey := cellKey(nx, ny)

			if closed[nkey] {
				continue
			}

			stepCost := 1.0
			if offset[0] != 0 && offset[1] != 0 {
				stepCost = diagonalCost
			}

			gcost := current.gcost + stepCost

			if known, inOpen := openByKey[nkey]; inOpen {
				if gcost < known.gcost {
					known.gcost = gcost
					known.fcost = gcost + manhattan(nx, ny, goalx, goaly)
					known.parent = current
				}
				continue
			}

			neighbor := &pathNode{
				gx:     nx,
				gy:     ny,
				gcost:  gcost,
				fcost:  gcost + manhattan(nx, ny, goalx, goaly),
				parent: current,
			}
			open = append(open, neighbor)
			openByKey[nkey] = neighbor
		}
	}

	// Iteration budget exhausted; best-effort path to the last expanded cell.
	if current == nil {
		return nil
	}

	return g.reconstruct(current, startx, starty)
}

func (g Grid) reconstruct(end *pathNode, startx int, starty int) []vector.Vector2 {

	cells := make([]*pathNode, 0)
	for node := end; node != nil; node = node.parent {
		if node.gx == startx && node.gy == starty && node.parent == nil {
			break
		}
		cells = append(cells, node)
	}

	path := make([]vector.Vector2, len(cells))
	for i, node := range cells {
		x, y := g.ToWorld(node.gx, node.gy)
		path[len(cells)-1-i] = vector.MakeVector2(x, y)
	}

	return path
}
