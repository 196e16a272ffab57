package pathfinding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/common/utils/vector"
	"github.com/pythonlearner1025/ChineseCrowdControl-sub001/pathfinding"
)

func TestGridRoundTrip(t *testing.T) {
	grid := pathfinding.MakeGrid(2.0)

	gx, gy := grid.ToGrid(3.1, -2.9)
	assert.Equal(t, 2, gx)
	assert.Equal(t, -1, gy)

	wx, wy := grid.ToWorld(gx, gy)
	assert.Equal(t, 4.0, wx)
	assert.Equal(t, -2.0, wy)
}

func TestStraightLinePath(t *testing.T) {
	grid := pathfinding.MakeGrid(1.0)

	path := grid.FindPath(
		vector.MakeVector2(0, 0),
		vector.MakeVector2(5, 0),
		0,
	)

	expected := [][2]float64{
		{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0},
	}

	assert.Equal(t, len(expected), len(path))
	for i, waypoint := range path {
		x, y := waypoint.Get()
		assert.InDelta(t, expected[i][0], x, 1e-9)
		assert.InDelta(t, expected[i][1], y, 1e-9)
	}
}

func TestStartAndGoalShareCell(t *testing.T) {
	grid := pathfinding.MakeGrid(1.0)

	path := grid.FindPath(
		vector.MakeVector2(0.2, 0.1),
		vector.MakeVector2(-0.3, 0.4),
		0,
	)

	assert.Empty(t, path)
}

// assertEightAdjacent verifies that consecutive waypoints (starting from the
// start cell) never differ by more than one cell on either axis.
func assertEightAdjacent(t *testing.T, grid pathfinding.Grid, start vector.Vector2, path []vector.Vector2) {
	t.Helper()

	px, py := grid.ToGrid(start.Get())
	for _, waypoint := range path {
		gx, gy := grid.ToGrid(waypoint.Get())

		dx := int(math.Abs(float64(gx - px)))
		dy := int(math.Abs(float64(gy - py)))

		assert.LessOrEqual(t, dx, 1)
		assert.LessOrEqual(t, dy, 1)
		assert.False(t, dx == 0 && dy == 0, "path revisits a cell")

		px, py = gx, gy
	}
}

func TestDiagonalPathAdjacency(t *testing.T) {
	grid := pathfinding.MakeGrid(1.0)
	start := vector.MakeVector2(0, 0)
	goal := vector.MakeVector2(7, 3)

	path := grid.FindPath(start, goal, 0)

	assert.NotEmpty(t, path)
	assertEightAdjacent(t, grid, start, path)

	// The path ends on the goal cell and closes in monotonically.
	lastx, lasty := grid.ToGrid(path[len(path)-1].Get())
	assert.Equal(t, 7, lastx)
	assert.Equal(t, 3, lasty)

	previous := math.Inf(1)
	for _, waypoint := range path {
		gx, gy := grid.ToGrid(waypoint.Get())
		remaining := math.Abs(float64(7-gx)) + math.Abs(float64(3-gy))
		assert.Less(t, remaining, previous)
		previous = remaining
	}
}

func TestIterationCapReturnsBestEffort(t *testing.T) {
	grid := pathfinding.MakeGrid(1.0)
	start := vector.MakeVector2(0, 0)
	goal := vector.MakeVector2(1000, 0)

	path := grid.FindPath(start, goal, 0)

	// The goal is out of reach within the budget; the search still hands
	// back a usable prefix heading towards it.
	assert.NotEmpty(t, path)
	assert.LessOrEqual(t, len(path), pathfinding.DefaultMaxIterations)
	assertEightAdjacent(t, grid, start, path)

	lastx, _ := grid.ToGrid(path[len(path)-1].Get())
	assert.Greater(t, lastx, 0)
	assert.Less(t, lastx, 1000)
}

func TestNegativeIterationBudgetFallsBackToDefault(t *testing.T) {
	grid := pathfinding.MakeGrid(1.0)

	path := grid.FindPath(
		vector.MakeVector2(0, 0),
		vector.MakeVector2(3, 3),
		-1,
	)

	assert.Equal(t, 3, len(path))
}
