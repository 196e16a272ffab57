package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleIsNorthRelativeClockwise(t *testing.T) {
	assert.InDelta(t, 0.0, MakeVector2(0, 1).Angle(), 1e-9)
	assert.InDelta(t, math.Pi/2, MakeVector2(1, 0).Angle(), 1e-9)
	assert.InDelta(t, math.Pi, MakeVector2(0, -1).Angle(), 1e-9)
	assert.InDelta(t, 3*math.Pi/2, MakeVector2(-1, 0).Angle(), 1e-9)
}

func TestSetAngleKeepsMagnitude(t *testing.T) {
	v := MakeVector2(3, 4).SetAngle(math.Pi / 2)

	assert.InDelta(t, 5.0, v.Mag(), 1e-9)
	assert.InDelta(t, 5.0, v.GetX(), 1e-9)
	assert.InDelta(t, 0.0, v.GetY(), 1e-9)
}

func TestLimit(t *testing.T) {
	limited := MakeVector2(6, 8).Limit(5)
	assert.InDelta(t, 5.0, limited.Mag(), 1e-9)

	untouched := MakeVector2(1, 1).Limit(5)
	assert.True(t, untouched.Equals(MakeVector2(1, 1)))
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 1.0, MakeVector2(3, -7).Normalize().Mag(), 1e-9)
	assert.True(t, MakeNullVector2().Normalize().IsNull())
}

func TestSetMagKeepsDirection(t *testing.T) {
	v := MakeVector2(3, 4).SetMag(10)

	assert.InDelta(t, 10.0, v.Mag(), 1e-9)
	assert.InDelta(t, 6.0, v.GetX(), 1e-9)
	assert.InDelta(t, 8.0, v.GetY(), 1e-9)
}

func TestDistanceTo(t *testing.T) {
	assert.InDelta(t, 5.0, MakeVector2(0, 0).DistanceTo(MakeVector2(3, 4)), 1e-9)
}
