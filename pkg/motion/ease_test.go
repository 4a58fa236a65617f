package motion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	names := []string{"linear", "easeIn", "easeOut", "easeInOut", "easeInOutCubic", "bezier(0.25, 0.1, 0.25, 1)"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			ease, err := ParseEasing(name)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, ease(0), 1e-3)
			assert.InDelta(t, 1.0, ease(1), 1e-3)
		})
	}
}

func TestEasingMidpoints(t *testing.T) {
	assert.Equal(t, 0.5, Linear(0.5))
	assert.Equal(t, 0.25, EaseInQuad(0.5))
	assert.Equal(t, 0.75, EaseOutQuad(0.5))
	assert.Equal(t, 0.5, EaseInOutQuad(0.5))
	assert.Equal(t, 0.5, EaseInOutCubicFunc(0.5))
}

func TestCubicBezierLinear(t *testing.T) {
	// 控制点在对角线上时曲线退化为线性
	ease := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		assert.InDelta(t, x, ease(x), 1e-3)
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	ease := CubicBezier(0.42, 0, 0.58, 1)
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := ease(float64(i) / 100)
		assert.GreaterOrEqual(t, v+1e-4, prev)
		prev = v
	}
}

func TestParseEasingErrors(t *testing.T) {
	tests := []string{
		"bounce",
		"bezier(0.1, 0.2, 0.3)",
		"bezier(a, 0, 1, 1)",
		"bezier(1.5, 0, 0.5, 1)",
	}
	for _, name := range tests {
		_, err := ParseEasing(name)
		assert.Error(t, err, name)
	}
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, 10.0, Interpolate(0, 10, 0, 0, Linear))
	assert.Equal(t, 10.0, Interpolate(0, 10, -1, 0, Linear))
	assert.Equal(t, 5.0, Interpolate(0, 10, 2, 1, Linear))
	assert.Equal(t, 10.0, Interpolate(0, 10, 2, 5, Linear))
	assert.Equal(t, 0.0, Interpolate(0, 10, 2, -1, nil))
	assert.Equal(t, 2.5, Interpolate(0, 10, 2, 1, EaseInQuad))
}

func TestVec3Tween(t *testing.T) {
	tw := NewVec3Tween(Linear)
	assert.False(t, tw.Active())

	tw.Retarget(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, -10}, 1)
	assert.True(t, tw.Active())

	v := tw.Advance(0.5)
	assert.InDelta(t, 5.0, v.X(), 1e-9)
	assert.InDelta(t, -5.0, v.Z(), 1e-9)

	// 后写者胜：从当前位置重新开始
	tw.Retarget(v, mgl64.Vec3{0, 0, 0}, 1)
	assert.Equal(t, v, tw.Value())
	assert.Equal(t, 0.0, tw.Progress())

	v = tw.Advance(2)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, v)
	assert.False(t, tw.Active())
	assert.Equal(t, 1.0, tw.Progress())
}

func TestVec3TweenZeroDuration(t *testing.T) {
	tw := NewVec3Tween(nil)
	tw.Retarget(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}, 0)
	assert.False(t, tw.Active())
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, tw.Advance(1.0/60))
}
