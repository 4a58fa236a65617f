package motion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestRangeClamp(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		in   float64
		want float64
	}{
		{"inside", Range{Start: -400, End: 400}, 10, 10},
		{"below", Range{Start: -400, End: 400}, -500, -400},
		{"above", Range{Start: -400, End: 400}, 401, 400},
		{"reversed below", Range{Start: 3000, End: -100}, -200, -100},
		{"reversed above", Range{Start: 3000, End: -100}, 3500, 3000},
		{"reversed inside", Range{Start: 3000, End: -100}, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Clamp(tt.in))
		})
	}
}

func TestRangeValidate(t *testing.T) {
	assert.Error(t, Range{Start: 5, End: 5}.Validate())
	assert.NoError(t, Range{Start: 5, End: -5}.Validate())
}

func TestRangeProgress(t *testing.T) {
	r := Range{Start: -100, End: 300}
	assert.Equal(t, 0.0, r.Progress(-100))
	assert.Equal(t, 1.0, r.Progress(300))
	assert.InDelta(t, 0.25, r.Progress(0), 1e-9)
	assert.Equal(t, 0.0, r.Progress(-1000))

	// 倒序区间的进度仍从 Start 开始
	rev := Range{Start: 300, End: -100}
	assert.Equal(t, 0.0, rev.Progress(300))
	assert.InDelta(t, 0.75, rev.Progress(0), 1e-9)

	assert.InDelta(t, 0.0, r.At(r.Progress(0)), 1e-9)
}

func TestParseAxis(t *testing.T) {
	for name, want := range map[string]Axis{"x": AxisX, "Y": AxisY, "z": AxisZ, "": AxisZ} {
		got, err := ParseAxis(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAxis("w")
	assert.Error(t, err)

	v := mgl64.Vec3{1, 2, 3}
	assert.Equal(t, 2.0, AxisY.Get(v))
	assert.Equal(t, mgl64.Vec3{1, 2, 9}, AxisZ.Set(v, 9))
	assert.Equal(t, "x", AxisX.String())
}
