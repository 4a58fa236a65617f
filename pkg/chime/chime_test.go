package chime

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(pcm []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(pcm[i*4:]))
}

func TestPitchFor(t *testing.T) {
	assert.Equal(t, 440.0, PitchFor(0))
	assert.Equal(t, 440.0, PitchFor(-3))
	assert.Equal(t, 880.0, PitchFor(5))
	assert.Equal(t, 1760.0, PitchFor(10))
	assert.Equal(t, 1760.0, PitchFor(15), "octave is capped")
	assert.Greater(t, PitchFor(1), PitchFor(0))
}

func TestRenderChimeLength(t *testing.T) {
	pcm := RenderChime(440, 1)
	require.Len(t, pcm, SampleRate.N(Duration)*4)

	// 左右声道相同
	for i := 0; i < 1000; i += 37 {
		l := binary.LittleEndian.Uint16(pcm[i*4:])
		r := binary.LittleEndian.Uint16(pcm[i*4+2:])
		assert.Equal(t, l, r)
	}
}

func TestRenderChimeEnvelope(t *testing.T) {
	pcm := RenderChime(440, 1)
	n := len(pcm) / 4

	peak := func(from, to int) float64 {
		m := 0.0
		for i := from; i < to; i++ {
			m = math.Max(m, math.Abs(float64(sampleAt(pcm, i))))
		}
		return m
	}

	assert.Zero(t, sampleAt(pcm, 0), "attack starts silent")
	early := peak(n/20, n/10)
	late := peak(n*9/10, n)
	assert.Greater(t, early, 0.0)
	assert.Less(t, late, early/4, "chime decays")
}

func TestRenderSilent(t *testing.T) {
	pcm := RenderChime(440, 0)
	for i := 0; i < len(pcm)/4; i++ {
		if sampleAt(pcm, i) != 0 {
			t.Fatalf("sample %d not silent", i)
		}
	}
}

func TestRenderStopsAtLimit(t *testing.T) {
	pcm := Render(New(440, 1), 100)
	assert.Len(t, pcm, 400)
}
