package systems

import (
	"testing"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestTitleAlpha(t *testing.T) {
	tests := []struct {
		state HUDState
		want  float64
	}{
		{HUDState{EntryState: components.EntryStateTitle}, 1},
		{HUDState{EntryState: components.EntryStateEntering, EntryProgress: 0.25}, 0.75},
		{HUDState{EntryState: components.EntryStateEntering, EntryProgress: 1}, 0},
		{HUDState{EntryState: components.EntryStateExploring}, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, titleAlpha(tt.state), 1e-9, "state %s", tt.state.EntryState)
	}
}

func TestScrollbarVisible(t *testing.T) {
	assert.True(t, scrollbarVisible(HUDState{ShowScrollbar: true, EntryState: components.EntryStateExploring}))
	assert.False(t, scrollbarVisible(HUDState{ShowScrollbar: false, EntryState: components.EntryStateExploring}))
	assert.False(t, scrollbarVisible(HUDState{ShowScrollbar: true, EntryState: components.EntryStateTitle}))
}

func TestScrollbarHandleRect(t *testing.T) {
	const w, h = 1280.0, 720.0
	_, trackY, _, trackH := config.ScrollbarTrack(w, h)

	_, top, _, height := scrollbarHandleRect(w, h, 0)
	assert.InDelta(t, trackY, top, 1e-9)
	assert.InDelta(t, trackH*config.ScrollbarHandleHeight, height, 1e-9)

	// 进度为 1 时滑块底部与轨道底部对齐
	_, top, _, height = scrollbarHandleRect(w, h, 1)
	assert.InDelta(t, trackY+trackH, top+height, 1e-9)

	_, mid, _, _ := scrollbarHandleRect(w, h, 0.5)
	assert.InDelta(t, trackY+trackH*(1-config.ScrollbarHandleHeight)/2, mid, 1e-9)
}
