package game

import "testing"

// TestAudioManagerNilContext 没有音频上下文时不播放也不 panic
func TestAudioManagerNilContext(t *testing.T) {
	am := NewAudioManager(nil, nil)
	if am.Enabled() {
		t.Error("Enabled() should be false without an audio context")
	}
	if am.PlayWaypointChime(0) {
		t.Error("PlayWaypointChime should fail without an audio context")
	}
	am.StopAll()
}

// TestAudioManagerVolume 音量来自设置
func TestAudioManagerVolume(t *testing.T) {
	if got := NewAudioManager(nil, nil).getSoundVolume(); got != DefaultSettings().SoundVolume {
		t.Errorf("default volume: got %v", got)
	}

	sm, _ := NewSettingsManager(nil)
	sm.SetSoundVolume(0.3)
	if got := NewAudioManager(nil, sm).getSoundVolume(); got != 0.3 {
		t.Errorf("settings volume: got %v, want 0.3", got)
	}
}

// TestAudioManagerChimeCache 同一路标复用 PCM
func TestAudioManagerChimeCache(t *testing.T) {
	am := NewAudioManager(nil, nil)
	a := am.chimePCM(2)
	b := am.chimePCM(2)
	if len(a) == 0 || &a[0] != &b[0] {
		t.Error("chime PCM should be cached per waypoint")
	}
	if len(am.chimeCache) != 1 {
		t.Errorf("expected 1 cached chime, got %d", len(am.chimeCache))
	}
}
