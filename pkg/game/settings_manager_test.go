package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时目录中打开 gdata 存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.6 {
		t.Errorf("SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if !settings.ShowScrollbar {
		t.Error("ShowScrollbar: got false, want true")
	}
	if settings.Fullscreen || settings.SkipTitle {
		t.Error("Fullscreen and SkipTitle should default to false")
	}
	if settings.Resume == nil {
		t.Error("Resume map should be initialized")
	}
}

// TestNewSettingsManagerNilGdata 测试降级模式
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	sm.SetResumeProgress("climate", 0.5)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if p, ok := sm.ResumeProgress("climate"); !ok || p != 0.5 {
		t.Errorf("ResumeProgress: got %v/%v, want 0.5/true", p, ok)
	}
}

// TestSettingsLoadSave 测试持久化往返
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestStorage(t, "test_scrollstory_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetStory("earth-orbit")
	sm1.SetSoundVolume(0.25)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetShowScrollbar(false)
	sm1.SetSkipTitle(true)
	sm1.SetResumeProgress("earth-orbit", 0.75)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	settings := sm2.GetSettings()

	if settings.Story != "earth-orbit" {
		t.Errorf("Loaded Story: got %q", settings.Story)
	}
	if settings.SoundVolume != 0.25 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.25", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen || settings.ShowScrollbar || !settings.SkipTitle {
		t.Errorf("Loaded display settings wrong: %+v", settings)
	}
	if p, ok := sm2.ResumeProgress("earth-orbit"); !ok || p != 0.75 {
		t.Errorf("Loaded resume: got %v/%v, want 0.75/true", p, ok)
	}
}

// TestSettingsLoadCorrupt 测试损坏的设置文件回退到默认值
func TestSettingsLoadCorrupt(t *testing.T) {
	gdataManager := openTestStorage(t, "test_scrollstory_corrupt")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [oops")); err != nil {
		t.Fatalf("failed to write corrupt settings: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if sm.GetSettings().SoundVolume != DefaultSettings().SoundVolume {
		t.Errorf("expected default volume after corrupt load, got %v", sm.GetSettings().SoundVolume)
	}
}

// TestClampedSetters 测试音量和进度的范围限制
func TestClampedSetters(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.5, 0.5},
		{0.0, 0.0},
		{1.0, 1.0},
		{-0.5, 0.0},
		{1.5, 1.0},
	}

	for _, tt := range tests {
		sm.SetSoundVolume(tt.input)
		if got := sm.GetSettings().SoundVolume; got != tt.expected {
			t.Errorf("SetSoundVolume(%v): got %v, want %v", tt.input, got, tt.expected)
		}

		sm.SetResumeProgress("s", tt.input)
		if got, _ := sm.ResumeProgress("s"); got != tt.expected {
			t.Errorf("SetResumeProgress(%v): got %v, want %v", tt.input, got, tt.expected)
		}
	}

	sm.ClearResumeProgress("s")
	if _, ok := sm.ResumeProgress("s"); ok {
		t.Error("ClearResumeProgress did not remove the entry")
	}
}
