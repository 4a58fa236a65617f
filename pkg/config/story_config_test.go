package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalStoryYAML = `
id: test
traveler:
  start: -400
  end: 400
`

func TestLoadStoryConfig(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		content     string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *StoryConfig)
	}{
		{
			name:     "minimal story gets defaults",
			fileName: "minimal.yaml",
			content:  minimalStoryYAML,
			validate: func(t *testing.T, cfg *StoryConfig) {
				if cfg.ID != "test" {
					t.Errorf("expected id test, got %q", cfg.ID)
				}
				if cfg.Camera.Fov != 45 || cfg.Camera.Near != 10 || cfg.Camera.Far != 2000 {
					t.Errorf("unexpected camera defaults: %+v", cfg.Camera)
				}
				if cfg.Camera.Follow.Retrigger != RetriggerOnChange {
					t.Errorf("expected default retrigger onChange, got %q", cfg.Camera.Follow.Retrigger)
				}
				if cfg.Visibility.Threshold != 100 {
					t.Errorf("expected default threshold 100, got %v", cfg.Visibility.Threshold)
				}
				if cfg.Text.Label.Offset != (Vec3{0.5, 2, 0}) {
					t.Errorf("unexpected label offset %v", cfg.Text.Label.Offset)
				}
				if cfg.Stars.Count != 5000 {
					t.Errorf("expected 5000 stars, got %d", cfg.Stars.Count)
				}
			},
		},
		{
			name:     "id falls back to file name",
			fileName: "orbit.yaml",
			content:  "traveler: {start: 0, end: 10}\n",
			validate: func(t *testing.T, cfg *StoryConfig) {
				if cfg.ID != "orbit" {
					t.Errorf("expected id orbit, got %q", cfg.ID)
				}
			},
		},
		{
			name:     "toml story",
			fileName: "orbit.toml",
			content: `
id = "orbit"
[traveler]
axis = "x"
start = -2.5
end = 2.5
[visibility]
threshold = 0.8
distance = "axis"
[[waypoints]]
label = "A"
position = [1.0, 2.0, 3.0]
`,
			validate: func(t *testing.T, cfg *StoryConfig) {
				if cfg.Traveler.Axis != "x" || cfg.Traveler.End != 2.5 {
					t.Errorf("unexpected traveler %+v", cfg.Traveler)
				}
				if len(cfg.Waypoints) != 1 || cfg.Waypoints[0].Position != (Vec3{1, 2, 3}) {
					t.Errorf("unexpected waypoints %+v", cfg.Waypoints)
				}
			},
		},
		{
			name:        "zero length range",
			fileName:    "bad.yaml",
			content:     "traveler: {start: 5, end: 5}\n",
			wantErr:     true,
			errContains: "zero length",
		},
		{
			name:        "negative threshold",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "visibility: {threshold: -1}\n",
			wantErr:     true,
			errContains: "threshold",
		},
		{
			name:        "damping out of range",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "scroll: {damping: 1.5}\n",
			wantErr:     true,
			errContains: "damping",
		},
		{
			name:        "unknown easing",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "entry: {easing: wobble}\n",
			wantErr:     true,
			errContains: "unknown easing",
		},
		{
			name:        "unknown follow mode",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "camera: {follow: {mode: orbit}}\n",
			wantErr:     true,
			errContains: "follow mode",
		},
		{
			name:        "unknown retrigger",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "camera: {follow: {retrigger: sometimes}}\n",
			wantErr:     true,
			errContains: "retrigger",
		},
		{
			name:        "earth mesh too large",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "earth: {widthSegments: 512, heightSegments: 256}\n",
			wantErr:     true,
			errContains: "too large",
		},
		{
			name:        "bad color",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "text: {label: {color: notacolor}}\n",
			wantErr:     true,
			errContains: "text.label.color",
		},
		{
			name:        "unknown key",
			fileName:    "bad.yaml",
			content:     minimalStoryYAML + "cammera: {fov: 10}\n",
			wantErr:     true,
			errContains: "cammera",
		},
		{
			name:        "extends needs a library",
			fileName:    "child.yaml",
			content:     "extends: parent\n",
			wantErr:     true,
			errContains: "StoryLibrary",
		},
		{
			name:        "unsupported extension",
			fileName:    "story.json",
			content:     "{}",
			wantErr:     true,
			errContains: "unsupported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			cfg, err := LoadStoryConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadStoryConfigMissingFile(t *testing.T) {
	_, err := LoadStoryConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read story config") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestParseLookAt(t *testing.T) {
	tests := []struct {
		in      string
		want    LookAtTarget
		wantErr bool
	}{
		{"earth", LookAtTarget{Kind: LookAtEarth}, false},
		{"", LookAtTarget{Kind: LookAtEarth}, false},
		{"traveler", LookAtTarget{Kind: LookAtTraveler}, false},
		{"1, 2.5, -3", LookAtTarget{Kind: LookAtPoint, Point: [3]float64{1, 2.5, -3}}, false},
		{"1,2", LookAtTarget{}, true},
		{"a,b,c", LookAtTarget{}, true},
		{"moon", LookAtTarget{}, true},
	}

	for _, tt := range tests {
		got, err := ParseLookAt(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLookAt(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLookAt(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLookAt(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("orange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 255 || c.G != 165 || c.B != 0 || c.A != 255 {
		t.Errorf("orange parsed as %v", c)
	}

	c, err = ParseColor("#1b4f9c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.R != 0x1b || c.G != 0x4f || c.B != 0x9c {
		t.Errorf("#1b4f9c parsed as %v", c)
	}

	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("expected error for invalid color")
	}

	fallback := ParseColorOr("nope", c)
	if fallback != c {
		t.Errorf("expected fallback %v, got %v", c, fallback)
	}
}

func TestScrollbarHandleTop(t *testing.T) {
	if got := ScrollbarHandleTop(0); got != 0 {
		t.Errorf("progress 0: got %v", got)
	}
	if got := ScrollbarHandleTop(1); math.Abs(got-(1-ScrollbarHandleHeight)*100) > 1e-9 {
		t.Errorf("progress 1: got %v", got)
	}
	if got := ScrollbarHandleTop(2); got != ScrollbarHandleTop(1) {
		t.Errorf("progress should be clamped, got %v", got)
	}
}
