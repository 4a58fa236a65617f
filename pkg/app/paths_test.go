package app

import (
	"path/filepath"
	"testing"
)

func TestJoinStoryPath(t *testing.T) {
	abs, _ := filepath.Abs("stories")
	tests := []struct {
		name string
		dir  string
		p    string
		want string
	}{
		{"relative to story dir", "data/stories", "orbit.yaml", filepath.Join("data", "stories", "orbit.yaml")},
		{"already joined by the watcher", "data/stories", filepath.Join("data", "stories", "orbit.yaml"), filepath.Join("data", "stories", "orbit.yaml")},
		{"absolute path", "data/stories", filepath.Join(abs, "orbit.yaml"), filepath.Join(abs, "orbit.yaml")},
		{"current directory", ".", "orbit.yaml", "orbit.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinStoryPath(tt.dir, tt.p); got != tt.want {
				t.Errorf("joinStoryPath(%q, %q) = %q, want %q", tt.dir, tt.p, got, tt.want)
			}
		})
	}
}
