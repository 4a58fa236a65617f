package embedded

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/stories/orbit.yaml":  {Data: []byte("id: orbit\n")},
		"data/stories/flyby.toml":  {Data: []byte("id = \"flyby\"\n")},
		"data/stories/README.txt":  {Data: []byte("notes")},
		"data/other/unrelated.bin": {Data: []byte{1, 2, 3}},
	}
}

// reset 恢复未初始化状态，避免影响其他测试
func reset(t *testing.T) {
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func TestNotInitialized(t *testing.T) {
	reset(t)
	Init(nil)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for a nil FS")
	}
	if _, err := ReadFile("data/stories/orbit.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile: expected errNotInitialized, got %v", err)
	}
	if Exists("data/stories/orbit.yaml") {
		t.Error("Exists should be false before Init()")
	}
	if _, err := Glob("data/stories/*"); err == nil {
		t.Error("Glob: expected error before Init()")
	}
	if _, err := Stories(); err == nil {
		t.Error("Stories: expected error before Init()")
	}
}

func TestReadFile(t *testing.T) {
	reset(t)
	Init(testFS())

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"data/stories/orbit.yaml", "id: orbit\n", false},
		{"./data/stories/orbit.yaml", "id: orbit\n", false},
		{"assets/images/earth.png", "", true},
		{"data/stories/missing.yaml", "", true},
	}
	for _, tt := range tests {
		data, err := ReadFile(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ReadFile(%q): expected error", tt.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("ReadFile(%q): unexpected error %v", tt.path, err)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
		}
	}
}

func TestExistsAndGlob(t *testing.T) {
	reset(t)
	Init(testFS())

	if !Exists("data/stories/flyby.toml") {
		t.Error("flyby.toml should exist")
	}
	if Exists("data/stories/none.toml") {
		t.Error("none.toml should not exist")
	}

	matches, err := Glob("data/stories/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 || matches[0] != "data/stories/orbit.yaml" {
		t.Errorf("unexpected glob result %v", matches)
	}

	entries, err := ReadDir("data/stories")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestStories(t *testing.T) {
	reset(t)
	Init(testFS())

	stories, err := Stories()
	if err != nil {
		t.Fatalf("Stories failed: %v", err)
	}
	data, err := fs.ReadFile(stories, "orbit.yaml")
	if err != nil {
		t.Fatalf("orbit.yaml not found in stories FS: %v", err)
	}
	if string(data) != "id: orbit\n" {
		t.Errorf("unexpected content %q", data)
	}
}
