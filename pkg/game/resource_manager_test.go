package game

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltinFont(t *testing.T) {
	rm := NewResourceManager()

	for _, path := range []string{FontRegular, FontBold, FontMono} {
		face, err := rm.LoadFont(path, 24)
		if err != nil {
			t.Fatalf("LoadFont(%s) failed: %v", path, err)
		}
		if face.Size != 24 {
			t.Errorf("%s: expected size 24, got %v", path, face.Size)
		}
	}

	a, _ := rm.LoadFont(FontRegular, 24)
	b, _ := rm.LoadFont(FontRegular, 24)
	if a != b {
		t.Error("faces should be cached by path and size")
	}

	c, _ := rm.LoadFont(FontRegular, 32)
	if c == a || c.Source != a.Source {
		t.Error("different sizes should share one source but not one face")
	}

	if rm.GetFont(FontRegular, 32) != c {
		t.Error("GetFont should return the cached face")
	}
	if rm.GetFont(FontRegular, 99) != nil {
		t.Error("GetFont should return nil for unloaded sizes")
	}
}

func TestLoadFontErrors(t *testing.T) {
	rm := NewResourceManager()

	if _, err := rm.LoadFont("builtin:comic", 12); err == nil {
		t.Error("expected error for unknown builtin font")
	}
	if _, err := rm.LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 12); err == nil {
		t.Error("expected error for missing font file")
	}

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(bad, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := rm.LoadFont(bad, 12); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestLoadFontFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager()
	if _, err := rm.LoadFont(path, 16); err != nil {
		t.Fatalf("LoadFont from file failed: %v", err)
	}
}
