package game

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体路径，不需要任何字体文件
const (
	FontRegular = "builtin:regular"
	FontBold    = "builtin:bold"
	FontMono    = "builtin:mono"
)

var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
	FontMono:    gomono.TTF,
}

// ResourceManager loads and caches font faces.
//
// Font sources are parsed once per path; faces are cached per (path, size).
// Paths starting with "builtin:" refer to the Go fonts bundled in the binary.
type ResourceManager struct {
	sourceCache   map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace
}

// NewResourceManager creates an empty resource manager.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// loadSource parses (or returns the cached) font source for path.
func (rm *ResourceManager) loadSource(path string) (*text.GoTextFaceSource, error) {
	if source, ok := rm.sourceCache[path]; ok {
		return source, nil
	}

	var fontData []byte
	if strings.HasPrefix(path, "builtin:") {
		data, ok := builtinFonts[path]
		if !ok {
			return nil, fmt.Errorf("unknown builtin font %s", path)
		}
		fontData = data
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	rm.sourceCache[path] = source
	return source, nil
}

// LoadFont loads a font face at the given size and caches it.
//
// Parameters:
//   - path: a font file path, or one of FontRegular / FontBold / FontMono.
//   - size: the font size in pixels.
//
// Example:
//
//	face, err := rm.LoadFont(game.FontBold, 48)
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, err := rm.loadSource(path)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace
	return goTextFace, nil
}

// GetFont retrieves a previously loaded font face, or nil.
func (rm *ResourceManager) GetFont(path string, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	return rm.fontFaceCache[cacheKey]
}
