package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderScene(t *testing.T) (*ecs.EntityManager, *entities.StoryEntities, *RenderSystem) {
	t.Helper()
	cfg := loadStory(t, exampleStoryYAML)
	em, story := buildStory(t, cfg, entities.StoryOptions{SkipTitle: true})
	cs := NewCameraSystem(em, cfg, story, nil)
	cs.Update(0)
	return em, story, NewRenderSystem(em, nil, cfg, cs.Projection(), story.Camera)
}

func TestRenderSystemCollectMeshes(t *testing.T) {
	_, _, rs := newRenderScene(t)

	items := rs.collect(nil)
	stats := rs.Stats()

	require.NotEmpty(t, items)
	assert.Greater(t, stats.Triangles, 0)
	assert.Greater(t, stats.Culled, 0, "back faces of the spheres are culled")
	assert.Equal(t, len(items), stats.Triangles, "waypoint text is invisible at opacity 0")

	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].depth, items[i].depth, "items are sorted far to near")
	}
}

func TestRenderSystemCollectText(t *testing.T) {
	em, story, rs := newRenderScene(t)

	wp, _ := ecs.GetComponent[*components.WaypointComponent](em, story.Waypoints[0])
	label, _ := ecs.GetComponent[*components.TextComponent](em, wp.LabelEntity)
	info, _ := ecs.GetComponent[*components.TextComponent](em, wp.InfoEntity)
	label.Opacity = 1
	info.Opacity = 0.5

	items := rs.collect(nil)
	texts := 0
	for _, item := range items {
		if item.kind == drawText {
			texts++
			assert.Greater(t, item.scaleY, 0.0)
			assert.InDelta(t, item.scaleY, item.scaleX, 1e-9, "rotation 0 keeps full width")
		}
	}
	assert.Equal(t, 2, texts)

	// 相机后方的文字不绘制
	info.Position = mgl64.Vec3{0, 0, -1000}
	label.Opacity = 0
	texts = 0
	for _, item := range rs.collect(nil) {
		if item.kind == drawText {
			texts++
		}
	}
	assert.Zero(t, texts)
}

func TestRenderSystemTextRotation(t *testing.T) {
	em, story, rs := newRenderScene(t)
	wp, _ := ecs.GetComponent[*components.WaypointComponent](em, story.Waypoints[0])
	label, _ := ecs.GetComponent[*components.TextComponent](em, wp.LabelEntity)
	label.Opacity = 1

	label.Rotation = math.Pi / 3
	item, ok := rs.projectText(wp.LabelEntity, label)
	require.True(t, ok)
	assert.InDelta(t, item.scaleY*0.5, item.scaleX, 1e-9)

	label.Rotation = math.Pi / 2
	_, ok = rs.projectText(wp.LabelEntity, label)
	assert.False(t, ok, "edge-on text is skipped")
}

func TestIsFrontFacing(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}

	assert.True(t, isFrontFacing(a, b, c, mgl64.Vec3{0, 0, 5}))
	assert.False(t, isFrontFacing(a, b, c, mgl64.Vec3{0, 0, -5}))
}

func TestShade(t *testing.T) {
	light := mgl64.Vec3{0, 0, 1}

	tests := []struct {
		name    string
		normal  mgl64.Vec3
		ambient float64
		want    float64
	}{
		{"facing light", mgl64.Vec3{0, 0, 2}, 0.2, 1},
		{"facing away", mgl64.Vec3{0, 0, -1}, 0.2, 0.2},
		{"grazing", mgl64.Vec3{1, 0, 0}, 0.1, 0.1},
		{"45 degrees", mgl64.Vec3{1, 0, 1}, 0, math.Sqrt2 / 2},
		{"degenerate normal", mgl64.Vec3{}, 0.3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, shade(tt.normal, light, tt.ambient), 1e-9)
		})
	}
}

func TestShadeVertex(t *testing.T) {
	c := color.NRGBA{R: 255, G: 128, B: 0, A: 255}

	solid := shadeVertex(c, 1, components.MaterialSolid, 0.5)
	assert.InDelta(t, 0.5, solid[0], 1e-6)
	assert.InDelta(t, 1, solid[3], 1e-6)

	cloud := shadeVertex(c, 0.4, components.MaterialCloud, 0)
	assert.InDelta(t, cloudBacklight, cloud[0], 1e-6, "clouds never go fully dark")
	assert.InDelta(t, 0.4, cloud[3], 1e-6)
}

func TestTextScale(t *testing.T) {
	assert.InDelta(t, 1, textScale(textBaseSize/10, 10), 1e-9)
	assert.InDelta(t, config.MinTextPixelSize/textBaseSize, textScale(1, 0.01), 1e-9)
	assert.InDelta(t, config.MaxTextPixelSize/textBaseSize, textScale(100, 100), 1e-9)
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"", 10, ""},
		{"short", 10, "short"},
		{"the quick brown fox", 10, "the quick\nbrown fox"},
		{"  extra   spaces  ", 20, "extra spaces"},
		{"supercalifragilistic word", 5, "supercalifragilistic\nword"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrapText(tt.in, tt.width), "wrapText(%q, %d)", tt.in, tt.width)
	}
}

func TestSortDrawItems(t *testing.T) {
	items := []drawItem{
		{depth: 10, layer: 1},
		{depth: 30},
		{depth: 10, layer: 0},
		{depth: 20},
	}
	sortDrawItems(items)

	assert.Equal(t, 30.0, items[0].depth)
	assert.Equal(t, 20.0, items[1].depth)
	assert.Equal(t, 0, items[2].layer, "same depth: lower layer first")
	assert.Equal(t, 1, items[3].layer)
}
