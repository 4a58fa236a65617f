package systems

import (
	"testing"

	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
)

// fixedSource 每帧返回预设位移的 ScrollSource
type fixedSource struct {
	deltas []float64
}

func (f *fixedSource) StepScroll() float64 {
	if len(f.deltas) == 0 {
		return 0
	}
	d := f.deltas[0]
	f.deltas = f.deltas[1:]
	return d
}

// exampleStoryYAML 旅行区间 [-400, 400]，一个位于 z=0 的路标，阈值 50
const exampleStoryYAML = `
id: example
camera:
  position: [0, 0, -600]
  follow: {mode: direct, offset: [0, 0, -50]}
earth: {radius: 10, widthSegments: 8, heightSegments: 6, position: [0, 0, 800]}
stars: {count: 10, radius: 100}
traveler: {start: -400, end: 400, radius: 2}
visibility: {threshold: 50}
waypoints:
  - {label: "1950", info: "origin", position: [0, 0, 0]}
`

func loadStory(t *testing.T, yamlText string) *config.StoryConfig {
	t.Helper()
	cfg, err := config.LoadStoryConfigFromBytes([]byte(yamlText), config.FormatYAML, "test")
	if err != nil {
		t.Fatalf("failed to load story: %v", err)
	}
	return cfg
}

func buildStory(t *testing.T, cfg *config.StoryConfig, opts entities.StoryOptions) (*ecs.EntityManager, *entities.StoryEntities) {
	t.Helper()
	em := ecs.NewEntityManager()
	story, err := entities.NewStoryEntities(em, cfg, opts)
	if err != nil {
		t.Fatalf("NewStoryEntities failed: %v", err)
	}
	return em, story
}
