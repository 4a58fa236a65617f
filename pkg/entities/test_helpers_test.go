package entities

import (
	"testing"

	"github.com/gonewx/scrollstory/pkg/config"
)

const testStoryYAML = `
id: test
camera:
  position: [0, 10, -200]
  follow: {offset: [0, 5, -20]}
earth:
  radius: 50
  widthSegments: 16
  heightSegments: 12
  position: [0, 0, 500]
  patternSeed: 7
stars: {count: 200, radius: 300, seed: 3}
traveler:
  start: -100
  end: 300
  radius: 4
  offset: [5, -3, 0]
  roughness: 0.2
waypoints:
  - {label: "1950", info: "first", position: [0, 0, 0]}
  - {label: "2000", info: "second", position: [0, 0, 200], rotation: 0.5}
`

func newTestStory(t *testing.T) *config.StoryConfig {
	t.Helper()
	cfg, err := config.LoadStoryConfigFromBytes([]byte(testStoryYAML), config.FormatYAML, "test")
	if err != nil {
		t.Fatalf("failed to load test story: %v", err)
	}
	return cfg
}
