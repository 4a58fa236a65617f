package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
)

func TestTravelerSystemClamp(t *testing.T) {
	cfg := loadStory(t, exampleStoryYAML)
	em, story := buildStory(t, cfg, entities.StoryOptions{})
	ts := NewTravelerSystem(em, nil, story.Traveler)

	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"zero delta is idempotent", 0, -400},
		{"forward", 150, -250},
		{"backward past start", -1000, -400},
		{"forward past end", 5000, 400},
		{"zero at end", 0, 400},
		{"back into range", -100, 300},
	}

	for _, tt := range tests {
		if got := ts.ApplyDelta(tt.delta); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTravelerSystemUpdateUsesSource(t *testing.T) {
	cfg := loadStory(t, exampleStoryYAML)
	em, story := buildStory(t, cfg, entities.StoryOptions{})
	source := &fixedSource{deltas: []float64{10, 20, -5}}
	ts := NewTravelerSystem(em, source, story.Traveler)

	for i := 0; i < 4; i++ {
		ts.Update(1.0 / 60)
	}

	tc, _ := ecs.GetComponent[*components.TravelerComponent](em, story.Traveler)
	if tc.Position != -375 {
		t.Errorf("expected -375, got %v", tc.Position)
	}
	if tc.LastDelta != 0 {
		t.Errorf("expected last delta 0, got %v", tc.LastDelta)
	}

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, story.Traveler)
	if transform.Position != (mgl64.Vec3{0, 0, -375}) {
		t.Errorf("transform not synced: %v", transform.Position)
	}
}

func TestTravelerSystemProgress(t *testing.T) {
	cfg := loadStory(t, exampleStoryYAML)
	em, story := buildStory(t, cfg, entities.StoryOptions{})
	ts := NewTravelerSystem(em, nil, story.Traveler)

	if ts.Progress() != 0 {
		t.Errorf("expected progress 0, got %v", ts.Progress())
	}
	ts.SetProgress(0.5)
	if ts.Progress() != 0.5 {
		t.Errorf("expected progress 0.5, got %v", ts.Progress())
	}
	tc, _ := ecs.GetComponent[*components.TravelerComponent](em, story.Traveler)
	if tc.Position != 0 {
		t.Errorf("expected position 0, got %v", tc.Position)
	}
}

func TestTravelerSystemMissingEntity(t *testing.T) {
	ts := NewTravelerSystem(ecs.NewEntityManager(), &fixedSource{deltas: []float64{1}}, 42)
	ts.Update(1.0 / 60)
	ts.SetProgress(1)
	if ts.Progress() != 0 {
		t.Error("missing traveler should report progress 0")
	}
}
