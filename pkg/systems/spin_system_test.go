package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

func TestSpinSystem(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		start float64
		dt    float64
		want  float64
	}{
		{"forward", 1, 0, 0.5, 0.5},
		{"wraps past 2π", 1, 2*math.Pi - 0.25, 0.5, 0.25},
		{"negative wraps below 0", -1, 0.25, 0.5, 2*math.Pi - 0.25},
		{"no spin", 0, 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id := em.CreateEntity()
			ecs.AddComponent(em, id, &components.SpinComponent{Rate: tt.rate})
			transform := &components.TransformComponent{RotationY: tt.start}
			ecs.AddComponent(em, id, transform)

			NewSpinSystem(em).Update(tt.dt)

			if math.Abs(transform.RotationY-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", transform.RotationY, tt.want)
			}
		})
	}
}

func TestStarfieldSystemFollowsCamera(t *testing.T) {
	em := ecs.NewEntityManager()
	cam := em.CreateEntity()
	ecs.AddComponent(em, cam, &components.CameraComponent{
		Position:       mgl64.Vec3{1, 2, 3},
		ParallaxOffset: mgl64.Vec3{1, 0, 0},
	})

	following := em.CreateEntity()
	ecs.AddComponent(em, following, &components.StarfieldComponent{FollowCamera: true})
	fixed := em.CreateEntity()
	ecs.AddComponent(em, fixed, &components.StarfieldComponent{Center: mgl64.Vec3{9, 9, 9}})

	NewStarfieldSystem(em, cam).Update(0)

	s1, _ := ecs.GetComponent[*components.StarfieldComponent](em, following)
	if s1.Center != (mgl64.Vec3{2, 2, 3}) {
		t.Errorf("following starfield center: got %v", s1.Center)
	}
	s2, _ := ecs.GetComponent[*components.StarfieldComponent](em, fixed)
	if s2.Center != (mgl64.Vec3{9, 9, 9}) {
		t.Errorf("fixed starfield moved: %v", s2.Center)
	}
}
