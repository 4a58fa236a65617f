package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// WaypointComponent 路标：一对标签文字和说明文字
//
// Label / Info / Position / Rotation 在场景创建后不再改变，
// Opacity 每帧由可见度系统更新并同步到两个文字实体。
type WaypointComponent struct {
	Index    int
	Label    string
	Info     string
	Position mgl64.Vec3
	Rotation float64

	// Opacity 当前透明度 [0,1]
	Opacity float64

	// Reached 透明度已经到达过 1
	Reached bool

	LabelEntity ecs.EntityID
	InfoEntity  ecs.EntityID
}
