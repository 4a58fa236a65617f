package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/motion"
)

// Vec3 配置文件中的三维坐标，书写为 [x, y, z]
type Vec3 [3]float64

// Mgl 转换为 mgl64.Vec3
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// StoryConfig 滚动故事配置
//
// 一个故事文件描述一个场景变体：地球、星空、旅行者、相机路径和路标文字。
// 变体之间只有数值参数和文字内容不同，可以通过 extends 继承另一个故事。
//
// 配置文件位置: data/stories/<id>.yaml 或 data/stories/<id>.toml
type StoryConfig struct {
	// ID 故事唯一标识，缺省时使用文件名
	ID       string `yaml:"id" toml:"id"`
	Title    string `yaml:"title" toml:"title"`
	Subtitle string `yaml:"subtitle" toml:"subtitle"`

	// Extends 父故事 ID，子故事只需写出要覆盖的字段
	Extends string `yaml:"extends,omitempty" toml:"extends,omitempty"`

	// Background 清屏颜色
	Background string `yaml:"background" toml:"background"`

	Window     WindowConfig     `yaml:"window" toml:"window"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Earth      EarthConfig      `yaml:"earth" toml:"earth"`
	Stars      StarsConfig      `yaml:"stars" toml:"stars"`
	Traveler   TravelerConfig   `yaml:"traveler" toml:"traveler"`
	Scroll     ScrollConfig     `yaml:"scroll" toml:"scroll"`
	Input      InputConfig      `yaml:"input" toml:"input"`
	Visibility VisibilityConfig `yaml:"visibility" toml:"visibility"`
	Text       TextConfig       `yaml:"text" toml:"text"`
	Entry      EntryConfig      `yaml:"entry" toml:"entry"`
	Light      LightConfig      `yaml:"light" toml:"light"`

	Waypoints []WaypointConfig `yaml:"waypoints" toml:"waypoints"`
}

// WindowConfig 逻辑屏幕尺寸
type WindowConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// CameraConfig 相机参数
type CameraConfig struct {
	// Fov 垂直视场角（度）
	Fov  float64 `yaml:"fov" toml:"fov"`
	Near float64 `yaml:"near" toml:"near"`
	Far  float64 `yaml:"far" toml:"far"`

	// Position 标题界面时的相机位置
	Position Vec3 `yaml:"position" toml:"position"`

	// LookAt 注视目标："earth"、"traveler" 或 "x,y,z"
	LookAt string `yaml:"lookAt" toml:"lookAt"`

	Follow FollowConfig `yaml:"follow" toml:"follow"`

	// Parallax 鼠标视差强度（世界单位），0 表示关闭
	Parallax float64 `yaml:"parallax" toml:"parallax"`
}

// 跟随模式
const (
	FollowDirect = "direct"
	FollowTween  = "tween"
)

// 补间重新触发策略
const (
	RetriggerEveryFrame = "everyFrame"
	RetriggerOnChange   = "onChange"
	RetriggerOnWaypoint = "onWaypoint"
)

// FollowConfig 相机跟随旅行者的方式
type FollowConfig struct {
	// Mode "direct" 或 "tween"
	Mode string `yaml:"mode" toml:"mode"`
	// Offset 相机相对旅行者的偏移
	Offset Vec3 `yaml:"offset" toml:"offset"`
	// Duration 补间时长（秒）
	Duration float64 `yaml:"duration" toml:"duration"`
	Easing   string  `yaml:"easing" toml:"easing"`
	// Retrigger "everyFrame" / "onChange" / "onWaypoint"
	Retrigger string `yaml:"retrigger" toml:"retrigger"`
	// Epsilon onChange 模式下目标移动超过该距离才重新补间
	Epsilon float64 `yaml:"epsilon" toml:"epsilon"`
}

// EarthConfig 地球和云层
type EarthConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	WidthSegments  int     `yaml:"widthSegments" toml:"widthSegments"`
	HeightSegments int     `yaml:"heightSegments" toml:"heightSegments"`
	Position       Vec3    `yaml:"position" toml:"position"`

	// Spin / CloudSpin 绕 Y 轴自转角速度（弧度/秒）
	Spin      float64 `yaml:"spin" toml:"spin"`
	CloudSpin float64 `yaml:"cloudSpin" toml:"cloudSpin"`

	LandColor    string  `yaml:"landColor" toml:"landColor"`
	OceanColor   string  `yaml:"oceanColor" toml:"oceanColor"`
	CloudColor   string  `yaml:"cloudColor" toml:"cloudColor"`
	CloudOpacity float64 `yaml:"cloudOpacity" toml:"cloudOpacity"`

	// PatternSeed 陆地/海洋图案的随机种子
	PatternSeed uint64 `yaml:"patternSeed" toml:"patternSeed"`
}

// StarsConfig 星空
type StarsConfig struct {
	Count  int     `yaml:"count" toml:"count"`
	Radius float64 `yaml:"radius" toml:"radius"`
	Color  string  `yaml:"color" toml:"color"`
	// Size 星点像素大小
	Size float64 `yaml:"size" toml:"size"`
	Seed uint64  `yaml:"seed" toml:"seed"`
	// FollowCamera 星空球心跟随相机（天空盒效果）
	FollowCamera bool `yaml:"followCamera" toml:"followCamera"`
}

// TravelerConfig 沿单轴移动的旅行者（小行星）
type TravelerConfig struct {
	// Axis 移动轴 "x" / "y" / "z"
	Axis  string  `yaml:"axis" toml:"axis"`
	Start float64 `yaml:"start" toml:"start"`
	End   float64 `yaml:"end" toml:"end"`

	Radius float64 `yaml:"radius" toml:"radius"`
	Color  string  `yaml:"color" toml:"color"`
	// Offset 另外两个轴上的固定坐标（移动轴分量被忽略）
	Offset Vec3 `yaml:"offset" toml:"offset"`
	// Roughness 表面起伏幅度（半径的比例）
	Roughness float64 `yaml:"roughness" toml:"roughness"`
	// Spin 自转角速度（弧度/秒）
	Spin float64 `yaml:"spin" toml:"spin"`
}

// ScrollConfig 滚动积分参数
type ScrollConfig struct {
	Damping        float64 `yaml:"damping" toml:"damping"`
	Scale          float64 `yaml:"scale" toml:"scale"`
	MaxVelocity    float64 `yaml:"maxVelocity" toml:"maxVelocity"`
	MaxAccumulated float64 `yaml:"maxAccumulated" toml:"maxAccumulated"`
}

// InputConfig 输入灵敏度
type InputConfig struct {
	// WheelSpeed 滚轮 deltaY 倍率
	WheelSpeed float64 `yaml:"wheelSpeed" toml:"wheelSpeed"`
	// TouchSpeed 触摸位移倍率
	TouchSpeed float64 `yaml:"touchSpeed" toml:"touchSpeed"`
	// KeyStep 方向键/翻页键每次加入的滚动量
	KeyStep float64 `yaml:"keyStep" toml:"keyStep"`
}

// 可见度距离来源
const (
	SourceTraveler = "traveler"
	SourceCamera   = "camera"
)

// VisibilityConfig 路标淡入淡出
type VisibilityConfig struct {
	Threshold float64 `yaml:"threshold" toml:"threshold"`
	// Distance "euclidean" 或 "axis"
	Distance string `yaml:"distance" toml:"distance"`
	// Source "traveler" 或 "camera"
	Source string `yaml:"source" toml:"source"`
}

// TextConfig 路标文字样式
type TextConfig struct {
	Label LabelTextConfig `yaml:"label" toml:"label"`
	Info  InfoTextConfig  `yaml:"info" toml:"info"`
}

// LabelTextConfig 标签（年份）文字
type LabelTextConfig struct {
	// Size 世界单位的字高
	Size   float64 `yaml:"size" toml:"size"`
	Color  string  `yaml:"color" toml:"color"`
	Offset Vec3    `yaml:"offset" toml:"offset"`
}

// InfoTextConfig 说明文字
type InfoTextConfig struct {
	Size  float64 `yaml:"size" toml:"size"`
	Color string  `yaml:"color" toml:"color"`
}

// EntryConfig 开场动画
type EntryConfig struct {
	Duration float64 `yaml:"duration" toml:"duration"`
	Easing   string  `yaml:"easing" toml:"easing"`
}

// LightConfig 方向光
type LightConfig struct {
	// Direction 光源所在方向（会被归一化）
	Direction Vec3    `yaml:"direction" toml:"direction"`
	Ambient   float64 `yaml:"ambient" toml:"ambient"`
}

// WaypointConfig 路标
type WaypointConfig struct {
	Label    string  `yaml:"label" toml:"label"`
	Info     string  `yaml:"info" toml:"info"`
	Position Vec3    `yaml:"position" toml:"position"`
	Rotation float64 `yaml:"rotation" toml:"rotation"`
}

// ApplyDefaults 为未填写的字段填入默认值
//
// 默认值在 Validate 之前应用，旧的故事文件不需要写出新增字段。
func (c *StoryConfig) ApplyDefaults() {
	if c.Background == "" {
		c.Background = "#000000"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultWindowHeight
	}

	cam := &c.Camera
	if cam.Fov == 0 {
		cam.Fov = 45
	}
	if cam.Near == 0 {
		cam.Near = 10
	}
	if cam.Far == 0 {
		cam.Far = 2000
	}
	if cam.Position == (Vec3{}) {
		cam.Position = Vec3{0, 0, 500}
	}
	if cam.LookAt == "" {
		cam.LookAt = "earth"
	}
	if cam.Follow.Mode == "" {
		cam.Follow.Mode = FollowTween
	}
	if cam.Follow.Duration == 0 {
		cam.Follow.Duration = 0.6
	}
	if cam.Follow.Easing == "" {
		cam.Follow.Easing = motion.EaseOut
	}
	if cam.Follow.Retrigger == "" {
		cam.Follow.Retrigger = RetriggerOnChange
	}
	if cam.Follow.Epsilon == 0 {
		cam.Follow.Epsilon = 0.01
	}

	e := &c.Earth
	if e.Radius == 0 {
		e.Radius = 80
	}
	if e.WidthSegments == 0 {
		e.WidthSegments = 32
	}
	if e.HeightSegments == 0 {
		e.HeightSegments = 32
	}
	if e.LandColor == "" {
		e.LandColor = "#3f7d3a"
	}
	if e.OceanColor == "" {
		e.OceanColor = "#1b4f9c"
	}
	if e.CloudColor == "" {
		e.CloudColor = "white"
	}
	if e.CloudOpacity == 0 {
		e.CloudOpacity = 0.35
	}

	s := &c.Stars
	if s.Count == 0 {
		s.Count = 5000
	}
	if s.Radius == 0 {
		s.Radius = 1000
	}
	if s.Color == "" {
		s.Color = "#ffffff"
	}
	if s.Size == 0 {
		s.Size = 2
	}

	t := &c.Traveler
	if t.Axis == "" {
		t.Axis = "z"
	}
	if t.Radius == 0 {
		t.Radius = 4
	}
	if t.Color == "" {
		t.Color = "#8a7f72"
	}

	sc := &c.Scroll
	if sc.Damping == 0 {
		sc.Damping = 0.9
	}
	if sc.Scale == 0 {
		sc.Scale = 1
	}
	if sc.MaxVelocity == 0 {
		sc.MaxVelocity = 40
	}
	if sc.MaxAccumulated == 0 {
		sc.MaxAccumulated = 2000
	}

	in := &c.Input
	if in.WheelSpeed == 0 {
		in.WheelSpeed = 0.1
	}
	if in.TouchSpeed == 0 {
		in.TouchSpeed = 2
	}
	if in.KeyStep == 0 {
		in.KeyStep = 40
	}

	v := &c.Visibility
	if v.Threshold == 0 {
		v.Threshold = 100
	}
	if v.Distance == "" {
		v.Distance = string(motion.DistanceEuclidean)
	}
	if v.Source == "" {
		v.Source = SourceTraveler
	}

	if c.Text.Label.Size == 0 {
		c.Text.Label.Size = 3
	}
	if c.Text.Label.Color == "" {
		c.Text.Label.Color = "orange"
	}
	if c.Text.Label.Offset == (Vec3{}) {
		c.Text.Label.Offset = Vec3{0.5, 2, 0}
	}
	if c.Text.Info.Size == 0 {
		c.Text.Info.Size = 1
	}
	if c.Text.Info.Color == "" {
		c.Text.Info.Color = "white"
	}

	if c.Entry.Duration == 0 {
		c.Entry.Duration = 2.5
	}
	if c.Entry.Easing == "" {
		c.Entry.Easing = motion.EaseInOutCubic
	}

	if c.Light.Direction == (Vec3{}) {
		c.Light.Direction = Vec3{500, 0, 500}
	}
	if c.Light.Ambient == 0 {
		c.Light.Ambient = 0.15
	}
}

// Validate 验证配置有效性
//
// 拒绝零长度的旅行区间、非正阈值、非法阻尼/缩放/速度、未知的缓动或模式名称、
// 无法解析的颜色。
//
// 返回:
//   - error: 第一个发现的问题
func (c *StoryConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("story id is empty")
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if err := c.validateCamera(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	if c.Earth.Radius <= 0 {
		return fmt.Errorf("earth radius must be > 0, got %v", c.Earth.Radius)
	}
	if c.Earth.WidthSegments < 3 || c.Earth.HeightSegments < 2 {
		return fmt.Errorf("earth segments too small: %dx%d (min 3x2)", c.Earth.WidthSegments, c.Earth.HeightSegments)
	}
	// 球面网格使用 uint16 索引
	if (c.Earth.WidthSegments+1)*(c.Earth.HeightSegments+1) > math.MaxUint16+1 {
		return fmt.Errorf("earth segments too large: %dx%d exceeds %d vertices",
			c.Earth.WidthSegments, c.Earth.HeightSegments, math.MaxUint16+1)
	}
	if c.Earth.CloudOpacity < 0 || c.Earth.CloudOpacity > 1 {
		return fmt.Errorf("earth cloudOpacity must be in [0,1], got %v", c.Earth.CloudOpacity)
	}

	if c.Stars.Count < 0 {
		return fmt.Errorf("stars count must be >= 0, got %d", c.Stars.Count)
	}
	if c.Stars.Radius <= 0 {
		return fmt.Errorf("stars radius must be > 0, got %v", c.Stars.Radius)
	}

	if _, err := motion.ParseAxis(c.Traveler.Axis); err != nil {
		return fmt.Errorf("traveler: %w", err)
	}
	if err := c.TravelerRange().Validate(); err != nil {
		return err
	}
	if c.Traveler.Radius <= 0 {
		return fmt.Errorf("traveler radius must be > 0, got %v", c.Traveler.Radius)
	}
	if c.Traveler.Roughness < 0 || c.Traveler.Roughness >= 1 {
		return fmt.Errorf("traveler roughness must be in [0,1), got %v", c.Traveler.Roughness)
	}

	if err := c.ScrollParams().Validate(); err != nil {
		return fmt.Errorf("scroll: %w", err)
	}

	if c.Input.WheelSpeed < 0 || c.Input.TouchSpeed < 0 || c.Input.KeyStep < 0 {
		return fmt.Errorf("input speeds must be >= 0")
	}

	if c.Visibility.Threshold <= 0 {
		return fmt.Errorf("visibility threshold must be > 0, got %v", c.Visibility.Threshold)
	}
	if _, err := motion.ParseDistanceMetric(c.Visibility.Distance); err != nil {
		return fmt.Errorf("visibility: %w", err)
	}
	if c.Visibility.Source != SourceTraveler && c.Visibility.Source != SourceCamera {
		return fmt.Errorf("visibility source must be %q or %q, got %q", SourceTraveler, SourceCamera, c.Visibility.Source)
	}

	if c.Text.Label.Size <= 0 || c.Text.Info.Size <= 0 {
		return fmt.Errorf("text sizes must be > 0")
	}

	if c.Entry.Duration < 0 {
		return fmt.Errorf("entry duration must be >= 0, got %v", c.Entry.Duration)
	}
	if _, err := motion.ParseEasing(c.Entry.Easing); err != nil {
		return fmt.Errorf("entry: %w", err)
	}

	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		return fmt.Errorf("light ambient must be in [0,1], got %v", c.Light.Ambient)
	}

	colors := []struct{ field, value string }{
		{"background", c.Background},
		{"earth.landColor", c.Earth.LandColor},
		{"earth.oceanColor", c.Earth.OceanColor},
		{"earth.cloudColor", c.Earth.CloudColor},
		{"stars.color", c.Stars.Color},
		{"traveler.color", c.Traveler.Color},
		{"text.label.color", c.Text.Label.Color},
		{"text.info.color", c.Text.Info.Color},
	}
	for _, col := range colors {
		if _, err := ParseColor(col.value); err != nil {
			return fmt.Errorf("%s: %w", col.field, err)
		}
	}

	return nil
}

func (c *StoryConfig) validateCamera() error {
	cam := c.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return fmt.Errorf("fov must be in (0,180), got %v", cam.Fov)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("need 0 < near < far, got near=%v far=%v", cam.Near, cam.Far)
	}
	if _, err := ParseLookAt(cam.LookAt); err != nil {
		return err
	}
	if cam.Follow.Mode != FollowDirect && cam.Follow.Mode != FollowTween {
		return fmt.Errorf("follow mode must be %q or %q, got %q", FollowDirect, FollowTween, cam.Follow.Mode)
	}
	switch cam.Follow.Retrigger {
	case RetriggerEveryFrame, RetriggerOnChange, RetriggerOnWaypoint:
	default:
		return fmt.Errorf("unknown follow retrigger %q", cam.Follow.Retrigger)
	}
	if cam.Follow.Duration < 0 {
		return fmt.Errorf("follow duration must be >= 0, got %v", cam.Follow.Duration)
	}
	if cam.Follow.Epsilon < 0 {
		return fmt.Errorf("follow epsilon must be >= 0, got %v", cam.Follow.Epsilon)
	}
	if _, err := motion.ParseEasing(cam.Follow.Easing); err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	if cam.Parallax < 0 {
		return fmt.Errorf("parallax must be >= 0, got %v", cam.Parallax)
	}
	return nil
}

// ScrollParams 返回滚动积分参数
func (c *StoryConfig) ScrollParams() motion.ScrollParams {
	return motion.ScrollParams{
		Damping:        c.Scroll.Damping,
		Scale:          c.Scroll.Scale,
		MaxVelocity:    c.Scroll.MaxVelocity,
		MaxAccumulated: c.Scroll.MaxAccumulated,
	}
}

// TravelerRange 返回旅行者区间
func (c *StoryConfig) TravelerRange() motion.Range {
	return motion.Range{Start: c.Traveler.Start, End: c.Traveler.End}
}

// TravelerAxis 返回移动轴，配置已验证时不会出错
func (c *StoryConfig) TravelerAxis() motion.Axis {
	axis, _ := motion.ParseAxis(c.Traveler.Axis)
	return axis
}

// LookAtKind 相机注视目标类型
type LookAtKind int

const (
	LookAtEarth LookAtKind = iota
	LookAtTraveler
	LookAtPoint
)

// LookAtTarget 解析后的注视目标
type LookAtTarget struct {
	Kind  LookAtKind
	Point mgl64.Vec3
}

// ParseLookAt 解析 "earth"、"traveler" 或 "x,y,z"
func ParseLookAt(s string) (LookAtTarget, error) {
	switch strings.TrimSpace(s) {
	case "", "earth":
		return LookAtTarget{Kind: LookAtEarth}, nil
	case "traveler":
		return LookAtTarget{Kind: LookAtTraveler}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return LookAtTarget{}, fmt.Errorf("lookAt must be earth, traveler or \"x,y,z\", got %q", s)
	}
	var p mgl64.Vec3
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return LookAtTarget{}, fmt.Errorf("invalid lookAt component %q: %w", part, err)
		}
		p[i] = v
	}
	return LookAtTarget{Kind: LookAtPoint, Point: p}, nil
}

// Resolve 根据地球和旅行者的当前位置返回注视点
func (t LookAtTarget) Resolve(earth, traveler mgl64.Vec3) mgl64.Vec3 {
	switch t.Kind {
	case LookAtTraveler:
		return traveler
	case LookAtPoint:
		return t.Point
	default:
		return earth
	}
}
