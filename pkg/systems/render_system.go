package systems

import (
	"image"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/gonewx/scrollstory/pkg/motion"
	"github.com/gonewx/scrollstory/pkg/projection"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	// textBaseSize 文字字形的基准像素大小，绘制时按透视缩放
	textBaseSize = 48.0
	// infoWrapWidth 说明文字每行最多字符数
	infoWrapWidth = 36
	// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
	maxBatchVertices = math.MaxUint16 - 3
	// cloudBacklight 云层背光面的最低亮度
	cloudBacklight = 0.35
)

// drawKind 绘制项类型
type drawKind int

const (
	drawTriangle drawKind = iota
	drawText
)

// screenTriangle 投影后的三角形
type screenTriangle struct {
	x, y  [3]float32
	color [3][4]float32
}

// drawItem 画家算法的一个绘制项
type drawItem struct {
	kind  drawKind
	depth float64
	layer int

	tri screenTriangle

	entity ecs.EntityID
	sx, sy float64
	scaleX float64
	scaleY float64
}

// RenderStats 最近一帧的绘制统计（调试叠加层显示）
type RenderStats struct {
	Triangles int
	Culled    int
	Texts     int
	Stars     int
	DrawCalls int
}

// RenderSystem 把 3D 场景绘制到 ebiten 屏幕
//
// 渲染流程：
//  1. 星空（最远，直接绘制为小方块）
//  2. 网格三角形：变换到世界空间，背面剔除，Lambert 光照，投影
//  3. 路标文字：公告板，字号随透视缩放，横向缩放 |cos(rotation)|
//  4. 2 和 3 合并后按深度从远到近排序，依次批量绘制
type RenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
	camera          *projection.Camera
	cameraEntity    ecs.EntityID

	lightDir mgl64.Vec3
	ambient  float64

	items    []drawItem
	vertices []ebiten.Vertex
	indices  []uint16

	whiteImage *ebiten.Image

	stats RenderStats
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - em: 实体管理器
//   - rm: 字体资源
//   - cfg: 故事配置（光照参数）
//   - camera: 透视相机（由 CameraSystem 每帧更新）
//   - cameraEntity: 相机实体，用于读取含视差的相机位置
func NewRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager, cfg *config.StoryConfig, camera *projection.Camera, cameraEntity ecs.EntityID) *RenderSystem {
	light := cfg.Light.Direction.Mgl()
	if light.Len() == 0 {
		light = mgl64.Vec3{1, 0, 1}
	}
	return &RenderSystem{
		entityManager:   em,
		resourceManager: rm,
		camera:          camera,
		cameraEntity:    cameraEntity,
		lightDir:        light.Normalize(),
		ambient:         cfg.Light.Ambient,
	}
}

// Stats 返回最近一帧的绘制统计
func (s *RenderSystem) Stats() RenderStats {
	return s.stats
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	s.stats = RenderStats{}
	s.drawStars(screen)

	s.items = s.collect(s.items[:0])
	s.drawItems(screen)
}

// collect 收集网格三角形和文字，按深度排序
func (s *RenderSystem) collect(items []drawItem) []drawItem {
	eye := s.eye()

	meshIDs := ecs.GetEntitiesWith2[*components.MeshComponent, *components.TransformComponent](s.entityManager)
	for _, id := range meshIDs {
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if mesh.Opacity <= 0 {
			continue
		}
		items = s.collectMesh(items, mesh, transform, eye)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.TextComponent](s.entityManager) {
		tc, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)
		if item, ok := s.projectText(id, tc); ok {
			items = append(items, item)
		}
	}

	sortDrawItems(items)
	return items
}

// collectMesh 变换、剔除、着色并投影一个网格
func (s *RenderSystem) collectMesh(items []drawItem, mesh *components.MeshComponent, transform *components.TransformComponent, eye mgl64.Vec3) []drawItem {
	world := make([]mgl64.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		world[i] = transform.Apply(v)
	}

	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		i0, i1, i2 := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		a, b, c := world[i0], world[i1], world[i2]

		if !isFrontFacing(a, b, c, eye) {
			s.stats.Culled++
			continue
		}

		var tri screenTriangle
		depth := 0.0
		visible := true
		for k, idx := range [3]uint16{i0, i1, i2} {
			sx, sy, d, ok := s.camera.Project(world[idx])
			if !ok {
				visible = false
				break
			}
			tri.x[k], tri.y[k] = float32(sx), float32(sy)
			depth += d

			n := transform.ApplyNormal(mesh.Normals[idx])
			tri.color[k] = shadeVertex(mesh.Colors[idx], mesh.Opacity, mesh.Material, shade(n, s.lightDir, s.ambient))
		}
		if !visible {
			continue
		}

		items = append(items, drawItem{
			kind:  drawTriangle,
			depth: depth / 3,
			layer: mesh.Layer,
			tri:   tri,
		})
		s.stats.Triangles++
	}
	return items
}

// projectText 计算公告板文字的屏幕位置和缩放
func (s *RenderSystem) projectText(id ecs.EntityID, tc *components.TextComponent) (drawItem, bool) {
	if tc.Opacity <= 0 || tc.Text == "" {
		return drawItem{}, false
	}
	sx, sy, depth, ok := s.camera.Project(tc.Position)
	if !ok {
		return drawItem{}, false
	}

	scale := textScale(tc.Size, s.camera.ScaleAt(depth))
	scaleX := scale * math.Abs(math.Cos(tc.Rotation))
	if scaleX < 1e-3 {
		return drawItem{}, false
	}

	return drawItem{
		kind:   drawText,
		depth:  depth,
		layer:  math.MaxInt32,
		entity: id,
		sx:     sx,
		sy:     sy,
		scaleX: scaleX,
		scaleY: scale,
	}, true
}

// drawStars 星空点云，批量绘制为小方块
func (s *RenderSystem) drawStars(screen *ebiten.Image) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for _, id := range ecs.GetEntitiesWith1[*components.StarfieldComponent](s.entityManager) {
		stars, _ := ecs.GetComponent[*components.StarfieldComponent](s.entityManager, id)
		half := float32(stars.Size / 2)
		if half <= 0 {
			half = 0.5
		}
		r, g, b, a := colorToFloats(stars.Color, 1)

		for _, p := range stars.Points {
			sx, sy, _, ok := s.camera.Project(stars.Center.Add(p))
			if !ok {
				continue
			}
			if len(s.vertices)+4 > maxBatchVertices {
				s.flush(screen)
			}
			x, y := float32(sx), float32(sy)
			base := uint16(len(s.vertices))
			s.vertices = append(s.vertices,
				solidVertex(x-half, y-half, r, g, b, a),
				solidVertex(x+half, y-half, r, g, b, a),
				solidVertex(x-half, y+half, r, g, b, a),
				solidVertex(x+half, y+half, r, g, b, a),
			)
			s.indices = append(s.indices, base, base+1, base+2, base+1, base+3, base+2)
			s.stats.Stars++
		}
	}
	s.flush(screen)
}

// drawItems 按排序结果绘制；连续的三角形合并为一次 DrawTriangles
func (s *RenderSystem) drawItems(screen *ebiten.Image) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for i := range s.items {
		item := &s.items[i]
		switch item.kind {
		case drawTriangle:
			if len(s.vertices)+3 > maxBatchVertices {
				s.flush(screen)
			}
			base := uint16(len(s.vertices))
			for k := 0; k < 3; k++ {
				c := item.tri.color[k]
				s.vertices = append(s.vertices, solidVertex(item.tri.x[k], item.tri.y[k], c[0], c[1], c[2], c[3]))
			}
			s.indices = append(s.indices, base, base+1, base+2)
		case drawText:
			s.flush(screen)
			s.drawText(screen, item)
		}
	}
	s.flush(screen)
}

// flush 提交当前批次
func (s *RenderSystem) flush(screen *ebiten.Image) {
	if len(s.indices) == 0 {
		s.vertices = s.vertices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(s.vertices, s.indices, s.white(), op)
	s.stats.DrawCalls++
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
}

// drawText 绘制一条公告板文字
func (s *RenderSystem) drawText(screen *ebiten.Image, item *drawItem) {
	tc, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, item.entity)
	if !ok {
		return
	}

	fontPath := game.FontRegular
	content := wrapText(tc.Text, infoWrapWidth)
	if tc.Bold {
		fontPath = game.FontBold
		content = tc.Text
	}
	face, err := s.resourceManager.LoadFont(fontPath, textBaseSize)
	if err != nil {
		log.Printf("[RenderSystem] Failed to load font %s: %v", fontPath, err)
		return
	}

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.LayoutOptions.LineSpacing = textBaseSize * 1.25
	op.GeoM.Scale(item.scaleX, item.scaleY)
	op.GeoM.Translate(item.sx, item.sy)
	op.ColorScale.ScaleWithColor(tc.Color)
	op.ColorScale.ScaleAlpha(float32(motion.Clamp(tc.Opacity, 0, 1)))
	text.Draw(screen, content, face, op)
	s.stats.Texts++
	s.stats.DrawCalls++
}

func (s *RenderSystem) white() *ebiten.Image {
	if s.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.whiteImage
}

func (s *RenderSystem) eye() mgl64.Vec3 {
	if cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity); ok {
		return cam.EyePosition()
	}
	return s.camera.Position
}

// sortDrawItems 从远到近；深度相同时 Layer 小的先画
func sortDrawItems(items []drawItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].depth != items[j].depth {
			return items[i].depth > items[j].depth
		}
		return items[i].layer < items[j].layer
	})
}

// isFrontFacing 逆时针三角形的法线朝向相机时为正面
func isFrontFacing(a, b, c, eye mgl64.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	return n.Dot(eye.Sub(a)) > 0
}

// shade Lambert 漫反射加环境光，结果在 [ambient, 1]
func shade(normal, lightDir mgl64.Vec3, ambient float64) float64 {
	if normal.Len() == 0 {
		return 1
	}
	diffuse := math.Max(0, normal.Normalize().Dot(lightDir))
	return motion.Clamp(ambient+(1-ambient)*diffuse, 0, 1)
}

// shadeVertex 计算顶点颜色（非预乘 alpha）
func shadeVertex(c color.NRGBA, opacity float64, material components.MaterialKind, light float64) [4]float32 {
	if material == components.MaterialCloud {
		light = cloudBacklight + (1-cloudBacklight)*light
	}
	r, g, b, a := colorToFloats(c, opacity)
	l := float32(light)
	return [4]float32{r * l, g * l, b * l, a}
}

// textScale 字形从基准大小到屏幕像素大小的缩放
func textScale(worldSize, pixelsPerUnit float64) float64 {
	px := motion.Clamp(worldSize*pixelsPerUnit, config.MinTextPixelSize, config.MaxTextPixelSize)
	return px / textBaseSize
}

// wrapText 按单词换行，每行不超过 width 个字符（单个长单词除外）
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		n := len([]rune(w))
		if i > 0 {
			if lineLen+1+n > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += n
	}
	return b.String()
}

func colorToFloats(c color.NRGBA, opacity float64) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255,
		float32(c.A) / 255 * float32(motion.Clamp(opacity, 0, 1))
}

func solidVertex(x, y, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: 1, SrcY: 1,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}
