package systems

import (
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler 接收输入事件，由 game.Controller 实现
type InputHandler interface {
	OnWheel(deltaY float64)
	OnTouchStart(y float64)
	OnTouchMove(y float64)
	OnTouchEnd()
	OnMouseMove(x, y, width, height float64)
	OnKeyStep(direction float64)
	OnStart()
	OnSkip()
}

// InputFrame 一帧内采集到的原始输入
type InputFrame struct {
	// WheelY ebiten 的滚轮值，向上滚为正
	WheelY float64

	CursorX, CursorY float64

	// Touch 状态：按下、拖动中、抬起
	TouchPressed  bool
	TouchReleased bool
	TouchActive   bool
	TouchX        float64
	TouchY        float64

	// Click 鼠标左键按下（光标位置）
	Click bool

	// KeySteps 方向键/翻页键的合计方向，下为正
	KeySteps float64

	Enter bool
	Skip  bool
}

// InputSystem 每帧轮询 ebiten 输入并转发给控制器
type InputSystem struct {
	handler InputHandler

	screenWidth  float64
	screenHeight float64

	touchID ebiten.TouchID
	touched bool
}

// NewInputSystem 创建输入系统
func NewInputSystem(handler InputHandler, screenWidth, screenHeight float64) *InputSystem {
	return &InputSystem{
		handler:      handler,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetScreenSize 更新逻辑屏幕尺寸
func (s *InputSystem) SetScreenSize(width, height float64) {
	s.screenWidth = width
	s.screenHeight = height
}

// Update 采集并分发本帧输入
func (s *InputSystem) Update(dt float64) {
	s.Apply(s.poll())
}

// poll 从 ebiten 读取本帧输入
func (s *InputSystem) poll() InputFrame {
	var f InputFrame

	_, f.WheelY = ebiten.Wheel()

	cx, cy := ebiten.CursorPosition()
	f.CursorX, f.CursorY = float64(cx), float64(cy)
	f.Click = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	// 只跟踪第一根手指
	if !s.touched {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			s.touchID = ids[0]
			s.touched = true
			f.TouchPressed = true
		}
	}
	if s.touched {
		if inpututil.IsTouchJustReleased(s.touchID) {
			s.touched = false
			f.TouchReleased = true
		} else {
			tx, ty := ebiten.TouchPosition(s.touchID)
			f.TouchX, f.TouchY = float64(tx), float64(ty)
			f.TouchActive = true
		}
	}

	for _, k := range []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyPageDown} {
		if inpututil.IsKeyJustPressed(k) {
			f.KeySteps++
		}
	}
	for _, k := range []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyPageUp} {
		if inpututil.IsKeyJustPressed(k) {
			f.KeySteps--
		}
	}

	f.Enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	f.Skip = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	return f
}

// Apply 把一帧输入转换为控制器事件
//
// 滚轮方向与浏览器 wheel 事件一致：向下滚动时 deltaY 为正，
// 每格对应 game.WheelPixelsPerNotch 像素。
func (s *InputSystem) Apply(f InputFrame) {
	h := s.handler

	h.OnMouseMove(f.CursorX, f.CursorY, s.screenWidth, s.screenHeight)

	if f.WheelY != 0 {
		h.OnWheel(-f.WheelY * game.WheelPixelsPerNotch)
	}

	if f.TouchPressed {
		h.OnTouchStart(f.TouchY)
		if s.insideStartButton(f.TouchX, f.TouchY) {
			h.OnStart()
		}
	}
	if f.TouchActive {
		h.OnTouchMove(f.TouchY)
	}
	if f.TouchReleased {
		h.OnTouchEnd()
	}

	if f.KeySteps != 0 {
		h.OnKeyStep(f.KeySteps)
	}

	if f.Enter || (f.Click && s.insideStartButton(f.CursorX, f.CursorY)) {
		h.OnStart()
	}
	if f.Skip {
		h.OnSkip()
	}
}

func (s *InputSystem) insideStartButton(x, y float64) bool {
	x0, y0, x1, y1 := config.StartButtonRect(s.screenWidth, s.screenHeight)
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}
