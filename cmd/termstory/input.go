package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/scrollstory/pkg/game"
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionNext
	actionStart
	actionSkip
	actionStepForward
	actionStepBack
	actionWheelDown
	actionWheelUp
)

// keyAction 把按键映射为动作
func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyEnter:
		return actionStart
	case tcell.KeyEscape:
		return actionSkip
	case tcell.KeyDown, tcell.KeyPgDn:
		return actionStepForward
	case tcell.KeyUp, tcell.KeyPgUp:
		return actionStepBack
	case tcell.KeyRune:
		switch r {
		case 'q':
			return actionQuit
		case 'n':
			return actionNext
		case ' ':
			return actionSkip
		case 'j':
			return actionStepForward
		case 'k':
			return actionStepBack
		}
	}
	return actionNone
}

// wheelAction 滚轮向下（WheelDown）前进
func wheelAction(buttons tcell.ButtonMask) action {
	switch {
	case buttons&tcell.WheelDown != 0:
		return actionWheelDown
	case buttons&tcell.WheelUp != 0:
		return actionWheelUp
	}
	return actionNone
}

// apply 把动作交给控制器
func apply(c *game.Controller, act action) {
	switch act {
	case actionStart:
		c.OnStart()
	case actionSkip:
		c.OnSkip()
	case actionStepForward:
		c.OnKeyStep(1)
	case actionStepBack:
		c.OnKeyStep(-1)
	case actionWheelDown:
		c.OnWheel(game.WheelPixelsPerNotch)
	case actionWheelUp:
		c.OnWheel(-game.WheelPixelsPerNotch)
	}
}
