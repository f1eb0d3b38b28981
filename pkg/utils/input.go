// Package utils 提供预览窗口的输入采集
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputFrame 一帧内的输入快照
// 鼠标与触摸统一为指针；触摸纵向拖动折算为滚动量
type InputFrame struct {
	// 指针位置（窗口坐标）
	X, Y int
	// 是否有活动的触摸
	Touching bool
	// 指针是否刚刚按下（鼠标左键或新触摸）
	JustPressed bool
	// 滚轮纵向偏移，向上为正
	WheelY float64
	// 触摸拖动的纵向位移（像素），向下为正
	DragY float64
	// 本帧刚按下的按键
	Keys  []ebiten.Key
	Shift bool
}

// Pressed 报告 key 是否在本帧刚被按下
func (f InputFrame) Pressed(key ebiten.Key) bool {
	for _, k := range f.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// InputSource 输入来源接口
// 用于依赖注入，支持测试时 mock
type InputSource interface {
	Poll() InputFrame
}

// EbitenInput Ebitengine 默认实现
type EbitenInput struct {
	drag touchDrag
	keys []ebiten.Key
}

// NewEbitenInput 创建默认输入来源
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll 采集当前帧输入，每帧调用一次
func (in *EbitenInput) Poll() InputFrame {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])

	frame := InputFrame{
		Keys:  in.keys,
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
	}
	_, frame.WheelY = ebiten.Wheel()

	touches := ebiten.AppendTouchIDs(nil)
	frame.DragY = in.drag.update(touches, ebiten.TouchPosition)

	// 优先检查触摸（移动设备）
	if len(touches) > 0 {
		frame.Touching = true
		frame.X, frame.Y = ebiten.TouchPosition(touches[0])
		frame.JustPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		return frame
	}

	frame.X, frame.Y = ebiten.CursorPosition()
	frame.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return frame
}

// touchDrag 跟踪第一根手指的纵向拖动
type touchDrag struct {
	active bool
	id     ebiten.TouchID
	lastY  int
}

// update 返回自上一帧以来的纵向位移
//
// 参数：
//   - touches: 当前活动的触摸 ID
//   - position: 查询触摸位置
//
// 被跟踪的手指抬起后重置，下一根手指从零位移开始
func (d *touchDrag) update(touches []ebiten.TouchID, position func(ebiten.TouchID) (int, int)) float64 {
	if d.active && !containsTouch(touches, d.id) {
		d.active = false
	}
	if !d.active {
		if len(touches) == 0 {
			return 0
		}
		d.active = true
		d.id = touches[0]
		_, d.lastY = position(d.id)
		return 0
	}

	_, y := position(d.id)
	dy := float64(y - d.lastY)
	d.lastY = y
	return dy
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}
