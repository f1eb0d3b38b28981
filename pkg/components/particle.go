package components

import "image/color"

// Particle 背景粒子层中的单个粒子。
// 位置、尺寸与速度以像素计，速度为每帧位移；Rotation 为弧度。
//
// 粒子只由 ParticleSystem 持有和修改，重新生成时整批替换。
type Particle struct {
	X        float64
	Y        float64
	Size     float64
	SpeedX   float64
	SpeedY   float64
	Color    color.RGBA
	Opacity  float64 // 0-1
	Rotation float64
}
