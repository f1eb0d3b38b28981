// Package scenes contains the desktop preview scenes.
package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the preview window.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene to screen.
	Draw(screen *ebiten.Image)
}

// Closer 是可选接口，场景退出时释放后台资源（粒子循环、存储订阅）
type Closer interface {
	Close()
}
