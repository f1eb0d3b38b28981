// Package app 提供预览窗口的核心包装器
//
// 该包把存储、粒子层和预览场景的装配从 main 包提取出来，
// main.go 只负责解析参数并调用 NewApp()。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/scenes"
	"github.com/gonewx/folio/pkg/store"
	"github.com/gonewx/folio/pkg/systems"
)

// DefaultAppName gdata 数据目录名
const DefaultAppName = "folio"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ParticlesPath 粒子预设 YAML 路径，为空时使用 BuiltinPresets
	ParticlesPath string
	// BuiltinPresets 内置预设 YAML 内容，可为空
	BuiltinPresets []byte
	// Section 初始选中的区块
	Section string
	// AppName gdata 应用名，为空时使用 DefaultAppName
	AppName string
	// Theme 卡片配色主题
	Theme string
}

// App 实现 ebiten.Game 接口
type App struct {
	scene  scenes.Scene
	store  *store.AnimationStore
	layer  *systems.ParticleLayer
	cancel context.CancelFunc

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化预览应用
//
// 动画配置通过 gdata 持久化，每次修改自动保存。
// 持久化数据损坏时以空配置启动，不会返回错误。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	animStore, err := openStore(cfg.AppName)
	if err != nil {
		return nil, err
	}

	presets, err := loadPresets(cfg)
	if err != nil {
		return nil, err
	}
	particleCfg := config.DefaultParticleConfig()
	if p, ok := presets["default"]; ok {
		particleCfg = p
	}

	ctx, cancel := context.WithCancel(context.Background())
	layer := systems.NewParticleLayer(ctx, systems.NewParticleSystem(particleCfg), systems.DefaultFrameInterval)

	scene := scenes.NewPreviewScene(scenes.PreviewConfig{
		Store:     animStore,
		Particles: layer,
		Presets:   presets,
		Section:   cfg.Section,
		Theme:     cfg.Theme,
	})

	return &App{
		scene:   scene,
		store:   animStore,
		layer:   layer,
		cancel:  cancel,
		verbose: cfg.Verbose,
	}, nil
}

// openStore 打开 gdata 目录并创建自动保存的动画存储
// NewAnimationStore 会加载一次持久化数据，损坏时以空存储启动
func openStore(appName string) (*store.AnimationStore, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("打开存档目录失败: %w", err)
	}
	animStore := store.NewAnimationStore(manager)
	animStore.SetAutosave(true)
	return animStore, nil
}

// loadPresets 优先读取 ParticlesPath；内置预设解析失败只记录警告
func loadPresets(cfg Config) (config.ParticlePresets, error) {
	if cfg.ParticlesPath != "" {
		presets, err := config.LoadParticlePresets(cfg.ParticlesPath)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] Loaded %d particle presets from %s", len(presets), cfg.ParticlesPath)
		return presets, nil
	}
	if len(cfg.BuiltinPresets) == 0 {
		return nil, nil
	}
	presets, err := config.ParseParticlePresets(cfg.BuiltinPresets)
	if err != nil {
		log.Printf("[Config] Warning: builtin particle presets: %v", err)
		return nil, nil
	}
	return presets, nil
}

// Update 更新预览逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.scene.Update(1.0 / 60.0)
	return nil
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close 停止粒子循环并写入最后一次存档
func (a *App) Close() error {
	if c, ok := a.scene.(scenes.Closer); ok {
		c.Close()
	}
	a.layer.Close()
	a.cancel()
	return a.store.Save()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
