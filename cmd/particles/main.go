// Package main provides a standalone viewer for the background particle
// layer, used to tune particle presets without the section cards on top.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--presets <path>   Particle presets YAML (optional)
//	--preset <name>    Start with a specific preset
//	--verbose          Enable verbose logging
//
// Controls:
//
//	Left/Right Arrow  - Previous/next preset
//	C                 - Cycle style (circles, squares, stars, confetti)
//	E                 - Toggle the layer on/off
//	R                 - Reseed the current batch
//	Up/Down Arrow     - Increase/decrease particle count by 10
//	+/-               - Increase/decrease speed by 0.25
//	Q/Escape          - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/folio/pkg/config"
	"github.com/gonewx/folio/pkg/systems"
)

var (
	presetsFlag = flag.String("presets", "", "Particle presets YAML file")
	presetFlag  = flag.String("preset", "", "Start with a specific preset name")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

const (
	countStep = 10
	speedStep = 0.25
)

// builtinPreset 未加载预设文件时唯一可选的预设名
const builtinPreset = "default"

// ParticleViewerGame implements ebiten.Game for the particle viewer
type ParticleViewerGame struct {
	layer    *systems.ParticleLayer
	renderer *systems.ParticleRenderer

	presets      config.ParticlePresets
	presetNames  []string
	currentIndex int

	statusMessage string
}

// NewParticleViewerGame creates a viewer whose loop runs under ctx.
func NewParticleViewerGame(ctx context.Context, presets config.ParticlePresets, start string) *ParticleViewerGame {
	if len(presets) == 0 {
		presets = config.ParticlePresets{builtinPreset: config.DefaultParticleConfig()}
	}
	names := presets.Names()

	index := 0
	for i, name := range names {
		if name == start {
			index = i
		}
	}
	if start != "" && names[index] != start {
		log.Printf("Warning: preset %q not found, starting with %s", start, names[index])
	}

	g := &ParticleViewerGame{
		presets:      presets,
		presetNames:  names,
		currentIndex: index,
	}
	ps := systems.NewParticleSystem(presets[names[index]])
	g.layer = systems.NewParticleLayer(ctx, ps, systems.DefaultFrameInterval)
	g.layer.Resize(config.WindowWidth, config.WindowHeight)
	g.updateStatusMessage()

	log.Printf("Particle Viewer initialized: %d presets", len(names))
	return g
}

// Update handles input. The particle loop itself runs in the background.
func (g *ParticleViewerGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.selectPreset(g.currentIndex + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.selectPreset(g.currentIndex - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.layer.Reseed()
		g.statusMessage = "Reseeded"
	default:
		g.adjust()
	}
	return nil
}

func (g *ParticleViewerGame) adjust() {
	cfg := g.layer.System.Config()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		cfg.Style = cfg.Style.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		cfg.Enabled = !cfg.Enabled
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		cfg.ParticleCount += countStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		cfg.ParticleCount = max(0, cfg.ParticleCount-countStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		cfg.Speed += speedStep
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		cfg.Speed = max(0, cfg.Speed-speedStep)
	default:
		return
	}
	g.layer.Configure(cfg)
	g.updateStatusMessage()
}

func (g *ParticleViewerGame) selectPreset(i int) {
	n := len(g.presetNames)
	g.currentIndex = ((i % n) + n) % n
	g.layer.Configure(g.presets[g.presetNames[g.currentIndex]])
	g.updateStatusMessage()
}

func (g *ParticleViewerGame) updateStatusMessage() {
	cfg := g.layer.System.Config()
	g.statusMessage = fmt.Sprintf("%s (%d/%d)  %s x%d  size %.1f  speed %.2f  %s",
		g.presetNames[g.currentIndex], g.currentIndex+1, len(g.presetNames),
		cfg.Style, cfg.ParticleCount, cfg.Size, cfg.Speed, cfg.Color)
	log.Printf("Current preset: %s", g.statusMessage)
}

// Draw renders the particles and the status line
func (g *ParticleViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 17, G: 17, B: 27, A: 255})
	if g.renderer == nil {
		g.renderer = systems.NewParticleRenderer()
	}
	g.renderer.Draw(screen, g.layer.System)

	ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 10)
	info := fmt.Sprintf("%s  %.0f FPS  <-/-> preset  C style  E toggle  R reseed  Up/Down count  +/- speed",
		g.layer.System.State(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, info, 10, 26)
}

// Layout returns the logical screen size
func (g *ParticleViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	var presets config.ParticlePresets
	if *presetsFlag != "" {
		var err error
		presets, err = config.LoadParticlePresets(*presetsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "particles: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := NewParticleViewerGame(ctx, presets, *presetFlag)
	defer g.layer.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Particle Viewer")
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "particles: %v\n", err)
		os.Exit(1)
	}
}
