package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/config"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = math.MaxUint16 - StarSpikes*2

// ParticleRenderer draws a ParticleSystem snapshot. Circles go through
// vector.DrawFilledCircle; polygons are fanned from the particle center
// into one DrawTriangles batch.
type ParticleRenderer struct {
	white *ebiten.Image

	snapshot []components.Particle
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewParticleRenderer creates a renderer.
func NewParticleRenderer() *ParticleRenderer {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return &ParticleRenderer{
		// 取中心像素，避免采样到边缘
		white: base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Draw renders the current particles of ps onto screen. A disabled system
// draws nothing.
func (r *ParticleRenderer) Draw(screen *ebiten.Image, ps *ParticleSystem) {
	var style config.ParticleStyle
	r.snapshot, style = ps.Snapshot(r.snapshot)
	if len(r.snapshot) == 0 {
		return
	}

	if style == config.StyleCircles || !style.Valid() {
		for _, p := range r.snapshot {
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), particleColor(p), true)
		}
		return
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, p := range r.snapshot {
		outline := ShapeOutline(p, style)
		if len(r.vertices)+len(outline)+1 > maxBatchVertices {
			r.flush(screen)
		}
		r.appendFan(p, outline)
	}
	r.flush(screen)
}

// appendFan 以粒子中心为扇形原点，把多边形拆成三角形
func (r *ParticleRenderer) appendFan(p components.Particle, outline []Vec2) {
	if len(outline) < 3 {
		return
	}
	cr, cg, cb, ca := premultiplied(p)
	base := uint16(len(r.vertices))

	r.vertices = append(r.vertices, fanVertex(p.X, p.Y, cr, cg, cb, ca))
	for _, v := range outline {
		r.vertices = append(r.vertices, fanVertex(v.X, v.Y, cr, cg, cb, ca))
	}

	n := uint16(len(outline))
	for i := uint16(0); i < n; i++ {
		r.indices = append(r.indices, base, base+1+i, base+1+(i+1)%n)
	}
}

func (r *ParticleRenderer) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(r.vertices, r.indices, r.white, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

func fanVertex(x, y float64, cr, cg, cb, ca float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: cr,
		ColorG: cg,
		ColorB: cb,
		ColorA: ca,
	}
}

func premultiplied(p components.Particle) (r, g, b, a float32) {
	a = float32(clamp01(p.Opacity))
	r = float32(p.Color.R) / 0xff * a
	g = float32(p.Color.G) / 0xff * a
	b = float32(p.Color.B) / 0xff * a
	return r, g, b, a
}

func particleColor(p components.Particle) color.NRGBA {
	return color.NRGBA{
		R: p.Color.R,
		G: p.Color.G,
		B: p.Color.B,
		A: uint8(math.Round(clamp01(p.Opacity) * 0xff)),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
