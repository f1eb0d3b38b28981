package systems

import (
	"math"

	"github.com/gonewx/folio/pkg/components"
	"github.com/gonewx/folio/pkg/config"
)

// Vec2 is a point in canvas pixels.
type Vec2 struct {
	X, Y float64
}

// StarSpikes is the number of points on a star particle.
const StarSpikes = 5

// rotate 绕原点旋转后平移到 (cx, cy)
func rotate(x, y, sin, cos, cx, cy float64) Vec2 {
	return Vec2{X: cx + x*cos - y*sin, Y: cy + x*sin + y*cos}
}

// StarVertices returns the outline of a star centered at (cx, cy), rotated by
// rotation radians. Vertices alternate between the outer radius size and the
// inner radius size/2, starting with the outer vertex at angle 0.
func StarVertices(cx, cy, size, rotation float64) []Vec2 {
	outer, inner := size, size/2
	sin, cos := math.Sincos(rotation)

	pts := make([]Vec2, 0, StarSpikes*2)
	for i := 0; i < StarSpikes; i++ {
		oa := 2 * math.Pi * float64(i) / StarSpikes
		ia := (2*math.Pi*float64(i) + math.Pi) / StarSpikes
		pts = append(pts,
			rotate(math.Cos(oa)*outer, math.Sin(oa)*outer, sin, cos, cx, cy),
			rotate(math.Cos(ia)*inner, math.Sin(ia)*inner, sin, cos, cx, cy),
		)
	}
	return pts
}

// RotatedRect returns the corners of the local rectangle (x, y, w, h),
// rotated about the local origin and translated to (cx, cy). The corners are
// in order top-left, top-right, bottom-left, bottom-right.
func RotatedRect(cx, cy, x, y, w, h, rotation float64) [4]Vec2 {
	sin, cos := math.Sincos(rotation)
	return [4]Vec2{
		rotate(x, y, sin, cos, cx, cy),
		rotate(x+w, y, sin, cos, cx, cy),
		rotate(x, y+h, sin, cos, cx, cy),
		rotate(x+w, y+h, sin, cos, cx, cy),
	}
}

// SquareCorners returns a centered rotated square of side size.
func SquareCorners(p components.Particle) [4]Vec2 {
	return RotatedRect(p.X, p.Y, -p.Size/2, -p.Size/2, p.Size, p.Size, p.Rotation)
}

// ConfettiCorners returns the thin rotated strip (size/2 wide, size tall)
// drawn for confetti.
func ConfettiCorners(p components.Particle) [4]Vec2 {
	return RotatedRect(p.X, p.Y, -p.Size/4, -p.Size/2, p.Size/2, p.Size, p.Rotation)
}

// ShapeOutline returns the polygon for a particle in the given style. Circles
// have no polygon and return nil.
func ShapeOutline(p components.Particle, style config.ParticleStyle) []Vec2 {
	switch style {
	case config.StyleSquares:
		c := SquareCorners(p)
		return []Vec2{c[0], c[1], c[3], c[2]}
	case config.StyleConfetti:
		c := ConfettiCorners(p)
		return []Vec2{c[0], c[1], c[3], c[2]}
	case config.StyleStars:
		return StarVertices(p.X, p.Y, p.Size, p.Rotation)
	}
	return nil
}
