package components

// BoundsComponent 元素在内容坐标系中的矩形（不随滚动变化）
type BoundsComponent struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Area 返回矩形面积
func (b BoundsComponent) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// VisibleArea 返回矩形落在纵向视口 [top, top+height) 内的面积
func (b BoundsComponent) VisibleArea(top, height float64) float64 {
	lo := max(b.Y, top)
	hi := min(b.Y+b.Height, top+height)
	if hi <= lo || b.Width <= 0 {
		return 0
	}
	return (hi - lo) * b.Width
}

// Contains 报告点 (x, y) 是否落在矩形内
func (b BoundsComponent) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
