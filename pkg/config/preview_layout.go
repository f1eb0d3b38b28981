package config

// 预览窗口布局常量
const (
	WindowWidth  = 960
	WindowHeight = 720

	ContentWidth = 720.0
	CardHeight   = 260.0
	CardSpacing  = 40.0
	TopPadding   = 80.0
	ItemHeight   = 36.0
	ItemPadding  = 24.0
	HUDHeight    = 56.0

	// ScrollStep 每次滚轮或方向键滚动的像素
	ScrollStep = 40.0
	// StaggerStep 区块内相邻子元素之间的额外延迟（秒）
	StaggerStep = 0.1
)

// PreviewSection 预览场景中的一个区块
type PreviewSection struct {
	ID    string
	Title string
	Items int
}

// PreviewSections 区块从上到下的顺序
var PreviewSections = []PreviewSection{
	{ID: "header", Title: "Header", Items: 2},
	{ID: "about", Title: "About", Items: 3},
	{ID: "skills", Title: "Skills", Items: 4},
	{ID: "projects", Title: "Projects", Items: 3},
	{ID: "contact", Title: "Contact", Items: 2},
}
