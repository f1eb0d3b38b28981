package components

// SectionCardComponent 预览场景中的区块卡片或卡片内的一行子元素
type SectionCardComponent struct {
	SectionID string
	Title     string
	// Index 为子元素在卡片内的序号，卡片本身为 -1
	Index int
}

// IsCard 报告实体是否为卡片本身
func (c *SectionCardComponent) IsCard() bool {
	return c.Index < 0
}
