package config

import "strings"

// Theme 导出作品集使用的配色
type Theme struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// DefaultTheme 未指定主题时使用
const DefaultTheme = "purple"

// Themes 可用主题列表
var Themes = []Theme{
	{Name: "purple", Primary: "#9333ea", Secondary: "#c084fc"},
	{Name: "blue", Primary: "#2563eb", Secondary: "#60a5fa"},
	{Name: "green", Primary: "#16a34a", Secondary: "#4ade80"},
	{Name: "red", Primary: "#dc2626", Secondary: "#f87171"},
	{Name: "amber", Primary: "#d97706", Secondary: "#fbbf24"},
	{Name: "pink", Primary: "#db2777", Secondary: "#f472b6"},
	{Name: "teal", Primary: "#0d9488", Secondary: "#5eead4"},
	{Name: "indigo", Primary: "#4f46e5", Secondary: "#818cf8"},
}

// FindTheme 按名称（忽略大小写）查找主题，空名称返回默认主题
func FindTheme(name string) (Theme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultTheme
	}
	for _, th := range Themes {
		if th.Name == name {
			return th, true
		}
	}
	return Theme{}, false
}
