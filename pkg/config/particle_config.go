package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ParticleStyle 粒子形状
type ParticleStyle string

const (
	StyleCircles  ParticleStyle = "circles"
	StyleSquares  ParticleStyle = "squares"
	StyleStars    ParticleStyle = "stars"
	StyleConfetti ParticleStyle = "confetti"
)

// ParticleStyles 按循环切换顺序列出全部形状
var ParticleStyles = []ParticleStyle{StyleCircles, StyleSquares, StyleStars, StyleConfetti}

// Valid 报告形状是否受支持
func (s ParticleStyle) Valid() bool {
	for _, v := range ParticleStyles {
		if v == s {
			return true
		}
	}
	return false
}

// Next 返回循环顺序中的下一个形状
func (s ParticleStyle) Next() ParticleStyle {
	for i, v := range ParticleStyles {
		if v == s {
			return ParticleStyles[(i+1)%len(ParticleStyles)]
		}
	}
	return StyleCircles
}

// ParticleConfig 背景粒子层配置。
// Size 是基准尺寸，Speed 是每帧最大速度分量，均以像素计；Color 为 #rrggbb。
type ParticleConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled"`
	ParticleCount int           `yaml:"particleCount" json:"particleCount"`
	Size          float64       `yaml:"size" json:"size"`
	Speed         float64       `yaml:"speed" json:"speed"`
	Color         string        `yaml:"color" json:"color"`
	Opacity       float64       `yaml:"opacity" json:"opacity"`
	Style         ParticleStyle `yaml:"style" json:"style"`
}

// DefaultParticleConfig 返回默认粒子配置
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		Enabled:       true,
		ParticleCount: 50,
		Size:          3,
		Speed:         0.5,
		Color:         "#3b82f6",
		Opacity:       0.7,
		Style:         StyleCircles,
	}
}

// Validate 检查配置取值范围
func (c ParticleConfig) Validate() error {
	if c.ParticleCount < 0 {
		return fmt.Errorf("particleCount cannot be negative, got %d", c.ParticleCount)
	}
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %v", c.Size)
	}
	if c.Speed < 0 {
		return fmt.Errorf("speed cannot be negative, got %v", c.Speed)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be within [0, 1], got %v", c.Opacity)
	}
	if !c.Style.Valid() {
		return fmt.Errorf("unknown style %q", c.Style)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	return nil
}

// ReseedNeeded 报告从 old 切换到 c 是否需要重新生成粒子。
// 形状和启用状态的变化不会触发重新生成。
func (c ParticleConfig) ReseedNeeded(old ParticleConfig) bool {
	return c.ParticleCount != old.ParticleCount ||
		c.Size != old.Size ||
		c.Speed != old.Speed ||
		c.Color != old.Color ||
		c.Opacity != old.Opacity
}

// ParseColor 解析 #rrggbb（或 #rgb）颜色
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ParticlePresets 命名的粒子配置集合
type ParticlePresets map[string]ParticleConfig

// Names 返回排序后的预设名
func (p ParticlePresets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type particlePresetsFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// LoadParticlePresets 从 YAML 文件加载粒子预设。
// 预设中未给出的字段取默认值。
func LoadParticlePresets(path string) (ParticlePresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read particle presets %s: %w", path, err)
	}
	presets, err := ParseParticlePresets(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load particle presets %s: %w", path, err)
	}
	return presets, nil
}

// ParseParticlePresets 解析预设 YAML 内容
func ParseParticlePresets(data []byte) (ParticlePresets, error) {
	var file particlePresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("at least one preset is required")
	}

	presets := make(ParticlePresets, len(file.Presets))
	for name, node := range file.Presets {
		cfg := DefaultParticleConfig()
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		presets[name] = cfg
	}
	return presets, nil
}
