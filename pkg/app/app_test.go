package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonewx/folio/internal/animation"
)

const testPresets = `presets:
  default:
    particleCount: 5
  calm:
    speed: 0.1
`

func TestLoadPresetsBuiltin(t *testing.T) {
	presets, err := loadPresets(Config{BuiltinPresets: []byte(testPresets)})
	if err != nil {
		t.Fatalf("loadPresets: %v", err)
	}
	if len(presets) != 2 || presets["default"].ParticleCount != 5 {
		t.Errorf("presets = %+v", presets)
	}
}

func TestLoadPresetsFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "particles.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  only: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	presets, err := loadPresets(Config{ParticlesPath: path, BuiltinPresets: []byte(testPresets)})
	if err != nil {
		t.Fatalf("loadPresets: %v", err)
	}
	if _, ok := presets["only"]; !ok || len(presets) != 1 {
		t.Errorf("expected presets from file, got %v", presets.Names())
	}
}

func TestLoadPresetsErrors(t *testing.T) {
	if _, err := loadPresets(Config{ParticlesPath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Error("expected error for a missing presets file")
	}

	// 内置预设损坏时不阻止启动
	presets, err := loadPresets(Config{BuiltinPresets: []byte("presets: [")})
	if err != nil || presets != nil {
		t.Errorf("broken builtin presets: presets = %v, err = %v", presets, err)
	}
	if presets, err := loadPresets(Config{}); err != nil || presets != nil {
		t.Errorf("no presets: %v, %v", presets, err)
	}
}

func TestOpenStoreRestoresAndAutosaves(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	appName := fmt.Sprintf("folio_app_test_%d", time.Now().UnixNano())
	first, err := openStore(appName)
	if err != nil {
		t.Skipf("Cannot open gdata for testing: %v", err)
	}
	first.SetActiveSection("skills")
	first.UpdateAnimationConfig("skills", animation.KindHover, animation.Patch{Enabled: animation.Bool(true)})

	// 未显式 Save：依赖自动保存；重新打开时由构造函数加载
	second, err := openStore(appName)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	if second.ActiveSection() != "skills" || !second.GetSectionAnimations("skills").Hover.Enabled {
		t.Errorf("state not restored: active=%q hover=%+v", second.ActiveSection(), second.GetSectionAnimations("skills").Hover)
	}
}
