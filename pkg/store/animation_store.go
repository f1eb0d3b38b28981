// Package store 提供分区动画配置的单一数据源
//
// AnimationStore 持有每个分区（section）的 {entrance, hover, scroll} 三元组，
// 提供总是成功的读取（缺失时返回默认值）与字段级合并写入，
// 并通过 gdata 在本地持久化为一个命名的 YAML 数据块。
package store

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/folio/internal/animation"
)

// 存储路径常量
const (
	animationsObject   = "animations"
	animationsProperty = "portfolio-animations"
)

// ChangeKind 描述一次存储变更的类型
type ChangeKind int

const (
	ChangeActiveSection ChangeKind = iota // 活动分区变更（可能伴随惰性初始化）
	ChangeConfig                          // 某个分区的某个动画配置被合并更新
	ChangeSectionReset                    // 单个分区恢复默认
	ChangeAllReset                        // 全部分区清空
	ChangePreviewMode                     // 预览模式切换
	ChangeLoaded                          // 从持久化数据重新加载
)

// Change 变更通知
type Change struct {
	Kind      ChangeKind
	SectionID string         // 对于全局变更为空
	Animation animation.Kind // 仅 ChangeConfig 有效
}

// Listener 变更监听函数
type Listener func(Change)

// persistedState 持久化数据块的布局
type persistedState struct {
	Sections      map[string]animation.SectionAnimations `yaml:"sections"`
	ActiveSection string                                 `yaml:"activeSection,omitempty"`
	PreviewMode   bool                                   `yaml:"previewMode"`
}

// AnimationStore 分区动画配置存储
//
// 职责：
//   - 维护 sectionID -> SectionAnimations 映射
//   - 缺失的分区读取时返回默认值（不写入映射）
//   - 写入为字段级合并，最后写入者胜出
//   - 变更时通知监听者；开启 autosave 时变更后立即保存
//
// 并发：读写都由互斥锁保护，监听者在锁外被调用。
type AnimationStore struct {
	mu sync.RWMutex

	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	autosave     bool

	sections      map[string]animation.SectionAnimations
	activeSection string
	previewMode   bool

	listeners  map[int]Listener
	nextListen int
}

// NewAnimationStore 创建新的动画配置存储实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//
// 返回：
//   - *AnimationStore: 存储实例（已尝试加载持久化数据）
//
// 加载失败不是致命错误，会记录警告并以空存储启动。
func NewAnimationStore(gdataManager *gdata.Manager) *AnimationStore {
	s := &AnimationStore{
		gdataManager: gdataManager,
		sections:     make(map[string]animation.SectionAnimations),
		listeners:    make(map[int]Listener),
	}

	if err := s.Load(); err != nil {
		log.Printf("[AnimationStore] Warning: Failed to load animations: %v (using defaults)", err)
	}

	return s
}

// SetAutosave 开启或关闭变更后自动保存
func (s *AnimationStore) SetAutosave(enabled bool) {
	s.mu.Lock()
	s.autosave = enabled
	s.mu.Unlock()
}

// Load 从 gdata 加载持久化数据，整体替换当前状态
//
// 如果 gdataManager 为 nil 或数据不存在，存储保持为空
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误（此时存储被重置为空）
func (s *AnimationStore) Load() error {
	state, err := s.readState()

	s.mu.Lock()
	s.sections = state.Sections
	s.activeSection = state.ActiveSection
	s.previewMode = state.PreviewMode
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.notify(Change{Kind: ChangeLoaded})
	return nil
}

func (s *AnimationStore) readState() (persistedState, error) {
	empty := persistedState{Sections: make(map[string]animation.SectionAnimations)}

	if s.gdataManager == nil {
		return empty, nil
	}

	if !s.gdataManager.ObjectPropExists(animationsObject, animationsProperty) {
		return empty, nil
	}

	data, err := s.gdataManager.LoadObjectProp(animationsObject, animationsProperty)
	if err != nil {
		return empty, fmt.Errorf("failed to load animations: %w", err)
	}

	var state persistedState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return empty, fmt.Errorf("failed to unmarshal animations: %w", err)
	}
	if state.Sections == nil {
		state.Sections = make(map[string]animation.SectionAnimations)
	}

	log.Printf("[AnimationStore] Loaded %d section(s), previewMode=%v", len(state.Sections), state.PreviewMode)
	return state, nil
}

// Save 保存当前状态到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (s *AnimationStore) Save() error {
	if s.gdataManager == nil {
		return nil
	}

	s.mu.RLock()
	state := persistedState{
		Sections:      make(map[string]animation.SectionAnimations, len(s.sections)),
		ActiveSection: s.activeSection,
		PreviewMode:   s.previewMode,
	}
	for id, anims := range s.sections {
		state.Sections[id] = anims
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(&state)
	if err != nil {
		return fmt.Errorf("failed to marshal animations: %w", err)
	}

	if err := s.gdataManager.SaveObjectProp(animationsObject, animationsProperty, data); err != nil {
		return fmt.Errorf("failed to save animations: %w", err)
	}

	return nil
}

// GetSectionAnimations 返回分区的动画配置
//
// 缺失的分区返回新的默认三元组，且不会写入存储。
func (s *AnimationStore) GetSectionAnimations(sectionID string) animation.SectionAnimations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sectionLocked(sectionID)
}

func (s *AnimationStore) sectionLocked(sectionID string) animation.SectionAnimations {
	if anims, ok := s.sections[sectionID]; ok {
		return anims
	}
	return animation.DefaultSectionAnimations()
}

// HasSection 报告分区是否已被初始化或定制
func (s *AnimationStore) HasSection(sectionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sections[sectionID]
	return ok
}

// SetActiveSection 记录当前聚焦的分区，并保证该分区存在条目
func (s *AnimationStore) SetActiveSection(sectionID string) {
	s.mu.Lock()
	s.activeSection = sectionID
	if _, ok := s.sections[sectionID]; !ok {
		s.sections[sectionID] = animation.DefaultSectionAnimations()
	}
	s.mu.Unlock()

	s.changed(Change{Kind: ChangeActiveSection, SectionID: sectionID})
}

// ActiveSection 返回当前聚焦的分区（未设置时为空）
func (s *AnimationStore) ActiveSection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeSection
}

// UpdateAnimationConfig 将 patch 浅合并到分区的指定动画配置
//
// 参数：
//   - sectionID: 分区标识
//   - which: entrance / hover / scroll；其它值被忽略
//   - patch: 部分配置，未设置的字段保持原值
func (s *AnimationStore) UpdateAnimationConfig(sectionID string, which animation.Kind, patch animation.Patch) {
	if !which.Valid() {
		log.Printf("[AnimationStore] Ignoring update for unknown animation kind %q", which)
		return
	}

	s.mu.Lock()
	anims := s.sectionLocked(sectionID)
	s.sections[sectionID] = anims.With(which, anims.Get(which).Apply(patch))
	s.mu.Unlock()

	s.changed(Change{Kind: ChangeConfig, SectionID: sectionID, Animation: which})
}

// ResetSectionAnimations 将分区恢复为默认三元组
func (s *AnimationStore) ResetSectionAnimations(sectionID string) {
	s.mu.Lock()
	s.sections[sectionID] = animation.DefaultSectionAnimations()
	s.mu.Unlock()

	s.changed(Change{Kind: ChangeSectionReset, SectionID: sectionID})
}

// ResetAllAnimations 清空所有分区条目
func (s *AnimationStore) ResetAllAnimations() {
	s.mu.Lock()
	s.sections = make(map[string]animation.SectionAnimations)
	s.mu.Unlock()

	s.changed(Change{Kind: ChangeAllReset})
}

// TogglePreviewMode 切换全局预览模式并返回新值
func (s *AnimationStore) TogglePreviewMode() bool {
	s.mu.Lock()
	s.previewMode = !s.previewMode
	mode := s.previewMode
	s.mu.Unlock()

	s.changed(Change{Kind: ChangePreviewMode})
	return mode
}

// PreviewMode 返回当前预览模式
func (s *AnimationStore) PreviewMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.previewMode
}

// Sections 返回已存在条目的分区标识（已排序）
func (s *AnimationStore) Sections() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sections))
	for id := range s.sections {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Subscribe 注册变更监听者
//
// 返回：
//   - func(): 取消注册函数（可重复调用）
func (s *AnimationStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// changed 通知监听者，并在开启 autosave 时保存
func (s *AnimationStore) changed(c Change) {
	s.notify(c)

	s.mu.RLock()
	autosave := s.autosave
	s.mu.RUnlock()

	if autosave {
		if err := s.Save(); err != nil {
			log.Printf("[AnimationStore] Warning: autosave failed: %v", err)
		}
	}
}

func (s *AnimationStore) notify(c Change) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}
