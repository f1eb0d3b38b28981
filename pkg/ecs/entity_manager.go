// Package ecs 提供预览场景使用的最小实体-组件存储
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理实体及其组件。
// 组件按具体类型索引，每个实体每种类型最多一个组件。
type EntityManager struct {
	nextID     uint64
	components map[EntityID]map[reflect.Type]any
	pending    []EntityID
}

// NewEntityManager 创建空的实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回其 ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除，直到 RemoveMarkedEntities 才真正移除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pending = append(em.pending, id)
}

// RemoveMarkedEntities 移除所有已标记的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.pending {
		delete(em.components, id)
	}
	em.pending = em.pending[:0]
}

// Exists 报告实体是否存在
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 返回存活实体数量
func (em *EntityManager) Count() int {
	return len(em.components)
}

// AddComponent 为实体添加组件，同类型组件会被替换。未知实体忽略。
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, ok := em.components[id]; ok {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 移除实体的指定类型组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, ok := em.components[id]; ok {
		delete(compMap, componentType)
	}
}

// GetComponent 按类型获取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	compMap, ok := em.components[id]
	if !ok {
		return nil, false
	}
	comp, ok := compMap[componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有指定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.GetComponent(id, componentType)
	return ok
}

// GetEntitiesWith 返回拥有全部指定组件类型的实体，按 ID 升序
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	// 保证绘制与更新顺序稳定
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
