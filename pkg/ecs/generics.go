package ecs

import "reflect"

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 以泛型方式获取组件，T 通常是组件指针类型
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的组件存在检查
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 泛型版本的组件移除
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 A 的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有 A 和 B 的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A](), typeOf[B]())
}
