package ecs

import (
	"reflect"
	"testing"
)

type testCard struct {
	Section string
}

type testRect struct {
	X, Y, W, H float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", id1, id2)
	}
	if em.Count() != 2 {
		t.Errorf("Count() = %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testCard{Section: "about"})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testCard{}))
	if !found {
		t.Fatal("component not found")
	}
	if got := comp.(*testCard).Section; got != "about" {
		t.Errorf("Section = %q, want about", got)
	}

	// 同类型组件替换旧值
	em.AddComponent(id, &testCard{Section: "skills"})
	card, _ := GetComponent[*testCard](em, id)
	if card.Section != "skills" {
		t.Errorf("replaced Section = %q, want skills", card.Section)
	}
}

func TestAddComponentUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(42, &testCard{})
	if em.Exists(42) || HasComponent[*testCard](em, 42) {
		t.Error("component added to an entity that was never created")
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	em.AddComponent(id1, &testCard{})
	em.AddComponent(id2, &testCard{})

	em.DestroyEntity(id1)
	if !em.Exists(id1) {
		t.Error("entity removed before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id1) {
		t.Error("entity still present after RemoveMarkedEntities")
	}
	if !HasComponent[*testCard](em, id2) {
		t.Error("unmarked entity lost its component")
	}
}

func TestGetEntitiesWithGenerics(t *testing.T) {
	em := NewEntityManager()

	var both []EntityID
	for i := 0; i < 5; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testCard{})
		if i%2 == 0 {
			em.AddComponent(id, &testRect{W: 10})
			both = append(both, id)
		}
	}
	em.AddComponent(em.CreateEntity(), &testRect{})

	got := GetEntitiesWith2[*testCard, *testRect](em)
	if !reflect.DeepEqual(got, both) {
		t.Errorf("GetEntitiesWith2 = %v, want %v (sorted)", got, both)
	}
	if n := len(GetEntitiesWith1[*testRect](em)); n != 4 {
		t.Errorf("GetEntitiesWith1 returned %d entities, want 4", n)
	}

	RemoveComponent[*testRect](em, both[0])
	if HasComponent[*testRect](em, both[0]) {
		t.Error("RemoveComponent did not remove")
	}
}

func TestGetComponentWrongType(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, testCard{}) // 值类型，而非指针

	if _, ok := GetComponent[*testCard](em, id); ok {
		t.Error("pointer lookup matched a value component")
	}
	if _, ok := GetComponent[testCard](em, id); !ok {
		t.Error("value lookup failed")
	}
}
