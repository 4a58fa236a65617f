package ecs

import "testing"

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testTransform{Z: -100})

	tr, ok := GetComponent[*testTransform](em, id)
	if !ok {
		t.Fatal("GetComponent should find the component")
	}
	if tr.Z != -100 {
		t.Errorf("Expected Z=-100, got %v", tr.Z)
	}

	// 指针语义：修改对后续查询可见
	tr.Z = 42
	again, _ := GetComponent[*testTransform](em, id)
	if again.Z != 42 {
		t.Errorf("Expected mutation to be visible, got %v", again.Z)
	}

	if !HasComponent[*testTransform](em, id) {
		t.Error("HasComponent should be true")
	}
	if HasComponent[*testOpacity](em, id) {
		t.Error("HasComponent should be false for missing component")
	}

	RemoveComponent[*testTransform](em, id)
	if _, ok := GetComponent[*testTransform](em, id); ok {
		t.Error("Component should be gone after RemoveComponent")
	}
}

func TestGenericMixedWithReflection(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 非泛型添加，泛型读取
	em.AddComponent(id, &testOpacity{Value: 0.25})
	op, ok := GetComponent[*testOpacity](em, id)
	if !ok || op.Value != 0.25 {
		t.Errorf("Expected opacity 0.25, got %v (ok=%v)", op, ok)
	}
}

func TestGenericQueries(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()
	AddComponent(em, a, &testTransform{})
	AddComponent(em, b, &testTransform{})
	AddComponent(em, b, &testOpacity{})

	if got := GetEntitiesWith1[*testTransform](em); len(got) != 2 {
		t.Errorf("Expected 2 entities, got %d", len(got))
	}
	got := GetEntitiesWith2[*testTransform, *testOpacity](em)
	if len(got) != 1 || got[0] != b {
		t.Errorf("Expected [%d], got %v", b, got)
	}
	if got := GetEntitiesWith3[*testTransform, *testOpacity, *testOpacity](em); len(got) != 1 {
		t.Errorf("Expected 1 entity, got %d", len(got))
	}

	id, comp, ok := FirstWith[*testOpacity](em)
	if !ok || id != b || comp == nil {
		t.Errorf("FirstWith returned (%d, %v, %v)", id, comp, ok)
	}

	empty := NewEntityManager()
	if _, _, ok := FirstWith[*testOpacity](empty); ok {
		t.Error("FirstWith on empty manager should return ok=false")
	}
}
