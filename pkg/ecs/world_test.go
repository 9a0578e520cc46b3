package ecs

import (
	"testing"
)

const (
	testKindPosition ComponentKind = iota + 1
	testKindVelocity
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

func (*testPositionComponent) Kind() ComponentKind { return testKindPosition }

type testVelocityComponent struct {
	VX, VY float64
}

func (*testVelocityComponent) Kind() ComponentKind { return testKindVelocity }

// recordingSystem 记录调用顺序的测试系统
type recordingSystem struct {
	name  string
	calls *[]string
	emit  Event
	world *World
}

func (s *recordingSystem) Update(deltaTime float64) {
	*s.calls = append(*s.calls, s.name)
	if s.emit != nil {
		s.world.Emit(s.emit)
	}
}

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id1 := w.CreateEntity()
	id2 := w.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if !w.Exists(id1) || w.EntityCount() != 2 {
		t.Errorf("Expected 2 live entities, got %d", w.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	// 添加组件
	w.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	// 获取组件
	comp, found := w.GetComponent(id, testKindPosition)
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 泛型版本
	typed, ok := GetComponent[*testPositionComponent](w, id)
	if !ok || typed != retrieved {
		t.Error("Generic GetComponent should return the same instance")
	}

	if _, ok := GetComponent[*testVelocityComponent](w, id); ok {
		t.Error("Generic GetComponent should miss absent kind")
	}
}

func TestAddComponentReplacesSameKind(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	w.AddComponent(id, &testPositionComponent{X: 1})
	w.AddComponent(id, &testPositionComponent{X: 2})

	pos, _ := GetComponent[*testPositionComponent](w, id)
	if pos.X != 2 {
		t.Errorf("X: got %v, want 2", pos.X)
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	w := NewWorld()
	w.AddComponent(EntityID(42), &testPositionComponent{})

	if w.Exists(42) {
		t.Error("AddComponent must not create entities")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	// 未添加组件前应该返回false
	if w.HasComponent(id, testKindPosition) {
		t.Error("Should not have component before adding")
	}

	w.AddComponent(id, &testPositionComponent{})
	if !w.HasComponent(id, testKindPosition) {
		t.Error("Should have component after adding")
	}

	w.RemoveComponent(id, testKindPosition)
	if w.HasComponent(id, testKindPosition) {
		t.Error("Should not have component after removal")
	}
	if !w.Exists(id) {
		t.Error("Removing a component must keep the entity")
	}
}

func TestRemoveEntity(t *testing.T) {
	w := NewWorld()
	id1 := w.CreateEntity()
	id2 := w.CreateEntity()
	w.AddComponent(id1, &testPositionComponent{})
	w.AddComponent(id2, &testPositionComponent{})

	w.RemoveEntity(id1)

	if w.Exists(id1) {
		t.Error("id1 should be removed")
	}
	if len(w.GetEntitiesWith(testKindPosition)) != 1 {
		t.Error("Removed entity must not be returned by queries")
	}

	// 重复删除是空操作
	w.RemoveEntity(id1)
	if !w.Exists(id2) {
		t.Error("id2 should still exist")
	}

	// ID 不回收
	if id3 := w.CreateEntity(); id3 != 3 {
		t.Errorf("Expected monotonic id 3, got %d", id3)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	w := NewWorld()

	// 创建不同组件组合的实体
	id1 := w.CreateEntity()
	w.AddComponent(id1, &testPositionComponent{})
	w.AddComponent(id1, &testVelocityComponent{})

	id2 := w.CreateEntity()
	w.AddComponent(id2, &testPositionComponent{})

	id3 := w.CreateEntity()
	w.AddComponent(id3, &testVelocityComponent{})

	// 查询拥有 Position+Velocity 的实体
	entities := w.GetEntitiesWith(testKindPosition, testKindVelocity)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("Expected only id1, got %v", entities)
	}

	// 查询只拥有 Position 的实体，结果按ID排序
	posEntities := w.GetEntitiesWith(testKindPosition)
	if len(posEntities) != 2 || posEntities[0] != id1 || posEntities[1] != id2 {
		t.Errorf("Expected [id1 id2], got %v", posEntities)
	}

	// 无条件查询返回全部实体
	if all := w.GetEntitiesWith(); len(all) != 3 {
		t.Errorf("Expected 3 entities, got %d", len(all))
	}
}

func TestGetEntitiesWithIsSnapshot(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		w.AddComponent(id, &testPositionComponent{})
	}

	// 在快照上删除实体不影响遍历
	snapshot := w.GetEntitiesWith(testKindPosition)
	for _, id := range snapshot {
		w.RemoveEntity(id)
	}

	if len(snapshot) != 5 {
		t.Errorf("Snapshot length changed: %d", len(snapshot))
	}
	if w.EntityCount() != 0 {
		t.Errorf("Expected empty world, got %d", w.EntityCount())
	}
}

func TestSystemsRunInRegistrationOrder(t *testing.T) {
	w := NewWorld()
	calls := make([]string, 0)

	w.AddSystem(&recordingSystem{name: "physics", calls: &calls})
	w.AddSystem(&recordingSystem{name: "collision", calls: &calls, world: w, emit: testEvent{"hit"}})
	w.AddSystem(&recordingSystem{name: "timer", calls: &calls, world: w, emit: testEvent{"timeup"}})

	events := w.Update(0.016)

	want := []string{"physics", "collision", "timer"}
	if len(calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d]: got %s, want %s", i, calls[i], want[i])
		}
	}

	if len(events) != 2 || events[0].EventName() != "hit" || events[1].EventName() != "timeup" {
		t.Errorf("Unexpected events: %v", events)
	}

	// 事件被取出后清空
	if again := w.DrainEvents(); again != nil {
		t.Errorf("Expected no pending events, got %v", again)
	}

	if len(w.Systems()) != 3 {
		t.Errorf("Expected 3 systems, got %d", len(w.Systems()))
	}
}

func TestClear(t *testing.T) {
	w := NewWorld()
	w.CreateEntity()
	w.Emit(testEvent{"stale"})
	w.Clear()

	if w.EntityCount() != 0 {
		t.Error("Clear should remove all entities")
	}
	if w.DrainEvents() != nil {
		t.Error("Clear should drop pending events")
	}
	if id := w.CreateEntity(); id != 2 {
		t.Errorf("ID must stay monotonic after Clear, got %d", id)
	}
}
