package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
)

func capsuleTunables() config.CapsuleTunables {
	return config.DefaultTunables().Capsule
}

func capsulePosition(t *testing.T, a *testArena, id ecs.EntityID) mgl64.Vec3 {
	t.Helper()
	tc, ok := ecs.GetComponent[*components.TransformComponent](a.world, id)
	if !ok {
		t.Fatalf("capsule %d has no transform", id)
	}
	return tc.Position
}

func TestCapsuleApproachesViewer(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	id := a.addCapsule(mgl64.Vec3{0, 1.8, -30}, 10, 6)

	system.Update(0.05)

	pos := capsulePosition(t, a, id)
	if math.Abs(pos.Z()-(-29.5)) > 1e-9 {
		t.Errorf("Z after step: got %v, want -29.5", pos.Z())
	}
	if pos.Y() != 1.8 {
		t.Errorf("Y should stay at ground height: got %v", pos.Y())
	}

	node, _ := a.scene.Node(a.nodeOf(id))
	if !node.Position.ApproxEqual(pos) {
		t.Errorf("render node not synced: got %v, want %v", node.Position, pos)
	}
}

func TestCapsuleStepClampsDeltaTime(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	id := a.addCapsule(mgl64.Vec3{30, 1.8, 0}, 10, 6)

	// 2 秒的卡顿只前进 0.1 秒的距离
	system.Update(2.0)

	pos := capsulePosition(t, a, id)
	if math.Abs(pos.X()-29) > 1e-9 {
		t.Errorf("X after long frame: got %v, want 29", pos.X())
	}

	system.Update(-1)
	if got := capsulePosition(t, a, id); !got.ApproxEqual(pos) {
		t.Errorf("negative dt moved capsule: %v -> %v", pos, got)
	}
}

func TestCapsuleStopLatchIsOneWay(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	id := a.addCapsule(mgl64.Vec3{0, 1.8, -5}, 10, 6)
	movement, _ := ecs.GetComponent[*components.CapsuleMovementComponent](a.world, id)

	system.Update(1.0 / 60.0)
	if !movement.Stopped {
		t.Fatal("capsule within minDistance should stop")
	}
	before := capsulePosition(t, a, id)

	a.camera.Position = mgl64.Vec3{0, 1.6, 40}
	for i := 0; i < 30; i++ {
		system.Update(1.0 / 60.0)
	}

	if !movement.Stopped {
		t.Error("Stopped must stay latched after the viewer moves away")
	}
	if got := capsulePosition(t, a, id); got != before {
		t.Errorf("stopped capsule moved: %v -> %v", before, got)
	}
}

func TestCapsuleStopUsesHorizontalDistance(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	// 三维距离远大于 6，水平距离为 5
	a.camera.Position = mgl64.Vec3{0, 50, 0}
	id := a.addCapsule(mgl64.Vec3{0, 1.8, -5}, 10, 6)

	system.Update(1.0 / 60.0)

	movement, _ := ecs.GetComponent[*components.CapsuleMovementComponent](a.world, id)
	if !movement.Stopped {
		t.Error("capsule should stop based on XZ distance only")
	}
}

func TestCapsuleSeparation(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	first := a.addCapsule(mgl64.Vec3{-2, 1.8, -30}, 10, 6)
	second := a.addCapsule(mgl64.Vec3{2, 1.8, -30}, 10, 6)

	system.Update(1.0 / 60.0)

	p1 := capsulePosition(t, a, first)
	p2 := capsulePosition(t, a, second)
	dist := math.Hypot(p1.X()-p2.X(), p1.Z()-p2.Z())
	if dist < 10-1e-6 {
		t.Errorf("capsule separation: got %v, want >= 10", dist)
	}
	if p1.X() >= p2.X() {
		t.Errorf("capsules should be pushed apart along X: %v, %v", p1, p2)
	}
}

func TestCapsuleSeparationSkipsCoincident(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	a.addCapsule(mgl64.Vec3{0, 1.8, -30}, 0, 6)
	a.addCapsule(mgl64.Vec3{0, 1.8, -30}, 0, 6)

	system.Update(1.0 / 60.0)

	for _, id := range a.world.GetEntitiesWith(components.KindCapsuleMovement) {
		pos := capsulePosition(t, a, id)
		if math.IsNaN(pos.X()) || math.IsNaN(pos.Z()) {
			t.Fatalf("coincident capsules produced NaN: %v", pos)
		}
	}
}

func TestCapsuleClampedToArena(t *testing.T) {
	a := newTestArena()
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, nil, capsuleTunables())
	id := a.addCapsule(mgl64.Vec3{60, 1.8, -70}, 10, 6)

	system.Update(1.0 / 60.0)

	pos := capsulePosition(t, a, id)
	if pos.X() > 44 || pos.Z() < -44 {
		t.Errorf("capsule outside arena bound: %v", pos)
	}
}

func TestCapsuleInactiveDoesNotMove(t *testing.T) {
	a := newTestArena()
	active := false
	system := NewCapsuleMovementSystem(a.world, a.scene, a.camera, func() bool { return active }, capsuleTunables())
	id := a.addCapsule(mgl64.Vec3{0, 1.8, -30}, 10, 6)

	system.Update(0.05)
	if got := capsulePosition(t, a, id); got.Z() != -30 {
		t.Errorf("inactive system moved capsule to %v", got)
	}

	active = true
	system.Update(0.05)
	if got := capsulePosition(t, a, id); got.Z() == -30 {
		t.Error("active system should move capsule")
	}
}
