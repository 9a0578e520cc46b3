package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
)

func TestPhysicsSyncsPose(t *testing.T) {
	a := newTestArena()
	system := NewPhysicsSystem(a.world, a.solver, a.scene, 10)

	falling := a.addTarget(mgl64.Vec3{0, 10, -20}, 2, true, 1)
	static := a.addTarget(mgl64.Vec3{5, 10, -20}, 2, false, 0)

	system.Update(0.1)

	tc, _ := ecs.GetComponent[*components.TransformComponent](a.world, falling)
	if tc.Position.Y() >= 10 {
		t.Errorf("dynamic target should fall: y=%v", tc.Position.Y())
	}
	bodyPos, _, _ := a.solver.WorldTransform(a.bodyOf(falling))
	if tc.Position != bodyPos {
		t.Errorf("transform not synced from solver: got %v, want %v", tc.Position, bodyPos)
	}
	node, _ := a.scene.Node(a.nodeOf(falling))
	if node.Position != bodyPos {
		t.Errorf("render node not synced: got %v, want %v", node.Position, bodyPos)
	}

	sc, _ := ecs.GetComponent[*components.TransformComponent](a.world, static)
	if sc.Position != (mgl64.Vec3{5, 10, -20}) {
		t.Errorf("static target moved: %v", sc.Position)
	}
}

func TestPhysicsSubstepCap(t *testing.T) {
	a := newTestArena()
	system := NewPhysicsSystem(a.world, a.solver, a.scene, 10)
	id := a.addTarget(mgl64.Vec3{0, 100, -20}, 1, true, 1)

	// 1 秒只执行 10 个 1/60 子步
	system.Update(1.0)

	v, _ := a.solver.LinearVelocity(a.bodyOf(id))
	want := -30.0 * 10 / 60
	if d := v.Y() - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("velocity after capped step: got %v, want %v", v.Y(), want)
	}
}
