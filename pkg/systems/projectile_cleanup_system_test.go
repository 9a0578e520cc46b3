package systems

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectileExpiresAtLifetime(t *testing.T) {
	a := newTestArena()
	clock := newFakeClock()
	system := NewProjectileCleanupSystem(a.world, a.teardown, clock.Now)

	projectile := a.addProjectile(mgl64.Vec3{0, 5, -10}, clock.Now())
	body := a.bodyOf(projectile)
	node := a.nodeOf(projectile)

	clock.Advance(4999 * time.Millisecond)
	system.Update(1.0 / 60.0)
	if !a.world.Exists(projectile) {
		t.Fatal("projectile removed before its lifetime elapsed")
	}

	clock.Advance(time.Millisecond)
	system.Update(1.0 / 60.0)
	if a.world.Exists(projectile) {
		t.Error("projectile should be removed once now-createdAt == lifetime")
	}
	if a.solver.HasBody(body) {
		t.Error("expired projectile body should be removed from the solver")
	}
	if a.scene.Attached(node) {
		t.Error("expired projectile node should be detached")
	}
}

func TestProjectileCleanupLeavesYoungProjectiles(t *testing.T) {
	a := newTestArena()
	clock := newFakeClock()
	system := NewProjectileCleanupSystem(a.world, a.teardown, clock.Now)

	old := a.addProjectile(mgl64.Vec3{0, 5, -10}, clock.Now())
	clock.Advance(3 * time.Second)
	young := a.addProjectile(mgl64.Vec3{0, 5, -12}, clock.Now())
	target := a.addTarget(mgl64.Vec3{10, 5, -30}, 2, false, 0)

	clock.Advance(2 * time.Second)
	system.Update(1.0 / 60.0)

	if a.world.Exists(old) {
		t.Error("old projectile should be removed")
	}
	if !a.world.Exists(young) {
		t.Error("young projectile should survive")
	}
	if !a.world.Exists(target) {
		t.Error("targets are not touched by projectile cleanup")
	}
}
