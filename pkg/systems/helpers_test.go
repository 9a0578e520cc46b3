package systems

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// testArena 测试用的完整协作方组合：World + 内置求解器 + 内存场景
type testArena struct {
	world    *ecs.World
	solver   *physics.World
	scene    *render.Scene
	teardown *Teardown
	camera   *components.Camera
}

func newTestArena() *testArena {
	world := ecs.NewWorld()
	solver := physics.NewWorld(mgl64.Vec3{0, -30, 0}, physics.DefaultFixedTimeStep)
	scene := render.NewScene()
	return &testArena{
		world:    world,
		solver:   solver,
		scene:    scene,
		teardown: NewTeardown(world, solver, scene),
		camera:   components.NewCamera(mgl64.Vec3{0, 1.6, 0}),
	}
}

// fakeClock 可手动推进的时钟
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// addTarget 创建带刚体的靶子；mass 为 0 时是静态靶
func (a *testArena) addTarget(position mgl64.Vec3, size float64, isMoving bool, mass float64) ecs.EntityID {
	id := a.world.CreateEntity()
	def := &physics.BodyDef{
		Shape:       physics.ShapeSphere,
		Radius:      size,
		Mass:        mass,
		Position:    position,
		Rotation:    mgl64.QuatIdent(),
		Restitution: 1,
	}
	body := a.solver.AddBody(*def)
	node := a.scene.Spawn(render.SpawnSpec{Kind: render.NodeTarget, Position: position, Radius: size})
	a.world.AddComponent(id, &components.RenderComponent{Node: node})
	a.world.AddComponent(id, &components.PhysicsComponent{Body: body, Info: def})
	a.world.AddComponent(id, &components.TransformComponent{Position: position, Rotation: mgl64.QuatIdent()})
	a.world.AddComponent(id, &components.TargetComponent{IsMoving: isMoving, Size: size})
	return id
}

// addCapsule 创建胶囊靶（无刚体）
func (a *testArena) addCapsule(position mgl64.Vec3, speed, minDistance float64) ecs.EntityID {
	id := a.world.CreateEntity()
	node := a.scene.Spawn(render.SpawnSpec{Kind: render.NodeCapsule, Position: position, Radius: 0.6, Height: 3.6})
	a.world.AddComponent(id, &components.RenderComponent{Node: node})
	a.world.AddComponent(id, &components.TransformComponent{Position: position, Rotation: mgl64.QuatIdent()})
	a.world.AddComponent(id, &components.TargetComponent{Size: 1.8, IsCapsule: true})
	a.world.AddComponent(id, &components.CapsuleMovementComponent{
		ApproachSpeed: speed,
		MinDistance:   minDistance,
		GroundHeight:  position.Y(),
	})
	return id
}

// addProjectile 创建静止悬停的子弹（质量 0，不受重力）
func (a *testArena) addProjectile(position mgl64.Vec3, createdAt time.Time) ecs.EntityID {
	id := a.world.CreateEntity()
	def := &physics.BodyDef{
		Shape:    physics.ShapeSphere,
		Radius:   0.3,
		Position: position,
		Rotation: mgl64.QuatIdent(),
	}
	body := a.solver.AddBody(*def)
	node := a.scene.Spawn(render.SpawnSpec{Kind: render.NodeProjectile, Position: position, Radius: 0.3})
	a.world.AddComponent(id, &components.RenderComponent{Node: node})
	a.world.AddComponent(id, &components.PhysicsComponent{Body: body, Info: def})
	a.world.AddComponent(id, &components.TransformComponent{Position: position, Rotation: mgl64.QuatIdent()})
	a.world.AddComponent(id, &components.ProjectileComponent{
		CreatedAt: createdAt,
		Damage:    1,
		Lifetime:  components.DefaultProjectileLifetime,
	})
	return id
}

// bodyOf 读取实体的刚体句柄
func (a *testArena) bodyOf(id ecs.EntityID) physics.BodyHandle {
	pc, ok := ecs.GetComponent[*components.PhysicsComponent](a.world, id)
	if !ok {
		return 0
	}
	return pc.Body
}

// nodeOf 读取实体的渲染节点
func (a *testArena) nodeOf(id ecs.EntityID) render.Node {
	rc, ok := ecs.GetComponent[*components.RenderComponent](a.world, id)
	if !ok {
		return 0
	}
	return rc.Node
}

// hitEvents 过滤出命中事件
func hitEvents(events []ecs.Event) []HitEvent {
	var hits []HitEvent
	for _, e := range events {
		if hit, ok := e.(HitEvent); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// countTimeUp 统计结束事件数量
func countTimeUp(events []ecs.Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(TimeUpEvent); ok {
			n++
		}
	}
	return n
}

// vecNear 按绝对误差比较向量，分量为 0 时 ApproxEqual 的相对误差过严
func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

// foreignTransform 以 Transform 种类登记、但不是 *TransformComponent 的组件
type foreignTransform struct{}

func (foreignTransform) Kind() ecs.ComponentKind { return components.KindTransform }

// addMismatchedTarget 创建 Transform 槽位类型不匹配的移动靶，且位于边界外
func (a *testArena) addMismatchedTarget() ecs.EntityID {
	id := a.addTarget(mgl64.Vec3{100, 5, 0}, 2, true, 1)
	a.world.AddComponent(id, foreignTransform{})
	return id
}
