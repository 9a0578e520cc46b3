package entities

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/logger"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// NewTarget 创建球形靶
//
// 静态靶尺寸 2.0、质量 0；弹跳靶尺寸 1.7~2.3、质量 0.5~2.5，
// 带 8~20 的向上初速度和随机自转。位置在场地内随机，距观察者至少 MinViewerDistance。
// 刚体半径与可视尺寸一致，完全弹性、无摩擦、无阻尼，弹跳高度永久保持。
//
// 参数:
//   - camera: 玩家相机，用于保持生成距离
//   - isMoving: 是否为弹跳靶
//
// 返回:
//   - ecs.EntityID: 新实体ID
//   - error: 缺少协作方时返回 ErrNilCollaborator
func (f *Factory) NewTarget(camera *components.Camera, isMoving bool) (ecs.EntityID, error) {
	if err := f.requireScene(); err != nil {
		return 0, err
	}

	size := 2.0
	mass := 0.0
	if isMoving {
		size = f.uniform(1.7, 2.3)
		mass = f.uniform(0.5, 2.5)
	}

	position := f.randomTargetPosition(camera)

	def := physics.BodyDef{
		Shape:       physics.ShapeSphere,
		Radius:      size,
		Mass:        mass,
		Position:    position,
		Rotation:    mgl64.QuatIdent(),
		Restitution: 1,
	}
	if isMoving {
		def.LinearVelocity = mgl64.Vec3{0, f.uniform(8, 20), 0}
		spin := f.uniform(0.5, 2.0)
		def.AngularVelocity = mgl64.Vec3{
			(f.Rand.Float64() - 0.5) * spin,
			(f.Rand.Float64() - 0.5) * spin,
			(f.Rand.Float64() - 0.5) * spin,
		}
	}

	kind := render.NodeTarget
	if isMoving {
		kind = render.NodeMovingTarget
	}
	node := f.Renderer.Spawn(render.SpawnSpec{
		Kind:     kind,
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Radius:   size,
	})
	body := f.Solver.AddBody(def)

	id := f.World.CreateEntity()
	f.World.AddComponent(id, &components.RenderComponent{Node: node})
	f.World.AddComponent(id, &components.PhysicsComponent{Body: body, Info: &def})
	f.World.AddComponent(id, &components.TransformComponent{Position: position, Rotation: mgl64.QuatIdent()})
	f.World.AddComponent(id, &components.TargetComponent{IsMoving: isMoving, Size: size})

	logger.Log.Debugf("[TargetFactory] 创建靶子 %d: moving=%v size=%.2f mass=%.2f pos=%v", id, isMoving, size, mass, position)
	return id, nil
}

// randomTargetPosition 在生成区域内取点，直到距观察者足够远
func (f *Factory) randomTargetPosition(camera *components.Camera) mgl64.Vec3 {
	spawn := f.Tunables.Spawn
	var viewer mgl64.Vec3
	if camera != nil {
		viewer = camera.ViewerPosition()
	}

	var p mgl64.Vec3
	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		p = mgl64.Vec3{
			(f.Rand.Float64() - 0.5) * 2 * spawn.HorizontalRange,
			f.uniform(spawn.MinHeight, spawn.MaxHeight),
			(f.Rand.Float64() - 0.5) * 2 * spawn.HorizontalRange,
		}
		if p.Sub(viewer).Len() >= spawn.MinViewerDistance {
			break
		}
	}
	return p
}

// NewCapsuleTarget 创建胶囊靶
//
// 胶囊靶不创建刚体，由 CapsuleMovementSystem 直接移动。
// 命中半径取高度的一半，贴地高度同样为高度的一半，渲染半径使用胶囊半径。
// 出生点在以观察者为中心的环带上，水平距离不小于 MinViewerDistance。
func (f *Factory) NewCapsuleTarget(camera *components.Camera, settings config.CapsuleSettings) (ecs.EntityID, error) {
	if err := f.requireScene(); err != nil {
		return 0, err
	}
	settings = settings.Sanitize()

	groundHeight := settings.Height / 2
	position := f.randomCapsulePosition(camera, groundHeight)

	node := f.Renderer.Spawn(render.SpawnSpec{
		Kind:     render.NodeCapsule,
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Radius:   settings.Radius,
		Height:   settings.Height,
	})

	id := f.World.CreateEntity()
	f.World.AddComponent(id, &components.RenderComponent{Node: node})
	f.World.AddComponent(id, &components.TransformComponent{Position: position, Rotation: mgl64.QuatIdent()})
	f.World.AddComponent(id, &components.TargetComponent{Size: settings.Height / 2, IsCapsule: true})
	f.World.AddComponent(id, &components.CapsuleMovementComponent{
		ApproachSpeed: settings.MovementSpeed,
		MinDistance:   f.Tunables.Capsule.MinDistance,
		GroundHeight:  groundHeight,
	})

	logger.Log.Debugf("[TargetFactory] 创建胶囊靶 %d: pos=%v speed=%.1f", id, position, settings.MovementSpeed)
	return id, nil
}

// randomCapsulePosition 在观察者周围的环带上取点并钳制到场地内
func (f *Factory) randomCapsulePosition(camera *components.Camera, groundHeight float64) mgl64.Vec3 {
	bound := f.Tunables.Capsule.Bound
	minDist := f.Tunables.Spawn.MinViewerDistance
	var viewer mgl64.Vec3
	if camera != nil {
		viewer = camera.ViewerPosition()
	}

	var p mgl64.Vec3
	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		angle := f.Rand.Float64() * 2 * math.Pi
		radius := f.uniform(minDist, math.Max(bound, minDist))
		p = mgl64.Vec3{
			mgl64.Clamp(viewer.X()+math.Sin(angle)*radius, -bound, bound),
			groundHeight,
			mgl64.Clamp(viewer.Z()+math.Cos(angle)*radius, -bound, bound),
		}
		if math.Hypot(p.X()-viewer.X(), p.Z()-viewer.Z()) >= minDist {
			break
		}
	}
	return p
}
