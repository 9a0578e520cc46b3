package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// CapsuleMovementSystem 胶囊靶追踪/分离系统
//
// 胶囊靶不经过刚体求解器，直接修改位置：
//  1. 在水平面（XZ）上朝观察者移动，高度不参与追踪
//  2. 进入 MinDistance 后锁存 Stopped，之后永不移动
//  3. 单帧步长 = ApproachSpeed × clamp(dt, 0, MaxDeltaTime)
//  4. 固定轮数的两两分离，残留重叠可以接受
//  5. X/Z 钳制到场地边界，Y 固定为 GroundHeight
//
// 查询结果只取一次；其他胶囊的位置实时读取，
// 所以同一帧里先更新的胶囊对后面的胶囊可见。
type CapsuleMovementSystem struct {
	world    *ecs.World
	renderer render.Renderer
	viewer   ViewerPose
	isActive func() bool
	tunables config.CapsuleTunables
}

// NewCapsuleMovementSystem 创建胶囊追踪系统
//
// 参数:
//   - world: 实体所在的 World
//   - renderer: 渲染协作方，可为 nil
//   - viewer: 观察者位姿
//   - isActive: 返回 false 时整帧跳过（未开始或暂停），可为 nil
//   - tunables: 分离距离、迭代轮数、边界、dt 上限
func NewCapsuleMovementSystem(world *ecs.World, renderer render.Renderer, viewer ViewerPose, isActive func() bool, tunables config.CapsuleTunables) *CapsuleMovementSystem {
	return &CapsuleMovementSystem{
		world:    world,
		renderer: renderer,
		viewer:   viewer,
		isActive: isActive,
		tunables: tunables,
	}
}

// Update 移动所有未停止的胶囊靶
func (s *CapsuleMovementSystem) Update(deltaTime float64) {
	if s.isActive != nil && !s.isActive() {
		return
	}

	dt := mgl64.Clamp(deltaTime, 0, s.tunables.MaxDeltaTime)
	bound := s.tunables.Bound
	minSep := s.tunables.MinSeparation
	minSepSq := minSep * minSep

	capsules := s.world.GetEntitiesWith(
		components.KindCapsuleMovement,
		components.KindTransform,
		components.KindTarget,
	)
	cam := s.viewer.ViewerPosition()

	for _, id := range capsules {
		movement, ok := ecs.GetComponent[*components.CapsuleMovementComponent](s.world, id)
		if !ok || movement.Stopped {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.world, id)
		if !ok {
			continue
		}

		pos := transform.Position
		toX := cam.X() - pos.X()
		toZ := cam.Z() - pos.Z()
		distance := math.Hypot(toX, toZ)
		if distance <= movement.MinDistance {
			movement.Stopped = true
			continue
		}

		toX /= distance
		toZ /= distance
		step := movement.ApproachSpeed * dt
		nx := mgl64.Clamp(pos.X()+toX*step, -bound, bound)
		nz := mgl64.Clamp(pos.Z()+toZ*step, -bound, bound)

		for pass := 0; pass < s.tunables.SeparationPasses; pass++ {
			for _, other := range capsules {
				if other == id {
					continue
				}
				otherTransform, ok := ecs.GetComponent[*components.TransformComponent](s.world, other)
				if !ok {
					continue
				}
				dx := nx - otherTransform.Position.X()
				dz := nz - otherTransform.Position.Z()
				distSq := dx*dx + dz*dz
				if distSq < minSepSq && distSq > 1e-6 {
					dist := math.Sqrt(distSq)
					push := (minSep - dist) / dist
					nx += dx * push
					nz += dz * push
				}
			}
		}

		transform.Position = mgl64.Vec3{
			mgl64.Clamp(nx, -bound, bound),
			movement.GroundHeight,
			mgl64.Clamp(nz, -bound, bound),
		}

		if rc, ok := ecs.GetComponent[*components.RenderComponent](s.world, id); ok && s.renderer != nil {
			s.renderer.SetTransform(rc.Node, transform.Position, transform.Rotation)
		}
	}
}
