package systems

import (
	"math"

	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
)

// TargetBoundsSystem 弹跳靶越界修正系统
//
// 越界的弹跳靶速度被反向并衰减（v = -Damping × v），不做位置钳制，
// 所以靶子可能短暂停留在界外。只作用于带刚体的非胶囊弹跳靶。
type TargetBoundsSystem struct {
	world  *ecs.World
	solver physics.Solver
	bounds config.BoundsTunables
}

// NewTargetBoundsSystem 创建越界修正系统
func NewTargetBoundsSystem(world *ecs.World, solver physics.Solver, bounds config.BoundsTunables) *TargetBoundsSystem {
	return &TargetBoundsSystem{
		world:  world,
		solver: solver,
		bounds: bounds,
	}
}

// Update 修正越界靶子的速度
func (s *TargetBoundsSystem) Update(deltaTime float64) {
	entities := s.world.GetEntitiesWith(components.KindTarget, components.KindTransform, components.KindPhysics)
	for _, id := range entities {
		target, ok := ecs.GetComponent[*components.TargetComponent](s.world, id)
		if !ok || !target.IsMoving || target.IsCapsule {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.world, id)
		if !ok {
			continue
		}
		if !s.OutOfBounds(transform.Position.X(), transform.Position.Y(), transform.Position.Z()) {
			continue
		}

		pc, ok := ecs.GetComponent[*components.PhysicsComponent](s.world, id)
		if !ok {
			continue
		}
		v, ok := s.solver.LinearVelocity(pc.Body)
		if !ok {
			continue
		}
		s.solver.SetLinearVelocity(pc.Body, v.Mul(-s.bounds.Damping))
	}
}

// OutOfBounds 检查位置是否在活动区域之外
func (s *TargetBoundsSystem) OutOfBounds(x, y, z float64) bool {
	b := s.bounds
	return math.Abs(x) > b.MaxAbsX || math.Abs(z) > b.MaxAbsZ || y < b.MinY || y > b.MaxY
}
