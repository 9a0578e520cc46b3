package systems

import (
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// PhysicsSystem 刚体物理适配系统
//
// 推进外部求解器，然后把刚体位姿写回实体和渲染节点。
// 它是刚体实体位姿的唯一写入者。
type PhysicsSystem struct {
	world    *ecs.World
	solver   physics.Solver
	renderer render.Renderer
	substeps int
}

// NewPhysicsSystem 创建物理系统
//
// 参数:
//   - world: 实体所在的 World
//   - solver: 刚体求解器
//   - renderer: 渲染协作方
//   - substeps: 每次调用的最大子步数（原版为 10）
func NewPhysicsSystem(world *ecs.World, solver physics.Solver, renderer render.Renderer, substeps int) *PhysicsSystem {
	return &PhysicsSystem{
		world:    world,
		solver:   solver,
		renderer: renderer,
		substeps: substeps,
	}
}

// Update 推进模拟并同步位姿
func (s *PhysicsSystem) Update(deltaTime float64) {
	s.solver.StepSimulation(deltaTime, s.substeps)

	entities := s.world.GetEntitiesWith(components.KindPhysics, components.KindRender)
	for _, id := range entities {
		pc, ok := ecs.GetComponent[*components.PhysicsComponent](s.world, id)
		if !ok {
			continue
		}
		rc, ok := ecs.GetComponent[*components.RenderComponent](s.world, id)
		if !ok {
			continue
		}

		position, rotation, ok := s.solver.WorldTransform(pc.Body)
		if !ok {
			continue
		}

		if tc, ok := ecs.GetComponent[*components.TransformComponent](s.world, id); ok {
			tc.Position = position
			tc.Rotation = rotation
		}
		if s.renderer != nil {
			s.renderer.SetTransform(rc.Node, position, rotation)
		}
	}
}
