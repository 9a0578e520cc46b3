package systems

import (
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// Teardown 实体销毁的唯一入口
//
// 顺序固定：摘除渲染节点 -> 从求解器移除刚体 -> 注销实体。
// 碰撞、清理系统和会话清场都必须通过它销毁靶子和子弹，避免泄漏刚体句柄。
type Teardown struct {
	world    *ecs.World
	solver   physics.Solver
	renderer render.Renderer
}

// NewTeardown 创建销毁器
//
// 参数:
//   - world: 实体所在的 World
//   - solver: 刚体求解器，可为 nil（无物理的测试场景）
//   - renderer: 渲染协作方，可为 nil
func NewTeardown(world *ecs.World, solver physics.Solver, renderer render.Renderer) *Teardown {
	return &Teardown{
		world:    world,
		solver:   solver,
		renderer: renderer,
	}
}

// Destroy 销毁实体
//
// 返回:
//   - bool: 实体存在并被销毁返回 true；已销毁的实体返回 false（幂等）
func (t *Teardown) Destroy(id ecs.EntityID) bool {
	if !t.world.Exists(id) {
		return false
	}

	if rc, ok := ecs.GetComponent[*components.RenderComponent](t.world, id); ok && t.renderer != nil {
		t.renderer.Detach(rc.Node)
	}

	if pc, ok := ecs.GetComponent[*components.PhysicsComponent](t.world, id); ok && t.solver != nil {
		t.solver.RemoveBody(pc.Body)
	}

	t.world.RemoveEntity(id)
	return true
}

// DestroyAll 销毁快照中的全部实体，返回实际销毁数量
func (t *Teardown) DestroyAll(ids []ecs.EntityID) int {
	count := 0
	for _, id := range ids {
		if t.Destroy(id) {
			count++
		}
	}
	return count
}
