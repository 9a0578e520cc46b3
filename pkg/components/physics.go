package components

import (
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
)

// PhysicsComponent 实体在刚体求解器中的句柄
// 胶囊靶没有此组件，它们由追踪系统直接移动
type PhysicsComponent struct {
	Body physics.BodyHandle
	Info *physics.BodyDef // 构建参数，可为 nil
}

// Kind 实现 ecs.Component
func (*PhysicsComponent) Kind() ecs.ComponentKind { return KindPhysics }
