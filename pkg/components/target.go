package components

import "github.com/gonewx/aimtrainer/pkg/ecs"

// TargetComponent 靶子数据
type TargetComponent struct {
	IsMoving  bool    // 是否为弹跳靶
	Size      float64 // 可视尺寸，同时作为命中半径
	IsCapsule bool    // 是否为胶囊靶
}

// Kind 实现 ecs.Component
func (*TargetComponent) Kind() ecs.ComponentKind { return KindTarget }
