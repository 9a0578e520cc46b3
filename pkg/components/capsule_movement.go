package components

import "github.com/gonewx/aimtrainer/pkg/ecs"

// CapsuleMovementComponent 胶囊靶的追踪参数
//
// Stopped 是单向锁存：一旦在水平面上进入 MinDistance 范围就永久停止，
// 直到实体被销毁。
type CapsuleMovementComponent struct {
	ApproachSpeed float64 // 接近速度（单位/秒）
	MinDistance   float64 // 停止距离（仅水平面）
	GroundHeight  float64 // 固定高度
	Stopped       bool
}

// Kind 实现 ecs.Component
func (*CapsuleMovementComponent) Kind() ecs.ComponentKind { return KindCapsuleMovement }
