package components

import "github.com/gonewx/aimtrainer/pkg/ecs"

// 组件种类枚举
// 新增组件必须在这里登记，并在 KindName 中给出名称
const (
	KindRender ecs.ComponentKind = iota + 1
	KindPhysics
	KindTransform
	KindTarget
	KindCapsuleMovement
	KindProjectile
	KindPlayer
	KindGameTimer
	KindGameState
)

// KindName 返回组件种类名称，用于日志
func KindName(kind ecs.ComponentKind) string {
	switch kind {
	case KindRender:
		return "Render"
	case KindPhysics:
		return "Physics"
	case KindTransform:
		return "Transform"
	case KindTarget:
		return "Target"
	case KindCapsuleMovement:
		return "CapsuleMovement"
	case KindProjectile:
		return "Projectile"
	case KindPlayer:
		return "Player"
	case KindGameTimer:
		return "GameTimer"
	case KindGameState:
		return "GameState"
	default:
		return "Unknown"
	}
}
