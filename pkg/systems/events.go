package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
)

// 事件名称
const (
	EventHit    = "hit"
	EventTimeUp = "time_up"
)

// HitEvent 子弹命中靶子
//
// 事件发出时两个实体都已被销毁，所以靶子数据和位置以副本形式携带。
type HitEvent struct {
	Target     ecs.EntityID
	Projectile ecs.EntityID
	TargetInfo components.TargetComponent
	Position   mgl64.Vec3 // 命中时靶子位置

	// NormalizedDistance 命中点距靶心的归一化距离，0 为正中，1 为边缘（已钳制）
	NormalizedDistance float64
	// TargetDistance 命中时观察者到靶子的距离
	TargetDistance float64
}

// EventName 实现 ecs.Event
func (HitEvent) EventName() string { return EventHit }

// TimeUpEvent 计时结束且场上没有飞行中的子弹
type TimeUpEvent struct {
	Timer ecs.EntityID
}

// EventName 实现 ecs.Event
func (TimeUpEvent) EventName() string { return EventTimeUp }

// ViewerPose 观察者位姿提供方
type ViewerPose interface {
	ViewerPosition() mgl64.Vec3
}
