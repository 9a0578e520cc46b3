package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/logger"
)

// DefaultHitTolerance 命中判定的额外距离（近似子弹半径加容差）
const DefaultHitTolerance = 0.5

// CollisionSystem 子弹与靶子的命中判定系统
//
// 基于距离判定：dist < target.Size + hitTolerance 即命中（等于时不算）。
// 命中后发出 HitEvent，并通过 Teardown 销毁靶子和子弹。
// 同一颗子弹在同一帧命中多个重叠靶子时会产生多个事件，不做去重。
// 靶子信息取自帧开始时的快照：同一帧内多颗子弹命中同一靶子时每颗都会计分，
// 重复的 Destroy 是空操作。
type CollisionSystem struct {
	world        *ecs.World
	teardown     *Teardown
	viewer       ViewerPose
	hitTolerance float64
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - world: 实体所在的 World
//   - teardown: 销毁入口
//   - viewer: 观察者位姿，用于计算命中时的靶子距离
//   - hitTolerance: 命中容差，<0 时使用 DefaultHitTolerance
func NewCollisionSystem(world *ecs.World, teardown *Teardown, viewer ViewerPose, hitTolerance float64) *CollisionSystem {
	if hitTolerance < 0 {
		hitTolerance = DefaultHitTolerance
	}
	return &CollisionSystem{
		world:        world,
		teardown:     teardown,
		viewer:       viewer,
		hitTolerance: hitTolerance,
	}
}

type positionedEntity struct {
	id       ecs.EntityID
	position mgl64.Vec3
}

type targetSnapshot struct {
	positionedEntity
	info components.TargetComponent
}

// Update 扫描所有 子弹×靶子 组合
func (s *CollisionSystem) Update(deltaTime float64) {
	projectiles := s.snapshot(components.KindProjectile)
	if len(projectiles) == 0 {
		return
	}
	targets := s.snapshotTargets()
	if len(targets) == 0 {
		return
	}

	for _, p := range projectiles {
		for _, t := range targets {
			dist := p.position.Sub(t.position).Len()
			if !IsHit(dist, t.info.Size, s.hitTolerance) {
				continue
			}

			event := HitEvent{
				Target:             t.id,
				Projectile:         p.id,
				TargetInfo:         t.info,
				Position:           t.position,
				NormalizedDistance: NormalizedHitDistance(dist, t.info.Size),
			}
			if s.viewer != nil {
				event.TargetDistance = s.viewer.ViewerPosition().Sub(t.position).Len()
			}
			s.world.Emit(event)

			logger.Log.Debugf("[CollisionSystem] 命中: 靶子=%d 子弹=%d 距离=%.2f 归一化=%.2f",
				t.id, p.id, dist, event.NormalizedDistance)

			s.teardown.Destroy(t.id)
			s.teardown.Destroy(p.id)
		}
	}
}

// snapshot 读取本帧开始时带有 kind 和 Transform 的实体位置
func (s *CollisionSystem) snapshot(kind ecs.ComponentKind) []positionedEntity {
	ids := s.world.GetEntitiesWith(kind, components.KindTransform)
	result := make([]positionedEntity, 0, len(ids))
	for _, id := range ids {
		tc, ok := ecs.GetComponent[*components.TransformComponent](s.world, id)
		if !ok {
			continue
		}
		result = append(result, positionedEntity{id: id, position: tc.Position})
	}
	return result
}

// snapshotTargets 读取本帧开始时的靶子位置和属性
func (s *CollisionSystem) snapshotTargets() []targetSnapshot {
	positioned := s.snapshot(components.KindTarget)
	result := make([]targetSnapshot, 0, len(positioned))
	for _, e := range positioned {
		target, ok := ecs.GetComponent[*components.TargetComponent](s.world, e.id)
		if !ok {
			continue
		}
		result = append(result, targetSnapshot{positionedEntity: e, info: *target})
	}
	return result
}

// IsHit 判断距离 dist 是否落在尺寸为 size 的靶子命中范围内
func IsHit(dist, size, tolerance float64) bool {
	return dist < size+tolerance
}

// NormalizedHitDistance 命中点到靶心的归一化距离，钳制到 [0, 1]
// size<=0 时视为边缘命中
func NormalizedHitDistance(dist, size float64) float64 {
	if size <= 0 {
		return 1
	}
	return mgl64.Clamp(dist/size, 0, 1)
}
