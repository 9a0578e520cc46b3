package systems

import (
	"time"

	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/logger"
)

// ProjectileCleanupSystem 子弹生命周期系统
// 存活时间达到 Lifetime 的子弹在本帧被销毁
type ProjectileCleanupSystem struct {
	world    *ecs.World
	teardown *Teardown
	now      func() time.Time
}

// NewProjectileCleanupSystem 创建子弹清理系统
//
// 参数:
//   - world: 实体所在的 World
//   - teardown: 销毁入口
//   - now: 时钟，nil 时使用 time.Now
func NewProjectileCleanupSystem(world *ecs.World, teardown *Teardown, now func() time.Time) *ProjectileCleanupSystem {
	if now == nil {
		now = time.Now
	}
	return &ProjectileCleanupSystem{
		world:    world,
		teardown: teardown,
		now:      now,
	}
}

// Update 销毁所有到期子弹
func (s *ProjectileCleanupSystem) Update(deltaTime float64) {
	now := s.now()
	for _, id := range s.world.GetEntitiesWith(components.KindProjectile) {
		projectile, ok := ecs.GetComponent[*components.ProjectileComponent](s.world, id)
		if !ok || !projectile.Expired(now) {
			continue
		}
		if s.teardown.Destroy(id) {
			logger.Log.Debugf("[ProjectileCleanupSystem] 子弹 %d 到期销毁（存活 %v）", id, now.Sub(projectile.CreatedAt))
		}
	}
}
