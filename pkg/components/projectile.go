package components

import (
	"time"

	"github.com/gonewx/aimtrainer/pkg/ecs"
)

// DefaultProjectileLifetime 子弹默认存活时间
const DefaultProjectileLifetime = 5000 * time.Millisecond

// ProjectileComponent 子弹数据
type ProjectileComponent struct {
	CreatedAt time.Time
	Damage    int
	Lifetime  time.Duration
}

// Kind 实现 ecs.Component
func (*ProjectileComponent) Kind() ecs.ComponentKind { return KindProjectile }

// Expired 检查子弹在 now 时刻是否已到期（存活时间 >= Lifetime）
func (p *ProjectileComponent) Expired(now time.Time) bool {
	lifetime := p.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultProjectileLifetime
	}
	return now.Sub(p.CreatedAt) >= lifetime
}
