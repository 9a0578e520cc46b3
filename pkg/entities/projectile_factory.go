package entities

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/logger"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// NewProjectile 从相机位置沿视线方向发射一颗子弹
//
// 参数:
//   - camera: 玩家相机，决定出生点和方向
//
// 返回:
//   - ecs.EntityID: 新实体ID
//   - error: 缺少协作方或相机时返回 ErrNilCollaborator
func (f *Factory) NewProjectile(camera *components.Camera) (ecs.EntityID, error) {
	if err := f.requireScene(); err != nil {
		return 0, err
	}
	if camera == nil {
		return 0, ErrNilCollaborator
	}

	cfg := f.Tunables.Projectile
	position := camera.Position
	velocity := camera.Forward().Normalize().Mul(cfg.Speed)

	def := physics.BodyDef{
		Shape:          physics.ShapeSphere,
		Radius:         cfg.Radius,
		Mass:           cfg.Mass,
		Position:       position,
		Rotation:       mgl64.QuatIdent(),
		LinearVelocity: velocity,
		Restitution:    cfg.Restitution,
	}

	node := f.Renderer.Spawn(render.SpawnSpec{
		Kind:     render.NodeProjectile,
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Radius:   cfg.Radius,
	})
	body := f.Solver.AddBody(def)

	lifetime := time.Duration(cfg.LifetimeMs) * time.Millisecond
	if lifetime <= 0 {
		lifetime = components.DefaultProjectileLifetime
	}

	id := f.World.CreateEntity()
	f.World.AddComponent(id, &components.RenderComponent{Node: node})
	f.World.AddComponent(id, &components.PhysicsComponent{Body: body, Info: &def})
	f.World.AddComponent(id, &components.TransformComponent{Position: position, Rotation: mgl64.QuatIdent()})
	f.World.AddComponent(id, &components.ProjectileComponent{
		CreatedAt: f.now(),
		Damage:    cfg.Damage,
		Lifetime:  lifetime,
	})

	logger.Log.Debugf("[ProjectileFactory] 创建子弹 %d: velocity=%v", id, velocity)
	return id, nil
}
