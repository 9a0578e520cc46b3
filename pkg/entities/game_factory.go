package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
)

// NewPlayer 创建玩家实体（全局唯一）
func (f *Factory) NewPlayer(camera *components.Camera) (ecs.EntityID, error) {
	if err := f.requireWorld(); err != nil {
		return 0, err
	}
	if camera == nil {
		return 0, fmt.Errorf("%w: camera", ErrNilCollaborator)
	}
	id := f.World.CreateEntity()
	f.World.AddComponent(id, &components.PlayerComponent{Camera: camera})
	return id, nil
}

// NewGameTimer 创建处于空闲状态的计时器实体
func (f *Factory) NewGameTimer(duration float64) (ecs.EntityID, error) {
	if err := f.requireWorld(); err != nil {
		return 0, err
	}
	id := f.World.CreateEntity()
	f.World.AddComponent(id, components.NewGameTimerComponent(duration))
	return id, nil
}

// NewGameState 创建处于菜单阶段的游戏状态实体
func (f *Factory) NewGameState() (ecs.EntityID, error) {
	if err := f.requireWorld(); err != nil {
		return 0, err
	}
	id := f.World.CreateEntity()
	f.World.AddComponent(id, components.NewGameStateComponent())
	return id, nil
}

// BuildArena 在求解器中创建地面和四面墙（静态盒体，完全弹性）
//
// 场地不是实体，World.Clear 不会影响它们。
//
// 返回:
//   - []physics.BodyHandle: 地面和墙的刚体句柄
func (f *Factory) BuildArena() ([]physics.BodyHandle, error) {
	if f.Solver == nil {
		return nil, fmt.Errorf("%w: solver", ErrNilCollaborator)
	}

	half := f.Tunables.Arena.HalfSize
	wallHalfHeight := f.Tunables.Arena.WallHeight / 2
	const thickness = 0.5

	boxes := []struct {
		center mgl64.Vec3
		extent mgl64.Vec3
	}{
		// 地面，顶面在 y=0
		{mgl64.Vec3{0, -thickness, 0}, mgl64.Vec3{half, thickness, half}},
		{mgl64.Vec3{0, wallHalfHeight, -half}, mgl64.Vec3{half, wallHalfHeight, thickness}},
		{mgl64.Vec3{0, wallHalfHeight, half}, mgl64.Vec3{half, wallHalfHeight, thickness}},
		{mgl64.Vec3{-half, wallHalfHeight, 0}, mgl64.Vec3{thickness, wallHalfHeight, half}},
		{mgl64.Vec3{half, wallHalfHeight, 0}, mgl64.Vec3{thickness, wallHalfHeight, half}},
	}

	handles := make([]physics.BodyHandle, 0, len(boxes))
	for _, b := range boxes {
		handles = append(handles, f.Solver.AddBody(physics.BodyDef{
			Shape:       physics.ShapeBox,
			HalfExtents: b.extent,
			Position:    b.center,
			Rotation:    mgl64.QuatIdent(),
			Restitution: 1,
		}))
	}
	return handles, nil
}
