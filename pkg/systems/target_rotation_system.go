package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// TargetRotationSystem 让平面靶始终面向观察者
// 胶囊靶保持立体朝向，不参与
type TargetRotationSystem struct {
	world    *ecs.World
	renderer render.Renderer
	viewer   ViewerPose
}

// NewTargetRotationSystem 创建朝向系统
func NewTargetRotationSystem(world *ecs.World, renderer render.Renderer, viewer ViewerPose) *TargetRotationSystem {
	return &TargetRotationSystem{
		world:    world,
		renderer: renderer,
		viewer:   viewer,
	}
}

// Update 更新所有平面靶的朝向
func (s *TargetRotationSystem) Update(deltaTime float64) {
	cam := s.viewer.ViewerPosition()
	targets := s.world.GetEntitiesWith(components.KindTarget, components.KindTransform, components.KindRender)

	for _, id := range targets {
		target, ok := ecs.GetComponent[*components.TargetComponent](s.world, id)
		if !ok || target.IsCapsule {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.world, id)
		if !ok {
			continue
		}
		rc, ok := ecs.GetComponent[*components.RenderComponent](s.world, id)
		if !ok {
			continue
		}

		rotation, ok := FaceTowards(transform.Position, cam)
		if !ok {
			continue
		}
		transform.Rotation = rotation
		if s.renderer != nil {
			s.renderer.SetTransform(rc.Node, transform.Position, rotation)
		}
	}
}

// FaceTowards 计算让本地 +Z 轴指向 to 的朝向
// from 与 to 重合时返回 false
func FaceTowards(from, to mgl64.Vec3) (mgl64.Quat, bool) {
	dir := to.Sub(from)
	length := dir.Len()
	if length < 1e-9 {
		return mgl64.QuatIdent(), false
	}
	dir = dir.Mul(1 / length)

	yaw := math.Atan2(dir.X(), dir.Z())
	pitch := -math.Asin(mgl64.Clamp(dir.Y(), -1, 1))
	q := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}))
	return q.Normalize(), true
}
