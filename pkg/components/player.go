package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/ecs"
)

// Camera 玩家视角
// 位置固定，只能自由转向（偏航+俯仰，YXZ 顺序）
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64 // 绕Y轴，弧度
	Pitch    float64 // 绕X轴，弧度，限制在 ±π/2
}

// NewCamera 创建位于 position、朝向 -Z 的相机
func NewCamera(position mgl64.Vec3) *Camera {
	return &Camera{Position: position}
}

// ViewerPosition 返回观察者位置
func (c *Camera) ViewerPosition() mgl64.Vec3 {
	return c.Position
}

// Forward 返回视线方向单位向量
func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{
		-math.Sin(c.Yaw) * cp,
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw) * cp,
	}
}

// Orientation 返回相机朝向四元数
func (c *Camera) Orientation() mgl64.Quat {
	yaw := mgl64.QuatRotate(c.Yaw, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(c.Pitch, mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Look 按鼠标位移转动视角
//
// 参数:
//   - dx, dy: 鼠标位移（像素）
//   - sensitivity: 灵敏度倍数，1 为默认
func (c *Camera) Look(dx, dy, sensitivity float64) {
	factor := 0.002 * sensitivity
	c.Yaw -= dx * factor
	c.Pitch -= dy * factor
	c.Pitch = mgl64.Clamp(c.Pitch, -math.Pi/2, math.Pi/2)
}

// PlayerComponent 标记玩家实体，全局唯一
type PlayerComponent struct {
	Camera *Camera
}

// Kind 实现 ecs.Component
func (*PlayerComponent) Kind() ecs.ComponentKind { return KindPlayer }
