package physics

import "github.com/go-gl/mathgl/mgl64"

// BodyHandle 刚体句柄，0 为无效句柄
type BodyHandle uint64

// ShapeType 碰撞形状
type ShapeType int

const (
	// ShapeSphere 球体，使用 Radius
	ShapeSphere ShapeType = iota
	// ShapeBox 轴对齐盒体，使用 HalfExtents，只能是静态刚体
	ShapeBox
)

// BodyDef 刚体构建参数
// 同时作为 PhysicsComponent 上保存的构建元数据
type BodyDef struct {
	Shape       ShapeType
	Radius      float64    // 球体半径
	HalfExtents mgl64.Vec3 // 盒体半尺寸
	Mass        float64    // 质量，0 表示静态刚体
	Position    mgl64.Vec3
	Rotation    mgl64.Quat

	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3

	Restitution    float64 // 弹性系数，与对方相乘
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
}

// Solver 外部刚体求解器接口
//
// 只有物理适配系统调用 StepSimulation；
// 碰撞和清理系统只通过 RemoveBody 释放刚体。
type Solver interface {
	// AddBody 添加刚体并返回句柄
	AddBody(def BodyDef) BodyHandle
	// RemoveBody 移除刚体，句柄不存在时返回 false
	RemoveBody(h BodyHandle) bool
	// HasBody 检查句柄是否仍在求解器中
	HasBody(h BodyHandle) bool
	// BodyCount 返回求解器中的刚体数量（含静态刚体）
	BodyCount() int
	// StepSimulation 推进模拟，返回实际执行的子步数
	StepSimulation(deltaTime float64, maxSubSteps int) int
	// WorldTransform 读取刚体的世界变换
	WorldTransform(h BodyHandle) (mgl64.Vec3, mgl64.Quat, bool)
	// LinearVelocity 读取线速度
	LinearVelocity(h BodyHandle) (mgl64.Vec3, bool)
	// SetLinearVelocity 设置线速度
	SetLinearVelocity(h BodyHandle, v mgl64.Vec3)
}
