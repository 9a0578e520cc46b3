package render

import "github.com/go-gl/mathgl/mgl64"

// Node 渲染节点句柄，0 为无效句柄
// 核心逻辑不关心节点背后的几何体或材质
type Node uint64

// NodeKind 节点种类，只用于前端选择绘制方式
type NodeKind int

const (
	NodeTarget NodeKind = iota
	NodeMovingTarget
	NodeCapsule
	NodeProjectile
)

// String 返回节点种类名称
func (k NodeKind) String() string {
	switch k {
	case NodeTarget:
		return "target"
	case NodeMovingTarget:
		return "moving_target"
	case NodeCapsule:
		return "capsule"
	case NodeProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// SpawnSpec 创建渲染节点的参数
type SpawnSpec struct {
	Kind     NodeKind
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Radius   float64 // 可视半径
	Height   float64 // 胶囊高度，其他种类为 0
}

// Renderer 渲染协作方接口
type Renderer interface {
	// Spawn 创建节点并挂到场景
	Spawn(spec SpawnSpec) Node
	// SetTransform 更新节点位姿
	SetTransform(node Node, position mgl64.Vec3, rotation mgl64.Quat)
	// Detach 从父节点摘除，重复调用是空操作
	Detach(node Node)
}
