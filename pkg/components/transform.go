package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/ecs"
)

// TransformComponent 实体的世界位姿
//
// 刚体实体由物理系统每帧写入；胶囊靶由追踪系统写入。
// 碰撞系统只读取这里的位置。
type TransformComponent struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Kind 实现 ecs.Component
func (*TransformComponent) Kind() ecs.ComponentKind { return KindTransform }
