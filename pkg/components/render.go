package components

import (
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// RenderComponent 实体的可视表示句柄
// 场景中可见的实体都必须带有此组件
type RenderComponent struct {
	Node render.Node
}

// Kind 实现 ecs.Component
func (*RenderComponent) Kind() ecs.ComponentKind { return KindRender }
