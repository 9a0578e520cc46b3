package render

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// NodeState 场景中节点的当前状态
type NodeState struct {
	ID       Node
	Kind     NodeKind
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Radius   float64
	Height   float64
}

// Scene 内存中的场景图
//
// 测试、无界面运行和 ebiten 俯视图共用它作为渲染协作方。
// 前端每帧调用 Nodes() 读取快照绘制。
type Scene struct {
	nextID uint64
	nodes  map[Node]*NodeState
	// 统计信息，测试用来确认节点已被摘除
	spawned  int
	detached int
}

// NewScene 创建空场景
func NewScene() *Scene {
	return &Scene{
		nextID: 1,
		nodes:  make(map[Node]*NodeState),
	}
}

// Spawn 创建节点
func (s *Scene) Spawn(spec SpawnSpec) Node {
	rotation := spec.Rotation
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}
	id := Node(s.nextID)
	s.nextID++
	s.nodes[id] = &NodeState{
		ID:       id,
		Kind:     spec.Kind,
		Position: spec.Position,
		Rotation: rotation,
		Radius:   spec.Radius,
		Height:   spec.Height,
	}
	s.spawned++
	return id
}

// SetTransform 更新节点位姿，已摘除的节点忽略
func (s *Scene) SetTransform(node Node, position mgl64.Vec3, rotation mgl64.Quat) {
	if n, ok := s.nodes[node]; ok {
		n.Position = position
		n.Rotation = rotation
	}
}

// Detach 摘除节点
func (s *Scene) Detach(node Node) {
	if _, ok := s.nodes[node]; ok {
		delete(s.nodes, node)
		s.detached++
	}
}

// Attached 检查节点是否仍在场景中
func (s *Scene) Attached(node Node) bool {
	_, ok := s.nodes[node]
	return ok
}

// Node 返回节点状态副本
func (s *Scene) Node(node Node) (NodeState, bool) {
	n, ok := s.nodes[node]
	if !ok {
		return NodeState{}, false
	}
	return *n, true
}

// Nodes 返回所有节点的快照，按ID排序
func (s *Scene) Nodes() []NodeState {
	result := make([]NodeState, 0, len(s.nodes))
	for _, n := range s.nodes {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Len 返回场景中的节点数
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Stats 返回累计创建和摘除的节点数
func (s *Scene) Stats() (spawned, detached int) {
	return s.spawned, s.detached
}

var _ Renderer = (*Scene)(nil)
