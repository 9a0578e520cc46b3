package ecs

import "sort"

// EntityID 是实体的唯一标识符
// 从1开始单调递增，0保留为无效ID
type EntityID uint64

// ComponentKind 组件种类标签
// 封闭枚举，取值由 components 包定义，作为组件表的键
type ComponentKind uint8

// Component 所有组件必须实现的接口
type Component interface {
	Kind() ComponentKind
}

// System 每帧按注册顺序执行的系统
type System interface {
	Update(deltaTime float64)
}

// Event 系统在一帧内产生的事件，由 World.Update 返回给调用方
type Event interface {
	EventName() string
}

// World 管理所有实体、组件和系统
//
// 注意：World 不做迭代保护。调用方必须先用 GetEntitiesWith 取得快照，
// 再在快照上修改或删除实体。
type World struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentKind -> Component实例
	components map[EntityID]map[ComponentKind]Component
	systems    []System
	// 当前帧累积的事件
	pending []Event
}

// NewWorld 创建一个新的 World 实例
func NewWorld() *World {
	return &World{
		nextID:     1, // ID从1开始,0保留为无效ID
		components: make(map[EntityID]map[ComponentKind]Component),
		systems:    make([]System, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (w *World) CreateEntity() EntityID {
	id := EntityID(w.nextID)
	w.nextID++
	w.components[id] = make(map[ComponentKind]Component)
	return id
}

// RemoveEntity 立即删除实体的全部记录
//
// 只删除登记信息。实体组件引用的外部资源（刚体、渲染节点）必须由调用方先释放。
// 对不存在的实体是空操作。
func (w *World) RemoveEntity(id EntityID) {
	delete(w.components, id)
}

// Exists 检查实体是否仍然登记在 World 中
func (w *World) Exists(id EntityID) bool {
	_, ok := w.components[id]
	return ok
}

// EntityCount 返回当前存活实体数量
func (w *World) EntityCount() int {
	return len(w.components)
}

// Clear 删除所有实体（系统保留，ID 不回退）
func (w *World) Clear() {
	w.components = make(map[EntityID]map[ComponentKind]Component)
	w.pending = w.pending[:0]
}

// AddComponent 为实体添加组件，同种类组件会被替换
func (w *World) AddComponent(id EntityID, component Component) {
	if compMap, exists := w.components[id]; exists {
		compMap[component.Kind()] = component
	}
}

// RemoveComponent 从实体移除指定种类的组件
func (w *World) RemoveComponent(id EntityID, kind ComponentKind) {
	if compMap, exists := w.components[id]; exists {
		delete(compMap, kind)
	}
}

// GetComponent 获取实体的特定种类组件
func (w *World) GetComponent(id EntityID, kind ComponentKind) (Component, bool) {
	if compMap, exists := w.components[id]; exists {
		if comp, found := compMap[kind]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定种类组件
func (w *World) HasComponent(id EntityID, kind ComponentKind) bool {
	if compMap, exists := w.components[id]; exists {
		_, found := compMap[kind]
		return found
	}
	return false
}

// GetEntitiesWith 查询拥有指定组件种类组合的所有实体
//
// 参数:
//   - kinds: 需要的组件种类列表
//
// 返回:
//   - []EntityID: 满足条件的实体ID快照，按ID升序排列
func (w *World) GetEntitiesWith(kinds ...ComponentKind) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range w.components {
		hasAll := true
		for _, kind := range kinds {
			if _, found := compMap[kind]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	// map 遍历顺序随机，排序保证每帧处理顺序稳定
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// AddSystem 追加系统，执行顺序即注册顺序
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
}

// Systems 返回已注册系统的副本
func (w *World) Systems() []System {
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Emit 记录一个事件，在本帧 Update 结束时返回
func (w *World) Emit(event Event) {
	w.pending = append(w.pending, event)
}

// Update 按注册顺序运行所有系统，返回本帧产生的事件
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒）
//
// 返回:
//   - []Event: 本帧内系统发出的事件，按发出顺序排列
func (w *World) Update(deltaTime float64) []Event {
	for _, system := range w.systems {
		system.Update(deltaTime)
	}
	return w.DrainEvents()
}

// DrainEvents 取出并清空待处理事件
func (w *World) DrainEvents() []Event {
	if len(w.pending) == 0 {
		return nil
	}
	events := make([]Event, len(w.pending))
	copy(events, w.pending)
	w.pending = w.pending[:0]
	return events
}

// GetComponent 泛型版本的组件获取
// 种类不存在或类型不匹配时返回零值和 false
func GetComponent[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	comp, ok := w.GetComponent(id, zero.Kind())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}
