package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFixedTimeStep 内部固定步长（秒）
const DefaultFixedTimeStep = 1.0 / 60.0

// rigidBody 求解器内部的刚体状态
type rigidBody struct {
	def      BodyDef
	position mgl64.Vec3
	rotation mgl64.Quat
	linVel   mgl64.Vec3
	angVel   mgl64.Vec3
}

func (b *rigidBody) isStatic() bool {
	return b.def.Mass <= 0
}

// World 内置的轻量刚体求解器
//
// 只实现场馆需要的部分：重力、动态/静态球体、静态轴对齐盒体（地面和墙），
// 球体与盒体之间的弹性接触。球体之间不做物理接触，命中由碰撞计分系统判定。
//
// 步进语义与常见引擎一致：时间累积到固定步长，每次调用最多执行 maxSubSteps 步，
// 超出部分丢弃。
type World struct {
	gravity       mgl64.Vec3
	fixedTimeStep float64
	localTime     float64

	nextHandle uint64
	bodies     map[BodyHandle]*rigidBody
	// 插入顺序，保证迭代稳定
	order []BodyHandle
}

// NewWorld 创建求解器
//
// 参数:
//   - gravity: 重力加速度
//   - fixedTimeStep: 内部固定步长，<=0 时使用 DefaultFixedTimeStep
func NewWorld(gravity mgl64.Vec3, fixedTimeStep float64) *World {
	if fixedTimeStep <= 0 {
		fixedTimeStep = DefaultFixedTimeStep
	}
	return &World{
		gravity:       gravity,
		fixedTimeStep: fixedTimeStep,
		nextHandle:    1,
		bodies:        make(map[BodyHandle]*rigidBody),
		order:         make([]BodyHandle, 0, 32),
	}
}

// Gravity 返回重力
func (w *World) Gravity() mgl64.Vec3 {
	return w.gravity
}

// AddBody 添加刚体
func (w *World) AddBody(def BodyDef) BodyHandle {
	rotation := def.Rotation
	if rotation.Len() == 0 {
		rotation = mgl64.QuatIdent()
	}
	h := BodyHandle(w.nextHandle)
	w.nextHandle++
	w.bodies[h] = &rigidBody{
		def:      def,
		position: def.Position,
		rotation: rotation,
		linVel:   def.LinearVelocity,
		angVel:   def.AngularVelocity,
	}
	w.order = append(w.order, h)
	return h
}

// RemoveBody 移除刚体
func (w *World) RemoveBody(h BodyHandle) bool {
	if _, ok := w.bodies[h]; !ok {
		return false
	}
	delete(w.bodies, h)
	for i, existing := range w.order {
		if existing == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// HasBody 检查句柄是否存在
func (w *World) HasBody(h BodyHandle) bool {
	_, ok := w.bodies[h]
	return ok
}

// BodyCount 返回刚体数量
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// WorldTransform 读取刚体位置和朝向
func (w *World) WorldTransform(h BodyHandle) (mgl64.Vec3, mgl64.Quat, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	return b.position, b.rotation, true
}

// LinearVelocity 读取线速度
func (w *World) LinearVelocity(h BodyHandle) (mgl64.Vec3, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.linVel, true
}

// SetLinearVelocity 设置线速度，静态刚体忽略
func (w *World) SetLinearVelocity(h BodyHandle, v mgl64.Vec3) {
	if b, ok := w.bodies[h]; ok && !b.isStatic() {
		b.linVel = v
	}
}

// StepSimulation 推进模拟
//
// 参数:
//   - deltaTime: 本帧经过的时间（秒）
//   - maxSubSteps: 每次调用最多执行的固定子步数；<=0 时按 deltaTime 执行一个可变步
//
// 返回:
//   - int: 实际执行的子步数
func (w *World) StepSimulation(deltaTime float64, maxSubSteps int) int {
	if deltaTime <= 0 {
		return 0
	}
	if maxSubSteps <= 0 {
		w.step(deltaTime)
		return 1
	}

	w.localTime += deltaTime
	steps := int(w.localTime / w.fixedTimeStep)
	w.localTime -= float64(steps) * w.fixedTimeStep
	if steps > maxSubSteps {
		steps = maxSubSteps
	}
	for i := 0; i < steps; i++ {
		w.step(w.fixedTimeStep)
	}
	return steps
}

// step 执行一个固定步长
func (w *World) step(h float64) {
	for _, handle := range w.order {
		b := w.bodies[handle]
		if b.isStatic() || b.def.Shape != ShapeSphere {
			continue
		}

		b.linVel = b.linVel.Add(w.gravity.Mul(h))
		if b.def.LinearDamping > 0 {
			b.linVel = b.linVel.Mul(math.Pow(1-b.def.LinearDamping, h))
		}
		b.position = b.position.Add(b.linVel.Mul(h))

		if b.def.AngularDamping > 0 {
			b.angVel = b.angVel.Mul(math.Pow(1-b.def.AngularDamping, h))
		}
		if speed := b.angVel.Len(); speed > 1e-12 {
			spin := mgl64.QuatRotate(speed*h, b.angVel.Mul(1/speed))
			b.rotation = spin.Mul(b.rotation).Normalize()
		}

		for _, other := range w.order {
			box := w.bodies[other]
			if box.def.Shape != ShapeBox {
				continue
			}
			resolveSphereBox(b, box)
		}
	}
}

// resolveSphereBox 球体与静态轴对齐盒体的接触处理
func resolveSphereBox(sphere, box *rigidBody) {
	r := sphere.def.Radius
	ext := box.def.HalfExtents
	lo := box.position.Sub(ext)
	hi := box.position.Add(ext)
	p := sphere.position

	closest := mgl64.Vec3{
		mgl64.Clamp(p.X(), lo.X(), hi.X()),
		mgl64.Clamp(p.Y(), lo.Y(), hi.Y()),
		mgl64.Clamp(p.Z(), lo.Z(), hi.Z()),
	}
	d := p.Sub(closest)
	dist := d.Len()

	var normal mgl64.Vec3
	var penetration float64
	if dist > 1e-9 {
		if dist >= r {
			return
		}
		normal = d.Mul(1 / dist)
		penetration = r - dist
	} else {
		// 球心在盒体内部：沿穿透最浅的面推出
		best := math.MaxFloat64
		for axis := 0; axis < 3; axis++ {
			if below := p[axis] - lo[axis]; below < best {
				best = below
				normal = mgl64.Vec3{}
				normal[axis] = -1
			}
			if above := hi[axis] - p[axis]; above < best {
				best = above
				normal = mgl64.Vec3{}
				normal[axis] = 1
			}
		}
		penetration = best + r
	}

	sphere.position = p.Add(normal.Mul(penetration))

	if vn := sphere.linVel.Dot(normal); vn < 0 {
		e := sphere.def.Restitution * box.def.Restitution
		sphere.linVel = sphere.linVel.Sub(normal.Mul((1 + e) * vn))
	}
}

var _ Solver = (*World)(nil)
