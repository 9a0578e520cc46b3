package entities

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
)

// ErrNilCollaborator 工厂缺少必要的协作方
var ErrNilCollaborator = errors.New("entities: nil collaborator")

// maxSpawnAttempts 随机取点的最大尝试次数，超过后使用最后一次的结果
const maxSpawnAttempts = 64

// Factory 实体工厂
//
// 把一次会话共享的协作方集中在一起，所有 NewXxx 方法都从这里取 World、
// 求解器和渲染方。Rand 和 Now 可注入，测试用固定种子和假时钟。
type Factory struct {
	World    *ecs.World
	Solver   physics.Solver
	Renderer render.Renderer
	Tunables *config.Tunables
	Rand     *rand.Rand
	Now      func() time.Time
}

// NewFactory 创建实体工厂
//
// 参数:
//   - world: 实体注册表
//   - solver: 刚体求解器
//   - renderer: 渲染协作方
//   - tunables: 数值参数，nil 时使用默认值
//   - rng: 随机源，nil 时使用基于当前时间的随机源
func NewFactory(world *ecs.World, solver physics.Solver, renderer render.Renderer, tunables *config.Tunables, rng *rand.Rand) *Factory {
	if tunables == nil {
		tunables = config.DefaultTunables()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Factory{
		World:    world,
		Solver:   solver,
		Renderer: renderer,
		Tunables: tunables,
		Rand:     rng,
		Now:      time.Now,
	}
}

// requireScene 检查创建可见实体所需的协作方
func (f *Factory) requireScene() error {
	if f.World == nil {
		return fmt.Errorf("%w: world", ErrNilCollaborator)
	}
	if f.Solver == nil {
		return fmt.Errorf("%w: solver", ErrNilCollaborator)
	}
	if f.Renderer == nil {
		return fmt.Errorf("%w: renderer", ErrNilCollaborator)
	}
	return nil
}

// requireWorld 检查创建逻辑实体所需的协作方
func (f *Factory) requireWorld() error {
	if f.World == nil {
		return fmt.Errorf("%w: world", ErrNilCollaborator)
	}
	return nil
}

// uniform 返回 [min, max) 内的随机数
func (f *Factory) uniform(lo, hi float64) float64 {
	return lo + f.Rand.Float64()*(hi-lo)
}

// now 返回工厂时钟的当前时间
func (f *Factory) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}
