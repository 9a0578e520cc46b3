package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/entities"
	"github.com/gonewx/aimtrainer/pkg/logger"
	"github.com/gonewx/aimtrainer/pkg/physics"
	"github.com/gonewx/aimtrainer/pkg/render"
	"github.com/gonewx/aimtrainer/pkg/systems"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultCameraPosition 玩家相机的固定位置
var DefaultCameraPosition = mgl64.Vec3{0, 5, 10}

// Options 会话构建参数，零值字段使用默认值
type Options struct {
	Tunables        *config.Tunables
	Difficulty      config.Difficulty
	Capsule         config.CapsuleSettings
	LookSensitivity float64

	// Solver 刚体求解器，nil 时使用内置求解器
	Solver physics.Solver
	// Renderer 渲染协作方，nil 时使用内存场景
	Renderer render.Renderer

	Rand           *rand.Rand
	Now            func() time.Time
	CameraPosition *mgl64.Vec3
}

// Stats 本局统计
type Stats struct {
	Score    int
	Hits     int
	Shots    int
	Accuracy int // 命中率百分比，四舍五入
}

// Session 一局游戏的应用层
//
// 持有 World 和全部协作方，按固定顺序注册系统；
// 每帧消费 World 返回的事件，负责计分、补充靶子和阶段切换。
// 分数、命中数、开火数、开始和暂停标志都是会话字段，不使用全局变量。
type Session struct {
	ID uuid.UUID

	world    *ecs.World
	solver   physics.Solver
	renderer render.Renderer
	scene    *render.Scene // 使用内置场景时非 nil
	factory  *entities.Factory
	teardown *systems.Teardown
	tunables *config.Tunables
	rng      *rand.Rand

	camera   *components.Camera
	playerID ecs.EntityID
	timerID  ecs.EntityID
	stateID  ecs.EntityID

	difficulty  config.Difficulty
	capsule     config.CapsuleSettings
	sensitivity float64

	started bool
	paused  bool
	score   int
	hits    int
	shots   int

	log *logrus.Entry
}

// NewSession 创建会话：搭建场地、注册系统、创建玩家/计时器/状态实体
//
// 会话创建后处于菜单阶段，场上没有靶子，调用 Start 开始游戏。
func NewSession(opts Options) (*Session, error) {
	tunables := opts.Tunables
	if tunables == nil {
		tunables = config.DefaultTunables()
	}
	if err := tunables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tunables: %w", err)
	}

	difficulty := opts.Difficulty
	if difficulty.Name == "" {
		difficulty = config.DifficultyOrDefault(config.DefaultDifficultyName)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	solver := opts.Solver
	if solver == nil {
		solver = physics.NewWorld(mgl64.Vec3{0, -tunables.Physics.Gravity, 0}, tunables.Physics.FixedTimeStep)
	}

	var scene *render.Scene
	renderer := opts.Renderer
	if renderer == nil {
		scene = render.NewScene()
		renderer = scene
	} else if s, ok := renderer.(*render.Scene); ok {
		scene = s
	}

	cameraPos := DefaultCameraPosition
	if opts.CameraPosition != nil {
		cameraPos = *opts.CameraPosition
	}

	sensitivity := opts.LookSensitivity
	if sensitivity <= 0 {
		sensitivity = DefaultLookSensitivity
	}

	id := uuid.New()
	world := ecs.NewWorld()
	s := &Session{
		ID:          id,
		world:       world,
		solver:      solver,
		renderer:    renderer,
		scene:       scene,
		teardown:    systems.NewTeardown(world, solver, renderer),
		tunables:    tunables,
		rng:         rng,
		camera:      components.NewCamera(cameraPos),
		difficulty:  difficulty,
		capsule:     opts.Capsule.Sanitize(),
		sensitivity: sensitivity,
		log:         logger.WithComponent("Session").WithField("session", id.String()),
	}

	s.factory = entities.NewFactory(world, solver, renderer, tunables, rng)
	s.factory.Now = now

	if _, err := s.factory.BuildArena(); err != nil {
		return nil, fmt.Errorf("failed to build arena: %w", err)
	}

	s.registerSystems(now)

	var err error
	if s.playerID, err = s.factory.NewPlayer(s.camera); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if s.timerID, err = s.factory.NewGameTimer(difficulty.TimerDuration); err != nil {
		return nil, fmt.Errorf("failed to create timer: %w", err)
	}
	if s.stateID, err = s.factory.NewGameState(); err != nil {
		return nil, fmt.Errorf("failed to create game state: %w", err)
	}

	s.log.Infof("[Session] 会话已创建: difficulty=%s duration=%.0fs", difficulty.Name, difficulty.TimerDuration)
	return s, nil
}

// registerSystems 注册系统，顺序决定每帧的执行顺序
func (s *Session) registerSystems(now func() time.Time) {
	t := s.tunables
	s.world.AddSystem(systems.NewPhysicsSystem(s.world, s.solver, s.renderer, t.Physics.Substeps))
	s.world.AddSystem(systems.NewCapsuleMovementSystem(s.world, s.renderer, s.camera, s.isActive, t.Capsule))
	s.world.AddSystem(systems.NewTargetRotationSystem(s.world, s.renderer, s.camera))
	s.world.AddSystem(systems.NewCollisionSystem(s.world, s.teardown, s.camera, t.Collision.HitTolerance))
	s.world.AddSystem(systems.NewProjectileCleanupSystem(s.world, s.teardown, now))
	s.world.AddSystem(systems.NewTargetBoundsSystem(s.world, s.solver, t.Bounds))
	s.world.AddSystem(systems.NewTimerSystem(s.world, s.IsPaused))
}

func (s *Session) isActive() bool {
	return s.started && !s.paused
}

// Start 开始一局：按难度设置计时器、清场并生成初始靶子
func (s *Session) Start() error {
	s.started = true
	s.paused = false

	timer := s.timer()
	timer.Duration = s.difficulty.TimerDuration
	timer.Reset()
	timer.Start()
	s.setPhase(components.PhasePlaying)

	s.clearAll()
	if err := s.spawnInitial(); err != nil {
		return err
	}

	s.log.Infof("[Session] 游戏开始: %d 个靶子", s.targetCount(false)+s.targetCount(true))
	return nil
}

// Restart 清零统计、重置计时器、重新生成靶子，回到菜单阶段
func (s *Session) Restart() error {
	s.score, s.hits, s.shots = 0, 0, 0
	s.started = false
	s.paused = false

	timer := s.timer()
	timer.Duration = s.difficulty.TimerDuration
	timer.Reset()

	s.clearAll()
	if err := s.spawnInitial(); err != nil {
		return err
	}
	s.setPhase(components.PhaseMenu)

	s.log.Infof("[Session] 游戏已重置")
	return nil
}

// ResetStage 清场并重新生成靶子、重置计时器，统计和阶段保持不变
func (s *Session) ResetStage() error {
	s.clearAll()

	timer := s.timer()
	timer.Duration = s.difficulty.TimerDuration
	timer.Reset()

	return s.spawnInitial()
}

// Pause 暂停（只在游戏进行中且未结束时有效）
func (s *Session) Pause() {
	if !s.started || s.Phase() == components.PhaseGameOver {
		return
	}
	s.paused = true
}

// Resume 取消暂停
func (s *Session) Resume() {
	s.paused = false
}

// TogglePause 切换暂停状态
func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
		return
	}
	s.Pause()
}

// IsPaused 返回是否暂停
func (s *Session) IsPaused() bool {
	return s.paused
}

// Started 返回本局是否进行中
func (s *Session) Started() bool {
	return s.started
}

// Look 按鼠标位移转动视角，只在进行中且未暂停时生效
func (s *Session) Look(dx, dy float64) {
	if !s.isActive() {
		return
	}
	s.camera.Look(dx, dy, s.sensitivity)
}

// Shoot 开火
//
// 返回:
//   - ecs.EntityID: 子弹实体
//   - bool: 未开始或暂停时返回 false，不计开火数
func (s *Session) Shoot() (ecs.EntityID, bool) {
	if !s.isActive() {
		return 0, false
	}
	id, err := s.factory.NewProjectile(s.camera)
	if err != nil {
		s.log.Warnf("[Session] 创建子弹失败: %v", err)
		return 0, false
	}
	s.shots++
	return id, true
}

// Tick 推进一帧并处理本帧事件
//
// 参数:
//   - deltaTime: 距上一帧的时间（秒）
//
// 返回:
//   - []ecs.Event: 本帧事件，已被会话处理，返回给前端做表现
func (s *Session) Tick(deltaTime float64) []ecs.Event {
	events := s.world.Update(deltaTime)
	for _, e := range events {
		switch ev := e.(type) {
		case systems.HitEvent:
			s.onHit(ev)
		case systems.TimeUpEvent:
			s.onTimeUp()
		}
	}
	return events
}

func (s *Session) onHit(hit systems.HitEvent) {
	s.hits++
	earned := ScoreHit(hit.TargetInfo, hit.NormalizedDistance, hit.TargetDistance)
	s.score += earned

	s.log.WithFields(logrus.Fields{
		"earned":     earned,
		"normalized": hit.NormalizedDistance,
		"distance":   hit.TargetDistance,
	}).Debugf("[Session] 命中靶子 %d", hit.Target)

	// 命中事件在靶子销毁之后处理，population 不含被命中的靶子
	if hit.TargetInfo.IsCapsule {
		if s.targetCount(true) < s.difficulty.MaxCapsules {
			if _, err := s.factory.NewCapsuleTarget(s.camera, s.capsule); err != nil {
				s.log.Warnf("[Session] 补充胶囊靶失败: %v", err)
			}
		}
		return
	}
	if s.targetCount(false) < s.difficulty.MaxTargets {
		if _, err := s.factory.NewTarget(s.camera, s.rng.Float64() > 0.5); err != nil {
			s.log.Warnf("[Session] 补充靶子失败: %v", err)
		}
	}
}

func (s *Session) onTimeUp() {
	s.started = false
	s.setPhase(components.PhaseGameOver)
	stats := s.Stats()
	s.log.WithFields(logrus.Fields{
		"score":    stats.Score,
		"hits":     stats.Hits,
		"shots":    stats.Shots,
		"accuracy": stats.Accuracy,
	}).Infof("[Session] 时间到，游戏结束")
}

// spawnInitial 按难度生成 [min, max] 个靶子和胶囊靶
func (s *Session) spawnInitial() error {
	numTargets := s.initialCount(s.difficulty.MinTargets, s.difficulty.MaxTargets)
	numCapsules := s.initialCount(s.difficulty.MinCapsules, s.difficulty.MaxCapsules)

	for i := 0; i < numTargets; i++ {
		if _, err := s.factory.NewTarget(s.camera, s.rng.Float64() > 0.5); err != nil {
			return fmt.Errorf("failed to spawn target: %w", err)
		}
	}
	for i := 0; i < numCapsules; i++ {
		if _, err := s.factory.NewCapsuleTarget(s.camera, s.capsule); err != nil {
			return fmt.Errorf("failed to spawn capsule: %w", err)
		}
	}
	return nil
}

// initialCount 返回 [min, max] 内的随机整数，参数顺序可以颠倒
func (s *Session) initialCount(a, b int) int {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 0 {
		return 0
	}
	if lo < 0 {
		lo = 0
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// clearAll 销毁全部靶子和子弹
func (s *Session) clearAll() {
	removed := s.teardown.DestroyAll(s.world.GetEntitiesWith(components.KindTarget))
	removed += s.teardown.DestroyAll(s.world.GetEntitiesWith(components.KindProjectile))
	if removed > 0 {
		s.log.Debugf("[Session] 清场: 移除 %d 个实体", removed)
	}
}

// targetCount 统计场上的胶囊靶或普通靶数量
func (s *Session) targetCount(capsule bool) int {
	n := 0
	for _, id := range s.world.GetEntitiesWith(components.KindTarget) {
		if t, ok := ecs.GetComponent[*components.TargetComponent](s.world, id); ok && t.IsCapsule == capsule {
			n++
		}
	}
	return n
}

func (s *Session) timer() *components.GameTimerComponent {
	timer, _ := ecs.GetComponent[*components.GameTimerComponent](s.world, s.timerID)
	return timer
}

func (s *Session) setPhase(phase components.GamePhase) {
	if state, ok := ecs.GetComponent[*components.GameStateComponent](s.world, s.stateID); ok {
		state.State = phase
	}
}

// SetDifficulty 切换难度，下一次 Start/Restart/ResetStage 生效
func (s *Session) SetDifficulty(d config.Difficulty) {
	s.difficulty = d
}

// SetCapsuleSettings 更新胶囊靶参数，只影响之后生成的胶囊靶
func (s *Session) SetCapsuleSettings(c config.CapsuleSettings) {
	s.capsule = c.Sanitize()
}

// SetLookSensitivity 更新视角灵敏度
func (s *Session) SetLookSensitivity(v float64) {
	s.sensitivity = clampSensitivity(v)
}

// Stats 返回本局统计
func (s *Session) Stats() Stats {
	accuracy := 0
	if s.shots > 0 {
		accuracy = int(math.Floor(float64(s.hits)/float64(s.shots)*100 + 0.5))
	}
	return Stats{
		Score:    s.score,
		Hits:     s.hits,
		Shots:    s.shots,
		Accuracy: accuracy,
	}
}

// Phase 返回当前游戏阶段
func (s *Session) Phase() components.GamePhase {
	state, ok := ecs.GetComponent[*components.GameStateComponent](s.world, s.stateID)
	if !ok {
		return components.PhaseMenu
	}
	return state.State
}

// Timer 返回计时器状态副本
func (s *Session) Timer() components.GameTimerComponent {
	return *s.timer()
}

// Difficulty 返回当前难度
func (s *Session) Difficulty() config.Difficulty {
	return s.difficulty
}

// Camera 返回玩家相机
func (s *Session) Camera() *components.Camera {
	return s.camera
}

// World 返回实体注册表
func (s *Session) World() *ecs.World {
	return s.world
}

// Solver 返回刚体求解器
func (s *Session) Solver() physics.Solver {
	return s.solver
}

// Scene 返回内置场景；使用外部渲染方时为 nil
func (s *Session) Scene() *render.Scene {
	return s.scene
}
