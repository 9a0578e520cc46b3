package main

import (
	"flag"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/game"
	"github.com/gonewx/aimtrainer/pkg/logger"
	"github.com/gonewx/aimtrainer/pkg/systems"
	"github.com/sirupsen/logrus"
)

var (
	tunablesPath = flag.String("tunables", "data/tunables.yaml", "调参文件路径")
	difficulty   = flag.String("difficulty", config.DefaultDifficultyName, "难度 easy/medium/hard")
	seed         = flag.Int64("seed", 1, "随机种子")
	tps          = flag.Int("tps", 60, "每秒模拟帧数")
	fireEvery    = flag.Int("fire-every", 20, "机器人每隔多少帧开火一次")
	maxSeconds   = flag.Float64("max-seconds", 600, "模拟时长上限（秒）")
	logLevel     = flag.String("log-level", "", "日志级别（debug/info/warn/error）")
	logFormat    = flag.String("log-format", "", "日志格式（text/json）")
)

// simClock 模拟时钟，每帧按 deltaTime 推进，让子弹寿命和模拟时间一致
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time {
	return c.now
}

func (c *simClock) Advance(seconds float64) {
	c.now = c.now.Add(time.Duration(seconds * float64(time.Second)))
}

// aimAtNearest 把相机对准最近的靶子，返回是否找到靶子
func aimAtNearest(s *game.Session) bool {
	world := s.World()
	cam := s.Camera()

	var best ecs.EntityID
	bestDist := math.MaxFloat64
	for _, id := range world.GetEntitiesWith(components.KindTarget, components.KindTransform) {
		tc, _ := ecs.GetComponent[*components.TransformComponent](world, id)
		if d := tc.Position.Sub(cam.Position).Len(); d < bestDist {
			best, bestDist = id, d
		}
	}
	if best == 0 {
		return false
	}

	tc, _ := ecs.GetComponent[*components.TransformComponent](world, best)
	dir := tc.Position.Sub(cam.Position).Normalize()
	cam.Pitch = math.Asin(dir.Y())
	cam.Yaw = math.Atan2(-dir.X(), -dir.Z())
	return true
}

func main() {
	flag.Parse()
	logger.Init(logger.Options{Level: *logLevel, Format: *logFormat})
	log := logger.WithComponent("Simulate")

	tunables, err := config.LoadTunables(*tunablesPath)
	if err != nil {
		log.Warnf("[Simulate] 加载调参失败: %v（使用默认值）", err)
		tunables = config.DefaultTunables()
	}

	preset, err := config.LookupDifficulty(*difficulty)
	if err != nil {
		log.Errorf("[Simulate] %v（可选: %v）", err, config.DifficultyNames())
		os.Exit(2)
	}

	clock := &simClock{now: time.Unix(0, 0)}
	session, err := game.NewSession(game.Options{
		Tunables:   tunables,
		Difficulty: preset,
		Capsule:    config.DefaultCapsuleSettings(),
		Rand:       rand.New(rand.NewSource(*seed)),
		Now:        clock.Now,
	})
	if err != nil {
		log.Fatalf("[Simulate] 创建会话失败: %v", err)
	}
	log = log.WithField("session", session.ID.String())

	if err := session.Start(); err != nil {
		log.Fatalf("[Simulate] 开始失败: %v", err)
	}

	dt := 1.0 / float64(*tps)
	maxTicks := int(*maxSeconds * float64(*tps))
	tick := 0
	for ; tick < maxTicks && session.Phase() != components.PhaseGameOver; tick++ {
		if *fireEvery > 0 && tick%*fireEvery == 0 && aimAtNearest(session) {
			session.Shoot()
		}

		clock.Advance(dt)
		for _, e := range session.Tick(dt) {
			if hit, ok := e.(systems.HitEvent); ok {
				log.WithFields(logrus.Fields{
					"tick":       tick,
					"capsule":    hit.TargetInfo.IsCapsule,
					"moving":     hit.TargetInfo.IsMoving,
					"normalized": hit.NormalizedDistance,
					"distance":   hit.TargetDistance,
				}).Debug("[Simulate] 命中")
			}
		}
	}

	stats := session.Stats()
	log.WithFields(logrus.Fields{
		"difficulty": preset.Name,
		"ticks":      tick,
		"seconds":    float64(tick) * dt,
		"phase":      session.Phase(),
		"score":      stats.Score,
		"hits":       stats.Hits,
		"shots":      stats.Shots,
		"accuracy":   stats.Accuracy,
	}).Info("[Simulate] 模拟结束")

	if session.Phase() != components.PhaseGameOver {
		log.Warn("[Simulate] 达到时长上限，游戏未结束")
		os.Exit(1)
	}
}
