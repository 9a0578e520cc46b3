package systems

import (
	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/ecs"
	"github.com/gonewx/aimtrainer/pkg/logger"
)

// TimerSystem 倒计时系统
//
// 每个未暂停帧：
//   - 计时中：TimeRemaining -= deltaTime；<=0 时停止计时并进入等待结束
//   - 等待结束（之后的帧）：场上没有子弹实体时发出 TimeUpEvent 并回到空闲
//
// 等待结束让最后一刻射出的子弹（压哨球）仍能命中计分。
// 本系统不修改 GameState，阶段切换由事件消费方负责。
type TimerSystem struct {
	world    *ecs.World
	isPaused func() bool
}

// NewTimerSystem 创建计时系统
//
// 参数:
//   - world: 实体所在的 World
//   - isPaused: 暂停谓词，每帧查询一次，可为 nil
func NewTimerSystem(world *ecs.World, isPaused func() bool) *TimerSystem {
	return &TimerSystem{
		world:    world,
		isPaused: isPaused,
	}
}

// Update 推进所有计时器
func (s *TimerSystem) Update(deltaTime float64) {
	if s.isPaused != nil && s.isPaused() {
		return
	}

	for _, id := range s.world.GetEntitiesWith(components.KindGameTimer) {
		timer, ok := ecs.GetComponent[*components.GameTimerComponent](s.world, id)
		if !ok {
			continue
		}

		if timer.IsActive {
			timer.TimeRemaining -= deltaTime
			if timer.TimeRemaining <= 0 {
				timer.IsActive = false
				timer.PendingGameOver = true
				logger.Log.Debugf("[TimerSystem] 时间到，等待飞行中的子弹（剩余 %.3f 秒）", timer.TimeRemaining)
			}
		} else if timer.PendingGameOver {
			inFlight := len(s.world.GetEntitiesWith(components.KindProjectile))
			if inFlight > 0 {
				continue
			}
			timer.PendingGameOver = false
			s.world.Emit(TimeUpEvent{Timer: id})
			logger.Log.Debugf("[TimerSystem] 计时器 %d 结束", id)
		}
	}
}
