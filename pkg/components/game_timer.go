package components

import "github.com/gonewx/aimtrainer/pkg/ecs"

// GameTimerComponent 倒计时状态机
//
// 状态:
//   - 空闲: IsActive=false, PendingGameOver=false
//   - 计时: IsActive=true，每个未暂停帧减去 deltaTime
//   - 等待结束: IsActive=false, PendingGameOver=true（TimeRemaining<=0 时进入）
//
// 等待结束状态在场上没有子弹时才会触发结束事件并回到空闲。
type GameTimerComponent struct {
	Duration        float64 // 总时长（秒）
	TimeRemaining   float64 // 剩余时间（秒），等待结束期间可以为负
	IsActive        bool
	PendingGameOver bool
}

// NewGameTimerComponent 创建处于空闲状态的计时器
func NewGameTimerComponent(duration float64) *GameTimerComponent {
	return &GameTimerComponent{
		Duration:      duration,
		TimeRemaining: duration,
	}
}

// Kind 实现 ecs.Component
func (*GameTimerComponent) Kind() ecs.ComponentKind { return KindGameTimer }

// Start 重置剩余时间并开始计时
func (t *GameTimerComponent) Start() {
	t.IsActive = true
	t.TimeRemaining = t.Duration
	t.PendingGameOver = false
}

// Stop 停止计时
func (t *GameTimerComponent) Stop() {
	t.IsActive = false
}

// Reset 重置剩余时间并回到空闲
func (t *GameTimerComponent) Reset() {
	t.TimeRemaining = t.Duration
	t.IsActive = false
	t.PendingGameOver = false
}

// DisplaySeconds 界面显示用的剩余整秒数（向上取整，不小于0）
func (t *GameTimerComponent) DisplaySeconds() int {
	if t.TimeRemaining <= 0 {
		return 0
	}
	s := int(t.TimeRemaining)
	if float64(s) < t.TimeRemaining {
		s++
	}
	return s
}
