package components

import "github.com/gonewx/aimtrainer/pkg/ecs"

// GamePhase 面向界面的粗粒度游戏阶段
type GamePhase string

const (
	PhaseMenu     GamePhase = "menu"
	PhasePlaying  GamePhase = "playing"
	PhaseGameOver GamePhase = "gameover"
)

// GameStateComponent 全局游戏阶段，全局唯一
// 只由应用层（game.Session）修改，计时系统不会改它
type GameStateComponent struct {
	State GamePhase
}

// NewGameStateComponent 创建处于菜单阶段的状态组件
func NewGameStateComponent() *GameStateComponent {
	return &GameStateComponent{State: PhaseMenu}
}

// Kind 实现 ecs.Component
func (*GameStateComponent) Kind() ecs.ComponentKind { return KindGameState }
