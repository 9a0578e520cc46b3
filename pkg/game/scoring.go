package game

import (
	"math"

	"github.com/gonewx/aimtrainer/pkg/components"
)

// 各类靶子的基础分
const (
	BaseScoreStatic  = 50
	BaseScoreMoving  = 100
	BaseScoreCapsule = 60
)

// AccuracyMultiplier 命中精度倍率，正中为 1，边缘为 0.25
func AccuracyMultiplier(normalizedDistance float64) float64 {
	return 1.0 - normalizedDistance*0.75
}

// DistanceMultiplier 距离倍率
//
// 以 20 单位为基准（倍率 1），更近时倍率线性降低，不设下限：
// 胶囊靶在距离 0 处为 0，其余靶子为 0.6。
// 更远时胶囊靶每 20 单位加 1 倍，最多 5 倍；其余靶子每 50 单位加 1 倍，最多 3 倍。
func DistanceMultiplier(target components.TargetComponent, distance float64) float64 {
	if target.IsCapsule {
		return 1.0 + math.Min((distance-20)/20, 4.0)
	}
	return 1.0 + math.Min((distance-20)/50, 2.0)
}

// BaseScore 靶子的基础分
func BaseScore(target components.TargetComponent) int {
	switch {
	case target.IsCapsule:
		return BaseScoreCapsule
	case target.IsMoving:
		return BaseScoreMoving
	default:
		return BaseScoreStatic
	}
}

// ScoreHit 计算一次命中的得分（四舍五入）
//
// 参数:
//   - target: 被命中的靶子数据
//   - normalizedDistance: 命中点到靶心的归一化距离 [0, 1]
//   - targetDistance: 命中时观察者到靶子的距离
func ScoreHit(target components.TargetComponent, normalizedDistance, targetDistance float64) int {
	score := float64(BaseScore(target)) *
		AccuracyMultiplier(normalizedDistance) *
		DistanceMultiplier(target, targetDistance)
	return int(math.Floor(score + 0.5))
}
