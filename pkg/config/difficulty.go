package config

import (
	"errors"
	"fmt"
)

// ErrUnknownDifficulty 未知难度名称
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// DefaultDifficultyName 默认难度
const DefaultDifficultyName = "medium"

// Difficulty 难度预设：靶子数量范围和计时时长
type Difficulty struct {
	Name          string  `yaml:"name"`
	MinTargets    int     `yaml:"minTargets"`
	MaxTargets    int     `yaml:"maxTargets"`
	MinCapsules   int     `yaml:"minCapsules"`
	MaxCapsules   int     `yaml:"maxCapsules"`
	TimerDuration float64 `yaml:"timerDuration"` // 秒
}

// difficulties 内置难度预设
var difficulties = map[string]Difficulty{
	"easy":   {Name: "easy", MinTargets: 1, MaxTargets: 3, MinCapsules: 1, MaxCapsules: 3, TimerDuration: 60},
	"medium": {Name: "medium", MinTargets: 2, MaxTargets: 6, MinCapsules: 2, MaxCapsules: 6, TimerDuration: 45},
	"hard":   {Name: "hard", MinTargets: 4, MaxTargets: 12, MinCapsules: 4, MaxCapsules: 12, TimerDuration: 30},
}

// DifficultyNames 返回按从易到难排列的难度名称
func DifficultyNames() []string {
	return []string{"easy", "medium", "hard"}
}

// IsValidDifficulty 检查难度名称是否有效
func IsValidDifficulty(name string) bool {
	_, ok := difficulties[name]
	return ok
}

// LookupDifficulty 按名称查找难度预设
//
// 返回:
//   - Difficulty: 难度预设
//   - error: 名称未知时返回 ErrUnknownDifficulty
func LookupDifficulty(name string) (Difficulty, error) {
	d, ok := difficulties[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	return d, nil
}

// DifficultyOrDefault 查找难度，名称无效时返回默认难度
func DifficultyOrDefault(name string) Difficulty {
	if d, err := LookupDifficulty(name); err == nil {
		return d
	}
	return difficulties[DefaultDifficultyName]
}
