package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables 模拟核心用到的全部数值常量
//
// 系统和工厂在构造时读取，测试可以覆盖任意字段。
// 配置文件位置: data/tunables.yaml
type Tunables struct {
	Physics    PhysicsTunables    `yaml:"physics"`
	Collision  CollisionTunables  `yaml:"collision"`
	Projectile ProjectileTunables `yaml:"projectile"`
	Capsule    CapsuleTunables    `yaml:"capsule"`
	Bounds     BoundsTunables     `yaml:"bounds"`
	Arena      ArenaTunables      `yaml:"arena"`
	Spawn      SpawnTunables      `yaml:"spawn"`
}

// PhysicsTunables 刚体求解器参数
type PhysicsTunables struct {
	Gravity       float64 `yaml:"gravity"`       // 向下重力加速度（正值）
	Substeps      int     `yaml:"substeps"`      // 每帧最多子步数
	FixedTimeStep float64 `yaml:"fixedTimeStep"` // 内部固定步长（秒）
}

// CollisionTunables 命中判定参数
type CollisionTunables struct {
	// HitTolerance 命中半径 = target.Size + HitTolerance（近似子弹半径加容差）
	HitTolerance float64 `yaml:"hitTolerance"`
}

// ProjectileTunables 子弹参数
type ProjectileTunables struct {
	Speed       float64 `yaml:"speed"`
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Restitution float64 `yaml:"restitution"`
	LifetimeMs  int     `yaml:"lifetimeMs"`
	Damage      int     `yaml:"damage"`
}

// CapsuleTunables 胶囊追踪/分离参数
type CapsuleTunables struct {
	MinSeparation    float64 `yaml:"minSeparation"`    // 胶囊之间的最小水平距离
	SeparationPasses int     `yaml:"separationPasses"` // 分离迭代次数
	Bound            float64 `yaml:"bound"`            // X/Z 钳制范围
	MaxDeltaTime     float64 `yaml:"maxDeltaTime"`     // 单帧最大步进时间
	MinDistance      float64 `yaml:"minDistance"`      // 距观察者多近时停下
}

// BoundsTunables 运动靶越界修正参数
type BoundsTunables struct {
	MaxAbsX float64 `yaml:"maxAbsX"`
	MaxAbsZ float64 `yaml:"maxAbsZ"`
	MinY    float64 `yaml:"minY"`
	MaxY    float64 `yaml:"maxY"`
	Damping float64 `yaml:"damping"` // 反向速度的衰减系数
}

// ArenaTunables 场馆几何
type ArenaTunables struct {
	HalfSize   float64 `yaml:"halfSize"`   // 地面和墙的半边长
	WallHeight float64 `yaml:"wallHeight"` // 墙高
}

// SpawnTunables 靶子生成参数
type SpawnTunables struct {
	MinViewerDistance float64 `yaml:"minViewerDistance"` // 距观察者的最小生成距离
	HorizontalRange   float64 `yaml:"horizontalRange"`   // X/Z 生成范围（±）
	MinHeight         float64 `yaml:"minHeight"`
	MaxHeight         float64 `yaml:"maxHeight"`
}

// DefaultTunables 返回与原版一致的默认值
func DefaultTunables() *Tunables {
	return &Tunables{
		Physics: PhysicsTunables{
			Gravity:       30,
			Substeps:      10,
			FixedTimeStep: 1.0 / 60.0,
		},
		Collision: CollisionTunables{
			HitTolerance: 0.5,
		},
		Projectile: ProjectileTunables{
			Speed:       80,
			Radius:      0.3,
			Mass:        0.5,
			Restitution: 0.8,
			LifetimeMs:  5000,
			Damage:      1,
		},
		Capsule: CapsuleTunables{
			MinSeparation:    10,
			SeparationPasses: 3,
			Bound:            44,
			MaxDeltaTime:     0.1,
			MinDistance:      6,
		},
		Bounds: BoundsTunables{
			MaxAbsX: 45,
			MaxAbsZ: 45,
			MinY:    2,
			MaxY:    20,
			Damping: 0.8,
		},
		Arena: ArenaTunables{
			HalfSize:   50,
			WallHeight: 10,
		},
		Spawn: SpawnTunables{
			MinViewerDistance: 20,
			HorizontalRange:   40,
			MinHeight:         2,
			MaxHeight:         17,
		},
	}
}

// LoadTunables 加载调参文件
//
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/tunables.yaml"）
//
// 返回:
//   - *Tunables: 合并默认值后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadTunables(path string) (*Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tunables: %w", err)
	}
	return ParseTunables(data)
}

// ParseTunables 从 YAML 数据解析调参
func ParseTunables(data []byte) (*Tunables, error) {
	tunables := DefaultTunables()
	if err := yaml.Unmarshal(data, tunables); err != nil {
		return nil, fmt.Errorf("failed to parse tunables: %w", err)
	}

	if err := tunables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tunables: %w", err)
	}

	return tunables, nil
}

// Validate 验证配置有效性
func (t *Tunables) Validate() error {
	if t.Physics.Substeps < 1 {
		return fmt.Errorf("physics.substeps must be >= 1, got %d", t.Physics.Substeps)
	}
	if t.Physics.FixedTimeStep <= 0 {
		return fmt.Errorf("physics.fixedTimeStep must be > 0, got %v", t.Physics.FixedTimeStep)
	}
	if t.Collision.HitTolerance < 0 {
		return fmt.Errorf("collision.hitTolerance must be >= 0, got %v", t.Collision.HitTolerance)
	}
	if t.Projectile.LifetimeMs <= 0 {
		return fmt.Errorf("projectile.lifetimeMs must be > 0, got %d", t.Projectile.LifetimeMs)
	}
	if t.Projectile.Speed <= 0 || t.Projectile.Radius <= 0 {
		return fmt.Errorf("projectile speed and radius must be > 0")
	}
	if t.Capsule.SeparationPasses < 0 {
		return fmt.Errorf("capsule.separationPasses must be >= 0, got %d", t.Capsule.SeparationPasses)
	}
	if t.Capsule.Bound <= 0 || t.Capsule.MaxDeltaTime <= 0 {
		return fmt.Errorf("capsule bound and maxDeltaTime must be > 0")
	}
	if t.Bounds.MinY > t.Bounds.MaxY {
		return fmt.Errorf("bounds range invalid: minY(%.1f) > maxY(%.1f)", t.Bounds.MinY, t.Bounds.MaxY)
	}
	if t.Spawn.MinHeight > t.Spawn.MaxHeight {
		return fmt.Errorf("spawn height range invalid: min(%.1f) > max(%.1f)", t.Spawn.MinHeight, t.Spawn.MaxHeight)
	}
	if t.Spawn.MinViewerDistance >= t.Spawn.HorizontalRange*2 {
		return fmt.Errorf("spawn.minViewerDistance(%.1f) leaves no room inside horizontalRange(%.1f)",
			t.Spawn.MinViewerDistance, t.Spawn.HorizontalRange)
	}
	if t.Arena.HalfSize <= 0 {
		return fmt.Errorf("arena.halfSize must be > 0, got %v", t.Arena.HalfSize)
	}
	return nil
}
