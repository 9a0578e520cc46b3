package config

// CapsuleSettings 胶囊靶的外观和速度设置（玩家可调）
type CapsuleSettings struct {
	Radius        float64 `yaml:"radius"`
	Height        float64 `yaml:"height"`
	MovementSpeed float64 `yaml:"movementSpeed"`
}

// DefaultCapsuleSettings 返回默认胶囊设置
func DefaultCapsuleSettings() CapsuleSettings {
	return CapsuleSettings{
		Radius:        0.6,
		Height:        3.6,
		MovementSpeed: 22,
	}
}

// Sanitize 将非正值替换为默认值
func (c CapsuleSettings) Sanitize() CapsuleSettings {
	def := DefaultCapsuleSettings()
	if c.Radius <= 0 {
		c.Radius = def.Radius
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.MovementSpeed <= 0 {
		c.MovementSpeed = def.MovementSpeed
	}
	return c
}
