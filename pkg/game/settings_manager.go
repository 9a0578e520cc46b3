package game

import (
	"fmt"

	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/logger"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 视角灵敏度范围
const (
	MinLookSensitivity     = 0.1
	MaxLookSensitivity     = 3.0
	DefaultLookSensitivity = 1.0
)

// GameSettings 玩家可调的全局设置
type GameSettings struct {
	Difficulty      string                 `yaml:"difficulty"`      // easy / medium / hard
	LookSensitivity float64                `yaml:"lookSensitivity"` // 鼠标灵敏度倍数，1 为默认
	Capsule         config.CapsuleSettings `yaml:"capsule"`         // 胶囊靶外观和速度
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Difficulty:      config.DefaultDifficultyName,
		LookSensitivity: DefaultLookSensitivity,
		Capsule:         config.DefaultCapsuleSettings(),
	}
}

// sanitize 修正非法值：未知难度回到默认难度，灵敏度钳制，胶囊参数非正时用默认值
func (s *GameSettings) sanitize() {
	if !config.IsValidDifficulty(s.Difficulty) {
		s.Difficulty = config.DefaultDifficultyName
	}
	if s.LookSensitivity == 0 {
		s.LookSensitivity = DefaultLookSensitivity
	}
	s.LookSensitivity = clampSensitivity(s.LookSensitivity)
	s.Capsule = s.Capsule.Sanitize()
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 目前总是 nil，加载失败只记录警告
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		logger.Log.Warnf("[SettingsManager] 加载设置失败: %v（使用默认设置）", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或没有存档时使用默认设置
//
// 返回：
//   - error: 读取或反序列化失败时返回错误，此时设置已回到默认值
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.sanitize()

	sm.settings = loaded
	logger.Log.Debugf("[SettingsManager] 设置已加载: difficulty=%s", loaded.Difficulty)
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时直接返回 nil（降级模式）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Log.Debugf("[SettingsManager] 设置已保存")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Difficulty 返回当前难度预设
func (sm *SettingsManager) Difficulty() config.Difficulty {
	return config.DifficultyOrDefault(sm.settings.Difficulty)
}

// SetDifficulty 设置难度
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
//
// 返回：
//   - error: 名称未知时返回 config.ErrUnknownDifficulty，设置不变
func (sm *SettingsManager) SetDifficulty(name string) error {
	if _, err := config.LookupDifficulty(name); err != nil {
		return err
	}
	sm.settings.Difficulty = name
	return nil
}

// SetLookSensitivity 设置视角灵敏度，限制在 [MinLookSensitivity, MaxLookSensitivity]
func (sm *SettingsManager) SetLookSensitivity(sensitivity float64) {
	sm.settings.LookSensitivity = clampSensitivity(sensitivity)
}

// SetCapsuleSettings 设置胶囊靶参数，非正值替换为默认值
func (sm *SettingsManager) SetCapsuleSettings(capsule config.CapsuleSettings) {
	sm.settings.Capsule = capsule.Sanitize()
}

// ResetToDefaults 恢复全部默认设置（不自动保存）
func (sm *SettingsManager) ResetToDefaults() {
	sm.settings = DefaultSettings()
}

func clampSensitivity(v float64) float64 {
	if v < MinLookSensitivity {
		return MinLookSensitivity
	}
	if v > MaxLookSensitivity {
		return MaxLookSensitivity
	}
	return v
}
