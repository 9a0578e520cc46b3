package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/gonewx/aimtrainer/pkg/components"
	"github.com/gonewx/aimtrainer/pkg/config"
	"github.com/gonewx/aimtrainer/pkg/game"
	"github.com/gonewx/aimtrainer/pkg/logger"
	"github.com/gonewx/aimtrainer/pkg/render"
	"github.com/gonewx/aimtrainer/pkg/systems"
	"github.com/gonewx/aimtrainer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 800
	screenHeight = 800

	// 俯视图缩放：场地 100x100 单位映射到 700 像素
	pixelsPerUnit = 7.0
	hitFlashTicks = 20
)

var (
	tunablesPath = flag.String("tunables", "data/tunables.yaml", "调参文件路径")
	difficulty   = flag.String("difficulty", "", "难度 easy/medium/hard，留空使用已保存的设置")
	logLevel     = flag.String("log-level", "", "日志级别（debug/info/warn/error）")
)

var (
	colorBackground = color.RGBA{R: 74, G: 124, B: 89, A: 255}
	colorWall       = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colorTarget     = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	colorMoving     = color.RGBA{R: 255, G: 160, B: 40, A: 255}
	colorCapsule    = color.RGBA{R: 120, G: 80, B: 220, A: 255}
	colorProjectile = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorPlayer     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorHit        = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

// hitMarker 命中位置的短暂标记
type hitMarker struct {
	x, z  float64
	score int
	ticks int
}

// AimTrainerGame ebiten 前端：俯视图显示场景，鼠标转向和开火
type AimTrainerGame struct {
	session  *game.Session
	settings *game.SettingsManager

	lastCursorX, lastCursorY int
	cursorCaptured           bool

	markers []hitMarker
}

// NewAimTrainerGame 创建前端实例
func NewAimTrainerGame(session *game.Session, settings *game.SettingsManager) *AimTrainerGame {
	return &AimTrainerGame{
		session:  session,
		settings: settings,
	}
}

// Update 处理输入并推进一帧
func (g *AimTrainerGame) Update() error {
	g.handleInput()

	events := g.session.Tick(1.0 / float64(ebiten.TPS()))
	for _, e := range events {
		if hit, ok := e.(systems.HitEvent); ok {
			g.markers = append(g.markers, hitMarker{
				x:     hit.Position.X(),
				z:     hit.Position.Z(),
				score: game.ScoreHit(hit.TargetInfo, hit.NormalizedDistance, hit.TargetDistance),
				ticks: hitFlashTicks,
			})
		}
		if e.EventName() == systems.EventTimeUp {
			g.releaseCursor()
		}
	}

	alive := g.markers[:0]
	for _, m := range g.markers {
		m.ticks--
		if m.ticks > 0 {
			alive = append(alive, m)
		}
	}
	g.markers = alive
	return nil
}

func (g *AimTrainerGame) handleInput() {
	s := g.session

	switch s.Phase() {
	case components.PhaseMenu:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := s.Start(); err != nil {
				logger.Log.Errorf("[Main] 开始游戏失败: %v", err)
				return
			}
			g.captureCursor()
		}
		g.handleDifficultyKeys()
		return
	case components.PhaseGameOver:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := s.Restart(); err != nil {
				logger.Log.Errorf("[Main] 重新开始失败: %v", err)
			}
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.TogglePause()
		if s.IsPaused() {
			g.releaseCursor()
		} else {
			g.captureCursor()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if err := s.ResetStage(); err != nil {
			logger.Log.Errorf("[Main] 重置关卡失败: %v", err)
		}
	}

	x, y := ebiten.CursorPosition()
	if g.cursorCaptured && !s.IsPaused() {
		s.Look(float64(x-g.lastCursorX), float64(y-g.lastCursorY))
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			s.Shoot()
		}
	}
	g.lastCursorX, g.lastCursorY = x, y
}

// handleDifficultyKeys 菜单中按 1/2/3 切换难度并保存
func (g *AimTrainerGame) handleDifficultyKeys() {
	keys := map[ebiten.Key]string{
		ebiten.Key1: "easy",
		ebiten.Key2: "medium",
		ebiten.Key3: "hard",
	}
	for key, name := range keys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if err := g.settings.SetDifficulty(name); err != nil {
			logger.Log.Warnf("[Main] %v", err)
			continue
		}
		if err := g.settings.Save(); err != nil {
			logger.Log.Warnf("[Main] 保存设置失败: %v", err)
		}
		g.session.SetDifficulty(g.settings.Difficulty())
		if err := g.session.Restart(); err != nil {
			logger.Log.Errorf("[Main] 重新开始失败: %v", err)
		}
	}
}

func (g *AimTrainerGame) captureCursor() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	g.lastCursorX, g.lastCursorY = ebiten.CursorPosition()
	g.cursorCaptured = true
}

func (g *AimTrainerGame) releaseCursor() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	g.cursorCaptured = false
}

// worldToScreen 把世界坐标的 X/Z 投影到俯视图
func worldToScreen(x, z float64) (float32, float32) {
	return float32(screenWidth/2 + x*pixelsPerUnit), float32(screenHeight/2 + z*pixelsPerUnit)
}

// Draw 绘制俯视图和状态栏
func (g *AimTrainerGame) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	// 场地边界
	x0, y0 := worldToScreen(-50, -50)
	vector.StrokeRect(screen, x0, y0, 100*pixelsPerUnit, 100*pixelsPerUnit, 3, colorWall, false)

	if scene := g.session.Scene(); scene != nil {
		for _, node := range scene.Nodes() {
			g.drawNode(screen, node)
		}
	}

	g.drawPlayer(screen)

	for _, m := range g.markers {
		cx, cy := worldToScreen(m.x, m.z)
		vector.StrokeCircle(screen, cx, cy, float32(hitFlashTicks-m.ticks)+6, 2, colorHit, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d", m.score), int(cx)+8, int(cy)-16)
	}

	g.drawHUD(screen)
}

func (g *AimTrainerGame) drawNode(screen *ebiten.Image, node render.NodeState) {
	cx, cy := worldToScreen(node.Position.X(), node.Position.Z())
	radius := float32(node.Radius * pixelsPerUnit)

	switch node.Kind {
	case render.NodeTarget:
		vector.DrawFilledCircle(screen, cx, cy, radius, colorTarget, true)
	case render.NodeMovingTarget:
		// 高度越高画得越大，方便看出弹跳
		scale := float32(1 + node.Position.Y()/40)
		vector.DrawFilledCircle(screen, cx, cy, radius*scale, colorMoving, true)
	case render.NodeCapsule:
		vector.DrawFilledCircle(screen, cx, cy, radius*2, colorCapsule, true)
		vector.StrokeCircle(screen, cx, cy, radius*2, 1, colorWall, true)
	case render.NodeProjectile:
		vector.DrawFilledCircle(screen, cx, cy, math32Max(radius, 2), colorProjectile, true)
	}
}

func (g *AimTrainerGame) drawPlayer(screen *ebiten.Image) {
	cam := g.session.Camera()
	px, py := worldToScreen(cam.Position.X(), cam.Position.Z())
	vector.DrawFilledRect(screen, px-4, py-4, 8, 8, colorPlayer, false)

	forward := cam.Forward()
	horizontal := math.Hypot(forward.X(), forward.Z())
	if horizontal < 1e-6 {
		return
	}
	const sight = 60.0
	fx, fy := worldToScreen(
		cam.Position.X()+forward.X()/horizontal*sight,
		cam.Position.Z()+forward.Z()/horizontal*sight,
	)
	vector.StrokeLine(screen, px, py, fx, fy, 1, colorPlayer, true)
}

func (g *AimTrainerGame) drawHUD(screen *ebiten.Image) {
	s := g.session
	stats := s.Stats()
	timer := s.Timer()

	hud := fmt.Sprintf("Score: %d  Hits: %d  Shots: %d  Accuracy: %d%%  Time: %d  [%s]",
		stats.Score, stats.Hits, stats.Shots, stats.Accuracy, timer.DisplaySeconds(), s.Difficulty().Name)
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)

	targets := len(s.World().GetEntitiesWith(components.KindTarget))
	projectiles := len(s.World().GetEntitiesWith(components.KindProjectile))
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Targets: %d  Projectiles: %d  FPS: %.0f", targets, projectiles, ebiten.ActualFPS()), 10, 26)

	switch s.Phase() {
	case components.PhaseMenu:
		ebitenutil.DebugPrintAt(screen, "Click or Enter to start  |  1/2/3: easy/medium/hard", 10, screenHeight-40)
	case components.PhaseGameOver:
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TIME UP  Final score: %d  |  R to restart", stats.Score), 10, screenHeight-40)
	default:
		if s.IsPaused() {
			ebitenutil.DebugPrintAt(screen, "PAUSED  |  Esc to resume  Backspace to reset stage", 10, screenHeight-40)
		} else if timer.PendingGameOver {
			ebitenutil.DebugPrintAt(screen, "Waiting for shots in flight...", 10, screenHeight-40)
		}
	}
}

// Layout 返回逻辑屏幕尺寸
func (g *AimTrainerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func math32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func main() {
	flag.Parse()
	logger.Init(logger.Options{Level: *logLevel})
	log := logger.WithComponent("Main")

	tunables, err := config.LoadTunables(*tunablesPath)
	if err != nil {
		log.Warnf("[Main] 加载调参失败: %v（使用默认值）", err)
		tunables = config.DefaultTunables()
	}

	gdataManager, err := utils.OpenStorage(utils.AppName)
	if err != nil {
		log.Warnf("[Main] 无法打开存储: %v（设置不会保存）", err)
		gdataManager = nil
	}
	settings, _ := game.NewSettingsManager(gdataManager)

	if *difficulty != "" {
		if err := settings.SetDifficulty(*difficulty); err != nil {
			log.Errorf("[Main] %v（可选: %v）", err, config.DifficultyNames())
			os.Exit(2)
		}
	}

	gs := settings.GetSettings()
	session, err := game.NewSession(game.Options{
		Tunables:        tunables,
		Difficulty:      settings.Difficulty(),
		Capsule:         gs.Capsule,
		LookSensitivity: gs.LookSensitivity,
	})
	if err != nil {
		log.Fatalf("[Main] 创建会话失败: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Aim Trainer")

	if err := ebiten.RunGame(NewAimTrainerGame(session, settings)); err != nil {
		log.Fatal(err)
	}
}

var _ ebiten.Game = (*AimTrainerGame)(nil)
