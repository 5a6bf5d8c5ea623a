package main

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/assets"
	"github.com/bproctor91/sidewinder/config"
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/ecs/entity"
	"github.com/bproctor91/sidewinder/ecs/system"
	"github.com/bproctor91/sidewinder/level"
	"github.com/bproctor91/sidewinder/levels"
	"github.com/bproctor91/sidewinder/physics"
	"github.com/bproctor91/sidewinder/render"
)

var backgroundColor = color.RGBA{R: 0x16, G: 0x18, B: 0x21, A: 0xff}

// session is one fully wired simulation: world, physics space, render
// stage and the spawned level. A hot reload swaps the whole session.
type session struct {
	world  *ecs.World
	engine *physics.Space
	stage  *render.Stage
	deps   entity.Deps
	lvl    *level.Level

	// boss descriptors held back at load time, spawned on trigger
	encounters []level.Spawn
}

// SpawnDescriptor creates one entity from a spawn descriptor. External
// triggers (boss encounters, scripted events) use it mid-session through
// the same contract as level loading.
func (s *session) SpawnDescriptor(sp level.Spawn) (ecs.Entity, error) {
	return entity.Spawn(s.world, s.deps, sp)
}

// TriggerEncounter spawns the next held-back boss descriptor, if any.
func (s *session) TriggerEncounter() (ecs.Entity, bool, error) {
	if len(s.encounters) == 0 {
		return 0, false, nil
	}
	sp := s.encounters[0]
	s.encounters = s.encounters[1:]
	e, err := s.SpawnDescriptor(sp)
	return e, true, err
}

func newSession(cfg *config.Config, lvl *level.Level, log *zap.Logger) (*session, error) {
	library, err := assets.LoadAnimationLibrary()
	if err != nil {
		return nil, fmt.Errorf("load animations: %w", err)
	}

	engine := physics.NewSpace(cfg.Simulation.Gravity)
	stage := render.NewStage()
	world := ecs.NewWorld(log)

	deps := entity.Deps{
		Engine:   engine,
		Stage:    stage,
		Library:  library,
		Sheets:   makeSheets(library),
		Movement: cfg.Movement,
		Combat:   cfg.Combat,
		Log:      log,
	}

	// finalizer order is the flush release order: body, then node
	world.AddFinalizer(func(w *ecs.World, e ecs.Entity) {
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || pb.Type == physics.Static {
			return
		}
		if err := engine.RemoveBody(pb.Handle); err != nil && !errors.Is(err, physics.ErrStaleHandle) {
			log.Warn("release body", zap.String("entity", e.String()), zap.Error(err))
		}
	})
	world.AddFinalizer(func(w *ecs.World, e ecs.Entity) {
		if sp, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && sp.Node != nil {
			stage.Destroy(sp.Node)
		}
	})

	world.AddSystem(system.NewInputSystem())
	world.AddSystem(system.NewAISystem(log))
	world.AddSystem(system.NewPhysicsBridge(engine, log))
	world.AddSystem(system.NewCollisionSystem(log))
	world.AddSystem(system.NewMovementSystem(log))
	world.AddSystem(system.NewProjectileSystem(deps, log))
	world.AddSystem(system.NewTTLSystem())
	world.AddSystem(system.NewAnimationSystem())
	world.AddSystem(system.NewRenderSyncSystem(stage, cfg.Simulation.PixelsPerMeter))

	for _, seg := range lvl.Ground {
		engine.AddGroundSegment(seg.X1, seg.Y1, seg.X2, seg.Y2)
	}
	var encounters []level.Spawn
	for _, sp := range lvl.Spawns {
		if sp.Kind == "boss" {
			encounters = append(encounters, sp)
			continue
		}
		if _, err := entity.Spawn(world, deps, sp); err != nil {
			log.Warn("spawn failed",
				zap.String("level", lvl.Name),
				zap.String("kind", sp.Kind),
				zap.Error(err))
		}
	}

	return &session{
		world:      world,
		engine:     engine,
		stage:      stage,
		deps:       deps,
		lvl:        lvl,
		encounters: encounters,
	}, nil
}

type Game struct {
	cfg       *config.Config
	log       *zap.Logger
	debug     bool
	levelName string // embedded level name, empty for the default
	levelPath string // on-disk level, overrides levelName when set

	session *session
	watcher *level.Watcher
	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	frames  int
}

func NewGame(cfg *config.Config, levelName string, debug bool, log *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:   cfg,
		log:   log,
		debug: debug,
	}
	if isLevelPath(levelName) {
		g.levelPath = levelName
	} else {
		g.levelName = levelName
	}

	lvl, err := g.loadLevel()
	if err != nil {
		return nil, err
	}
	sess, err := newSession(cfg, lvl, log)
	if err != nil {
		return nil, err
	}
	g.session = sess
	g.pauseUI = NewPauseUI(g)

	if debug && g.levelPath != "" {
		w, err := level.NewWatcher(filepath.Dir(g.levelPath))
		if err != nil {
			log.Warn("level watch unavailable", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// isLevelPath distinguishes an on-disk level file from an embedded level
// name.
func isLevelPath(name string) bool {
	return strings.ContainsAny(name, `/\`) ||
		strings.HasSuffix(name, ".yaml") ||
		strings.HasSuffix(name, ".yml")
}

func (g *Game) loadLevel() (*level.Level, error) {
	if g.levelPath != "" {
		return level.LoadFile(g.levelPath)
	}
	return levels.Load(g.levelName)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollReload()

	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if e, ok, err := g.session.TriggerEncounter(); err != nil {
			g.log.Warn("encounter spawn failed", zap.Error(err))
		} else if ok {
			g.log.Info("encounter spawned", zap.String("entity", e.String()))
		}
	}

	dt := 1.0 / g.cfg.Simulation.TickRate
	if err := g.session.world.RunFrame(dt); err != nil {
		return fmt.Errorf("frame %d: %w", g.frames, err)
	}
	return nil
}

// pollReload rebuilds the session when the watched level file changed.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case path := <-g.watcher.Events:
		lvl, err := g.loadLevel()
		if err != nil {
			g.log.Warn("reload: level", zap.String("path", path), zap.Error(err))
			return
		}
		sess, err := newSession(g.cfg, lvl, g.log)
		if err != nil {
			g.log.Warn("reload: session", zap.Error(err))
			return
		}
		g.session = sess
		g.log.Info("level reloaded", zap.String("path", path))
	case err := <-g.watcher.Errors:
		g.log.Warn("level watch", zap.Error(err))
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.session.stage.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f  entities: %d  nodes: %d  frame: %d",
			ebiten.ActualFPS(),
			len(ecs.Entities(g.session.world)),
			g.session.stage.Len(),
			g.frames))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
