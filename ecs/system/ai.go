package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/assets"
	"github.com/bproctor91/sidewinder/common"
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

// AISystem runs each enemy's behavior script to produce its Intent.
// Scripts are compiled once per behavior name; per-frame calls rebind
// the input variables and rerun.
type AISystem struct {
	compiled map[string]*tengo.Compiled
	broken   map[string]bool
	log      *zap.Logger
}

func NewAISystem(log *zap.Logger) *AISystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &AISystem{
		compiled: make(map[string]*tengo.Compiled),
		broken:   make(map[string]bool),
		log:      log,
	}
}

func (s *AISystem) Update(w *ecs.World, _ float64) error {
	for _, e := range w.Query(
		component.EnemyComponent.Kind(),
		component.IntentComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PlayerComponent.Kind(),
	) {
		enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
		intent, _ := ecs.Get(w, e, component.IntentComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		state, _ := ecs.Get(w, e, component.PlayerComponent.Kind())

		if state.State == component.StateDead {
			*intent = component.Intent{}
			continue
		}

		moveX, err := s.runBehavior(enemy, transform, state)
		if err != nil {
			s.log.Warn("ai: behavior failed, idling",
				zap.String("behavior", enemy.Behavior),
				zap.String("entity", e.String()),
				zap.Error(err))
			*intent = component.Intent{}
			continue
		}
		intent.MoveX = common.Clamp(moveX, -1, 1)
		intent.Jump = false
		intent.Fire = false
	}
	return nil
}

func (s *AISystem) runBehavior(enemy *component.Enemy, t *component.Transform, state *component.Player) (float64, error) {
	c, err := s.script(enemy.Behavior)
	if err != nil {
		return 0, err
	}
	if err := c.Set("x", t.X); err != nil {
		return 0, err
	}
	if err := c.Set("min_x", enemy.MinX); err != nil {
		return 0, err
	}
	if err := c.Set("max_x", enemy.MaxX); err != nil {
		return 0, err
	}
	if err := c.Set("facing", int64(state.Facing)); err != nil {
		return 0, err
	}
	if err := c.Run(); err != nil {
		return 0, fmt.Errorf("run: %w", err)
	}
	return c.Get("move_x").Float(), nil
}

func (s *AISystem) script(name string) (*tengo.Compiled, error) {
	if s.broken[name] {
		return nil, fmt.Errorf("ai: script %q previously failed to compile", name)
	}
	if c, ok := s.compiled[name]; ok {
		return c, nil
	}

	src, err := assets.Script(name)
	if err != nil {
		s.broken[name] = true
		return nil, err
	}
	script := tengo.NewScript(src)
	for _, v := range []string{"x", "min_x", "max_x"} {
		if err := script.Add(v, 0.0); err != nil {
			s.broken[name] = true
			return nil, err
		}
	}
	if err := script.Add("facing", int64(1)); err != nil {
		s.broken[name] = true
		return nil, err
	}
	c, err := script.Compile()
	if err != nil {
		s.broken[name] = true
		return nil, fmt.Errorf("ai: compile %q: %w", name, err)
	}
	s.compiled[name] = c
	return c, nil
}
