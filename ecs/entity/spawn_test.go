package entity

import (
	"errors"
	"testing"

	"github.com/bproctor91/sidewinder/assets"
	"github.com/bproctor91/sidewinder/config"
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/level"
	"github.com/bproctor91/sidewinder/physics"
	"github.com/bproctor91/sidewinder/render"
)

// stubEngine hands out handles and counts live bodies.
type stubEngine struct {
	next      physics.Handle
	live      map[physics.Handle]bool
	createErr error
	velErr    error
}

func newStubEngine() *stubEngine {
	return &stubEngine{live: make(map[physics.Handle]bool)}
}

func (s *stubEngine) CreateBody(t physics.BodyType, x, y, w, h float64) (physics.Handle, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.next++
	s.live[s.next] = true
	return s.next, nil
}

func (s *stubEngine) RemoveBody(h physics.Handle) error {
	if !s.live[h] {
		return physics.ErrStaleHandle
	}
	delete(s.live, h)
	return nil
}

func (s *stubEngine) SetLinearVelocity(h physics.Handle, vx, vy float64) error {
	if s.velErr != nil {
		return s.velErr
	}
	if !s.live[h] {
		return physics.ErrStaleHandle
	}
	return nil
}

func (s *stubEngine) Position(h physics.Handle) (float64, float64, error) {
	if !s.live[h] {
		return 0, 0, physics.ErrStaleHandle
	}
	return 0, 0, nil
}

func (s *stubEngine) Velocity(h physics.Handle) (float64, float64, error) {
	if !s.live[h] {
		return 0, 0, physics.ErrStaleHandle
	}
	return 0, 0, nil
}

func (s *stubEngine) Step(dt float64) error { return nil }

func (s *stubEngine) DrainContacts() []physics.Contact { return nil }

var _ physics.Engine = (*stubEngine)(nil)

func newTestDeps(t *testing.T, eng *stubEngine) Deps {
	t.Helper()
	lib, err := assets.LoadAnimationLibrary()
	if err != nil {
		t.Fatalf("load animation library: %v", err)
	}
	return Deps{
		Engine:  eng,
		Stage:   render.NewStage(),
		Library: lib,
		Movement: config.MovementConfig{
			MoveSpeed:    4.5,
			JumpSpeed:    11,
			WallSlideMax: 2,
			MaxJumps:     2,
			CoyoteFrames: 6,
		},
		Combat: config.CombatConfig{
			ProjectileSpeed:    14,
			ProjectileLifetime: 1,
			ProjectileDamage:   25,
			FireCooldown:       0.35,
		},
	}
}

func TestSpawnPlayer(t *testing.T) {
	w := ecs.NewWorld(nil)
	eng := newStubEngine()
	deps := newTestDeps(t, eng)

	e, err := Spawn(w, deps, level.Spawn{Kind: "player", X: 3, Y: 8.5})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || tr.X != 3 || tr.Y != 8.5 {
		t.Fatalf("transform: %+v ok=%v", tr, ok)
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.MaxJumps != 2 || p.Facing != 1 || p.State != component.StateIdle {
		t.Fatalf("player: %+v ok=%v", p, ok)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		t.Fatalf("player tag missing")
	}
	if !ecs.Has(w, e, component.CooldownComponent.Kind()) {
		t.Fatalf("cooldown missing")
	}
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !eng.live[pb.Handle] {
		t.Fatalf("body not registered with the engine")
	}
	if deps.Stage.Len() != 1 {
		t.Fatalf("expected one scene node, got %d", deps.Stage.Len())
	}
}

func TestSpawnWalkerAndBoss(t *testing.T) {
	w := ecs.NewWorld(nil)
	eng := newStubEngine()
	deps := newTestDeps(t, eng)

	walker, err := Spawn(w, deps, level.Spawn{Kind: "walker", X: 12, Y: 8.5, MinX: 11, MaxX: 18})
	if err != nil {
		t.Fatalf("spawn walker: %v", err)
	}
	en, _ := ecs.Get(w, walker, component.EnemyComponent.Kind())
	if en.Behavior != "patrol" {
		t.Fatalf("walker should default to the patrol behavior, got %q", en.Behavior)
	}
	wh, _ := ecs.Get(w, walker, component.HealthComponent.Kind())

	boss, err := Spawn(w, deps, level.Spawn{Kind: "boss", X: 18, Y: 8.5, MinX: 14, MaxX: 19})
	if err != nil {
		t.Fatalf("spawn boss: %v", err)
	}
	bh, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	if bh.Max <= wh.Max {
		t.Fatalf("boss health %d should exceed walker health %d", bh.Max, wh.Max)
	}

	ws, _ := ecs.Get(w, walker, component.SpriteComponent.Kind())
	bs, _ := ecs.Get(w, boss, component.SpriteComponent.Kind())
	if bs.Width <= ws.Width {
		t.Fatalf("boss should be drawn larger than the walker")
	}
}

func TestSpawnRejectsBadDescriptors(t *testing.T) {
	w := ecs.NewWorld(nil)
	deps := newTestDeps(t, newStubEngine())

	cases := []struct {
		name string
		sp   level.Spawn
	}{
		{"unknown_kind", level.Spawn{Kind: "dragon", X: 1, Y: 1}},
		{"inverted_patrol_bounds", level.Spawn{Kind: "walker", X: 5, Y: 5, MinX: 9, MaxX: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Spawn(w, deps, c.sp); !errors.Is(err, ErrBadSpawn) {
				t.Fatalf("expected ErrBadSpawn, got %v", err)
			}
		})
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("failed spawns must leave no entity behind, got %d", got)
	}
}

func TestSpawnRollsBackOnEngineFailure(t *testing.T) {
	w := ecs.NewWorld(nil)
	eng := newStubEngine()
	eng.createErr = errors.New("out of bodies")
	deps := newTestDeps(t, eng)

	if _, err := Spawn(w, deps, level.Spawn{Kind: "player", X: 1, Y: 1}); err == nil {
		t.Fatalf("expected an error")
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("no entity may survive a failed spawn, got %d", got)
	}
	if deps.Stage.Len() != 0 {
		t.Fatalf("no scene node may survive a failed spawn, got %d", deps.Stage.Len())
	}
}

func TestNewBoltRollsBackOnLaunchFailure(t *testing.T) {
	w := ecs.NewWorld(nil)
	eng := newStubEngine()
	eng.velErr = errors.New("solver wedged")
	deps := newTestDeps(t, eng)

	shooter := ecs.CreateEntity(w)
	if _, err := NewBolt(w, deps, shooter, 0, 0, 1); err == nil {
		t.Fatalf("expected an error")
	}
	if len(eng.live) != 0 {
		t.Fatalf("the bolt body must be released on a failed launch, live=%d", len(eng.live))
	}
	if got := len(ecs.Entities(w)); got != 1 { // only the shooter
		t.Fatalf("no bolt entity may survive a failed launch, got %d", got)
	}
}
