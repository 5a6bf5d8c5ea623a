package system

import (
	"testing"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

func TestCollisionGroundingTransitions(t *testing.T) {
	p := basePlayer()
	p.Grounded = false
	p.JumpCount = 2
	w, e := newMovementWorld(t, p)
	sys := NewCollisionSystem(nil)

	// landing: false→true resets the jump count and refills the window
	w.Events().PushContact(ecs.ContactEvent{Entity: e, NormalY: 1, OtherStatic: true})
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	pl, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !pl.Grounded || pl.JumpCount != 0 {
		t.Fatalf("landing should reset jumps: grounded=%v count=%d", pl.Grounded, pl.JumpCount)
	}
	if pl.CoyoteLeft != pl.CoyoteFrames {
		t.Fatalf("landing should refill the coyote window, left=%d", pl.CoyoteLeft)
	}

	// staying grounded must not keep resetting after a jump
	pl.JumpCount = 1
	w.Events().PushContact(ecs.ContactEvent{Entity: e, NormalY: 1, OtherStatic: true})
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if pl.JumpCount != 1 {
		t.Fatalf("reset fires only on the false→true transition, count=%d", pl.JumpCount)
	}

	// contact loss: airborne, coyote window counts down
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if pl.Grounded {
		t.Fatalf("no contact means airborne")
	}
	if pl.CoyoteLeft != pl.CoyoteFrames-1 {
		t.Fatalf("coyote window should tick down, left=%d", pl.CoyoteLeft)
	}
}

func TestCollisionWallDirection(t *testing.T) {
	cases := []struct {
		name        string
		normalX     float64
		normalY     float64
		otherStatic bool
		grounded    bool
		want        int
	}{
		{"right_wall", 1, 0, true, false, 1},
		{"left_wall", -1, 0, true, false, -1},
		{"shallow_normal_ignored", 0.5, 0.5, true, false, 0},
		{"dynamic_body_is_not_a_wall", 1, 0, false, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := basePlayer()
			p.Grounded = c.grounded
			w, e := newMovementWorld(t, p)

			w.Events().PushContact(ecs.ContactEvent{
				Entity:      e,
				NormalX:     c.normalX,
				NormalY:     c.normalY,
				OtherStatic: c.otherStatic,
			})
			if err := NewCollisionSystem(nil).Update(w, testDT); err != nil {
				t.Fatalf("update: %v", err)
			}

			pl, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
			if pl.WallDirection != c.want {
				t.Fatalf("wall direction = %d, want %d", pl.WallDirection, c.want)
			}
		})
	}
}

func TestCollisionWallClearsWhenGrounded(t *testing.T) {
	p := basePlayer()
	p.Grounded = true
	p.WallDirection = 1
	w, e := newMovementWorld(t, p)

	// ground and wall in the same frame: grounded wins, no wall slide
	w.Events().PushContact(ecs.ContactEvent{Entity: e, NormalY: 1, OtherStatic: true})
	w.Events().PushContact(ecs.ContactEvent{Entity: e, NormalX: 1, OtherStatic: true})
	if err := NewCollisionSystem(nil).Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}

	pl, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !pl.Grounded || pl.WallDirection != 0 {
		t.Fatalf("grounded contact clears the wall flag: grounded=%v wall=%d", pl.Grounded, pl.WallDirection)
	}
}

func TestCollisionRaisesDamageEvents(t *testing.T) {
	w := ecs.NewWorld(nil)

	owner := ecs.CreateEntity(w)
	target := ecs.CreateEntity(w)
	if err := ecs.Add(w, target, component.HealthComponent.Kind(), &component.Health{Current: 50, Max: 50}); err != nil {
		t.Fatalf("add health: %v", err)
	}

	bolt := ecs.CreateEntity(w)
	if err := ecs.Add(w, bolt, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage: 25,
		Owner:  uint64(owner),
	}); err != nil {
		t.Fatalf("add projectile: %v", err)
	}

	wall := ecs.CreateEntity(w) // no health, contact must be ignored

	w.Events().PushContact(ecs.ContactEvent{Entity: bolt, Other: target, NormalX: 1})
	w.Events().PushContact(ecs.ContactEvent{Entity: bolt, Other: wall, NormalX: 1})
	w.Events().PushContact(ecs.ContactEvent{Entity: bolt, OtherStatic: true, NormalX: 1})

	if err := NewCollisionSystem(nil).Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}

	events := w.Events().DrainDamage()
	if len(events) != 1 {
		t.Fatalf("expected exactly one damage event, got %d", len(events))
	}
	d := events[0]
	if d.Projectile != bolt || d.Target != target || d.Owner != owner || d.Amount != 25 {
		t.Fatalf("unexpected damage event: %+v", d)
	}
}
