package system

import (
	"testing"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

func TestSelectAnimation(t *testing.T) {
	cases := []struct {
		name     string
		state    component.State
		grounded bool
		want     string
	}{
		{"idle", component.StateIdle, true, "idle"},
		{"idle_airborne", component.StateIdle, false, "fall"},
		{"running", component.StateRunning, true, "run"},
		{"running_airborne", component.StateRunning, false, "fall"},
		{"jumping", component.StateJumping, false, "jump"},
		{"falling", component.StateFalling, false, "fall"},
		{"wall_sliding", component.StateWallSliding, false, "wall_slide"},
		{"dead", component.StateDead, true, "die"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SelectAnimation(c.state, c.grounded)
			if got != c.want {
				t.Fatalf("SelectAnimation(%s, %v) = %q, want %q", c.state, c.grounded, got, c.want)
			}
			// same inputs, same output
			if again := SelectAnimation(c.state, c.grounded); again != got {
				t.Fatalf("selection must be deterministic")
			}
		})
	}
}

func testClips() map[string]component.Clip {
	return map[string]component.Clip{
		"idle": {Frames: []int{0, 1}, FPS: 4, Loop: true},
		"run":  {Frames: []int{2, 3, 4}, FPS: 6, Loop: true},
		"die":  {Frames: []int{5, 6}, FPS: 4, Loop: false},
	}
}

func TestAnimationClipSwitching(t *testing.T) {
	w := ecs.NewWorld(nil)
	e := ecs.CreateEntity(w)
	p := basePlayer()
	p.Grounded = true
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &p); err != nil {
		t.Fatalf("add player: %v", err)
	}
	anim := &component.AnimationState{Clips: testClips(), Current: "idle", Frame: 1.2}
	if err := ecs.Add(w, e, component.AnimationStateComponent.Kind(), anim); err != nil {
		t.Fatalf("add animation: %v", err)
	}

	sys := NewAnimationSystem()

	// unchanged selection must not restart the clip
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if anim.Current != "idle" || anim.Frame < 1.2 {
		t.Fatalf("same clip should keep playing: current=%s frame=%v", anim.Current, anim.Frame)
	}

	pl, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	pl.State = component.StateRunning
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if anim.Current != "run" {
		t.Fatalf("state change should switch the clip, got %s", anim.Current)
	}
	if anim.Frame >= 1 {
		t.Fatalf("clip switch should restart the cursor, frame=%v", anim.Frame)
	}

	// unknown clip names keep the old selection
	pl.State = component.StateWallSliding
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if anim.Current != "run" {
		t.Fatalf("missing clip must not be selected, got %s", anim.Current)
	}
}

func TestAnimationFlipFollowsFacing(t *testing.T) {
	w := ecs.NewWorld(nil)
	e := ecs.CreateEntity(w)
	p := basePlayer()
	p.Facing = -1
	p.Grounded = true
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &p); err != nil {
		t.Fatalf("add player: %v", err)
	}
	anim := &component.AnimationState{Clips: testClips(), Current: "idle"}
	if err := ecs.Add(w, e, component.AnimationStateComponent.Kind(), anim); err != nil {
		t.Fatalf("add animation: %v", err)
	}

	sys := NewAnimationSystem()
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !anim.FlipX {
		t.Fatalf("facing left should flip the sprite")
	}

	pl, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	pl.Facing = 1
	if err := sys.Update(w, testDT); err != nil {
		t.Fatalf("update: %v", err)
	}
	if anim.FlipX {
		t.Fatalf("facing right should not flip the sprite")
	}
}

func TestAnimationAdvance(t *testing.T) {
	t.Run("looping_wraps", func(t *testing.T) {
		anim := &component.AnimationState{Clips: testClips(), Current: "run", Frame: 2.5}
		advance(anim, 0.25) // 6 fps * 0.25s = 1.5 frames
		if anim.Frame != 1 {
			t.Fatalf("expected wrap to 1, got %v", anim.Frame)
		}
	})

	t.Run("one_shot_holds_last", func(t *testing.T) {
		anim := &component.AnimationState{Clips: testClips(), Current: "die", Frame: 1.5}
		advance(anim, 1)
		if anim.Frame != 1 {
			t.Fatalf("one-shot clips hold the last frame, got %v", anim.Frame)
		}
		if got := anim.FrameIndex(); got != 6 {
			t.Fatalf("expected sheet frame 6, got %d", got)
		}
	})

	t.Run("unknown_clip_is_inert", func(t *testing.T) {
		anim := &component.AnimationState{Clips: testClips(), Current: "missing", Frame: 0.5}
		advance(anim, 1)
		if anim.Frame != 0.5 {
			t.Fatalf("unknown clip must not advance, frame=%v", anim.Frame)
		}
	})
}
