package system

import (
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

// SelectAnimation maps a movement state to a clip name. Pure so the
// mapping is testable without a world.
func SelectAnimation(state component.State, grounded bool) string {
	switch state {
	case component.StateDead:
		return "die"
	case component.StateWallSliding:
		return "wall_slide"
	case component.StateJumping:
		return "jump"
	case component.StateFalling:
		return "fall"
	case component.StateRunning:
		if !grounded {
			return "fall"
		}
		return "run"
	default:
		if !grounded {
			return "fall"
		}
		return "idle"
	}
}

// AnimationSystem picks clips from movement state and advances frame
// cursors. Current is rewritten only when the selection changes; looping
// clips wrap, one-shot clips hold their last frame.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World, dt float64) error {
	ecs.ForEach(w, component.AnimationStateComponent.Kind(), func(e ecs.Entity, anim *component.AnimationState) {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			next := SelectAnimation(p.State, p.Grounded)
			if next != anim.Current {
				if _, has := anim.Clips[next]; has {
					anim.Current = next
					anim.Frame = 0
				}
			}
			anim.FlipX = p.Facing < 0
		}
		advance(anim, dt)
	})
	return nil
}

func advance(anim *component.AnimationState, dt float64) {
	clip, ok := anim.Clips[anim.Current]
	if !ok || len(clip.Frames) == 0 {
		return
	}
	anim.Frame += dt * clip.FPS
	n := float64(len(clip.Frames))
	if anim.Frame < n {
		return
	}
	if clip.Loop {
		for anim.Frame >= n {
			anim.Frame -= n
		}
	} else {
		anim.Frame = n - 1
	}
}
