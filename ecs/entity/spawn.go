package entity

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/assets"
	"github.com/bproctor91/sidewinder/config"
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/level"
	"github.com/bproctor91/sidewinder/physics"
	"github.com/bproctor91/sidewinder/render"
)

// ErrBadSpawn marks a malformed or unknown spawn descriptor. The one
// spawn fails and the session continues without that entity.
var ErrBadSpawn = errors.New("entity: bad spawn descriptor")

// Deps bundles the collaborators every factory needs. Sheets maps actor
// kinds to their sprite sheets; a missing sheet draws nothing, which is
// fine for tests.
type Deps struct {
	Engine   physics.Engine
	Stage    *render.Stage
	Library  *assets.AnimationLibrary
	Sheets   map[string]*ebiten.Image
	Movement config.MovementConfig
	Combat   config.CombatConfig
	Log      *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Spawn consumes one typed descriptor and returns the created entity.
// External triggers (boss encounters) call this same contract at an
// arbitrary later frame.
func Spawn(w *ecs.World, deps Deps, sp level.Spawn) (ecs.Entity, error) {
	switch sp.Kind {
	case "player":
		return NewPlayer(w, deps, sp.X, sp.Y)
	case "walker":
		return NewWalker(w, deps, sp)
	case "boss":
		return NewBoss(w, deps, sp)
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrBadSpawn, sp.Kind)
	}
}

// rollback undoes a partially-built entity: external body and node first,
// then the entity itself, so nothing dangles and no system ever sees it.
func rollback(w *ecs.World, deps Deps, e ecs.Entity, handle physics.Handle, node *render.SceneNode) {
	if handle != 0 {
		if err := deps.Engine.RemoveBody(handle); err != nil && !errors.Is(err, physics.ErrStaleHandle) {
			deps.logger().Warn("spawn rollback: remove body", zap.Error(err))
		}
	}
	if node != nil {
		deps.Stage.Destroy(node)
	}
	ecs.ReleaseNow(w, e)
}
