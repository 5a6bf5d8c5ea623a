package physics

import "errors"

// Handle is an opaque reference to a rigid body owned by the engine.
// Zero is never a valid handle; contacts against static level geometry
// report a zero handle for the static side.
type Handle uint64

type BodyType int

const (
	Dynamic BodyType = iota
	Kinematic
	Static
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return "unknown"
}

// Contact is one narrow-phase contact reported by the last Step. The
// normal points from body A toward body B, Y-down.
type Contact struct {
	A       Handle
	B       Handle
	NormalX float64
	NormalY float64
}

var (
	// ErrStaleHandle reports an operation on a body no longer present in
	// the engine.
	ErrStaleHandle = errors.New("physics: stale body handle")
	// ErrStepFailed reports a failed integration step. Simulation state
	// cannot be trusted past it.
	ErrStepFailed = errors.New("physics: step failed")
)

// Engine is the rigid-body collaborator. Every call can fail; callers
// treat ErrStaleHandle as recoverable and ErrStepFailed as fatal.
type Engine interface {
	CreateBody(t BodyType, x, y, w, h float64) (Handle, error)
	RemoveBody(h Handle) error
	SetLinearVelocity(h Handle, vx, vy float64) error
	Position(h Handle) (x, y float64, err error)
	Velocity(h Handle) (vx, vy float64, err error)
	Step(dt float64) error
	DrainContacts() []Contact
}
