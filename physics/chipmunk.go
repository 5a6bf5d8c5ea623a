package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBody
)

const defaultFriction = 0.8

// Space is the Chipmunk-backed Engine. It owns the cp.Space, maps opaque
// handles to bodies, and records contacts during Step for DrainContacts.
type Space struct {
	space    *cp.Space
	next     Handle
	bodies   map[Handle]*bodyRec
	byShape  map[*cp.Shape]Handle
	contacts []Contact
}

type bodyRec struct {
	body  *cp.Body
	shape *cp.Shape
	typ   BodyType
}

// NewSpace creates a space with the given downward gravity (m/s², Y-down).
func NewSpace(gravity float64) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	s := &Space{
		space:   space,
		bodies:  make(map[Handle]*bodyRec),
		byShape: make(map[*cp.Shape]Handle),
	}
	s.setupHandlers()
	return s
}

func (s *Space) setupHandlers() {
	record := func(arb *cp.Arbiter) bool {
		shapeA, shapeB := arb.Shapes()
		ha := s.byShape[shapeA]
		hb := s.byShape[shapeB]
		n := arb.Normal()
		if ha == 0 && hb != 0 {
			// keep the tracked body on the A side
			ha, hb = hb, ha
			n = n.Neg()
		}
		if ha == 0 {
			return true
		}
		s.contacts = append(s.contacts, Contact{A: ha, B: hb, NormalX: n.X, NormalY: n.Y})
		return true
	}

	solid := s.space.NewCollisionHandler(collisionTypeBody, collisionTypeSolid)
	solid.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		return record(arb)
	}

	pair := s.space.NewCollisionHandler(collisionTypeBody, collisionTypeBody)
	pair.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		return record(arb)
	}
}

// AddGroundSegment adds a static line segment to the level geometry.
// Segments report a zero handle on their side of a contact.
func (s *Space) AddGroundSegment(x1, y1, x2, y2 float64) {
	shape := cp.NewSegment(s.space.StaticBody, cp.Vector{X: x1, Y: y1}, cp.Vector{X: x2, Y: y2}, 0.05)
	shape.SetFriction(defaultFriction)
	shape.SetCollisionType(collisionTypeSolid)
	s.space.AddShape(shape)
}

func (s *Space) CreateBody(t BodyType, x, y, w, h float64) (Handle, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("physics: create %s body: invalid size %gx%g", t, w, h)
	}

	var body *cp.Body
	switch t {
	case Dynamic:
		// infinite moment keeps bodies upright, like the usual platformer capsule
		body = cp.NewBody(1, math.Inf(1))
	case Kinematic:
		body = cp.NewKinematicBody()
	case Static:
		body = cp.NewStaticBody()
	default:
		return 0, fmt.Errorf("physics: create body: unknown type %d", t)
	}
	body.SetPosition(cp.Vector{X: x, Y: y})
	s.space.AddBody(body)

	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(defaultFriction)
	if t == Static {
		shape.SetCollisionType(collisionTypeSolid)
	} else {
		shape.SetCollisionType(collisionTypeBody)
	}
	s.space.AddShape(shape)

	s.next++
	handle := s.next
	s.bodies[handle] = &bodyRec{body: body, shape: shape, typ: t}
	s.byShape[shape] = handle
	return handle, nil
}

func (s *Space) RemoveBody(h Handle) error {
	rec, ok := s.bodies[h]
	if !ok {
		return ErrStaleHandle
	}
	s.space.RemoveShape(rec.shape)
	s.space.RemoveBody(rec.body)
	delete(s.byShape, rec.shape)
	delete(s.bodies, h)
	return nil
}

func (s *Space) SetLinearVelocity(h Handle, vx, vy float64) error {
	rec, ok := s.bodies[h]
	if !ok {
		return ErrStaleHandle
	}
	rec.body.SetVelocity(vx, vy)
	return nil
}

func (s *Space) Position(h Handle) (float64, float64, error) {
	rec, ok := s.bodies[h]
	if !ok {
		return 0, 0, ErrStaleHandle
	}
	p := rec.body.Position()
	return p.X, p.Y, nil
}

func (s *Space) Velocity(h Handle) (float64, float64, error) {
	rec, ok := s.bodies[h]
	if !ok {
		return 0, 0, ErrStaleHandle
	}
	v := rec.body.Velocity()
	return v.X, v.Y, nil
}

// Step advances the simulation. Contact handlers fire inside it; a panic
// out of the solver is converted to ErrStepFailed.
func (s *Space) Step(dt float64) (err error) {
	if dt <= 0 {
		return fmt.Errorf("%w: non-positive dt %g", ErrStepFailed, dt)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStepFailed, r)
		}
	}()
	s.space.Step(dt)
	return nil
}

func (s *Space) DrainContacts() []Contact {
	out := s.contacts
	s.contacts = nil
	return out
}

var _ Engine = (*Space)(nil)
