package physics

import (
	"errors"
	"testing"
)

const stepDT = 1.0 / 60.0

func TestSpaceBodyLifecycle(t *testing.T) {
	s := NewSpace(38)

	h, err := s.CreateBody(Dynamic, 1, 2, 0.6, 1.2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h == 0 {
		t.Fatalf("zero is reserved for static geometry")
	}

	x, y, err := s.Position(h)
	if err != nil || x != 1 || y != 2 {
		t.Fatalf("position: %v %v %v", x, y, err)
	}
	if err := s.SetLinearVelocity(h, 3, -1); err != nil {
		t.Fatalf("set velocity: %v", err)
	}
	vx, vy, err := s.Velocity(h)
	if err != nil || vx != 3 || vy != -1 {
		t.Fatalf("velocity: %v %v %v", vx, vy, err)
	}

	if err := s.RemoveBody(h); err != nil {
		t.Fatalf("remove: %v", err)
	}
	for _, op := range []func() error{
		func() error { return s.RemoveBody(h) },
		func() error { return s.SetLinearVelocity(h, 0, 0) },
		func() error { _, _, err := s.Position(h); return err },
		func() error { _, _, err := s.Velocity(h); return err },
	} {
		if err := op(); !errors.Is(err, ErrStaleHandle) {
			t.Fatalf("expected ErrStaleHandle, got %v", err)
		}
	}
}

func TestSpaceRejectsBadBodies(t *testing.T) {
	s := NewSpace(38)
	if _, err := s.CreateBody(Dynamic, 0, 0, 0, 1); err == nil {
		t.Fatalf("zero width must be rejected")
	}
	if _, err := s.CreateBody(BodyType(42), 0, 0, 1, 1); err == nil {
		t.Fatalf("unknown body type must be rejected")
	}
}

func TestSpaceStepValidation(t *testing.T) {
	s := NewSpace(38)
	if err := s.Step(0); !errors.Is(err, ErrStepFailed) {
		t.Fatalf("expected ErrStepFailed for zero dt, got %v", err)
	}
	if err := s.Step(stepDT); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestSpaceGravityPullsDown(t *testing.T) {
	s := NewSpace(38)
	h, err := s.CreateBody(Dynamic, 0, 0, 0.6, 1.2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 30; i++ {
		if err := s.Step(stepDT); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	_, y, err := s.Position(h)
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if y <= 0 {
		t.Fatalf("Y-down gravity should increase y, got %v", y)
	}
	_, vy, _ := s.Velocity(h)
	if vy <= 0 {
		t.Fatalf("falling body should gain downward velocity, got %v", vy)
	}
}

func TestSpaceKinematicIgnoresGravity(t *testing.T) {
	s := NewSpace(38)
	h, err := s.CreateBody(Kinematic, 0, 0, 0.25, 0.25)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SetLinearVelocity(h, 14, 0); err != nil {
		t.Fatalf("set velocity: %v", err)
	}

	for i := 0; i < 30; i++ {
		if err := s.Step(stepDT); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	x, y, _ := s.Position(h)
	if x <= 0 {
		t.Fatalf("kinematic body should travel, x=%v", x)
	}
	if y != 0 {
		t.Fatalf("kinematic body must not fall, y=%v", y)
	}
}

func TestSpaceSegmentContact(t *testing.T) {
	s := NewSpace(38)
	s.AddGroundSegment(-5, 2, 5, 2)

	h, err := s.CreateBody(Dynamic, 0, 0, 0.6, 1.2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var hit *Contact
	for i := 0; i < 240 && hit == nil; i++ {
		if err := s.Step(stepDT); err != nil {
			t.Fatalf("step: %v", err)
		}
		for _, c := range s.DrainContacts() {
			if c.A == h {
				hit = &c
				break
			}
		}
	}

	if hit == nil {
		t.Fatalf("falling body never touched the segment")
	}
	if hit.B != 0 {
		t.Fatalf("level geometry reports a zero handle, got %d", hit.B)
	}
	if hit.NormalY <= 0 {
		t.Fatalf("ground below should report a downward-pointing normal, got %v", hit.NormalY)
	}
}
