package component

// State labels for the movement state machine. Dead is terminal.
type State string

const (
	StateIdle        State = "idle"
	StateRunning     State = "running"
	StateJumping     State = "jumping"
	StateFalling     State = "falling"
	StateWallSliding State = "wallSliding"
	StateDead        State = "dead"
)

// Player drives movement and animation for the player and for scripted
// enemies alike. WallDirection is nonzero only while airborne with a live
// wall contact. JumpCount resets on the false→true grounded transition and
// never exceeds MaxJumps.
type Player struct {
	State         State
	Grounded      bool
	WallDirection int // -1 left wall, 0 none, 1 right wall
	JumpCount     int
	Facing        int // -1 or 1
	CoyoteLeft    int // frames of jump grace after leaving ground

	MoveSpeed    float64 // m/s
	JumpSpeed    float64 // m/s upward impulse
	WallSlideMax float64 // m/s downward cap while wall sliding
	MaxJumps     int
	CoyoteFrames int
}

var PlayerComponent = NewComponent[Player]()
