package component

// Cooldown gates repeated fire intent.
type Cooldown struct {
	Remaining float64
	Interval  float64
}

var CooldownComponent = NewComponent[Cooldown]()
