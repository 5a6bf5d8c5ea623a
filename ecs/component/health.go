package component

// Health is the generic damageable capability.
type Health struct {
	Current int
	Max     int
}

func (h *Health) Depleted() bool {
	return h != nil && h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
