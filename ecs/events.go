package ecs

// ContactEvent is one side of a narrow-phase contact from the last physics
// step, already mapped from body handles to entities. Other is the zero
// Entity for static level geometry. The normal points away from Entity
// toward the touched surface, Y-down: ground below has NormalY > 0.
type ContactEvent struct {
	Entity      Entity
	Other       Entity
	NormalX     float64
	NormalY     float64
	OtherStatic bool
}

// DamageEvent pairs a projectile contact with its target. The projectile
// system applies it; the owner is never a valid target.
type DamageEvent struct {
	Projectile Entity
	Owner      Entity
	Target     Entity
	Amount     int
}

// EventQueue holds the per-frame event lists. Contacts are pushed by the
// physics bridge and drained by collision resolution; damage events are
// pushed by collision resolution and drained by the projectile system.
// Whatever is left is cleared at frame end.
type EventQueue struct {
	contacts []ContactEvent
	damage   []DamageEvent
}

func (q *EventQueue) PushContact(evt ContactEvent) {
	if q == nil {
		return
	}
	q.contacts = append(q.contacts, evt)
}

func (q *EventQueue) DrainContacts() []ContactEvent {
	if q == nil || len(q.contacts) == 0 {
		return nil
	}
	out := q.contacts
	q.contacts = nil
	return out
}

func (q *EventQueue) PushDamage(evt DamageEvent) {
	if q == nil {
		return
	}
	q.damage = append(q.damage, evt)
}

func (q *EventQueue) DrainDamage() []DamageEvent {
	if q == nil || len(q.damage) == 0 {
		return nil
	}
	out := q.damage
	q.damage = nil
	return out
}

func (q *EventQueue) clear() {
	if q == nil {
		return
	}
	q.contacts = nil
	q.damage = nil
}
