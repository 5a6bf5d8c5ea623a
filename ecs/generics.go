package ecs

import "github.com/bproctor91/sidewinder/ecs/component"

// Add attaches a component to a live entity. A second instance of the
// same kind is an invariant violation and is rejected, except re-adding
// the identical pointer, which is a no-op (components are mutated in
// place through the pointer Get returns).
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	store := w.storeFor(kind.ID())
	id := int(e.id())
	if existing := store.Get(id); existing != nil {
		if existing == any(value) {
			return nil
		}
		return component.ErrDuplicateComponent
	}
	store.Set(id, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	store, ok := w.stores[kind.ID()]
	if !ok {
		return nil, false
	}
	v, ok := store.Get(int(e.id())).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store, ok := w.stores[kind.ID()]
	if !ok {
		return false
	}
	return store.Remove(int(e.id()))
}

// ForEach visits every live entity holding the kind, in store order. The
// entity list is snapshotted first, so callbacks may add components or
// queue destroys without disturbing the iteration.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	store, ok := w.stores[kind.ID()]
	if !ok {
		return
	}
	ids := append([]int(nil), store.Entities()...)
	for _, id := range ids {
		e := makeEntity(entityID(id), w.entities.gens[id-1])
		if !w.entities.isAlive(e) {
			continue
		}
		if v, ok := store.Get(id).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both kinds, in the first kind's store
// order.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}
