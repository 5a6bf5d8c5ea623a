package ecs

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/ecs/component"
)

// ErrAbortFrame marks a system failure the frame cannot recover from.
// RunFrame propagates it instead of logging and moving on; the physics
// bridge wraps a failed engine step with it.
var ErrAbortFrame = errors.New("ecs: frame aborted")

// System mutates world state once per frame. Returning an error logs it
// and lets the rest of the pipeline run, unless wrapped in ErrAbortFrame.
type System interface {
	Update(w *World, dt float64) error
}

// Finalizer runs for each destroyed entity during the end-of-frame flush,
// before the entity's components are removed. Registration order is the
// release order: physics body first, render node second.
type Finalizer func(w *World, e Entity)

// World owns entities, component storage, the fixed system pipeline, and
// the deferred-destruction queue. All access is single-threaded; the
// single-writer discipline is pipeline order, not locks.
type World struct {
	entities entityStore

	stores     map[component.ComponentID]*SparseSet
	storeOrder []component.ComponentID

	systems    []System
	finalizers []Finalizer

	pending    []Entity
	pendingSet map[Entity]struct{}

	events EventQueue
	log    *zap.Logger
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		stores:     make(map[component.ComponentID]*SparseSet),
		pendingSet: make(map[Entity]struct{}),
		log:        log,
	}
}

func (w *World) storeFor(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
		w.storeOrder = append(w.storeOrder, id)
	}
	return s
}

// CreateEntity allocates a new live entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity queues the entity for the end-of-frame flush. The entity
// stays alive and observable until then. Returns false if the entity is
// not alive or already queued, so callers destroy exactly once.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	if _, queued := w.pendingSet[e]; queued {
		return false
	}
	w.pendingSet[e] = struct{}{}
	w.pending = append(w.pending, e)
	return true
}

// IsAlive reports whether the handle resolves, including entities queued
// for destruction but not yet flushed.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// PendingDestroy reports whether the entity is queued for the next flush.
func PendingDestroy(w *World, e Entity) bool {
	_, ok := w.pendingSet[e]
	return ok
}

// Entities returns all live entities in index order.
func Entities(w *World) []Entity {
	out := make([]Entity, 0, len(w.entities.gens))
	for i := range w.entities.gens {
		e := makeEntity(entityID(i+1), w.entities.gens[i])
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// ReleaseNow strips every component and frees the entity immediately,
// bypassing the flush. Only entity factories use it, to guarantee a
// partially-built entity is never observable by a system.
func ReleaseNow(w *World, e Entity) {
	if !w.entities.isAlive(e) {
		return
	}
	for _, kindID := range w.storeOrder {
		w.stores[kindID].Remove(int(e.id()))
	}
	w.entities.release(e)
}

func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

func (w *World) AddFinalizer(f Finalizer) {
	if f == nil {
		return
	}
	w.finalizers = append(w.finalizers, f)
}

func (w *World) Events() *EventQueue {
	return &w.events
}

func (w *World) Logger() *zap.Logger {
	return w.log
}

// Query returns entities holding every listed kind, iterated in the dense
// order of the first kind's store. Deterministic for a given mutation
// history.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	first, ok := w.stores[kinds[0].ID()]
	if !ok {
		return nil
	}
	out := make([]Entity, 0, first.Len())
outer:
	for _, id := range first.Entities() {
		for _, kind := range kinds[1:] {
			s, ok := w.stores[kind.ID()]
			if !ok || !s.Has(id) {
				continue outer
			}
		}
		e := makeEntity(entityID(id), w.entities.gens[id-1])
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity holding the kind, if any.
func (w *World) First(kinds ...component.AnyKind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// RunFrame executes the system pipeline in registration order, then
// flushes queued destructions and clears leftover events. A failing
// system is logged and skipped; ErrAbortFrame propagates immediately.
func (w *World) RunFrame(dt float64) error {
	for _, s := range w.systems {
		if err := w.runSystem(s, dt); err != nil {
			if errors.Is(err, ErrAbortFrame) {
				return err
			}
			w.log.Error("system failed",
				zap.String("system", fmt.Sprintf("%T", s)),
				zap.Error(err))
		}
	}
	w.flush()
	w.events.clear()
	return nil
}

func (w *World) runSystem(s System, dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Update(w, dt)
}

// flush applies queued destructions: finalizers in registration order
// (physics body release, render detach), then component removal, then
// index release. Finalizers may queue further entities; those are flushed
// in the same pass.
func (w *World) flush() {
	for i := 0; i < len(w.pending); i++ {
		e := w.pending[i]
		if !w.entities.isAlive(e) {
			continue
		}
		for _, fin := range w.finalizers {
			fin(w, e)
		}
		for _, kindID := range w.storeOrder {
			w.stores[kindID].Remove(int(e.id()))
		}
		w.entities.release(e)
	}
	w.pending = w.pending[:0]
	w.pendingSet = make(map[Entity]struct{})
}
