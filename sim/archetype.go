package sim

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

// Archetype holds every entity with one exact set of component types, one
// column per type. All columns of an archetype receive the same sequence of
// appends and deletes, so a slot index names the same entity in each.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
	}
	for i, t := range types {
		factory := registry.factory(t)
		if factory == nil {
			panic("component type " + t.String() + " not registered")
		}
		a.storages[i] = factory()
	}
	return a
}

// spawn appends one entity. components must be ordered like a.types.
func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for i, comp := range components {
		slot := a.storages[i].Append(comp)
		if index != -1 && slot != index {
			panic(fmt.Sprintf("archetype %d columns out of step: %d != %d", a.id, slot, index))
		}
		index = slot
	}
	return uint32(index)
}

func (a *Archetype) column(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) pointer(index uint32, t reflect.Type) unsafe.Pointer {
	col := a.column(t)
	if col == -1 {
		return nil
	}
	return a.storages[col].Pointer(int(index))
}

func (a *Archetype) delete(index uint32) {
	for _, s := range a.storages {
		s.Delete(int(index))
	}
}

func (a *Archetype) alive(index uint32) bool {
	return len(a.storages) > 0 && a.storages[0].Has(int(index))
}

// HasComponent reports whether entities of this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.column(t) != -1
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the live entities in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
