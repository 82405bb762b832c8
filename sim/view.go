package sim

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities that carry a given combination of components. T must
// be a struct whose fields are pointers to component types, embedded or
// named. Named fields tagged `sim:"optional"` may be nil; every other field
// is required.
//
// A View held by value in a System struct field is bound to the scheduler's
// storage on Register.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
}

// NewView creates a view over storage.
func NewView[T any](storage *Storage) *View[T] {
	v := &View[T]{}
	v.bindStorage(storage)
	return v
}

func (v *View[T]) bindStorage(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v.storage = storage
	v.types = v.types[:0]
	v.optional = v.optional[:0]
	v.offsets = v.offsets[:0]

	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("sim"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid sim tag on " + field.Name + ": " + tag)
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// fill points the fields of dst at the components of the entity in slot
// index of archetype.
func (v *View[T]) fill(archetype *Archetype, index uint32, dst *T) bool {
	base := unsafe.Pointer(dst)
	for i, t := range v.types {
		ptr := archetype.pointer(index, t)
		if ptr == nil && !v.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(unsafe.Add(base, v.offsets[i])) = ptr
	}
	return true
}

// Get returns the view of one entity, or nil if it lacks a required
// component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.alive(id.Index()) {
		return nil
	}
	var result T
	if !v.fill(archetype, id.Index(), &result) {
		return nil
	}
	return &result
}

// Iter yields every matching entity. Archetypes are visited in an
// unspecified but stable order, entities within one in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var matching []*Archetype
		v.storage.archetypes.ForEach(func(_ uint32, a *Archetype) bool {
			if v.matches(a) {
				matching = append(matching, a)
			}
			return true
		})

		var result T
		for _, archetype := range matching {
			for id := range archetype.Iter() {
				if !v.fill(archetype, id.Index(), &result) {
					continue
				}
				if !yield(id, result) {
					return
				}
			}
		}
	}
}

// Values yields the view structs without their entity ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}
