package sim

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage holds entities grouped into archetypes by their component types.
// Structural changes (Spawn, Delete) must not happen while a View over the
// same storage is being iterated.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
}

// NewStorage creates an empty storage for the components of registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
	}
}

// Spawn creates an entity with the given components, passed by value or by
// pointer. Each component type may appear once.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
	}

	order := make([]int, len(components))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Compare(typeKey(types[a]), typeKey(types[b]))
	})

	sortedTypes := make([]reflect.Type, len(order))
	sortedComponents := make([]any, len(order))
	for i, idx := range order {
		sortedTypes[i] = types[idx]
		sortedComponents[i] = components[idx]
	}
	for i := 1; i < len(sortedTypes); i++ {
		if sortedTypes[i] == sortedTypes[i-1] {
			panic("component type " + sortedTypes[i].String() + " given twice")
		}
	}

	archetype := s.archetypeFor(sortedTypes)
	return NewEntityId(archetype.id, archetype.spawn(sortedComponents))
}

// archetypeFor returns the archetype for sorted types, creating it if needed.
func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
		return archetype
	}
	if !slices.Equal(archetype.types, types) {
		panic(fmt.Sprintf("archetype id %d collides for %v and %v", id, archetype.types, types))
	}
	return archetype
}

// Delete removes the entity and all its components. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.delete(id.Index())
	}
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of type t as an
// any, or nil if the entity has none.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	ptr := s.pointer(id, t)
	if ptr == nil {
		return nil
	}
	return reflect.NewAt(t, ptr).Interface()
}

// HasComponent reports whether the entity carries a component of type t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.pointer(id, t) != nil
}

func (s *Storage) pointer(id EntityId, t reflect.Type) unsafe.Pointer {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.pointer(id.Index(), t)
}

// ArchetypeCount returns how many archetypes exist.
func (s *Storage) ArchetypeCount() int {
	return s.archetypes.Len()
}

// EntityCount returns the number of live entities across all archetypes.
func (s *Storage) EntityCount() int {
	n := 0
	s.archetypes.ForEach(func(_ uint32, a *Archetype) bool {
		n += a.Len()
		return true
	})
	return n
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	return (*T)(s.pointer(id, reflect.TypeFor[T]()))
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

// hashTypes derives an archetype ID from sorted component types with
// 32-bit FNV-1a over their qualified names.
func hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		for _, b := range []byte(typeKey(t)) {
			h ^= uint32(b)
			h *= prime
		}
		h ^= 0xff
		h *= prime
	}
	return h
}
